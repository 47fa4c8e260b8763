package service_test

import (
	"context"
	"testing"

	"go-assistant-api/core/errors"
	calendarEntity "go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/task/dto"
	"go-assistant-api/modules/task/entity"
	"go-assistant-api/modules/task/repository"
	"go-assistant-api/modules/task/service"
)

func newService() service.TaskService {
	return service.NewTaskService(repository.NewTaskRepository(nil, "tasks"))
}

func TestCreateTaskDefaults(t *testing.T) {
	svc := newService()

	task := svc.Create(context.Background(), &dto.CreateTaskRequest{Title: "write tests"})

	if task.ID == "" {
		t.Error("task has no id")
	}
	if task.Priority != calendarEntity.PriorityMedium {
		t.Errorf("priority %q, want the medium default", task.Priority)
	}
	if task.Status != entity.StatusPending {
		t.Errorf("status %q, want pending", task.Status)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestUpdateTask(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created := svc.Create(ctx, &dto.CreateTaskRequest{Title: "draft", Priority: calendarEntity.PriorityHigh})

	done := entity.StatusDone
	updated, appErr := svc.Update(ctx, created.ID, &dto.UpdateTaskRequest{Status: &done})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if updated.Status != entity.StatusDone {
		t.Errorf("status %q, want done", updated.Status)
	}
	if updated.Title != "draft" || updated.Priority != calendarEntity.PriorityHigh {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	_, appErr = svc.Update(ctx, "missing", &dto.UpdateTaskRequest{Status: &done})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("got %v, want not found", appErr)
	}
}

func TestDeleteTask(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created := svc.Create(ctx, &dto.CreateTaskRequest{Title: "temp"})
	svc.Delete(ctx, created.ID)
	if got := len(svc.List()); got != 0 {
		t.Errorf("%d tasks remain after delete", got)
	}

	// Unknown ids are ignored.
	svc.Delete(ctx, "missing")
}
