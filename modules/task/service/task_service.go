package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-assistant-api/core/errors"
	calendarEntity "go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/task/dto"
	"go-assistant-api/modules/task/entity"
	"go-assistant-api/modules/task/repository"
)

type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) entity.Task
	Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (entity.Task, *errors.AppError)
	Delete(ctx context.Context, id string)
	List() []entity.Task
}

type taskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) entity.Task {
	now := time.Now()
	priority := req.Priority
	if priority == "" {
		priority = calendarEntity.PriorityMedium
	}

	task := entity.Task{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Notes:             req.Notes,
		Priority:          priority,
		Status:            entity.StatusPending,
		EstimatedDuration: req.EstimatedDuration,
		DueDate:           req.DueDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.repo.Upsert(ctx, task)
	return task
}

func (s *taskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (entity.Task, *errors.AppError) {
	task, ok := s.repo.Get(id)
	if !ok {
		return entity.Task{}, errors.NewAppError(errors.ErrNotFound, "task not found", nil)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.EstimatedDuration != nil {
		task.EstimatedDuration = *req.EstimatedDuration
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = time.Now()

	s.repo.Upsert(ctx, task)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) {
	s.repo.Remove(ctx, id)
}

func (s *taskService) List() []entity.Task {
	return s.repo.List()
}
