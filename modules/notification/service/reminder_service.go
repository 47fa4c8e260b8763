package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"go-assistant-api/core/constants"
	"go-assistant-api/core/logger"
	calendarEntity "go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/notification/entity"
)

const reminderQueue = "default"

// ReminderPayload is the asynq task body for an event reminder.
type ReminderPayload struct {
	EventID string    `json:"event_id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
}

// TaskBroker is the slice of asynq's client used to enqueue reminder tasks.
type TaskBroker interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskRemover is the slice of asynq's inspector used to drop a pending
// reminder before it is replaced.
type TaskRemover interface {
	DeleteTask(queue, id string) error
}

// ReminderService schedules delayed reminder tasks through asynq and turns
// due tasks into notifications. It implements the calendar facade's
// ReminderScheduler contract.
type ReminderService struct {
	broker        TaskBroker
	remover       TaskRemover
	notifications *NotificationService
}

func NewReminderService(broker TaskBroker, remover TaskRemover, notifications *NotificationService) *ReminderService {
	return &ReminderService{
		broker:        broker,
		remover:       remover,
		notifications: notifications,
	}
}

// ScheduleReminder enqueues a reminder task due the configured number of
// minutes before the event starts. Re-scheduling the same event deletes the
// pending task first, so an event moved to a new time never fires the stale
// reminder. Reminders whose due time already passed are skipped.
func (s *ReminderService) ScheduleReminder(ctx context.Context, event calendarEntity.CalendarEvent) error {
	if s.broker == nil || event.Reminder == nil {
		return nil
	}

	dueAt := event.Start.Add(-time.Duration(*event.Reminder) * time.Minute)
	if dueAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		EventID: event.ID,
		Title:   event.Title,
		Start:   event.Start,
	})
	if err != nil {
		return err
	}

	taskID := "reminder:" + event.ID
	task := asynq.NewTask(constants.TaskTypeEventReminder, payload)
	_, err = s.broker.EnqueueContext(ctx, task,
		asynq.ProcessAt(dueAt),
		asynq.TaskID(taskID),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) && s.remover != nil {
		// Replace the stale reminder: drop the pending task, then enqueue
		// under the same id so the next re-schedule conflicts again.
		if delErr := s.remover.DeleteTask(reminderQueue, taskID); delErr != nil && !errors.Is(delErr, asynq.ErrTaskNotFound) {
			return delErr
		}
		_, err = s.broker.EnqueueContext(ctx, task,
			asynq.ProcessAt(dueAt),
			asynq.TaskID(taskID),
		)
	}
	if err != nil {
		return err
	}

	logger.Info("ReminderService:ScheduleReminder:Enqueued", "event_id", event.ID, "due_at", dueAt)
	return nil
}

// HandleReminderTask is the asynq worker handler for due reminders.
func (s *ReminderService) HandleReminderTask(ctx context.Context, t *asynq.Task) error {
	var payload ReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal reminder payload: %w", err)
	}

	s.notifications.Create(ctx,
		"Upcoming event",
		fmt.Sprintf("'%s' starts at %s", payload.Title, payload.Start.Format("15:04")),
		entity.TypeEventReminder,
		payload.EventID,
	)

	logger.Info("ReminderService:HandleReminderTask:Fired", "event_id", payload.EventID)
	return nil
}
