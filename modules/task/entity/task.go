package entity

import (
	"time"

	calendarEntity "go-assistant-api/modules/calendar/entity"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusDone      TaskStatus = "done"
	StatusCancelled TaskStatus = "cancelled"
)

// Task is a to-do item. High-priority pending tasks feed the schedule
// suggestion pipeline.
type Task struct {
	ID                string                  `json:"id"`
	Title             string                  `json:"title"`
	Notes             string                  `json:"notes,omitempty"`
	Priority          calendarEntity.Priority `json:"priority"`
	Status            TaskStatus              `json:"status"`
	EstimatedDuration int                     `json:"estimated_duration,omitempty"` // minutes
	DueDate           *time.Time              `json:"due_date,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}
