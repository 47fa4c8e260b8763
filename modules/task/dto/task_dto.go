package dto

import (
	"time"

	calendarEntity "go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/task/entity"
)

// CreateTaskRequest for adding a to-do item
type CreateTaskRequest struct {
	Title             string                  `json:"title" validate:"required"`
	Notes             string                  `json:"notes"`
	Priority          calendarEntity.Priority `json:"priority"`
	EstimatedDuration int                     `json:"estimated_duration"`
	DueDate           *time.Time              `json:"due_date"`
}

// UpdateTaskRequest carries partial task updates
type UpdateTaskRequest struct {
	Title             *string                  `json:"title"`
	Notes             *string                  `json:"notes"`
	Priority          *calendarEntity.Priority `json:"priority"`
	Status            *entity.TaskStatus       `json:"status"`
	EstimatedDuration *int                     `json:"estimated_duration"`
	DueDate           *time.Time               `json:"due_date"`
}

type TasksResponse struct {
	Tasks []entity.Task `json:"tasks"`
	Total int           `json:"total"`
}
