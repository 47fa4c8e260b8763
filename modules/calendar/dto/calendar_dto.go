package dto

import (
	"time"

	"go-assistant-api/modules/calendar/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event
type CreateEventRequest struct {
	Title       string                   `json:"title" validate:"required"`
	Description string                   `json:"description"`
	Location    string                   `json:"location"`
	Start       time.Time                `json:"start" validate:"required"`
	End         time.Time                `json:"end" validate:"required"`
	Attendees   []string                 `json:"attendees"`
	Reminder    *int                     `json:"reminder"`
	Color       string                   `json:"color"`
	Recurring   *entity.RecurringPattern `json:"recurring"`
}

func (r *CreateEventRequest) ToDraft() entity.EventDraft {
	return entity.EventDraft{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Start:       r.Start,
		End:         r.End,
		Attendees:   r.Attendees,
		Reminder:    r.Reminder,
		Color:       r.Color,
		Recurring:   r.Recurring,
	}
}

// UpdateEventRequest carries partial updates; absent fields stay untouched.
type UpdateEventRequest struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	Location    *string                  `json:"location"`
	Start       *time.Time               `json:"start"`
	End         *time.Time               `json:"end"`
	Attendees   []string                 `json:"attendees"`
	Reminder    *int                     `json:"reminder"`
	Color       *string                  `json:"color"`
	Recurring   *entity.RecurringPattern `json:"recurring"`
	Status      *entity.EventStatus      `json:"status"`
}

func (r *UpdateEventRequest) ToPatch() entity.EventPatch {
	return entity.EventPatch{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Start:       r.Start,
		End:         r.End,
		Attendees:   r.Attendees,
		Reminder:    r.Reminder,
		Color:       r.Color,
		Recurring:   r.Recurring,
		Status:      r.Status,
	}
}

// SuggestionsRequest for smart schedule suggestions
type SuggestionsRequest struct {
	ProductiveHours *entity.HourRange `json:"productive_hours"`
}

// ===================== Response DTOs =====================

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

type SlotsResponse struct {
	Slots []entity.TimeSlot `json:"slots"`
}

type SuggestionsResponse struct {
	Suggestions []entity.ScheduleSuggestion `json:"suggestions"`
}

type EventsResponse struct {
	Events []entity.CalendarEvent `json:"events"`
	Total  int                    `json:"total"`
}
