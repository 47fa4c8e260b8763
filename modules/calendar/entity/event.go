package entity

import "time"

// EventSource tags the provenance of an event. It controls which adapter
// owns the write path: an event never changes source after creation.
type EventSource string

const (
	SourceLocal   EventSource = "local"
	SourceGoogle  EventSource = "google"
	SourceOutlook EventSource = "outlook"
)

// EventStatus mirrors the provider status values.
type EventStatus string

const (
	StatusConfirmed EventStatus = "confirmed"
	StatusTentative EventStatus = "tentative"
	StatusCancelled EventStatus = "cancelled"
)

// Priority ranks tasks and schedule suggestions.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority: high < medium < low. Unknown
// values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// RecurringPattern is stored but never expanded into instances; expansion is
// the provider's concern.
type RecurringPattern struct {
	Frequency  string     `json:"frequency"` // "daily" | "weekly" | "monthly" | "yearly"
	Interval   int        `json:"interval"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	DaysOfWeek []int      `json:"days_of_week,omitempty"` // 0-6, Sunday first
}

// CalendarEvent is a scheduled commitment from any source. Start <= End is
// required for the slot math to behave; it is not enforced here.
type CalendarEvent struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Attendees   []string          `json:"attendees,omitempty"`
	Reminder    *int              `json:"reminder,omitempty"` // minutes before start
	Color       string            `json:"color,omitempty"`
	Recurring   *RecurringPattern `json:"recurring,omitempty"`
	Source      EventSource       `json:"source"`
	Status      EventStatus       `json:"status"`
}

// EventDraft is an event before the store or a remote adapter assigns its
// id and source.
type EventDraft struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Attendees   []string          `json:"attendees,omitempty"`
	Reminder    *int              `json:"reminder,omitempty"`
	Color       string            `json:"color,omitempty"`
	Recurring   *RecurringPattern `json:"recurring,omitempty"`
}

// EventPatch carries partial updates; nil fields are left untouched.
type EventPatch struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Location    *string           `json:"location,omitempty"`
	Start       *time.Time        `json:"start,omitempty"`
	End         *time.Time        `json:"end,omitempty"`
	Attendees   []string          `json:"attendees,omitempty"`
	Reminder    *int              `json:"reminder,omitempty"`
	Color       *string           `json:"color,omitempty"`
	Recurring   *RecurringPattern `json:"recurring,omitempty"`
	Status      *EventStatus      `json:"status,omitempty"`
}

// Apply returns a copy of e with the non-nil patch fields merged in. Source
// and ID are never patchable.
func (p *EventPatch) Apply(e CalendarEvent) CalendarEvent {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.Attendees != nil {
		e.Attendees = p.Attendees
	}
	if p.Reminder != nil {
		e.Reminder = p.Reminder
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Recurring != nil {
		e.Recurring = p.Recurring
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	return e
}

// TimeSlot is a candidate free interval. The scheduler only ever emits
// available slots; the flag exists for a future busy-slot representation.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// HourRange is an hour-of-day window [Start, End).
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SchedulePreferences constrain slot placement.
type SchedulePreferences struct {
	PreferredHours *HourRange `json:"preferred_hours,omitempty"`
	AvoidWeekends  bool       `json:"avoid_weekends"`
	BufferTime     int        `json:"buffer_time"` // minutes around existing events
}

// UserPreferences is the subset of profile settings the ranker consumes.
type UserPreferences struct {
	ProductiveHours *HourRange `json:"productive_hours,omitempty"`
}

// ScheduleSuggestion proposes placing a task at a specific time.
type ScheduleSuggestion struct {
	Title         string    `json:"title"`
	SuggestedTime time.Time `json:"suggested_time"`
	Duration      int       `json:"duration"` // minutes
	Reason        string    `json:"reason"`
	Priority      Priority  `json:"priority"`
}
