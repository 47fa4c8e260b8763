package entity

import "time"

const (
	TypeEventReminder = "event_reminder"
)

// Notification is a message surfaced to the assistant's user, typically a
// reminder fired before an event starts.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	EventID   string    `json:"event_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
