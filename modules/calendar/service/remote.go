package service

import (
	"context"
	"time"

	"go-assistant-api/core/errors"
	"go-assistant-api/modules/calendar/entity"
)

// RemoteCalendar is the contract the facade needs from a calendar provider.
// All event methods fail with ErrNotAuthenticated when no session is held;
// event timestamps must already be normalized to the same epoch basis as
// local events.
type RemoteCalendar interface {
	// Authenticate blocks until the provider's authorization flow completes
	// or the bound expires, failing with ErrAuthFailed on timeout or denial.
	Authenticate(ctx context.Context) *errors.AppError
	IsAuthenticated() bool
	SignOut()

	// Source is the provenance tag stamped on this provider's events.
	Source() entity.EventSource

	GetEvents(ctx context.Context, start, end time.Time) ([]entity.CalendarEvent, *errors.AppError)
	CreateEvent(ctx context.Context, draft entity.EventDraft) (entity.CalendarEvent, *errors.AppError)
	UpdateEvent(ctx context.Context, id string, patch entity.EventPatch) (entity.CalendarEvent, *errors.AppError)
	DeleteEvent(ctx context.Context, id string) *errors.AppError
}
