package service

import (
	"context"
	"time"

	"go-assistant-api/core/constants"
	"go-assistant-api/core/errors"
	"go-assistant-api/core/logger"
	"go-assistant-api/core/utils"
	"go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/calendar/repository"
	taskEntity "go-assistant-api/modules/task/entity"
)

// ReminderScheduler is the notification collaborator: it arranges for a
// reminder to fire before an event starts. Scheduling is best-effort.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, event entity.CalendarEvent) error
}

// CalendarService is the integration facade: the only surface the rest of
// the application talks to. It owns the event store, drives synchronization
// with the remote provider, and delegates slot math to the scheduler.
//
// Operations racing on the same event id from independent callers are not
// serialized; the last write wins. That is acceptable for a single-user
// assistant and a stated non-goal of this core.
type CalendarService interface {
	Authenticate(ctx context.Context) *errors.AppError
	SyncWithRemote(ctx context.Context) *errors.AppError
	AuthorizationURL(state string) string
	CompleteAuthorization(code string)
	IsAuthenticated() bool
	SignOut()

	CreateEvent(ctx context.Context, draft entity.EventDraft) (entity.CalendarEvent, *errors.AppError)
	UpdateEvent(ctx context.Context, id string, patch entity.EventPatch) (entity.CalendarEvent, *errors.AppError)
	DeleteEvent(ctx context.Context, id string) *errors.AppError
	GetEvents(filter *repository.EventFilter) []entity.CalendarEvent

	GetSmartSuggestions(ctx context.Context, tasks []taskEntity.Task, prefs entity.UserPreferences) []entity.ScheduleSuggestion
	FindOptimalTimeSlot(duration int, prefs *entity.SchedulePreferences) []entity.TimeSlot
}

// GoogleRemote is the optional extension a provider offers when its
// authorization flow runs through a redirect URL.
type GoogleRemote interface {
	RemoteCalendar
	AuthorizationURL(state string) string
	CompleteAuthorization(code string)
}

type calendarService struct {
	store     *repository.EventStore
	remote    RemoteCalendar
	scheduler *Scheduler
	ranker    *SuggestionRanker
	reminders ReminderScheduler
	now       func() time.Time
}

func NewCalendarService(
	store *repository.EventStore,
	remote RemoteCalendar,
	scheduler *Scheduler,
	ranker *SuggestionRanker,
	reminders ReminderScheduler,
) CalendarService {
	return &calendarService{
		store:     store,
		remote:    remote,
		scheduler: scheduler,
		ranker:    ranker,
		reminders: reminders,
		now:       time.Now,
	}
}

// Authenticate completes the remote authorization flow and, on success,
// performs a full sync. Authentication failures propagate unchanged.
func (s *calendarService) Authenticate(ctx context.Context) *errors.AppError {
	if err := s.remote.Authenticate(ctx); err != nil {
		return err
	}
	return s.SyncWithRemote(ctx)
}

// SyncWithRemote fetches the provider's events for the next 30 days and
// upserts them by id. Remote is authoritative for its own events inside the
// window; events outside it are left untouched, so sync never deletes.
func (s *calendarService) SyncWithRemote(ctx context.Context) *errors.AppError {
	if !s.remote.IsAuthenticated() {
		return errors.NewAppError(errors.ErrNotAuthenticated, "remote calendar session required", nil)
	}

	now := s.now()
	events, appErr := s.remote.GetEvents(ctx, now, now.Add(constants.SyncHorizonDays*24*time.Hour))
	if appErr != nil {
		return appErr
	}

	for _, event := range events {
		s.store.Upsert(ctx, event)
	}
	logger.Info("CalendarService:SyncWithRemote:Merged", "count", len(events), "source", s.remote.Source())
	return nil
}

func (s *calendarService) AuthorizationURL(state string) string {
	if g, ok := s.remote.(GoogleRemote); ok {
		return g.AuthorizationURL(state)
	}
	return ""
}

func (s *calendarService) CompleteAuthorization(code string) {
	if g, ok := s.remote.(GoogleRemote); ok {
		g.CompleteAuthorization(code)
	}
}

func (s *calendarService) IsAuthenticated() bool {
	return s.remote.IsAuthenticated()
}

func (s *calendarService) SignOut() {
	s.remote.SignOut()
}

// CreateEvent writes through the remote adapter when a session is held and
// stores the adapter's canonical event; otherwise it synthesizes a local
// event. Either path persists and returns the stored event.
func (s *calendarService) CreateEvent(ctx context.Context, draft entity.EventDraft) (entity.CalendarEvent, *errors.AppError) {
	if s.remote.IsAuthenticated() {
		created, appErr := s.remote.CreateEvent(ctx, draft)
		if appErr != nil {
			return entity.CalendarEvent{}, appErr
		}
		s.store.Upsert(ctx, created)
		s.scheduleReminder(ctx, created)
		return created, nil
	}

	event := entity.CalendarEvent{
		ID:          utils.GenerateEventID(),
		Title:       draft.Title,
		Description: draft.Description,
		Location:    draft.Location,
		Start:       draft.Start,
		End:         draft.End,
		Attendees:   draft.Attendees,
		Reminder:    draft.Reminder,
		Color:       draft.Color,
		Recurring:   draft.Recurring,
		Source:      entity.SourceLocal,
		Status:      entity.StatusConfirmed,
	}
	s.store.Upsert(ctx, event)
	s.scheduleReminder(ctx, event)
	return event, nil
}

// UpdateEvent fails with ErrNotFound for an unknown id. An event owned by
// the remote provider keeps writing through the provider whenever a session
// is held; it is never demoted to local. Without a session, or for local
// events, the patch is applied as a shallow merge.
func (s *calendarService) UpdateEvent(ctx context.Context, id string, patch entity.EventPatch) (entity.CalendarEvent, *errors.AppError) {
	existing, ok := s.store.Get(id)
	if !ok {
		return entity.CalendarEvent{}, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	var updated entity.CalendarEvent
	if existing.Source == s.remote.Source() && s.remote.IsAuthenticated() {
		remote, appErr := s.remote.UpdateEvent(ctx, id, patch)
		if appErr != nil {
			return entity.CalendarEvent{}, appErr
		}
		// Provider responses omit local-only fields; keep them.
		remote.Reminder = firstNonNil(patch.Reminder, existing.Reminder)
		remote.Recurring = existing.Recurring
		if patch.Recurring != nil {
			remote.Recurring = patch.Recurring
		}
		updated = remote
	} else {
		updated = patch.Apply(existing)
	}

	s.store.Upsert(ctx, updated)
	s.scheduleReminder(ctx, updated)
	return updated, nil
}

// DeleteEvent is a no-op for an unknown id. A remote-sourced event is
// deleted on the provider first; if the provider rejects, the local copy
// stays so local and remote never diverge.
func (s *calendarService) DeleteEvent(ctx context.Context, id string) *errors.AppError {
	event, ok := s.store.Get(id)
	if !ok {
		return nil
	}

	if event.Source == s.remote.Source() && s.remote.IsAuthenticated() {
		if appErr := s.remote.DeleteEvent(ctx, id); appErr != nil {
			return appErr
		}
	}

	s.store.Remove(ctx, id)
	return nil
}

func (s *calendarService) GetEvents(filter *repository.EventFilter) []entity.CalendarEvent {
	return s.store.List(filter)
}

// GetSmartSuggestions runs the ranker over the coming week's events. The
// computation never sees events outside that horizon.
func (s *calendarService) GetSmartSuggestions(ctx context.Context, tasks []taskEntity.Task, prefs entity.UserPreferences) []entity.ScheduleSuggestion {
	return s.ranker.GenerateSmartSuggestions(ctx, tasks, s.weekSnapshot(), prefs)
}

func (s *calendarService) FindOptimalTimeSlot(duration int, prefs *entity.SchedulePreferences) []entity.TimeSlot {
	var p entity.SchedulePreferences
	if prefs != nil {
		p = *prefs
	}
	return s.scheduler.FindOptimalTimeSlots(duration, s.weekSnapshot(), p)
}

func (s *calendarService) weekSnapshot() []entity.CalendarEvent {
	now := s.now()
	end := now.Add(constants.SuggestionHorizonDays * 24 * time.Hour)
	return s.store.List(&repository.EventFilter{StartDate: &now, EndDate: &end})
}

func (s *calendarService) scheduleReminder(ctx context.Context, event entity.CalendarEvent) {
	if s.reminders == nil || event.Reminder == nil {
		return
	}
	if err := s.reminders.ScheduleReminder(ctx, event); err != nil {
		logger.Warn("CalendarService:scheduleReminder:Error", "error", err, "event_id", event.ID)
	}
}

func firstNonNil(a, b *int) *int {
	if a != nil {
		return a
	}
	return b
}
