package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go-assistant-api/core/logger"
	"go-assistant-api/core/persistence"
	"go-assistant-api/modules/calendar/entity"
)

// EventFilter narrows List results.
//
// EndDate keeps events fully contained in the range (event.End <= EndDate),
// not merely overlapping it. That containment semantic is deliberate and
// matches the store's original behavior; callers wanting overlap must widen
// the range themselves.
type EventFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Source    entity.EventSource
}

// EventStore is the single source of truth for all known events, keyed by
// id. Every mutation re-serializes the full set through the persistence
// store; persistence failures are logged and swallowed so the in-memory
// state always wins.
type EventStore struct {
	mu     sync.RWMutex
	events map[string]entity.CalendarEvent

	store persistence.Store
	key   string
}

func NewEventStore(store persistence.Store, key string) *EventStore {
	s := &EventStore{
		events: make(map[string]entity.CalendarEvent),
		store:  store,
		key:    key,
	}
	s.load()
	return s
}

// Upsert inserts or unconditionally replaces the event with the same id.
func (s *EventStore) Upsert(ctx context.Context, event entity.CalendarEvent) {
	s.mu.Lock()
	s.events[event.ID] = event
	s.mu.Unlock()
	s.persist(ctx)
}

// Remove deletes the event if present; removing an unknown id is a no-op.
func (s *EventStore) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	_, ok := s.events[id]
	delete(s.events, id)
	s.mu.Unlock()
	if ok {
		s.persist(ctx)
	}
}

// Get returns the stored event for id.
func (s *EventStore) Get(id string) (entity.CalendarEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	return event, ok
}

// List returns all events matching the filter, sorted ascending by start
// time.
func (s *EventStore) List(filter *EventFilter) []entity.CalendarEvent {
	s.mu.RLock()
	events := make([]entity.CalendarEvent, 0, len(s.events))
	for _, e := range s.events {
		if filter != nil {
			if filter.StartDate != nil && e.Start.Before(*filter.StartDate) {
				continue
			}
			if filter.EndDate != nil && e.End.After(*filter.EndDate) {
				continue
			}
			if filter.Source != "" && e.Source != filter.Source {
				continue
			}
		}
		events = append(events, e)
	}
	s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events
}

// Len returns the number of stored events.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *EventStore) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	snapshot := s.List(nil)
	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("EventStore:persist:Marshal:Error", "error", err)
		return
	}
	if err := s.store.Save(ctx, s.key, data); err != nil {
		logger.Warn("EventStore:persist:Save:Error", "error", err, "key", s.key)
	}
}

func (s *EventStore) load() {
	if s.store == nil {
		return
	}
	data, err := s.store.Load(context.Background(), s.key)
	if err == persistence.ErrNotFound {
		return
	}
	if err != nil {
		logger.Warn("EventStore:load:Error", "error", err, "key", s.key)
		return
	}

	var events []entity.CalendarEvent
	if err := json.Unmarshal(data, &events); err != nil {
		// A corrupt snapshot degrades to a fresh store, never a fatal error.
		logger.Warn("EventStore:load:Unmarshal:Error", "error", err, "key", s.key)
		return
	}
	for _, e := range events {
		s.events[e.ID] = e
	}
}
