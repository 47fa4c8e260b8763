package repository_test

import (
	"context"
	"testing"
	"time"

	"go-assistant-api/core/persistence"
	"go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/calendar/repository"
)

func event(id string, start, end time.Time) entity.CalendarEvent {
	return entity.CalendarEvent{
		ID:     id,
		Title:  id,
		Start:  start,
		End:    end,
		Source: entity.SourceLocal,
		Status: entity.StatusConfirmed,
	}
}

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 10, 0, 0, 0, time.UTC)
}

func TestEventStoreUpsertAndGet(t *testing.T) {
	s := repository.NewEventStore(nil, "events")
	ctx := context.Background()

	e := event("e1", day(1), day(1).Add(time.Hour))
	s.Upsert(ctx, e)

	got, ok := s.Get("e1")
	if !ok {
		t.Fatal("event not found after upsert")
	}
	if got.Title != "e1" {
		t.Errorf("got title %q", got.Title)
	}

	// Same id replaces wholesale.
	e.Title = "renamed"
	s.Upsert(ctx, e)
	got, _ = s.Get("e1")
	if got.Title != "renamed" {
		t.Errorf("got title %q after replace, want %q", got.Title, "renamed")
	}
	if s.Len() != 1 {
		t.Errorf("store holds %d events, want 1", s.Len())
	}
}

func TestEventStoreRemoveUnknownIsNoop(t *testing.T) {
	s := repository.NewEventStore(nil, "events")
	ctx := context.Background()

	s.Upsert(ctx, event("e1", day(1), day(1).Add(time.Hour)))
	s.Remove(ctx, "missing")
	if s.Len() != 1 {
		t.Errorf("store holds %d events, want 1", s.Len())
	}

	s.Remove(ctx, "e1")
	if s.Len() != 0 {
		t.Errorf("store holds %d events after remove, want 0", s.Len())
	}
}

func TestEventStoreListSortedByStart(t *testing.T) {
	s := repository.NewEventStore(nil, "events")
	ctx := context.Background()

	s.Upsert(ctx, event("late", day(3), day(3).Add(time.Hour)))
	s.Upsert(ctx, event("early", day(1), day(1).Add(time.Hour)))
	s.Upsert(ctx, event("mid", day(2), day(2).Add(time.Hour)))

	got := s.List(nil)
	want := []string{"early", "mid", "late"}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestEventStoreListFilters(t *testing.T) {
	s := repository.NewEventStore(nil, "events")
	ctx := context.Background()

	inside := event("inside", day(2), day(2).Add(time.Hour))
	s.Upsert(ctx, inside)

	// Starts inside the range but ends past it.
	spilling := event("spilling", day(4), day(6))
	s.Upsert(ctx, spilling)

	before := event("before", day(1).Add(-48*time.Hour), day(1).Add(-47*time.Hour))
	s.Upsert(ctx, before)

	remote := event("remote", day(3), day(3).Add(time.Hour))
	remote.Source = entity.SourceGoogle
	s.Upsert(ctx, remote)

	start := day(1)
	end := day(5)
	got := s.List(&repository.EventFilter{StartDate: &start, EndDate: &end})

	// The range filter keeps fully contained events only.
	ids := make(map[string]bool)
	for _, e := range got {
		ids[e.ID] = true
	}
	if !ids["inside"] || !ids["remote"] {
		t.Errorf("contained events missing from %v", ids)
	}
	if ids["spilling"] {
		t.Error("event ending past the range was returned")
	}
	if ids["before"] {
		t.Error("event before the range was returned")
	}

	got = s.List(&repository.EventFilter{Source: entity.SourceGoogle})
	if len(got) != 1 || got[0].ID != "remote" {
		t.Errorf("source filter returned %+v", got)
	}
}

func TestEventStoreSnapshotRoundTrip(t *testing.T) {
	blob, err := persistence.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	s := repository.NewEventStore(blob, "events")
	s.Upsert(ctx, event("e1", day(1), day(1).Add(time.Hour)))
	s.Upsert(ctx, event("e2", day(2), day(2).Add(time.Hour)))

	reloaded := repository.NewEventStore(blob, "events")
	if reloaded.Len() != 2 {
		t.Fatalf("reloaded store holds %d events, want 2", reloaded.Len())
	}
	got, ok := reloaded.Get("e2")
	if !ok || !got.Start.Equal(day(2)) {
		t.Errorf("reloaded event mismatch: %+v", got)
	}
}

func TestEventStoreCorruptSnapshotStartsEmpty(t *testing.T) {
	blob, err := persistence.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := blob.Save(context.Background(), "events", []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	s := repository.NewEventStore(blob, "events")
	if s.Len() != 0 {
		t.Fatalf("store holds %d events from a corrupt snapshot, want 0", s.Len())
	}

	// The store must still accept writes afterwards.
	s.Upsert(context.Background(), event("e1", day(1), day(1).Add(time.Hour)))
	if s.Len() != 1 {
		t.Errorf("store holds %d events, want 1", s.Len())
	}
}
