package service_test

import (
	"testing"
	"time"

	"go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/calendar/service"
)

// monday9 is a fixed Monday 09:00 UTC used as the injected clock.
var monday9 = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

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

func at(hour, min int) time.Time {
	return time.Date(2026, time.January, 5, hour, min, 0, 0, time.UTC)
}

func TestFindOptimalTimeSlotsScansGaps(t *testing.T) {
	s := service.NewSchedulerWithClock(fixedClock(monday9))

	events := []entity.CalendarEvent{
		event("a", at(10, 0), at(10, 30)),
		event("b", at(11, 0), at(12, 0)),
	}

	slots := s.FindOptimalTimeSlots(30, events, entity.SchedulePreferences{})

	want := []time.Time{at(9, 0), at(10, 30), at(12, 0)}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(want), slots)
	}
	for i, slot := range slots {
		if !slot.Start.Equal(want[i]) {
			t.Errorf("slot %d starts at %v, want %v", i, slot.Start, want[i])
		}
		if got := slot.End.Sub(slot.Start); got != 30*time.Minute {
			t.Errorf("slot %d duration %v, want 30m", i, got)
		}
		if !slot.Available {
			t.Errorf("slot %d not marked available", i)
		}
	}
}

func TestFindOptimalTimeSlotsPreferredHours(t *testing.T) {
	s := service.NewSchedulerWithClock(fixedClock(monday9))

	events := []entity.CalendarEvent{
		event("a", at(10, 0), at(10, 30)),
		event("b", at(11, 0), at(12, 0)),
	}
	prefs := entity.SchedulePreferences{
		PreferredHours: &entity.HourRange{Start: 9, End: 10},
	}

	slots := s.FindOptimalTimeSlots(45, events, prefs)

	// Only the 09:00 gap starts inside [9, 10); the 10:30 and 12:00 gaps are
	// forfeited even though later sub-windows of the week would qualify.
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1: %+v", len(slots), slots)
	}
	if !slots[0].Start.Equal(at(9, 0)) || !slots[0].End.Equal(at(9, 45)) {
		t.Errorf("got slot %v-%v, want 09:00-09:45", slots[0].Start, slots[0].End)
	}
}

func TestFindOptimalTimeSlotsBuffer(t *testing.T) {
	s := service.NewSchedulerWithClock(fixedClock(monday9))

	events := []entity.CalendarEvent{
		event("a", at(10, 0), at(10, 30)),
	}
	prefs := entity.SchedulePreferences{BufferTime: 15}

	slots := s.FindOptimalTimeSlots(30, events, prefs)

	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2: %+v", len(slots), slots)
	}
	// The leading gap must hold duration plus buffer; the cursor then resumes
	// buffer minutes after the event ends.
	if !slots[0].Start.Equal(at(9, 0)) {
		t.Errorf("first slot starts at %v, want 09:00", slots[0].Start)
	}
	if !slots[1].Start.Equal(at(10, 45)) {
		t.Errorf("second slot starts at %v, want 10:45", slots[1].Start)
	}
}

func TestFindOptimalTimeSlotsBufferSqueezesGap(t *testing.T) {
	s := service.NewSchedulerWithClock(fixedClock(monday9))

	// The 09:00-10:00 gap holds 60 minutes; with a 15 minute buffer a 50
	// minute slot no longer fits.
	events := []entity.CalendarEvent{
		event("a", at(10, 0), at(16, 0)),
		event("b", at(16, 30), at(23, 0)),
	}
	prefs := entity.SchedulePreferences{BufferTime: 15}

	slots := s.FindOptimalTimeSlots(50, events, prefs)
	for _, slot := range slots {
		if slot.Start.Before(at(10, 0)) {
			t.Errorf("slot at %v placed in a gap too small for duration plus buffer", slot.Start)
		}
	}
}

func TestFindOptimalTimeSlotsAvoidWeekends(t *testing.T) {
	saturday := time.Date(2026, time.January, 3, 9, 0, 0, 0, time.UTC)
	s := service.NewSchedulerWithClock(fixedClock(saturday))

	slots := s.FindOptimalTimeSlots(30, nil, entity.SchedulePreferences{AvoidWeekends: true})
	if len(slots) != 0 {
		t.Fatalf("got %d slots on a weekend start, want 0: %+v", len(slots), slots)
	}

	slots = s.FindOptimalTimeSlots(30, nil, entity.SchedulePreferences{})
	if len(slots) != 1 {
		t.Fatalf("got %d slots without the weekend rule, want 1", len(slots))
	}
}

func TestFindOptimalTimeSlotsCapsAtFive(t *testing.T) {
	s := service.NewSchedulerWithClock(fixedClock(monday9))

	// Eight half-hour meetings, each preceded by a half-hour gap.
	var events []entity.CalendarEvent
	for i := 0; i < 8; i++ {
		start := at(10, 0).Add(time.Duration(i) * time.Hour)
		events = append(events, event("e", start, start.Add(30*time.Minute)))
	}

	slots := s.FindOptimalTimeSlots(30, events, entity.SchedulePreferences{})
	if len(slots) != 5 {
		t.Fatalf("got %d slots, want the cap of 5", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i-1].End.After(slots[i].Start) {
			continue
		}
		t.Errorf("slots %d and %d overlap", i-1, i)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Errorf("slots out of chronological order at %d", i)
		}
	}
}

func TestFindOptimalTimeSlotsEmptyCalendar(t *testing.T) {
	s := service.NewSchedulerWithClock(fixedClock(monday9))

	slots := s.FindOptimalTimeSlots(60, nil, entity.SchedulePreferences{})
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1: %+v", len(slots), slots)
	}
	if !slots[0].Start.Equal(monday9) {
		t.Errorf("slot starts at %v, want now", slots[0].Start)
	}
}

func TestFindOptimalTimeSlotsDurationBeyondHorizon(t *testing.T) {
	s := service.NewSchedulerWithClock(fixedClock(monday9))

	// More minutes than the whole look-ahead window holds.
	slots := s.FindOptimalTimeSlots(8*24*60, nil, entity.SchedulePreferences{})
	if len(slots) != 0 {
		t.Fatalf("got %d slots, want 0", len(slots))
	}
}

func TestFindOptimalTimeSlotsContainedEvent(t *testing.T) {
	s := service.NewSchedulerWithClock(fixedClock(monday9))

	// The scan advances the cursor past every event's end in start order, so
	// an event contained in a longer one pulls the cursor back to its own
	// end. The behavior is kept as is; this pins it down.
	events := []entity.CalendarEvent{
		event("outer", at(10, 0), at(12, 0)),
		event("inner", at(10, 30), at(11, 0)),
	}

	slots := s.FindOptimalTimeSlots(30, events, entity.SchedulePreferences{})
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2: %+v", len(slots), slots)
	}
	if !slots[1].Start.Equal(at(11, 0)) {
		t.Errorf("trailing slot starts at %v, want 11:00", slots[1].Start)
	}
}
