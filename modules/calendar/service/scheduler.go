package service

import (
	"sort"
	"time"

	"go-assistant-api/core/constants"
	"go-assistant-api/modules/calendar/entity"
)

// Scheduler computes free time slots over a snapshot of events. It is pure:
// for a given snapshot and clock it is deterministic and never fails.
type Scheduler struct {
	now func() time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

// NewSchedulerWithClock injects the clock; used by tests.
func NewSchedulerWithClock(now func() time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// FindOptimalTimeSlots scans the gaps between events for free intervals of
// the requested duration (minutes), looking ahead one week. A gap qualifies
// when it holds duration plus the configured buffer and its start passes the
// preference check. At most 5 slots are returned, in chronological order.
//
// A gap whose start fails the preference check is forfeited outright; the
// scan does not slide into a later sub-window of the same gap. That
// coarseness is intentional and kept for compatibility.
func (s *Scheduler) FindOptimalTimeSlots(duration int, events []entity.CalendarEvent, prefs entity.SchedulePreferences) []entity.TimeSlot {
	now := s.now()
	horizon := now.Add(constants.SuggestionHorizonDays * 24 * time.Hour)

	sorted := make([]entity.CalendarEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	need := time.Duration(duration) * time.Minute
	buffer := time.Duration(prefs.BufferTime) * time.Minute

	slots := []entity.TimeSlot{}
	currentTime := now

	for _, event := range sorted {
		gap := event.Start.Sub(currentTime)
		if gap >= need+buffer && s.meetsPreferences(currentTime, prefs) {
			slots = append(slots, entity.TimeSlot{
				Start:     currentTime,
				End:       currentTime.Add(need),
				Available: true,
			})
		}
		currentTime = event.End.Add(buffer)
	}

	// Trailing gap up to the horizon; the buffer is already folded into the
	// cursor by the last advance.
	if currentTime.Before(horizon) {
		if horizon.Sub(currentTime) >= need && s.meetsPreferences(currentTime, prefs) {
			slots = append(slots, entity.TimeSlot{
				Start:     currentTime,
				End:       currentTime.Add(need),
				Available: true,
			})
		}
	}

	if len(slots) > constants.MaxSuggestedSlots {
		slots = slots[:constants.MaxSuggestedSlots]
	}
	return slots
}

func (s *Scheduler) meetsPreferences(t time.Time, prefs entity.SchedulePreferences) bool {
	if prefs.AvoidWeekends {
		weekday := t.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			return false
		}
	}
	if prefs.PreferredHours != nil {
		hour := t.Hour()
		if hour < prefs.PreferredHours.Start || hour >= prefs.PreferredHours.End {
			return false
		}
	}
	return true
}
