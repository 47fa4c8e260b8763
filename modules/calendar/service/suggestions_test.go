package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/calendar/service"
	taskEntity "go-assistant-api/modules/task/entity"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, _ string, _ service.GenerateOptions) (string, error) {
	g.calls++
	return g.text, g.err
}

func task(title string, priority entity.Priority, status taskEntity.TaskStatus, duration int) taskEntity.Task {
	return taskEntity.Task{
		ID:                title,
		Title:             title,
		Priority:          priority,
		Status:            status,
		EstimatedDuration: duration,
	}
}

func newRanker(textGen service.TextGenerator) *service.SuggestionRanker {
	scheduler := service.NewSchedulerWithClock(fixedClock(monday9))
	return service.NewSuggestionRanker(scheduler, textGen)
}

func TestGenerateSmartSuggestionsPlacesHighPriorityPendingTasks(t *testing.T) {
	r := newRanker(nil)

	tasks := []taskEntity.Task{
		task("write report", entity.PriorityHigh, taskEntity.StatusPending, 45),
		task("already done", entity.PriorityHigh, taskEntity.StatusDone, 45),
		task("low stakes", entity.PriorityMedium, taskEntity.StatusPending, 45),
	}

	got := r.GenerateSmartSuggestions(context.Background(), tasks, nil, entity.UserPreferences{})

	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1: %+v", len(got), got)
	}
	s := got[0]
	if s.Title != "write report" {
		t.Errorf("placed task %q, want the high-priority pending one", s.Title)
	}
	if !s.SuggestedTime.Equal(monday9) {
		t.Errorf("suggested %v, want the earliest slot %v", s.SuggestedTime, monday9)
	}
	if s.Duration != 45 {
		t.Errorf("duration %d, want 45", s.Duration)
	}
	if s.Priority != entity.PriorityHigh {
		t.Errorf("priority %q, want high", s.Priority)
	}
	if s.Reason == "" {
		t.Error("suggestion has no reason")
	}
}

func TestGenerateSmartSuggestionsDefaultsDuration(t *testing.T) {
	r := newRanker(nil)

	tasks := []taskEntity.Task{
		task("quick thing", entity.PriorityHigh, taskEntity.StatusPending, 0),
	}

	got := r.GenerateSmartSuggestions(context.Background(), tasks, nil, entity.UserPreferences{})
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Duration != 60 {
		t.Errorf("duration %d, want the 60 minute default", got[0].Duration)
	}
}

func TestGenerateSmartSuggestionsSkipsTaskWithNoSlot(t *testing.T) {
	r := newRanker(nil)

	// The whole week is booked.
	events := []entity.CalendarEvent{
		event("wall", monday9, monday9.Add(7*24*time.Hour)),
	}
	tasks := []taskEntity.Task{
		task("impossible", entity.PriorityHigh, taskEntity.StatusPending, 30),
	}

	got := r.GenerateSmartSuggestions(context.Background(), tasks, events, entity.UserPreferences{})
	if len(got) != 0 {
		t.Fatalf("got %d suggestions, want 0: %+v", len(got), got)
	}
}

func TestGenerateSmartSuggestionsParsesGenerativeOutput(t *testing.T) {
	gen := &stubGenerator{
		text: `Sure! Here are some ideas:
[{"title": "Batch your emails", "reason": "Fewer context switches", "priority": "low"}]
Hope that helps.`,
	}
	r := newRanker(gen)

	tasks := []taskEntity.Task{
		task("deep work", entity.PriorityHigh, taskEntity.StatusPending, 90),
	}

	got := r.GenerateSmartSuggestions(context.Background(), tasks, nil, entity.UserPreferences{})

	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2: %+v", len(got), got)
	}
	// Stable priority order: the deterministic high placement first.
	if got[0].Title != "deep work" || got[1].Title != "Batch your emails" {
		t.Errorf("unexpected order: %q then %q", got[0].Title, got[1].Title)
	}
	if got[1].Priority != entity.PriorityLow {
		t.Errorf("generative priority %q, want low", got[1].Priority)
	}
	if got[1].Duration != 30 {
		t.Errorf("generative duration %d, want 30", got[1].Duration)
	}
	if got[1].Reason != "Fewer context switches" {
		t.Errorf("generative reason %q", got[1].Reason)
	}
}

func TestGenerateSmartSuggestionsAbsorbsGeneratorFailure(t *testing.T) {
	cases := []struct {
		name string
		gen  *stubGenerator
	}{
		{"transport error", &stubGenerator{err: fmt.Errorf("dial tcp: connection refused")}},
		{"no array in response", &stubGenerator{text: "I cannot help with that."}},
		{"malformed array", &stubGenerator{text: `[{"title": }]`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRanker(tc.gen)
			tasks := []taskEntity.Task{
				task("deep work", entity.PriorityHigh, taskEntity.StatusPending, 30),
			}

			got := r.GenerateSmartSuggestions(context.Background(), tasks, nil, entity.UserPreferences{})
			if len(got) != 1 {
				t.Fatalf("got %d suggestions, want only the deterministic one: %+v", len(got), got)
			}
			if got[0].Title != "deep work" {
				t.Errorf("deterministic suggestion lost: %+v", got[0])
			}
		})
	}
}

func TestGenerateSmartSuggestionsSortsByPriority(t *testing.T) {
	gen := &stubGenerator{
		text: `[
			{"title": "gen low", "reason": "r", "priority": "low"},
			{"title": "gen high", "reason": "r", "priority": "high"},
			{"title": "gen medium", "reason": "r", "priority": "medium"}
		]`,
	}
	r := newRanker(gen)

	tasks := []taskEntity.Task{
		task("det high", entity.PriorityHigh, taskEntity.StatusPending, 30),
	}

	got := r.GenerateSmartSuggestions(context.Background(), tasks, nil, entity.UserPreferences{})
	if len(got) != 4 {
		t.Fatalf("got %d suggestions, want 4", len(got))
	}

	wantOrder := []string{"det high", "gen high", "gen medium", "gen low"}
	for i, want := range wantOrder {
		if got[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, want)
		}
	}
}
