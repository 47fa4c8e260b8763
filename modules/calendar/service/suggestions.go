package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-assistant-api/core/constants"
	"go-assistant-api/core/logger"
	"go-assistant-api/modules/calendar/entity"
	taskEntity "go-assistant-api/modules/task/entity"
)

// GenerateOptions tune a text-generation call.
type GenerateOptions struct {
	MaxTokens int
}

// TextGenerator is the external generative collaborator consulted for
// free-form suggestions. Any failure is absorbed by the ranker.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

const suggestionReason = "This time fits your usual work pattern"

// SuggestionRanker turns a task list plus an event snapshot into a
// prioritized list of placement suggestions. Deterministic placements come
// from the Scheduler; free-form ones from the TextGenerator.
type SuggestionRanker struct {
	scheduler *Scheduler
	textGen   TextGenerator
	now       func() time.Time
}

func NewSuggestionRanker(scheduler *Scheduler, textGen TextGenerator) *SuggestionRanker {
	return &SuggestionRanker{
		scheduler: scheduler,
		textGen:   textGen,
		now:       time.Now,
	}
}

// GenerateSmartSuggestions places every high-priority pending task into its
// earliest matching slot, appends generative suggestions, and stable-sorts
// the combined list by priority (high < medium < low). Ties keep insertion
// order.
func (r *SuggestionRanker) GenerateSmartSuggestions(
	ctx context.Context,
	tasks []taskEntity.Task,
	events []entity.CalendarEvent,
	prefs entity.UserPreferences,
) []entity.ScheduleSuggestion {
	suggestions := []entity.ScheduleSuggestion{}

	for _, task := range tasks {
		if task.Priority != entity.PriorityHigh || task.Status != taskEntity.StatusPending {
			continue
		}

		duration := task.EstimatedDuration
		if duration <= 0 {
			duration = constants.DefaultTaskDuration
		}

		slots := r.scheduler.FindOptimalTimeSlots(duration, events, entity.SchedulePreferences{
			PreferredHours: prefs.ProductiveHours,
			AvoidWeekends:  true,
			BufferTime:     constants.SuggestionBufferTime,
		})
		if len(slots) == 0 {
			continue
		}

		suggestions = append(suggestions, entity.ScheduleSuggestion{
			Title:         task.Title,
			SuggestedTime: slots[0].Start,
			Duration:      duration,
			Reason:        suggestionReason,
			Priority:      entity.PriorityHigh,
		})
	}

	suggestions = append(suggestions, r.generativeSuggestions(ctx, tasks, events)...)

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.Rank() < suggestions[j].Priority.Rank()
	})
	return suggestions
}

// generativeSuggestions asks the text collaborator for free-form advice.
// Failures of any kind (transport, quota, malformed payload) contribute zero
// suggestions and are never propagated.
func (r *SuggestionRanker) generativeSuggestions(
	ctx context.Context,
	tasks []taskEntity.Task,
	events []entity.CalendarEvent,
) []entity.ScheduleSuggestion {
	if r.textGen == nil {
		return nil
	}

	prompt := fmt.Sprintf(
		"Based on this snapshot, suggest a few smart time-management tips as a JSON array of objects "+
			"with \"title\", \"reason\" and \"priority\" (high/medium/low).\n"+
			"Remaining tasks: %d\nMeetings this week: %d",
		len(tasks), len(events))

	text, err := r.textGen.Generate(ctx, prompt, GenerateOptions{MaxTokens: 300})
	if err != nil {
		logger.Warn("SuggestionRanker:generativeSuggestions:Generate:Error", "error", err)
		return nil
	}

	payload := extractJSONArray(text)
	if payload == "" {
		return nil
	}

	var parsed []struct {
		Title    string          `json:"title"`
		Reason   string          `json:"reason"`
		Priority entity.Priority `json:"priority"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		logger.Warn("SuggestionRanker:generativeSuggestions:Unmarshal:Error", "error", err)
		return nil
	}

	now := r.now()
	out := make([]entity.ScheduleSuggestion, 0, len(parsed))
	for _, s := range parsed {
		out = append(out, entity.ScheduleSuggestion{
			Title:         s.Title,
			SuggestedTime: now,
			Duration:      30,
			Reason:        s.Reason,
			Priority:      s.Priority,
		})
	}
	return out
}

// extractJSONArray returns the bracket-enclosed segment of a model response,
// or "" when none is present.
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
