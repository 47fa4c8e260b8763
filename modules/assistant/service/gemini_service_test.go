package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-assistant-api/core/config"
	"go-assistant-api/core/errors"
	calendarService "go-assistant-api/modules/calendar/service"
)

func newTestService(t *testing.T, dailyLimit int) (*GeminiService, *int) {
	t.Helper()

	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"generated text"}]}}]}`))
	}))
	t.Cleanup(ts.Close)

	svc := NewGeminiService(config.GeminiConfig{
		APIKey:     "test-key",
		Model:      "gemini-1.5-flash",
		DailyLimit: dailyLimit,
	})
	svc.baseURL = ts.URL
	return svc, &calls
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	svc, _ := newTestService(t, 10)

	text, err := svc.Generate(context.Background(), "prompt", calendarService.GenerateOptions{MaxTokens: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "generated text" {
		t.Errorf("got %q", text)
	}
}

func TestGenerateDailyQuota(t *testing.T) {
	svc, calls := newTestService(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Generate(ctx, "prompt", calendarService.GenerateOptions{}); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
	}

	_, err := svc.Generate(ctx, "prompt", calendarService.GenerateOptions{})
	if !errors.Is(err, errors.ErrQuotaExceeded) {
		t.Fatalf("got %v, want the quota error", err)
	}
	// The rejected call must not reach the API.
	if *calls != 2 {
		t.Errorf("API reached %d times, want 2", *calls)
	}
}

func TestGenerateQuotaResetsNextDay(t *testing.T) {
	svc, _ := newTestService(t, 1)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, "prompt", calendarService.GenerateOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Generate(ctx, "prompt", calendarService.GenerateOptions{}); !errors.Is(err, errors.ErrQuotaExceeded) {
		t.Fatalf("got %v, want the quota error", err)
	}

	svc.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	if _, err := svc.Generate(ctx, "prompt", calendarService.GenerateOptions{}); err != nil {
		t.Fatalf("unexpected error after the day rolled over: %v", err)
	}
}

func TestGenerateZeroLimitDisablesQuota(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Generate(ctx, "prompt", calendarService.GenerateOptions{}); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	svc := NewGeminiService(config.GeminiConfig{Model: "gemini-1.5-flash", DailyLimit: 5})

	if _, err := svc.Generate(context.Background(), "prompt", calendarService.GenerateOptions{}); err == nil {
		t.Fatal("expected an error without an API key")
	}
}
