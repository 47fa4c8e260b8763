package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go-assistant-api/core/config"
	"go-assistant-api/core/constants"
	"go-assistant-api/core/errors"
	"go-assistant-api/core/logger"
	calendarService "go-assistant-api/modules/calendar/service"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiService implements the calendar ranker's TextGenerator against the
// Gemini generateContent endpoint, behind a daily request quota. Once the
// quota is spent, Generate fails until the next day; callers treat that like
// any other generation failure.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	now     func() time.Time

	mu         sync.Mutex
	quotaDay   string
	quotaUsed  int
	dailyLimit int
}

func NewGeminiService(cfg config.GeminiConfig) *GeminiService {
	return &GeminiService{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    geminiAPIBase,
		client:     &http.Client{Timeout: constants.HTTPClientTimeout},
		now:        time.Now,
		dailyLimit: cfg.DailyLimit,
	}
}

func (s *GeminiService) Generate(ctx context.Context, prompt string, opts calendarService.GenerateOptions) (string, error) {
	if s.apiKey == "" {
		return "", errors.NewAppError(errors.ErrInternalServer, "Gemini API key not configured", nil)
	}
	if err := s.consumeQuota(); err != nil {
		return "", err
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 300
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"maxOutputTokens": maxTokens,
		},
	}

	body, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		logger.Error("GeminiService:Generate:APIError", "status", resp.StatusCode, "body", string(raw))
		return "", fmt.Errorf("gemini API error: %d", resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contained no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// consumeQuota counts one request against today's allowance. The counter
// resets when the calendar day changes.
func (s *GeminiService) consumeQuota() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().Format("2006-01-02")
	if s.quotaDay != today {
		s.quotaDay = today
		s.quotaUsed = 0
	}
	if s.dailyLimit > 0 && s.quotaUsed >= s.dailyLimit {
		return errors.NewAppError(errors.ErrQuotaExceeded,
			fmt.Sprintf("daily AI quota of %d requests spent", s.dailyLimit), nil)
	}
	s.quotaUsed++
	return nil
}
