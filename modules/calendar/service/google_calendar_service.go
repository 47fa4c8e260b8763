package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"go-assistant-api/core/config"
	"go-assistant-api/core/constants"
	"go-assistant-api/core/errors"
	"go-assistant-api/core/logger"
	"go-assistant-api/modules/calendar/entity"
)

const (
	googleCalendarAPIBase = "https://www.googleapis.com/calendar/v3"
	googleEventsAPI       = googleCalendarAPIBase + "/calendars/primary/events"
	googleMaxResults      = 250
)

// GoogleCalendarService implements RemoteCalendar against the Google
// Calendar v3 API. The authorization flow is completed externally: a
// callback route delivers the authorization code via CompleteAuthorization
// while Authenticate waits on it, bounded by constants.RemoteAuthTimeout.
type GoogleCalendarService struct {
	oauth   *oauth2.Config
	pending chan string

	mu     sync.Mutex
	token  *oauth2.Token
	client *http.Client
}

func NewGoogleCalendarService(cfg config.GoogleAPIConfig) *GoogleCalendarService {
	return &GoogleCalendarService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/calendar.readonly",
				"https://www.googleapis.com/auth/calendar.events",
			},
			Endpoint: google.Endpoint,
		},
		pending: make(chan string, 1),
	}
}

func (s *GoogleCalendarService) Source() entity.EventSource {
	return entity.SourceGoogle
}

// AuthorizationURL returns the consent-screen URL the caller must open.
func (s *GoogleCalendarService) AuthorizationURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// CompleteAuthorization hands the authorization code from the OAuth redirect
// to the pending Authenticate call. A second delivery while one is already
// queued is dropped.
func (s *GoogleCalendarService) CompleteAuthorization(code string) {
	select {
	case s.pending <- code:
	default:
		logger.Warn("GoogleCalendarService:CompleteAuthorization:Dropped")
	}
}

func (s *GoogleCalendarService) Authenticate(ctx context.Context) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.RemoteAuthTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		return errors.NewAppError(errors.ErrAuthFailed, "authentication timed out or was cancelled", ctx.Err())
	case code := <-s.pending:
		token, err := s.oauth.Exchange(ctx, code)
		if err != nil {
			logger.Error("GoogleCalendarService:Authenticate:Exchange:Error", "error", err)
			return errors.NewAppError(errors.ErrAuthFailed, "authorization code exchange failed", err)
		}

		s.mu.Lock()
		s.token = token
		// oauth2's client refreshes the access token transparently.
		s.client = s.oauth.Client(context.Background(), token)
		s.mu.Unlock()

		logger.Info("GoogleCalendarService:Authenticate:Success")
		return nil
	}
}

func (s *GoogleCalendarService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != nil
}

func (s *GoogleCalendarService) SignOut() {
	s.mu.Lock()
	s.token = nil
	s.client = nil
	s.mu.Unlock()
}

func (s *GoogleCalendarService) httpClient() (*http.Client, *errors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil || s.client == nil {
		return nil, errors.NewAppError(errors.ErrNotAuthenticated, "Google Calendar session required", nil)
	}
	return s.client, nil
}

func (s *GoogleCalendarService) GetEvents(ctx context.Context, start, end time.Time) ([]entity.CalendarEvent, *errors.AppError) {
	client, appErr := s.httpClient()
	if appErr != nil {
		return nil, appErr
	}

	params := url.Values{}
	params.Set("timeMin", start.Format(time.RFC3339))
	params.Set("timeMax", end.Format(time.RFC3339))
	params.Set("maxResults", strconv.Itoa(googleMaxResults))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleEventsAPI+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to build events request", err)
	}

	var result struct {
		Items []googleEvent `json:"items"`
	}
	if appErr := s.doJSON(client, req, &result); appErr != nil {
		return nil, appErr
	}

	events := make([]entity.CalendarEvent, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, item.toEntity())
	}
	return events, nil
}

func (s *GoogleCalendarService) CreateEvent(ctx context.Context, draft entity.EventDraft) (entity.CalendarEvent, *errors.AppError) {
	client, appErr := s.httpClient()
	if appErr != nil {
		return entity.CalendarEvent{}, appErr
	}

	payload := map[string]any{
		"summary":     draft.Title,
		"description": draft.Description,
		"location":    draft.Location,
		"start":       map[string]string{"dateTime": draft.Start.Format(time.RFC3339)},
		"end":         map[string]string{"dateTime": draft.End.Format(time.RFC3339)},
	}
	if len(draft.Attendees) > 0 {
		attendees := make([]map[string]string, len(draft.Attendees))
		for i, email := range draft.Attendees {
			attendees[i] = map[string]string{"email": email}
		}
		payload["attendees"] = attendees
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleEventsAPI, bytes.NewReader(body))
	if err != nil {
		return entity.CalendarEvent{}, errors.NewAppError(errors.ErrInternalServer, "failed to build create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created googleEvent
	if appErr := s.doJSON(client, req, &created); appErr != nil {
		return entity.CalendarEvent{}, appErr
	}

	event := created.toEntity()
	// The draft's local-only fields survive the round trip.
	event.Reminder = draft.Reminder
	event.Recurring = draft.Recurring
	return event, nil
}

func (s *GoogleCalendarService) UpdateEvent(ctx context.Context, id string, patch entity.EventPatch) (entity.CalendarEvent, *errors.AppError) {
	client, appErr := s.httpClient()
	if appErr != nil {
		return entity.CalendarEvent{}, appErr
	}

	payload := map[string]any{}
	if patch.Title != nil {
		payload["summary"] = *patch.Title
	}
	if patch.Description != nil {
		payload["description"] = *patch.Description
	}
	if patch.Location != nil {
		payload["location"] = *patch.Location
	}
	if patch.Start != nil {
		payload["start"] = map[string]string{"dateTime": patch.Start.Format(time.RFC3339)}
	}
	if patch.End != nil {
		payload["end"] = map[string]string{"dateTime": patch.End.Format(time.RFC3339)}
	}
	if patch.Status != nil {
		payload["status"] = string(*patch.Status)
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, googleEventsAPI+"/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return entity.CalendarEvent{}, errors.NewAppError(errors.ErrInternalServer, "failed to build update request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var updated googleEvent
	if appErr := s.doJSON(client, req, &updated); appErr != nil {
		return entity.CalendarEvent{}, appErr
	}
	return updated.toEntity(), nil
}

func (s *GoogleCalendarService) DeleteEvent(ctx context.Context, id string) *errors.AppError {
	client, appErr := s.httpClient()
	if appErr != nil {
		return appErr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, googleEventsAPI+"/"+url.PathEscape(id), nil)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to build delete request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrRemoteOperation, "Google Calendar delete failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("GoogleCalendarService:DeleteEvent:APIError", "status", resp.StatusCode, "body", string(body))
		return errors.NewAppError(errors.ErrRemoteOperation,
			fmt.Sprintf("Google Calendar API error: %d", resp.StatusCode), nil)
	}
	return nil
}

func (s *GoogleCalendarService) doJSON(client *http.Client, req *http.Request, dest any) *errors.AppError {
	resp, err := client.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrRemoteOperation, "Google Calendar request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("GoogleCalendarService:doJSON:APIError",
			"status", resp.StatusCode, "url", req.URL.Path, "body", string(body))
		return errors.NewAppError(errors.ErrRemoteOperation,
			fmt.Sprintf("Google Calendar API error: %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.NewAppError(errors.ErrRemoteOperation, "failed to parse Google Calendar response", err)
	}
	return nil
}

type googleEventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (t *googleEventTime) parse() time.Time {
	if t == nil {
		return time.Time{}
	}
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed
		}
	}
	if t.Date != "" {
		if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

type googleEvent struct {
	ID          string           `json:"id"`
	Summary     string           `json:"summary"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Start       *googleEventTime `json:"start"`
	End         *googleEventTime `json:"end"`
	Attendees   []struct {
		Email string `json:"email"`
	} `json:"attendees"`
	ColorID string `json:"colorId"`
	Status  string `json:"status"`
}

func (g googleEvent) toEntity() entity.CalendarEvent {
	title := g.Summary
	if title == "" {
		title = "Untitled"
	}
	status := entity.EventStatus(g.Status)
	if g.Status == "" {
		status = entity.StatusConfirmed
	}

	attendees := make([]string, 0, len(g.Attendees))
	for _, a := range g.Attendees {
		attendees = append(attendees, a.Email)
	}

	return entity.CalendarEvent{
		ID:          g.ID,
		Title:       title,
		Description: g.Description,
		Location:    g.Location,
		Start:       g.Start.parse(),
		End:         g.End.parse(),
		Attendees:   attendees,
		Color:       g.ColorID,
		Source:      entity.SourceGoogle,
		Status:      status,
	}
}
