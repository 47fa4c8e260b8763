package controller

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"go-assistant-api/core/controller"
	"go-assistant-api/core/errors"
	"go-assistant-api/core/utils"
	"go-assistant-api/modules/calendar/dto"
	"go-assistant-api/modules/calendar/entity"
	"go-assistant-api/modules/calendar/repository"
	"go-assistant-api/modules/calendar/service"
	taskService "go-assistant-api/modules/task/service"
)

// CalendarController handles calendar HTTP requests
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarService
	TaskService     taskService.TaskService
}

func NewCalendarController(calendarSvc service.CalendarService, taskSvc taskService.TaskService) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: calendarSvc,
		TaskService:     taskSvc,
	}
}

// GetAuthURL handles GET /calendar/google/auth-url
// @Summary Get the Google consent screen URL
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AuthURLResponse
// @Router /private/calendar/google/auth-url [get]
func (c *CalendarController) GetAuthURL(ctx echo.Context) error {
	url := c.CalendarService.AuthorizationURL(utils.GenerateID())
	if url == "" {
		return c.InternalServerError(errors.ErrInternalServer, "Remote calendar is not configured")
	}
	return c.SuccessResponse(ctx, dto.AuthURLResponse{AuthURL: url}, "Open this URL to authorize")
}

// GoogleCallback handles GET /calendar/google/callback (public OAuth redirect)
// @Summary OAuth redirect target
// @Tags Calendar
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} controller.SuccessResponse
// @Router /public/calendar/google/callback [get]
func (c *CalendarController) GoogleCallback(ctx echo.Context) error {
	code := ctx.QueryParam("code")
	if code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing authorization code")
	}
	c.CalendarService.CompleteAuthorization(code)
	return c.SuccessResponse(ctx, nil, "Authorization received, you can close this window")
}

// Connect handles POST /calendar/google/connect
// @Summary Complete authentication and run a full sync
// @Description Blocks until the OAuth callback delivers a code or the flow times out
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/calendar/google/connect [post]
func (c *CalendarController) Connect(ctx echo.Context) error {
	if appErr := c.CalendarService.Authenticate(ctx.Request().Context()); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Calendar connected and synced")
}

// Disconnect handles POST /calendar/google/disconnect
// @Summary Drop the remote session
// @Tags Calendar
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /private/calendar/google/disconnect [post]
func (c *CalendarController) Disconnect(ctx echo.Context) error {
	c.CalendarService.SignOut()
	return c.SuccessResponse(ctx, nil, "Calendar disconnected")
}

// Sync handles POST /calendar/sync
// @Summary Pull remote events for the next 30 days
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/calendar/sync [post]
func (c *CalendarController) Sync(ctx echo.Context) error {
	if appErr := c.CalendarService.SyncWithRemote(ctx.Request().Context()); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Calendar synced")
}

// GetEvents handles GET /calendar/events
// @Summary List events
// @Description Filters: start (RFC3339, keeps events starting at or after), end (RFC3339, keeps events fully contained), source (local|google|outlook)
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.EventsResponse
// @Router /private/calendar/events [get]
func (c *CalendarController) GetEvents(ctx echo.Context) error {
	filter := &repository.EventFilter{}

	if raw := ctx.QueryParam("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid start time, expected RFC3339")
		}
		filter.StartDate = &t
	}
	if raw := ctx.QueryParam("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid end time, expected RFC3339")
		}
		filter.EndDate = &t
	}
	filter.Source = entity.EventSource(ctx.QueryParam("source"))

	events := c.CalendarService.GetEvents(filter)
	return c.SuccessResponse(ctx, dto.EventsResponse{Events: events, Total: len(events)}, "Events retrieved")
}

// CreateEvent handles POST /calendar/events
// @Summary Create an event
// @Description Writes through the remote calendar when connected, otherwise stores locally
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 200 {object} entity.CalendarEvent
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/calendar/events [post]
func (c *CalendarController) CreateEvent(ctx echo.Context) error {
	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Title == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Title is required")
	}
	if req.End.Before(req.Start) {
		return c.BadRequest(errors.ErrInvalidInput, "End must not precede start")
	}

	event, appErr := c.CalendarService.CreateEvent(ctx.Request().Context(), req.ToDraft())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Event created successfully")
}

// UpdateEvent handles PATCH /calendar/events/:id
// @Summary Update an event
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} entity.CalendarEvent
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/calendar/events/{id} [patch]
func (c *CalendarController) UpdateEvent(ctx echo.Context) error {
	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	event, appErr := c.CalendarService.UpdateEvent(ctx.Request().Context(), ctx.Param("id"), req.ToPatch())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, event, "Event updated successfully")
}

// DeleteEvent handles DELETE /calendar/events/:id
// @Summary Delete an event
// @Description Remote-sourced events are deleted on the provider first; local copy stays if the provider rejects
// @Tags Calendar
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 502 {object} controller.ErrorResponse
// @Router /private/calendar/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	if appErr := c.CalendarService.DeleteEvent(ctx.Request().Context(), ctx.Param("id")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted")
}

// FindSlots handles GET /calendar/slots
// @Summary Find free time slots over the coming week
// @Description An empty list is a valid negative result, not an error
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param duration query int true "Required duration in minutes"
// @Param preferred_start query int false "Earliest acceptable hour of day"
// @Param preferred_end query int false "Hour of day the window closes (exclusive)"
// @Param avoid_weekends query bool false "Skip Saturday and Sunday"
// @Param buffer query int false "Minutes of spacing around existing events"
// @Success 200 {object} dto.SlotsResponse
// @Router /private/calendar/slots [get]
func (c *CalendarController) FindSlots(ctx echo.Context) error {
	duration, err := strconv.Atoi(ctx.QueryParam("duration"))
	if err != nil || duration <= 0 {
		return c.BadRequest(errors.ErrInvalidInput, "duration must be a positive number of minutes")
	}

	prefs := entity.SchedulePreferences{}
	if raw := ctx.QueryParam("buffer"); raw != "" {
		if buffer, err := strconv.Atoi(raw); err == nil && buffer >= 0 {
			prefs.BufferTime = buffer
		}
	}
	if raw := ctx.QueryParam("avoid_weekends"); raw != "" {
		prefs.AvoidWeekends, _ = strconv.ParseBool(raw)
	}
	startRaw, endRaw := ctx.QueryParam("preferred_start"), ctx.QueryParam("preferred_end")
	if startRaw != "" && endRaw != "" {
		start, err1 := strconv.Atoi(startRaw)
		end, err2 := strconv.Atoi(endRaw)
		if err1 == nil && err2 == nil {
			prefs.PreferredHours = &entity.HourRange{Start: start, End: end}
		}
	}

	slots := c.CalendarService.FindOptimalTimeSlot(duration, &prefs)
	return c.SuccessResponse(ctx, dto.SlotsResponse{Slots: slots}, "Slots computed")
}

// GetSuggestions handles POST /calendar/suggestions
// @Summary Smart schedule suggestions
// @Description Places high-priority pending tasks into free slots and merges AI suggestions, sorted by priority
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SuggestionsRequest true "User preferences"
// @Success 200 {object} dto.SuggestionsResponse
// @Router /private/calendar/suggestions [post]
func (c *CalendarController) GetSuggestions(ctx echo.Context) error {
	var req dto.SuggestionsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	suggestions := c.CalendarService.GetSmartSuggestions(
		ctx.Request().Context(),
		c.TaskService.List(),
		entity.UserPreferences{ProductiveHours: req.ProductiveHours},
	)
	return c.SuccessResponse(ctx, dto.SuggestionsResponse{Suggestions: suggestions}, "Suggestions generated")
}
