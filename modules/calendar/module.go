package calendar

import (
	"github.com/labstack/echo/v4"

	"go-assistant-api/core/config"
	"go-assistant-api/core/constants"
	"go-assistant-api/core/middleware"
	"go-assistant-api/core/persistence"
	"go-assistant-api/modules/calendar/controller"
	"go-assistant-api/modules/calendar/repository"
	"go-assistant-api/modules/calendar/router"
	"go-assistant-api/modules/calendar/service"
	taskService "go-assistant-api/modules/task/service"
)

func Init(
	e *echo.Echo,
	store persistence.Store,
	textGen service.TextGenerator,
	reminders service.ReminderScheduler,
	taskSvc taskService.TaskService,
) service.CalendarService {
	cfg := config.Get()

	// Initialize layers
	eventStore := repository.NewEventStore(store, constants.SnapshotKeyEvents)
	remote := service.NewGoogleCalendarService(cfg.GoogleAPI)
	scheduler := service.NewScheduler()
	ranker := service.NewSuggestionRanker(scheduler, textGen)
	calendarService := service.NewCalendarService(eventStore, remote, scheduler, ranker, reminders)
	calendarController := controller.NewCalendarController(calendarService, taskSvc)

	// Setup routes
	mw := middleware.NewMiddleware()
	router.NewCalendarRouter(calendarController).Setup(e, mw)

	return calendarService
}
