package notification

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"go-assistant-api/core/constants"
	"go-assistant-api/core/middleware"
	"go-assistant-api/core/persistence"
	"go-assistant-api/modules/notification/controller"
	"go-assistant-api/modules/notification/repository"
	"go-assistant-api/modules/notification/router"
	"go-assistant-api/modules/notification/service"
)

// Init wires the notification module. The asynq client and inspector may be
// nil when no redis broker is configured; reminders are then silently
// disabled.
func Init(e *echo.Echo, store persistence.Store, client *asynq.Client, inspector *asynq.Inspector, mux *asynq.ServeMux) *service.ReminderService {
	repo := repository.NewNotificationRepository(store, constants.SnapshotKeyNotifications)
	notificationService := service.NewNotificationService(repo)

	// A nil *asynq.Client must stay a nil interface inside the service.
	var broker service.TaskBroker
	var remover service.TaskRemover
	if client != nil {
		broker = client
	}
	if inspector != nil {
		remover = inspector
	}
	reminderService := service.NewReminderService(broker, remover, notificationService)
	notificationController := controller.NewNotificationController(notificationService)

	mw := middleware.NewMiddleware()
	router.NewNotificationRouter(notificationController).Setup(e, mw)

	if mux != nil {
		mux.HandleFunc(constants.TaskTypeEventReminder, reminderService.HandleReminderTask)
	}

	return reminderService
}
