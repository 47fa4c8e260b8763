package router

import (
	"github.com/labstack/echo/v4"

	"go-assistant-api/core/middleware"
	"go-assistant-api/modules/notification/controller"
)

type NotificationRouter struct {
	controller *controller.NotificationController
}

func NewNotificationRouter(controller *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{
		controller: controller,
	}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	notificationRoutes := v1.Group("/private/notifications")
	notificationRoutes.Use(mw.AuthMiddleware())

	notificationRoutes.GET("", r.controller.GetNotifications)
	notificationRoutes.POST("/read", r.controller.MarkAsRead)
}
