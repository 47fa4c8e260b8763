package router

import (
	"github.com/labstack/echo/v4"

	"go-assistant-api/core/middleware"
	"go-assistant-api/modules/calendar/controller"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		controller: controller,
	}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public routes (OAuth redirect target has no bearer token)
	publicRoutes := v1.Group("/public/calendar")
	publicRoutes.GET("/google/callback", r.controller.GoogleCallback)

	// Private routes (require authentication)
	calendarRoutes := v1.Group("/private/calendar")
	calendarRoutes.Use(mw.AuthMiddleware())

	// Remote session
	calendarRoutes.GET("/google/auth-url", r.controller.GetAuthURL)
	calendarRoutes.POST("/google/connect", r.controller.Connect)
	calendarRoutes.POST("/google/disconnect", r.controller.Disconnect)
	calendarRoutes.POST("/sync", r.controller.Sync)

	// Events
	calendarRoutes.GET("/events", r.controller.GetEvents)
	calendarRoutes.POST("/events", r.controller.CreateEvent)
	calendarRoutes.PATCH("/events/:id", r.controller.UpdateEvent)
	calendarRoutes.DELETE("/events/:id", r.controller.DeleteEvent)

	// Scheduling
	calendarRoutes.GET("/slots", r.controller.FindSlots)
	calendarRoutes.POST("/suggestions", r.controller.GetSuggestions)
}
