package router

import (
	"github.com/labstack/echo/v4"

	"go-assistant-api/core/middleware"
	"go-assistant-api/modules/task/controller"
)

type TaskRouter struct {
	controller *controller.TaskController
}

func NewTaskRouter(controller *controller.TaskController) *TaskRouter {
	return &TaskRouter{
		controller: controller,
	}
}

func (r *TaskRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	taskRoutes := v1.Group("/private/tasks")
	taskRoutes.Use(mw.AuthMiddleware())

	taskRoutes.POST("", r.controller.CreateTask)
	taskRoutes.GET("", r.controller.ListTasks)
	taskRoutes.PATCH("/:id", r.controller.UpdateTask)
	taskRoutes.DELETE("/:id", r.controller.DeleteTask)
}
