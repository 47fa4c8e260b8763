package task

import (
	"github.com/labstack/echo/v4"

	"go-assistant-api/core/constants"
	"go-assistant-api/core/middleware"
	"go-assistant-api/core/persistence"
	"go-assistant-api/modules/task/controller"
	"go-assistant-api/modules/task/repository"
	"go-assistant-api/modules/task/router"
	"go-assistant-api/modules/task/service"
)

func Init(e *echo.Echo, store persistence.Store) service.TaskService {
	repo := repository.NewTaskRepository(store, constants.SnapshotKeyTasks)
	taskService := service.NewTaskService(repo)
	taskController := controller.NewTaskController(taskService)

	mw := middleware.NewMiddleware()
	router.NewTaskRouter(taskController).Setup(e, mw)

	return taskService
}
