package controller

import (
	"github.com/labstack/echo/v4"

	"go-assistant-api/core/controller"
	"go-assistant-api/core/errors"
	"go-assistant-api/modules/task/dto"
	"go-assistant-api/modules/task/service"
)

// TaskController handles to-do list HTTP requests
type TaskController struct {
	controller.BaseController
	TaskService service.TaskService
}

func NewTaskController(svc service.TaskService) *TaskController {
	return &TaskController{
		BaseController: controller.NewBaseController(),
		TaskService:    svc,
	}
}

// CreateTask handles POST /tasks
// @Summary Create a task
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task details"
// @Success 200 {object} entity.Task
// @Router /private/tasks [post]
func (c *TaskController) CreateTask(ctx echo.Context) error {
	var req dto.CreateTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Title == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Title is required")
	}

	task := c.TaskService.Create(ctx.Request().Context(), &req)
	return c.SuccessResponse(ctx, task, "Task created successfully")
}

// ListTasks handles GET /tasks
// @Summary List tasks
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.TasksResponse
// @Router /private/tasks [get]
func (c *TaskController) ListTasks(ctx echo.Context) error {
	tasks := c.TaskService.List()
	return c.SuccessResponse(ctx, dto.TasksResponse{Tasks: tasks, Total: len(tasks)}, "Tasks retrieved")
}

// UpdateTask handles PATCH /tasks/:id
// @Summary Update a task
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} entity.Task
// @Router /private/tasks/{id} [patch]
func (c *TaskController) UpdateTask(ctx echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	task, appErr := c.TaskService.Update(ctx.Request().Context(), ctx.Param("id"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, task, "Task updated successfully")
}

// DeleteTask handles DELETE /tasks/:id
// @Summary Delete a task
// @Tags Task
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx echo.Context) error {
	c.TaskService.Delete(ctx.Request().Context(), ctx.Param("id"))
	return c.SuccessResponse(ctx, nil, "Task deleted")
}
