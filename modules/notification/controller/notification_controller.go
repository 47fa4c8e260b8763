package controller

import (
	"github.com/labstack/echo/v4"

	"go-assistant-api/core/controller"
	"go-assistant-api/core/errors"
	"go-assistant-api/modules/notification/dto"
	"go-assistant-api/modules/notification/service"
)

type NotificationController struct {
	controller.BaseController
	service *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// GetNotifications handles GET /notifications
// @Summary List notifications
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.NotificationsResponse
// @Router /private/notifications [get]
func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	return c.SuccessResponse(ctx, dto.NotificationsResponse{
		Notifications: c.service.List(),
		Unread:        c.service.CountUnread(),
	}, "Notifications retrieved successfully")
}

// MarkAsRead handles POST /notifications/read
// @Summary Mark notifications as read
// @Tags Notification
// @Security BearerAuth
// @Accept json
// @Param request body dto.MarkReadRequest true "Notification ids"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/notifications/read [post]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	var req dto.MarkReadRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	c.service.MarkAsRead(ctx.Request().Context(), req.IDs)
	return c.SuccessResponse(ctx, nil, "Notifications marked as read")
}
