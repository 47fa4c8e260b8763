package dto

import "go-assistant-api/modules/notification/entity"

// MarkReadRequest flags notifications as read
type MarkReadRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

type NotificationsResponse struct {
	Notifications []entity.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}
