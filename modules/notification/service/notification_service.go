package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-assistant-api/modules/notification/entity"
	"go-assistant-api/modules/notification/repository"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, title, message, notifType, eventID string) entity.Notification {
	n := entity.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Type:      notifType,
		EventID:   eventID,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	s.repo.Create(ctx, n)
	return n
}

func (s *NotificationService) List() []entity.Notification {
	return s.repo.List()
}

func (s *NotificationService) CountUnread() int {
	return s.repo.CountUnread()
}

func (s *NotificationService) MarkAsRead(ctx context.Context, ids []string) {
	s.repo.MarkAsRead(ctx, ids)
}
