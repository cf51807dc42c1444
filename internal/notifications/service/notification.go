package service

import (
	"context"

	"hotelms/internal/notifications/repository"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"
)

type NotificationService interface {
	List(ctx context.Context) ([]*model.Notification, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	cfg  *config.Config
}

func NewNotificationService(repo repository.NotificationRepository, cfg *config.Config) NotificationService {
	return &notificationService{
		repo: repo,
		cfg:  cfg,
	}
}

// List returns every notification, newest first.
func (s *notificationService) List(ctx context.Context) ([]*model.Notification, error) {
	notifications, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list notifications", "error", err)
		return nil, apperrors.Internal("Failed to retrieve notifications", err)
	}
	return notifications, nil
}
