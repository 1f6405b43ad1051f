package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftcourier/tracking-api/internal/api/metrics"
	"github.com/swiftcourier/tracking-api/internal/core/domain"
	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

type notificationService struct {
	notifier ports.Notifier
	repo     ports.NotificationRepository
	log      zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(
	notifier ports.Notifier,
	repo ports.NotificationRepository,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{notifier: notifier, repo: repo, log: log}
}

// Dispatch sends the notification and, on success, persists a best-effort
// record of the attempt. Every failure is logged and swallowed: notification
// loss must never corrupt shipment state, and callers never see an error.
func (s *notificationService) Dispatch(ctx context.Context, userID, title, message, trackingNumber string) {
	if err := s.notifier.Notify(ctx, userID, title, message, trackingNumber); err != nil {
		metrics.NotificationsDispatchedTotal.WithLabelValues("failure").Inc()
		s.log.Warn().Err(err).
			Str("user_id", userID).
			Str("tracking_number", trackingNumber).
			Msg("notification dispatch failed")
		return
	}
	metrics.NotificationsDispatchedTotal.WithLabelValues("success").Inc()

	record := &domain.Notification{
		UserID:         userID,
		TrackingNumber: trackingNumber,
		Title:          title,
		Message:        message,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := s.repo.Insert(ctx, record); err != nil {
		s.log.Warn().Err(err).
			Str("user_id", userID).
			Str("tracking_number", trackingNumber).
			Msg("failed to persist notification record")
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Notification, len(list))
	for i, n := range list {
		out[i] = *n
	}
	return out, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}
