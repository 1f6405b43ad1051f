package ports

import (
	"context"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// NotificationRepository persists best-effort notification records.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	// MarkRead flips the read flag. Returns domain.ErrNotificationNotFound
	// when id does not exist or belongs to another user.
	MarkRead(ctx context.Context, id, userID string) error
}
