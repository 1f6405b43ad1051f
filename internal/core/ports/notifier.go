package ports

import (
	"context"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// Notifier is the external delivery collaborator. Implementations may fail;
// callers treat any outcome as non-blocking.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message, trackingNumber string) error
}

// NotificationService dispatches status-change notifications and serves the
// owner-facing notification feed.
type NotificationService interface {
	// Dispatch sends a notification and records the attempt when delivery
	// succeeds. It never returns an error: failures are logged and swallowed
	// so they cannot leak into the ledger write path.
	Dispatch(ctx context.Context, userID, title, message, trackingNumber string)

	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
