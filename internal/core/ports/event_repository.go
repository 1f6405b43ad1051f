package ports

import (
	"context"
	"time"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// SortOrder selects the chronological direction of an event listing.
type SortOrder int

const (
	// Ascending is the chronological history view.
	Ascending SortOrder = iota
	// Descending is the latest-first recent-activity view.
	Descending
)

// EventRepository handles the append-only tracking-event ledger.
type EventRepository interface {
	// Append inserts the event and, when statusChanged is set, updates the
	// owning shipment's status and updated_at in the same transaction. The
	// event insert and the status update commit atomically; the ledger never
	// holds an event whose status change was lost, nor vice versa.
	Append(ctx context.Context, event *domain.TrackingEvent, statusChanged bool, updatedAt time.Time) (*domain.TrackingEvent, error)

	// ListByShipment returns the shipment's events ordered by timestamp.
	ListByShipment(ctx context.Context, trackingNumber string, order SortOrder) ([]*domain.TrackingEvent, error)
}
