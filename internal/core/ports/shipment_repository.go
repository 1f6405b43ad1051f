package ports

import (
	"context"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	// Create persists the shipment together with its seed tracking event in
	// one transaction. Either both documents commit or neither does; no
	// shipment may exist without at least one event. Returns
	// domain.ErrDuplicateTrackingNumber when the tracking number is taken.
	Create(ctx context.Context, s *domain.Shipment, seed *domain.TrackingEvent) error

	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)

	// ListByOwner returns shipments newest-first. An empty ownerID returns
	// all shipments (admin view).
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Shipment, error)
}
