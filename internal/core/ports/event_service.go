package ports

import (
	"context"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// RecordEventInput is the DTO passed from the transport layer to EventService.
type RecordEventInput struct {
	TrackingNumber string
	Actor          domain.Actor
	Status         string
	Location       string // optional
	Description    string // optional
	Notify         bool
}

// EventService is the lifecycle-engine write path for tracking events.
type EventService interface {
	// RecordEvent appends a tracking event and keeps the shipment's current
	// status consistent with the ledger. The append is unconditional: an
	// event re-confirming the current status is still written.
	RecordEvent(ctx context.Context, input RecordEventInput) (*EventItem, error)

	// ListEvents returns the shipment's events in the requested order.
	ListEvents(ctx context.Context, trackingNumber string, order SortOrder) ([]EventItem, error)
}
