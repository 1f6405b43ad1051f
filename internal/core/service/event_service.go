package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftcourier/tracking-api/internal/api/metrics"
	"github.com/swiftcourier/tracking-api/internal/core/domain"
	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

type eventService struct {
	shipments     ports.ShipmentRepository
	events        ports.EventRepository
	cache         TrackingCache
	notifications ports.NotificationService
	log           zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(
	shipments ports.ShipmentRepository,
	events ports.EventRepository,
	cache TrackingCache,
	notifications ports.NotificationService,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		shipments:     shipments,
		events:        events,
		cache:         cache,
		notifications: notifications,
		log:           log,
	}
}

// RecordEvent appends a tracking event to the shipment's ledger. The append
// is unconditional; when the new status differs from the shipment's current
// one, the status and updated_at change in the same transaction as the
// insert. Notification dispatch happens strictly after commit and can never
// roll the ledger back.
func (s *eventService) RecordEvent(ctx context.Context, in ports.RecordEventInput) (*ports.EventItem, error) {
	newStatus := domain.ShipmentStatus(in.Status)
	if in.Status == "" {
		return nil, fmt.Errorf("%w: status is required", domain.ErrValidation)
	}
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
	}

	shipment, err := s.shipments.FindByTrackingNumber(ctx, in.TrackingNumber)
	if err != nil {
		return nil, err
	}

	if !domain.CanWrite(in.Actor, shipment) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	event := &domain.TrackingEvent{
		TrackingNumber: shipment.TrackingNumber,
		Status:         newStatus,
		Location:       in.Location,
		Description:    in.Description,
		Timestamp:      now,
		ActorID:        in.Actor.ID,
	}

	statusChanged := newStatus != shipment.Status
	inserted, err := s.events.Append(ctx, event, statusChanged, now)
	if err != nil {
		return nil, fmt.Errorf("record event: %w", err)
	}

	if err := s.cache.Invalidate(ctx, shipment.TrackingNumber); err != nil {
		s.log.Warn().Err(err).Str("tracking_number", shipment.TrackingNumber).Msg("tracking cache invalidation failed")
	}

	if in.Notify {
		title := "Shipment " + shipment.TrackingNumber + " update"
		message := fmt.Sprintf("Your shipment is now %q", newStatus)
		s.notifications.Dispatch(ctx, shipment.OwnerID, title, message, shipment.TrackingNumber)
	}

	s.log.Info().
		Str("tracking_number", shipment.TrackingNumber).
		Str("status", in.Status).
		Str("actor_id", in.Actor.ID).
		Bool("status_changed", statusChanged).
		Msg("tracking event recorded")
	metrics.EventsRecordedTotal.WithLabelValues(in.Status).Inc()

	return &ports.EventItem{
		ID:          inserted.ID,
		Status:      string(inserted.Status),
		Location:    inserted.Location,
		Description: inserted.Description,
		Timestamp:   inserted.Timestamp,
	}, nil
}

// ListEvents returns the ledger for one shipment, ascending for the history
// view or descending for recent-activity feeds.
func (s *eventService) ListEvents(ctx context.Context, trackingNumber string, order ports.SortOrder) ([]ports.EventItem, error) {
	// Resolve the shipment first so an unknown number is NotFound, never an
	// empty list.
	if _, err := s.shipments.FindByTrackingNumber(ctx, trackingNumber); err != nil {
		return nil, err
	}

	events, err := s.events.ListByShipment(ctx, trackingNumber, order)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return toEventItems(events), nil
}
