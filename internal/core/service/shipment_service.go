package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftcourier/tracking-api/internal/api/metrics"
	"github.com/swiftcourier/tracking-api/internal/core/domain"
	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

const seedEventDescription = "awaiting pickup"

// TrackingCache caches the public tracking lookup. A nil-detail, nil-error
// result means a miss. Cache failures are never fatal; reads fall through to
// the repository.
type TrackingCache interface {
	Get(ctx context.Context, trackingNumber string) (*ports.TrackingDetail, error)
	Set(ctx context.Context, trackingNumber string, detail *ports.TrackingDetail) error
	Invalidate(ctx context.Context, trackingNumber string) error
}

type ShipmentService struct {
	shipments ports.ShipmentRepository
	events    ports.EventRepository
	cache     TrackingCache
	logger    zerolog.Logger
}

func NewShipmentService(
	shipments ports.ShipmentRepository,
	events ports.EventRepository,
	cache TrackingCache,
	logger zerolog.Logger,
) *ShipmentService {
	return &ShipmentService{shipments: shipments, events: events, cache: cache, logger: logger}
}

// CreateShipment allocates a tracking number and atomically persists the
// shipment together with its seed tracking event. A duplicate tracking
// number from the store triggers a regenerate-and-retry, bounded at
// maxTrackingAttempts.
func (s *ShipmentService) CreateShipment(ctx context.Context, input ports.CreateShipmentInput) (*ports.ShipmentResult, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	shipment := &domain.Shipment{
		OwnerID:         input.OwnerID,
		Status:          domain.InitialStatus,
		CreatedAt:       now,
		UpdatedAt:       now,
		Sender:          domain.Contact{Name: input.Sender.Name, Phone: input.Sender.Phone},
		Receiver:        domain.Contact{Name: input.Receiver.Name, Phone: input.Receiver.Phone},
		PickupAddress:   input.PickupAddress,
		DeliveryAddress: input.DeliveryAddress,
		Weight:          input.Weight,
		Description:     input.Description,
	}

	var lastErr error
	for attempt := 1; attempt <= maxTrackingAttempts; attempt++ {
		shipment.TrackingNumber = generateTrackingNumber(now)
		seed := &domain.TrackingEvent{
			TrackingNumber: shipment.TrackingNumber,
			Status:         domain.InitialStatus,
			Location:       input.PickupAddress,
			Description:    seedEventDescription,
			Timestamp:      now,
		}

		err := s.shipments.Create(ctx, shipment, seed)
		if err == nil {
			s.logger.Info().
				Str("tracking_number", shipment.TrackingNumber).
				Str("owner_id", input.OwnerID).
				Msg("shipment created")
			metrics.ShipmentsCreatedTotal.Inc()
			return &ports.ShipmentResult{
				TrackingNumber: shipment.TrackingNumber,
				Status:         string(shipment.Status),
				CreatedAt:      shipment.CreatedAt,
			}, nil
		}
		if !errors.Is(err, domain.ErrDuplicateTrackingNumber) {
			s.logger.Error().Err(err).Msg("failed to create shipment")
			return nil, err
		}

		lastErr = err
		metrics.TrackingNumberRetriesTotal.Inc()
		s.logger.Warn().
			Str("tracking_number", shipment.TrackingNumber).
			Int("attempt", attempt).
			Msg("tracking number collision, regenerating")
	}

	return nil, fmt.Errorf("create shipment: tracking number generation exhausted after %d attempts: %w", maxTrackingAttempts, lastErr)
}

// GetTracking serves the public tracking lookup. Knowledge of the tracking
// number is the capability; no actor check applies.
func (s *ShipmentService) GetTracking(ctx context.Context, trackingNumber string) (*ports.TrackingDetail, error) {
	if cached, err := s.cache.Get(ctx, trackingNumber); err != nil {
		s.logger.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("tracking cache read failed")
	} else if cached != nil {
		metrics.TrackingLookupsTotal.WithLabelValues("cache_hit").Inc()
		return cached, nil
	}

	shipment, events, err := s.load(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			metrics.TrackingLookupsTotal.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}

	detail := &ports.TrackingDetail{
		TrackingNumber:  shipment.TrackingNumber,
		Status:          string(shipment.Status),
		Sender:          shipment.Sender.Name,
		Receiver:        shipment.Receiver.Name,
		PickupAddress:   shipment.PickupAddress,
		DeliveryAddress: shipment.DeliveryAddress,
		CreatedAt:       shipment.CreatedAt,
		Weight:          shipment.Weight,
		Description:     shipment.Description,
		TrackingEvents:  toEventItems(events),
	}

	if err := s.cache.Set(ctx, trackingNumber, detail); err != nil {
		s.logger.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("tracking cache write failed")
	}
	metrics.TrackingLookupsTotal.WithLabelValues("store").Inc()
	return detail, nil
}

// GetShipment returns the full shipment view for owner or admin.
func (s *ShipmentService) GetShipment(ctx context.Context, trackingNumber string, actor domain.Actor) (*ports.ShipmentDetail, error) {
	shipment, events, err := s.load(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if !domain.CanRead(actor, shipment) {
		return nil, domain.ErrForbidden
	}

	return &ports.ShipmentDetail{
		TrackingNumber:  shipment.TrackingNumber,
		OwnerID:         shipment.OwnerID,
		Sender:          ports.ContactInput{Name: shipment.Sender.Name, Phone: shipment.Sender.Phone},
		Receiver:        ports.ContactInput{Name: shipment.Receiver.Name, Phone: shipment.Receiver.Phone},
		PickupAddress:   shipment.PickupAddress,
		DeliveryAddress: shipment.DeliveryAddress,
		Weight:          shipment.Weight,
		Description:     shipment.Description,
		Status:          string(shipment.Status),
		CreatedAt:       shipment.CreatedAt,
		UpdatedAt:       shipment.UpdatedAt,
		Events:          toEventItems(events),
	}, nil
}

// ListShipments returns the dashboard listing: all shipments for admins,
// only the actor's own for customers.
func (s *ShipmentService) ListShipments(ctx context.Context, actor domain.Actor) ([]ports.ShipmentSummary, error) {
	ownerID := actor.ID
	if actor.IsAdmin {
		ownerID = ""
	}

	shipments, err := s.shipments.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ShipmentSummary, len(shipments))
	for i, sh := range shipments {
		out[i] = ports.ShipmentSummary{
			TrackingNumber: sh.TrackingNumber,
			Status:         string(sh.Status),
			Receiver:       sh.Receiver.Name,
			CreatedAt:      sh.CreatedAt,
			UpdatedAt:      sh.UpdatedAt,
		}
	}
	return out, nil
}

func (s *ShipmentService) load(ctx context.Context, trackingNumber string) (*domain.Shipment, []*domain.TrackingEvent, error) {
	shipment, err := s.shipments.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.events.ListByShipment(ctx, trackingNumber, ports.Ascending)
	if err != nil {
		return nil, nil, fmt.Errorf("load events for %s: %w", trackingNumber, err)
	}
	return shipment, events, nil
}

func validateCreateInput(in ports.CreateShipmentInput) error {
	var missing []string
	if in.OwnerID == "" {
		missing = append(missing, "owner")
	}
	if in.Sender.Name == "" {
		missing = append(missing, "sender name")
	}
	if in.Sender.Phone == "" {
		missing = append(missing, "sender phone")
	}
	if in.Receiver.Name == "" {
		missing = append(missing, "receiver name")
	}
	if in.Receiver.Phone == "" {
		missing = append(missing, "receiver phone")
	}
	if in.PickupAddress == "" {
		missing = append(missing, "pickup address")
	}
	if in.DeliveryAddress == "" {
		missing = append(missing, "delivery address")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if in.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", domain.ErrValidation)
	}
	return nil
}

func toEventItems(events []*domain.TrackingEvent) []ports.EventItem {
	items := make([]ports.EventItem, len(events))
	for i, ev := range events {
		items[i] = ports.EventItem{
			ID:          ev.ID,
			Status:      string(ev.Status),
			Location:    ev.Location,
			Description: ev.Description,
			Timestamp:   ev.Timestamp,
		}
	}
	return items
}
