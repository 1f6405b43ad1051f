package ports

import (
	"context"
	"time"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// ContactInput holds one contact pair of the shipment form.
type ContactInput struct {
	Name  string
	Phone string
}

// CreateShipmentInput carries all data needed to create a new shipment.
type CreateShipmentInput struct {
	OwnerID         string
	Sender          ContactInput
	Receiver        ContactInput
	PickupAddress   string
	DeliveryAddress string
	Weight          float64
	Description     string
}

// ShipmentResult is returned by the service after creating a shipment.
type ShipmentResult struct {
	TrackingNumber string
	Status         string
	CreatedAt      time.Time
}

// EventItem is a single tracking event in API views.
type EventItem struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// TrackingDetail is the public view returned by the anonymous
// tracking-number lookup. Field names follow the public JSON contract, so
// the cached representation and the HTTP payload stay in sync.
type TrackingDetail struct {
	TrackingNumber  string      `json:"tracking_number"`
	Status          string      `json:"status"`
	Sender          string      `json:"sender"`
	Receiver        string      `json:"receiver"`
	PickupAddress   string      `json:"pickup_address"`
	DeliveryAddress string      `json:"delivery_address"`
	CreatedAt       time.Time   `json:"created_at"`
	Weight          float64     `json:"weight"`
	Description     string      `json:"description,omitempty"`
	TrackingEvents  []EventItem `json:"tracking_events"`
}

// ShipmentDetail is the authenticated owner/admin view of a shipment.
type ShipmentDetail struct {
	TrackingNumber  string
	OwnerID         string
	Sender          ContactInput
	Receiver        ContactInput
	PickupAddress   string
	DeliveryAddress string
	Weight          float64
	Description     string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Events          []EventItem
}

// ShipmentSummary is the lightweight view used in dashboard listings.
type ShipmentSummary struct {
	TrackingNumber string
	Status         string
	Receiver       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ShipmentService defines the lifecycle-engine read and create operations.
type ShipmentService interface {
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*ShipmentResult, error)
	// GetTracking is the public lookup: no ownership check applies.
	GetTracking(ctx context.Context, trackingNumber string) (*TrackingDetail, error)
	// GetShipment enforces the read policy for the given actor.
	GetShipment(ctx context.Context, trackingNumber string, actor domain.Actor) (*ShipmentDetail, error)
	ListShipments(ctx context.Context, actor domain.Actor) ([]ShipmentSummary, error)
}
