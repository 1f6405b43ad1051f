package domain

import (
	"errors"
	"time"
)

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusProcessing     ShipmentStatus = "Processing"
	StatusInTransit      ShipmentStatus = "In Transit"
	StatusOutForDelivery ShipmentStatus = "Out for Delivery"
	StatusDelivered      ShipmentStatus = "Delivered"
	StatusException      ShipmentStatus = "Exception"
)

// InitialStatus is the status every new shipment starts in.
const InitialStatus = StatusProcessing

// knownStatuses is the closed set of accepted status values. There is no
// transition graph: an authorized actor may move a shipment from any status
// to any other, including re-confirming the current one.
var knownStatuses = map[ShipmentStatus]struct{}{
	StatusProcessing:     {},
	StatusInTransit:      {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
	StatusException:      {},
}

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrDuplicateTrackingNumber = errors.New("duplicate tracking number")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")

// Valid reports whether s is one of the known status values.
func (s ShipmentStatus) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// Contact is a sender or receiver contact pair.
type Contact struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
}

// Shipment is the core aggregate root. Status is denormalized: it always
// mirrors the status of the shipment's most recent tracking event (or
// InitialStatus when only the seed event exists).
type Shipment struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	TrackingNumber  string         `json:"tracking_number" bson:"tracking_number"`
	OwnerID         string         `json:"owner_id" bson:"owner_id"`
	Sender          Contact        `json:"sender" bson:"sender"`
	Receiver        Contact        `json:"receiver" bson:"receiver"`
	PickupAddress   string         `json:"pickup_address" bson:"pickup_address"`
	DeliveryAddress string         `json:"delivery_address" bson:"delivery_address"`
	Weight          float64        `json:"weight" bson:"weight"`
	Description     string         `json:"description,omitempty" bson:"description,omitempty"`
	Status          ShipmentStatus `json:"status" bson:"status"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" bson:"updated_at"`
}
