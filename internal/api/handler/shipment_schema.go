package handler

import "time"

// --- Request types ---

type contactRequest struct {
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type createShipmentRequest struct {
	Sender          contactRequest `json:"sender"           validate:"required"`
	Receiver        contactRequest `json:"receiver"         validate:"required"`
	PickupAddress   string         `json:"pickup_address"   validate:"required"`
	DeliveryAddress string         `json:"delivery_address" validate:"required"`
	Weight          float64        `json:"weight"           validate:"required,gt=0"`
	Description     string         `json:"description"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type createShipmentResponse struct {
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type contactResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type shipmentDetailResponse struct {
	TrackingNumber  string          `json:"tracking_number"`
	Status          string          `json:"status"`
	Sender          contactResponse `json:"sender"`
	Receiver        contactResponse `json:"receiver"`
	PickupAddress   string          `json:"pickup_address"`
	DeliveryAddress string          `json:"delivery_address"`
	Weight          float64         `json:"weight"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	TrackingEvents  []eventResponse `json:"tracking_events"`
}

// shipmentSummaryResponse is the lightweight item used in the dashboard
// listing. It intentionally omits the event ledger to keep payloads small.
type shipmentSummaryResponse struct {
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"status"`
	Receiver       string    `json:"receiver"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type listShipmentsResponse struct {
	Data []shipmentSummaryResponse `json:"data"`
}
