package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a best-effort side record of a status change delivered to
// a shipment's owner. It is not authoritative: losing one must never corrupt
// shipment state.
type Notification struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"user_id" bson:"user_id"`
	TrackingNumber string    `json:"tracking_number" bson:"tracking_number"`
	Title          string    `json:"title" bson:"title"`
	Message        string    `json:"message" bson:"message"`
	IsRead         bool      `json:"is_read" bson:"is_read"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
