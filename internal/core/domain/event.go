package domain

import "time"

// TrackingEvent is one entry in a shipment's append-only ledger. Events are
// never mutated or deleted once written; the shipment they belong to is
// referenced by tracking number.
type TrackingEvent struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	TrackingNumber string         `json:"tracking_number" bson:"tracking_number"`
	Status         ShipmentStatus `json:"status" bson:"status"`
	Location       string         `json:"location,omitempty" bson:"location,omitempty"`
	Description    string         `json:"description,omitempty" bson:"description,omitempty"`
	Timestamp      time.Time      `json:"timestamp" bson:"timestamp"`
	ActorID        string         `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
}
