package handler

import "time"

type recordEventRequest struct {
	Status      string `json:"status" validate:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Notify      bool   `json:"notify"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// trackingEnvelope is the public lookup envelope: {"status": "...", "data": {...}}
// or {"status": "not_found", "message": "..."} on a miss.
type trackingEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
