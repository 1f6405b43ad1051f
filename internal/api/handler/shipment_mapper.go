package handler

import (
	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

// --- Request to service input ---

func toCreateInput(req createShipmentRequest, ownerID string) ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		OwnerID:         ownerID,
		Sender:          ports.ContactInput{Name: req.Sender.Name, Phone: req.Sender.Phone},
		Receiver:        ports.ContactInput{Name: req.Receiver.Name, Phone: req.Receiver.Phone},
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		Weight:          req.Weight,
		Description:     req.Description,
	}
}

// --- Service result to HTTP response ---

func toDetailResponse(d *ports.ShipmentDetail) shipmentDetailResponse {
	return shipmentDetailResponse{
		TrackingNumber:  d.TrackingNumber,
		Status:          d.Status,
		Sender:          contactResponse{Name: d.Sender.Name, Phone: d.Sender.Phone},
		Receiver:        contactResponse{Name: d.Receiver.Name, Phone: d.Receiver.Phone},
		PickupAddress:   d.PickupAddress,
		DeliveryAddress: d.DeliveryAddress,
		Weight:          d.Weight,
		Description:     d.Description,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
		TrackingEvents:  toEventResponses(d.Events),
	}
}

func toListResponse(items []ports.ShipmentSummary) listShipmentsResponse {
	out := make([]shipmentSummaryResponse, len(items))
	for i, s := range items {
		out[i] = shipmentSummaryResponse{
			TrackingNumber: s.TrackingNumber,
			Status:         s.Status,
			Receiver:       s.Receiver,
			CreatedAt:      s.CreatedAt.UTC(),
			UpdatedAt:      s.UpdatedAt.UTC(),
		}
	}
	return listShipmentsResponse{Data: out}
}

func toEventResponse(e ports.EventItem) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Status:      e.Status,
		Location:    e.Location,
		Description: e.Description,
		Timestamp:   e.Timestamp.UTC(),
	}
}

func toEventResponses(items []ports.EventItem) []eventResponse {
	out := make([]eventResponse, len(items))
	for i, e := range items {
		out[i] = toEventResponse(e)
	}
	return out
}
