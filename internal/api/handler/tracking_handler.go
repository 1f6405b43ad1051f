package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

// TrackingHandler serves the anonymous tracking endpoints. No authentication
// applies here: possession of the tracking number is the read capability.
type TrackingHandler struct {
	shipments ports.ShipmentService
	events    ports.EventService
}

func NewTrackingHandler(shipments ports.ShipmentService, events ports.EventService) *TrackingHandler {
	return &TrackingHandler{shipments: shipments, events: events}
}

// Get handles GET /api/track/:tracking_number.
//
// @Summary      Public tracking lookup
// @Tags         tracking
// @Produce      json
// @Param        tracking_number  path      string  true  "Tracking number (e.g. SC24061512345)"
// @Success      200              {object}  trackingEnvelope
// @Failure      404              {object}  trackingEnvelope
// @Router       /api/track/{tracking_number} [get]
func (h *TrackingHandler) Get(c echo.Context) error {
	trackingNumber := c.Param("tracking_number")

	detail, err := h.shipments.GetTracking(c.Request().Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return c.JSON(http.StatusNotFound, trackingEnvelope{
				Status:  "not_found",
				Message: "No shipment found with this tracking number",
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, trackingEnvelope{Status: "success", Data: detail})
}

// Events handles GET /api/track/:tracking_number/events. The default order
// is ascending (chronological history); ?order=desc returns the latest-first
// recent-activity view.
//
// @Summary      Public tracking event history
// @Tags         tracking
// @Produce      json
// @Param        tracking_number  path      string  true   "Tracking number"
// @Param        order            query     string  false  "asc (default) or desc"
// @Success      200              {array}   eventResponse
// @Failure      404              {object}  trackingEnvelope
// @Router       /api/track/{tracking_number}/events [get]
func (h *TrackingHandler) Events(c echo.Context) error {
	trackingNumber := c.Param("tracking_number")

	order := ports.Ascending
	if c.QueryParam("order") == "desc" {
		order = ports.Descending
	}

	items, err := h.events.ListEvents(c.Request().Context(), trackingNumber, order)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return c.JSON(http.StatusNotFound, trackingEnvelope{
				Status:  "not_found",
				Message: "No shipment found with this tracking number",
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, toEventResponses(items))
}
