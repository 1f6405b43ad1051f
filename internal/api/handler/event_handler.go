package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

// EventHandler serves the admin write path of the ledger.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Update handles POST /api/track/:tracking_number/update. Appends a tracking
// event and, when the status differs from the shipment's current one,
// updates the shipment in the same transaction. `notify` requests a
// best-effort notification to the shipment's owner after commit.
//
// @Summary      Record a tracking event
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_number  path      string              true  "Tracking number"
// @Param        body             body      recordEventRequest  true  "New status and optional location/description"
// @Success      201              {object}  eventResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /api/track/{tracking_number}/update [post]
func (h *EventHandler) Update(c echo.Context) error {
	var req recordEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	event, err := h.service.RecordEvent(c.Request().Context(), ports.RecordEventInput{
		TrackingNumber: c.Param("tracking_number"),
		Actor:          actor,
		Status:         req.Status,
		Location:       req.Location,
		Description:    req.Description,
		Notify:         req.Notify,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toEventResponse(*event))
}
