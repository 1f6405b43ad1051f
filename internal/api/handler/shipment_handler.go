package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

// ShipmentHandler serves the authenticated shipment endpoints.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /api/shipments.
//
// @Summary      Create a new shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  createShipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
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

	result, err := h.service.CreateShipment(c.Request().Context(), toCreateInput(req, actor.ID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createShipmentResponse{
		TrackingNumber: result.TrackingNumber,
		Status:         result.Status,
		CreatedAt:      result.CreatedAt.UTC(),
	})
}

// List handles GET /api/shipments: the dashboard listing, newest first.
// Admins see every shipment, customers only their own.
//
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listShipmentsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListShipments(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(items))
}

// Get handles GET /api/shipments/:tracking_number, the owner/admin detail
// view including the full event ledger.
//
// @Summary      Get a shipment by tracking number
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_number  path      string  true  "Tracking number"
// @Success      200              {object}  shipmentDetailResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /api/shipments/{tracking_number} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetShipment(c.Request().Context(), c.Param("tracking_number"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toDetailResponse(detail))
}
