package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

// NotificationHandler serves the owner-facing notification feed.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type notificationResponse struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"tracking_number"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// List handles GET /api/notifications: the actor notifications, newest first.
//
// @Summary      List own notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   notificationResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListNotifications(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}

	out := make([]notificationResponse, len(list))
	for i, n := range list {
		out[i] = notificationResponse{
			ID:             n.ID,
			TrackingNumber: n.TrackingNumber,
			Title:          n.Title,
			Message:        n.Message,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt.UTC(),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// MarkRead handles POST /api/notifications/:id/read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), c.Param("id"), actor.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
