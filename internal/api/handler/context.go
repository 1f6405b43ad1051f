package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// ctxActor extracts the actor identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty user_id proves the
// middleware ran and the token carried an identity.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	isAdmin, _ := c.Get("is_admin").(bool)
	return domain.Actor{ID: userID, IsAdmin: isAdmin}, nil
}
