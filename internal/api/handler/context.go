package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware. Presence
// proves the middleware ran; a route reaching a handler without one is a
// wiring bug, rejected with 401 rather than a panic.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get("session").(*domain.Session)
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}

// shopScope resolves the shop a POS request operates on: the session's
// assigned shop, with a shop_id query override for roles that are not bound
// to a single shop.
func shopScope(c echo.Context, s *domain.Session) string {
	if s.ShopID != "" {
		return s.ShopID
	}
	return c.QueryParam("shop_id")
}
