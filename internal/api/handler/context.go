package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/api/middleware"
	"github.com/workpulse/attendance-system/internal/core/domain"
)

// ctxUser extracts the user resolved by the Auth middleware. Absence means a
// route was wired without the middleware; fail closed with 401.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
