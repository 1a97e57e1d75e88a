package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asservice/shiftboard/internal/api/middleware"
	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"
)

// actorFrom extracts the caller injected by the Auth middleware. Both the
// user id and a known role must be present.
func actorFrom(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	if userID == "" || !domain.Role(role).Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{UserID: userID, Role: domain.Role(role)}, nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
