package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// RequireRole lets the request through only when the role placed in the
// context by Auth is one of roles. Anything else fails with
// domain.ErrForbidden for the error handler to render.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			for _, r := range roles {
				if domain.Role(role) == r {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}
