package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ModerationTokenHeader carries the shared secret of the moderation worker
const ModerationTokenHeader = "X-Moderation-Token"

// ModerationTokenMiddleware admits requests presenting the shared moderation token.
// An empty token rejects everything.
func ModerationTokenMiddleware(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(ModerationTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid moderation token")
			}
			return next(c)
		}
	}
}
