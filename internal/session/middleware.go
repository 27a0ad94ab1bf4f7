package session

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const contextKey = "session"

// RequireSession resolves the X-Session-ID header, refreshes the session's
// idle timer and stores it on the echo context.
func RequireSession(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderSessionID)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderSessionID+" header")
			}
			sess, err := svc.Touch(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown or expired session")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			c.Set(contextKey, sess)
			return next(c)
		}
	}
}

// FromContext returns the session stored by RequireSession.
func FromContext(c echo.Context) (*Session, bool) {
	sess, ok := c.Get(contextKey).(*Session)
	return sess, ok && sess != nil
}

// WithSession stores sess on c. Handlers tested without the middleware use it.
func WithSession(c echo.Context, sess *Session) {
	c.Set(contextKey, sess)
}

// Current is FromContext for handlers: it fails with 401 when no session is
// attached.
func Current(c echo.Context) (*Session, error) {
	sess, ok := FromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}
	return sess, nil
}
