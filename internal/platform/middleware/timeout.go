package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/akmtwell/telehealth/internal/session"
)

// TimeoutConfig configures RequestTimeout.
type TimeoutConfig struct {
	Timeout time.Duration
	// Catalog localizes the notice in the session's language. Nil leaves
	// the notice empty.
	Catalog *i18n.Catalog
	// SkipPrefixes are path prefixes that get no deadline, such as the
	// websocket upgrade.
	SkipPrefixes []string
}

// TimeoutBody is the 504 response body. Like the triage failure body it
// carries a localized notice.
type TimeoutBody struct {
	Message   string `json:"message"`
	Notice    string `json:"notice,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// RequestTimeout puts a deadline on the request context. Handlers are
// expected to honor it; once one returns after the deadline without having
// written a response, the client gets a 504 TimeoutBody.
//
// The triage service applies its own shorter classification timeout and
// answers with its own body, which passes through untouched.
func RequestTimeout(cfg TimeoutConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, p := range cfg.SkipPrefixes {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if c.Response().Committed {
				return err
			}
			var he *echo.HTTPError
			if errors.As(err, &he) {
				return err
			}
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return c.JSON(http.StatusGatewayTimeout, timeoutBody(c, cfg.Catalog))
			}
			return err
		}
	}
}

func timeoutBody(c echo.Context, catalog *i18n.Catalog) TimeoutBody {
	body := TimeoutBody{Message: "request processing exceeded the allowed time limit"}
	if rid, ok := c.Get("request_id").(string); ok {
		body.RequestID = rid
	}
	if catalog == nil {
		return body
	}
	lang := i18n.DefaultLanguage
	if sess, ok := session.FromContext(c); ok {
		lang = sess.Language
	}
	body.Notice = catalog.T(lang, "request_timeout")
	return body
}
