package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runSecurityHeaders(t *testing.T, hsts bool) http.Header {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/emr", nil), rec)

	err := SecurityHeaders(hsts)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec.Header()
}

func TestSecurityHeaders_APIPolicy(t *testing.T) {
	h := runSecurityHeaders(t, false)
	for _, kv := range apiHeaders {
		if got := h.Get(kv[0]); got != kv[1] {
			t.Errorf("%s: expected %q, got %q", kv[0], kv[1], got)
		}
	}
	if h.Get("Cache-Control") != "no-store" {
		t.Error("responses with patient data must not be cached")
	}
	if h.Get("Strict-Transport-Security") != "" {
		t.Error("HSTS should be off when not requested")
	}
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	if got := runSecurityHeaders(t, true).Get("Strict-Transport-Security"); got != hstsValue {
		t.Errorf("expected HSTS %q, got %q", hstsValue, got)
	}
}
