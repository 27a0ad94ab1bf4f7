package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if rec.Header().Get(HeaderSessionID) == "" {
		t.Error("expected session header on response")
	}
}

func TestHandler_SetLanguage(t *testing.T) {
	h, e := newTestHandler()
	sess, _ := h.svc.Create(context.Background())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"language":"kr"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	WithSession(c, sess)

	if err := h.SetLanguage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Session
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Language != "kr" {
		t.Errorf("expected kr, got %s", got.Language)
	}
}

func TestHandler_SetLanguage_Unsupported(t *testing.T) {
	h, e := newTestHandler()
	sess, _ := h.svc.Create(context.Background())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"language":"de"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	WithSession(c, sess)

	err := h.SetLanguage(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Navigate(t *testing.T) {
	h, e := newTestHandler()
	sess, _ := h.svc.Create(context.Background())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"view":"monitoring"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	WithSession(c, sess)

	if err := h.Navigate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"view":"monitoring"`) {
		t.Errorf("expected monitoring view, got %s", rec.Body.String())
	}
}

func TestHandler_Get_NoSession(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err == nil {
		t.Error("expected error without session")
	}
}

func TestRequireSession(t *testing.T) {
	svc := newTestService()
	sess, _ := svc.Create(context.Background())
	e := echo.New()

	var seen *Session
	handler := RequireSession(svc)(func(c echo.Context) error {
		seen, _ = FromContext(c)
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderSessionID, sess.ID)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen == nil || seen.ID != sess.ID {
		t.Fatal("expected session on context")
	}

	for name, id := range map[string]string{"missing": "", "unknown": "nope"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if id != "" {
				req.Header.Set(HeaderSessionID, id)
			}
			err := handler(e.NewContext(req, httptest.NewRecorder()))
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %v", err)
			}
		})
	}
}
