package triage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/akmtwell/telehealth/internal/domain/identity"
	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/akmtwell/telehealth/internal/session"
)

func newTestHandler(c Classifier) (*Handler, *echo.Echo) {
	return NewHandler(newTestService(c), i18n.Default()), echo.New()
}

func newSessionContext(e *echo.Echo, method, body string, lang i18n.Language) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	session.WithSession(c, &session.Session{ID: "s1", Language: lang, User: identity.MockPatient})
	return c, rec
}

func TestHandler_Submit(t *testing.T) {
	h, e := newTestHandler(NewRulesClassifier())
	c, rec := newSessionContext(e, http.MethodPost, `{"symptoms":"chest pain"}`, i18n.English)

	if err := h.Submit(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.State != StateReviewing || snap.Review == nil || snap.Review.Urgency != "HIGH" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestHandler_Submit_EmptySymptoms(t *testing.T) {
	h, e := newTestHandler(NewRulesClassifier())
	c, _ := newSessionContext(e, http.MethodPost, `{"symptoms":"   "}`, i18n.English)

	err := h.Submit(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Submit_FailureIsLocalized(t *testing.T) {
	h, e := newTestHandler(&stubClassifier{err: shapeError("not json")})
	c, _ := newSessionContext(e, http.MethodPost, `{"symptoms":"batuk"}`, i18n.Indonesian)

	err := h.Submit(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTP error, got %v", err)
	}
	if he.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", he.Code)
	}
	body, ok := he.Message.(FailureBody)
	if !ok {
		t.Fatalf("expected failure body, got %T", he.Message)
	}
	if body.Kind != KindShape {
		t.Errorf("expected shape kind, got %s", body.Kind)
	}
	if body.Notice != i18n.Default().T(i18n.Indonesian, "analysis_failed") {
		t.Errorf("unexpected notice %q", body.Notice)
	}
}

func TestHandler_Submit_TransportIsBadGateway(t *testing.T) {
	h, e := newTestHandler(&stubClassifier{err: errors.New("dial tcp: refused")})
	c, _ := newSessionContext(e, http.MethodPost, `{"symptoms":"batuk"}`, i18n.English)

	var he *echo.HTTPError
	if err := h.Submit(c); !errors.As(err, &he) || he.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %v", err)
	}
}

func TestHandler_ConfirmAndResult(t *testing.T) {
	h, e := newTestHandler(NewRulesClassifier())
	ctx := context.Background()

	c, _ := newSessionContext(e, http.MethodPost, "", i18n.English)
	var he *echo.HTTPError
	if err := h.Confirm(c); !errors.As(err, &he) || he.Code != http.StatusConflict {
		t.Errorf("expected 409 with nothing to confirm, got %v", err)
	}

	if _, err := h.svc.Submit(ctx, "s1", "sore throat", i18n.English); err != nil {
		t.Fatal(err)
	}
	c, rec := newSessionContext(e, http.MethodPost, "", i18n.English)
	if err := h.Confirm(c); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	c, rec = newSessionContext(e, http.MethodGet, "", i18n.English)
	if err := h.GetResult(c); err != nil {
		t.Fatalf("get result: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"urgency":"LOW"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_GetResult_None(t *testing.T) {
	h, e := newTestHandler(NewRulesClassifier())
	c, _ := newSessionContext(e, http.MethodGet, "", i18n.English)
	var he *echo.HTTPError
	if err := h.GetResult(c); !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Reset(t *testing.T) {
	h, e := newTestHandler(NewRulesClassifier())
	_, _ = h.svc.Submit(context.Background(), "s1", "cough", i18n.English)

	c, rec := newSessionContext(e, http.MethodDelete, "", i18n.English)
	if err := h.Reset(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"state":"idle"`) {
		t.Errorf("expected idle state, got %s", rec.Body.String())
	}
}
