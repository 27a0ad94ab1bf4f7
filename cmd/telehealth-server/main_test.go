package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/akmtwell/telehealth/internal/config"
	"github.com/akmtwell/telehealth/internal/triage"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                "0",
		Env:                 "development",
		CORSOrigins:         []string{"http://localhost:3000"},
		RateLimitRPS:        1000,
		RateLimitBurst:      1000,
		RequestTimeout:      10 * time.Second,
		BodyLimit:           "64K",
		DefaultLanguage:     "en",
		SessionTTL:          time.Hour,
		SweepInterval:       time.Minute,
		ClassifierProvider:  config.ProviderRules,
		ClassifyTimeout:     5 * time.Second,
		TriageStrictUrgency: true,
		BPAlertThreshold:    130,
		OncallDoctorID:      "d1",
	}
}

type client struct {
	t         *testing.T
	srv       http.Handler
	sessionID string
}

func newClient(t *testing.T) *client {
	t.Helper()
	a, err := buildApp(testConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	c := &client{t: t, srv: a.echo}
	rec := c.do(http.MethodPost, "/api/v1/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", rec.Code, rec.Body.String())
	}
	c.sessionID = rec.Header().Get("X-Session-ID")
	if c.sessionID == "" {
		t.Fatal("expected X-Session-ID header")
	}
	return c
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionID != "" {
		req.Header.Set("X-Session-ID", c.sessionID)
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	return rec
}

func (c *client) decode(rec *httptest.ResponseRecorder, v any) {
	c.t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		c.t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func TestServer_TriageFlowRaisesAlert(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/api/v1/triage", `{"symptoms":"Sudden chest pain since this morning"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	var snap struct {
		State  string `json:"state"`
		Review struct {
			Urgency string `json:"urgency"`
		} `json:"review"`
	}
	c.decode(rec, &snap)
	if snap.State != "reviewing" || snap.Review.Urgency != "HIGH" {
		t.Fatalf("unexpected snapshot %s", rec.Body.String())
	}

	rec = c.do(http.MethodPost, "/api/v1/triage/confirm", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("confirm: %d %s", rec.Code, rec.Body.String())
	}
	var res struct {
		ID                    string `json:"id"`
		Urgency               string `json:"urgency"`
		RecommendedSpecialist string `json:"recommended_specialist"`
	}
	c.decode(rec, &res)
	if !strings.HasPrefix(res.ID, "tr-") || res.RecommendedSpecialist != "Cardiologist" {
		t.Errorf("unexpected result %s", rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/api/v1/alerts", "")
	var alerts struct {
		Data []struct {
			TemplateID string `json:"template_id"`
			Recipient  string `json:"recipient"`
			Status     string `json:"status"`
		} `json:"data"`
		Total int `json:"total"`
	}
	c.decode(rec, &alerts)
	if alerts.Total != 1 || alerts.Data[0].TemplateID != "triage-urgent" {
		t.Fatalf("expected one triage alert, got %s", rec.Body.String())
	}
	if alerts.Data[0].Recipient != "Dokter Deny Satria" || alerts.Data[0].Status != "sent" {
		t.Errorf("unexpected alert %+v", alerts.Data[0])
	}

	rec = c.do(http.MethodGet, "/api/v1/dashboard", "")
	var ov struct {
		Tiles []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"tiles"`
	}
	c.decode(rec, &ov)
	tiles := map[string]string{}
	for _, tl := range ov.Tiles {
		tiles[tl.Key] = tl.Value
	}
	if tiles["status"] != "HIGH" || tiles["alerts"] != "1" || tiles["meds"] != "2 Active" {
		t.Errorf("unexpected tiles %v", tiles)
	}

	rec = c.do(http.MethodGet, "/api/v1/doctors", "")
	var doctors []struct {
		ID          string `json:"id"`
		Recommended bool   `json:"recommended"`
	}
	c.decode(rec, &doctors)
	for _, d := range doctors {
		if d.Recommended != (d.ID == "d3") {
			t.Errorf("doctor %s recommended=%v", d.ID, d.Recommended)
		}
	}
}

func TestServer_LeavingTriageResetsReview(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPut, "/api/v1/session/view", `{"view":"triage"}`)
	if rec := c.do(http.MethodPost, "/api/v1/triage", `{"symptoms":"mild headache"}`); rec.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	c.do(http.MethodPut, "/api/v1/session/view", `{"view":"dashboard"}`)

	rec := c.do(http.MethodGet, "/api/v1/triage", "")
	var snap struct {
		State string `json:"state"`
	}
	c.decode(rec, &snap)
	if snap.State != "idle" {
		t.Errorf("expected idle after leaving triage, got %s", rec.Body.String())
	}
	if rec := c.do(http.MethodPost, "/api/v1/triage/confirm", ""); rec.Code != http.StatusConflict {
		t.Errorf("expected 409 confirming after reset, got %d", rec.Code)
	}
}

func TestServer_VitalsSpikeAlertsInSessionLanguage(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPut, "/api/v1/session/language", `{"language":"id"}`)

	rec := c.do(http.MethodPost, "/api/v1/vitals", `{"bp":142,"gl":100,"w":72}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("log vitals: %d %s", rec.Code, rec.Body.String())
	}
	rec = c.do(http.MethodGet, "/api/v1/alerts", "")
	var alerts struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	c.decode(rec, &alerts)
	if len(alerts.Data) != 1 || alerts.Data[0].Title != "Peringatan Mendesak: Lonjakan Tekanan Darah" {
		t.Errorf("unexpected alerts %s", rec.Body.String())
	}
}

func TestServer_RequiresSession(t *testing.T) {
	c := newClient(t)
	c.sessionID = ""
	if rec := c.do(http.MethodGet, "/api/v1/dashboard", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", rec.Code)
	}
	c.sessionID = "nope"
	if rec := c.do(http.MethodGet, "/api/v1/dashboard", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown session, got %d", rec.Code)
	}
}

func TestServer_Health(t *testing.T) {
	c := newClient(t)
	rec := c.do(http.MethodGet, "/health", "")
	var body map[string]any
	c.decode(rec, &body)
	if body["status"] != "ok" || body["classifier"] != "rules" {
		t.Errorf("unexpected health %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://evil.test", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := check(req); got != tt.want {
			t.Errorf("origin %q: got %v, want %v", tt.origin, got, tt.want)
		}
	}
	if !originChecker([]string{"*"})(httptest.NewRequest(http.MethodGet, "/ws", nil)) {
		t.Error("wildcard should allow everything")
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func setRulesEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", "development")
	t.Setenv("CLASSIFIER_PROVIDER", "rules")
	t.Setenv("DEFAULT_LANGUAGE", "en")
}

func TestTriageCommand(t *testing.T) {
	setRulesEnv(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"triage", "--lang", "en", "sharp", "chest", "pain"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var res struct {
		ID                    string `json:"id"`
		Symptoms              string `json:"symptoms"`
		Urgency               string `json:"urgency"`
		RecommendedSpecialist string `json:"recommended_specialist"`
		Summary               string `json:"summary"`
	}
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if res.Urgency != "HIGH" || res.RecommendedSpecialist != "Cardiologist" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Symptoms != "sharp chest pain" || !strings.HasPrefix(res.ID, "tr-") || res.Summary == "" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestTriageCommand_EmptySymptoms(t *testing.T) {
	setRulesEnv(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"triage", "   "})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for blank symptoms")
	}
	if !errors.Is(err, triage.ErrInput) || !strings.HasPrefix(err.Error(), "input: ") {
		t.Errorf("expected input error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
