// Package notification raises clinician alerts from templates, keeps them in
// memory per session, and hands them to a Sender for delivery.
package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/akmtwell/telehealth/internal/session"
	"github.com/akmtwell/telehealth/pkg/pagination"
)

// Built-in template IDs.
const (
	TemplateTriageUrgent = "triage-urgent"
	TemplateBPSpike      = "bp-spike"
)

// Severity orders alerts for display.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Delivery statuses.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

var ErrNotFound = errors.New("alert not found")

// Alert is one notification raised for a clinician.
type Alert struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"session_id"`
	Recipient  string            `json:"recipient"`
	TemplateID string            `json:"template_id"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Severity   Severity          `json:"severity"`
	Status     string            `json:"status"`
	Data       map[string]string `json:"data,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	SentAt     *time.Time        `json:"sent_at,omitempty"`
	Error      string            `json:"error,omitempty"`

	seq uint64
}

// Sender delivers an alert to its recipient.
type Sender interface {
	Deliver(ctx context.Context, a Alert) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, a Alert) error

func (f SenderFunc) Deliver(ctx context.Context, a Alert) error { return f(ctx, a) }

// Template is a reusable alert with {{key}} placeholders.
type Template struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Severity Severity `json:"severity"`
}

// TemplateEngine holds templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewTemplateEngine returns an engine with the built-in templates registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{templates: make(map[string]Template)}
	e.RegisterTemplate(Template{
		ID:       TemplateTriageUrgent,
		Title:    "Urgent triage: {{urgency}}",
		Body:     "{{patient_name}} reported \"{{symptoms}}\". Triage urgency {{urgency}}; recommended specialist: {{specialist}}. {{summary}}",
		Severity: SeverityCritical,
	})
	e.RegisterTemplate(Template{
		ID:       TemplateBPSpike,
		Title:    "{{title}}",
		Body:     "{{patient_name}} logged a blood pressure of {{bp}} mmHg (threshold {{threshold}}).",
		Severity: SeverityWarning,
	})
	return e
}

// RegisterTemplate adds or replaces a template.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = t
}

// Render fills the template's placeholders in a single pass, so values are
// never expanded themselves. Keys missing from data are left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (Template, error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return Template{}, fmt.Errorf("template %q not found", templateID)
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", data[k])
	}
	r := strings.NewReplacer(pairs...)
	t.Title = r.Replace(t.Title)
	t.Body = r.Replace(t.Body)
	return t, nil
}

// Manager raises, stores and re-delivers alerts.
type Manager struct {
	sender    Sender
	templates *TemplateEngine
	logger    zerolog.Logger
	now       func() time.Time

	mu     sync.RWMutex
	alerts map[string]*Alert
	seq    uint64
}

func NewManager(sender Sender, tpl *TemplateEngine, logger zerolog.Logger) *Manager {
	return &Manager{
		sender:    sender,
		templates: tpl,
		logger:    logger.With().Str("component", "notification").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
		alerts:    make(map[string]*Alert),
	}
}

// Raise renders templateID, stores the alert under sessionID and delivers it.
// A delivery failure is recorded on the alert and returned; the alert is
// stored either way.
func (m *Manager) Raise(ctx context.Context, sessionID, templateID, recipient string, data map[string]string) (*Alert, error) {
	t, err := m.templates.Render(templateID, data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	a := &Alert{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Recipient:  recipient,
		TemplateID: templateID,
		Title:      t.Title,
		Body:       t.Body,
		Severity:   t.Severity,
		Data:       data,
		CreatedAt:  m.now(),
	}
	err = m.deliver(ctx, a)

	m.mu.Lock()
	m.seq++
	a.seq = m.seq
	m.alerts[a.ID] = a
	out := *a
	m.mu.Unlock()

	m.logger.Info().
		Str("alert_id", a.ID).
		Str("session_id", sessionID).
		Str("template", templateID).
		Str("recipient", recipient).
		Str("status", out.Status).
		Msg("alert raised")
	return &out, err
}

// deliver must be called before a is shared or with mu held.
func (m *Manager) deliver(ctx context.Context, a *Alert) error {
	sentAt := m.now()
	a.Status = StatusSent
	a.SentAt = &sentAt
	a.Error = ""
	if m.sender == nil {
		return nil
	}
	if err := m.sender.Deliver(ctx, *a); err != nil {
		a.Status = StatusFailed
		a.SentAt = nil
		a.Error = err.Error()
		return err
	}
	return nil
}

func (m *Manager) Get(_ context.Context, id string) (*Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *a
	return &out, nil
}

// ListBySession returns the session's alerts, newest first.
func (m *Manager) ListBySession(_ context.Context, sessionID string) []Alert {
	m.mu.RLock()
	var out []Alert
	for _, a := range m.alerts {
		if a.SessionID == sessionID {
			out = append(out, *a)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].seq > out[j].seq })
	return out
}

// CountBySession returns how many alerts the session has.
func (m *Manager) CountBySession(_ context.Context, sessionID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, a := range m.alerts {
		if a.SessionID == sessionID {
			n++
		}
	}
	return n
}

// Retry re-delivers a failed alert.
func (m *Manager) Retry(ctx context.Context, id string) (*Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if a.Status != StatusFailed {
		return nil, fmt.Errorf("alert %q is not in failed status (current: %s)", id, a.Status)
	}
	err := m.deliver(ctx, a)
	out := *a
	return &out, err
}

// Forget drops every alert of an expired session.
func (m *Manager) Forget(_ context.Context, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.alerts {
		if a.SessionID == sessionID {
			delete(m.alerts, id)
		}
	}
}

// Stats counts alerts by delivery status.
func (m *Manager) Stats(_ context.Context) map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := make(map[string]int)
	for _, a := range m.alerts {
		stats[a.Status]++
	}
	return stats
}

// Handler exposes a session's alerts over HTTP.
type Handler struct {
	manager *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{manager: mgr}
}

// RegisterRoutes mounts the alert routes on a session-scoped group.
func (h *Handler) RegisterRoutes(scoped *echo.Group) {
	scoped.GET("/alerts", h.List)
	scoped.POST("/alerts/:id/retry", h.Retry)
}

func (h *Handler) List(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	alerts := h.manager.ListBySession(c.Request().Context(), sess.ID)
	return c.JSON(http.StatusOK, pagination.Page(alerts, pagination.FromContext(c)))
}

func (h *Handler) Retry(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	a, err := h.manager.Get(c.Request().Context(), c.Param("id"))
	if err != nil || a.SessionID != sess.ID {
		return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	}
	a, err = h.manager.Retry(c.Request().Context(), a.ID)
	if err != nil && a == nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}
