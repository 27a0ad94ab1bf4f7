package session

import (
	"errors"
	"strings"
	"time"

	"github.com/akmtwell/telehealth/internal/domain/identity"
	"github.com/akmtwell/telehealth/internal/platform/i18n"
)

// HeaderSessionID carries the session identifier on every API request.
const HeaderSessionID = "X-Session-ID"

var ErrNotFound = errors.New("session not found")

// View is the screen the client is on. Navigation drives side effects such
// as cancelling an in-flight triage.
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewTriage        View = "triage"
	ViewConsultation  View = "consultation"
	ViewEMR           View = "emr"
	ViewMonitoring    View = "monitoring"
	ViewPrescriptions View = "prescriptions"
)

var knownViews = map[View]bool{
	ViewDashboard: true, ViewTriage: true, ViewConsultation: true,
	ViewEMR: true, ViewMonitoring: true, ViewPrescriptions: true,
}

// ParseView maps unknown names to the dashboard.
func ParseView(s string) View {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if knownViews[v] {
		return v
	}
	return ViewDashboard
}

// Session is one client's in-memory application state.
type Session struct {
	ID        string        `json:"id"`
	Language  i18n.Language `json:"language"`
	User      identity.User `json:"user"`
	View      View          `json:"view"`
	CreatedAt time.Time     `json:"created_at"`
	LastSeen  time.Time     `json:"last_seen"`
}
