package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/akmtwell/telehealth/internal/domain/consultation"
	"github.com/akmtwell/telehealth/internal/domain/identity"
	"github.com/akmtwell/telehealth/internal/domain/medication"
	"github.com/akmtwell/telehealth/internal/domain/monitoring"
	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/akmtwell/telehealth/internal/platform/notification"
	"github.com/akmtwell/telehealth/internal/platform/websocket"
	"github.com/akmtwell/telehealth/internal/session"
	"github.com/akmtwell/telehealth/internal/triage"
)

// EventAlertRaised is pushed to the session's socket for every alert.
const EventAlertRaised = "alert.raised"

// hubSender delivers alerts by pushing them to the session's event stream.
type hubSender struct {
	hub *websocket.Hub
}

func (s hubSender) Deliver(_ context.Context, a notification.Alert) error {
	s.hub.Publish(a.SessionID, EventAlertRaised, a)
	return nil
}

// patientFor returns the patient a session is acting for. Doctors review
// the mock patient.
func patientFor(ctx context.Context, sessions *session.Service, sessionID string) (identity.User, i18n.Language) {
	sess, err := sessions.Get(ctx, sessionID)
	if err != nil {
		return identity.MockPatient, i18n.DefaultLanguage
	}
	if sess.User.Role != identity.RolePatient {
		return identity.MockPatient, sess.Language
	}
	return sess.User, sess.Language
}

func oncallRecipient(doctorID string) string {
	if doc, err := consultation.FindDoctor(doctorID); err == nil {
		return doc.Name
	}
	return doctorID
}

// triageAlerter raises a triage-urgent alert for the on-call doctor.
type triageAlerter struct {
	alerts   *notification.Manager
	sessions *session.Service
	doctorID string
}

func (a *triageAlerter) UrgentTriage(ctx context.Context, sessionID string, r triage.Result) error {
	patient, _ := patientFor(ctx, a.sessions, sessionID)
	_, err := a.alerts.Raise(ctx, sessionID, notification.TemplateTriageUrgent, oncallRecipient(a.doctorID), map[string]string{
		"patient_name": patient.Name,
		"symptoms":     r.Symptoms,
		"urgency":      string(r.Urgency),
		"specialist":   r.RecommendedSpecialist,
		"summary":      r.Summary,
		"triage_id":    r.ID,
	})
	return err
}

// vitalsAlerter raises a bp-spike alert for the on-call doctor, titled in
// the session's language.
type vitalsAlerter struct {
	alerts   *notification.Manager
	sessions *session.Service
	catalog  *i18n.Catalog
	doctorID string
}

func (a *vitalsAlerter) BPSpike(ctx context.Context, sessionID string, p monitoring.Point, threshold int) error {
	patient, lang := patientFor(ctx, a.sessions, sessionID)
	_, err := a.alerts.Raise(ctx, sessionID, notification.TemplateBPSpike, oncallRecipient(a.doctorID), map[string]string{
		"title":        a.catalog.T(lang, "bp_spike_title"),
		"patient_name": patient.Name,
		"bp":           strconv.Itoa(p.BP),
		"threshold":    strconv.Itoa(threshold),
	})
	return err
}

// resetTriageOnLeave abandons an unconfirmed triage when the user navigates
// away from the triage screen.
func resetTriageOnLeave(svc *triage.Service) session.NavigateHook {
	return func(ctx context.Context, sessionID string, from, to session.View) {
		if from == session.ViewTriage && to != session.ViewTriage {
			svc.Reset(ctx, sessionID)
		}
	}
}

// forgetSession drops everything an expired session owned.
func forgetSession(
	hub *websocket.Hub,
	triageSvc *triage.Service,
	meds *medication.Service,
	consults *consultation.Service,
	vitals *monitoring.Service,
	alerts *notification.Manager,
) session.ExpireHook {
	return func(ctx context.Context, sessionID string) {
		triageSvc.Forget(ctx, sessionID)
		meds.Forget(ctx, sessionID)
		consults.Forget(ctx, sessionID)
		vitals.Forget(ctx, sessionID)
		alerts.Forget(ctx, sessionID)
		hub.CloseSession(sessionID)
	}
}

func sessionExists(sessions *session.Service) websocket.SessionResolver {
	return func(ctx context.Context, sessionID string) bool {
		_, err := sessions.Get(ctx, sessionID)
		return err == nil
	}
}

// originChecker accepts same-origin requests and the configured CORS origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set["*"] || set[origin]
	}
}
