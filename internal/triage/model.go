package triage

import (
	"strings"
	"time"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
)

// Urgency is the closed set of triage tiers. Matching is case-sensitive.
type Urgency string

const (
	UrgencyLow      Urgency = "LOW"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyCritical Urgency = "CRITICAL"
)

// DefaultSpecialist is used when the classifier does not name one.
const DefaultSpecialist = "General Practitioner"

// Valid reports whether u is one of the four known tiers.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// Severe reports whether u warrants clinician follow-up.
func (u Urgency) Severe() bool {
	return u == UrgencyHigh || u == UrgencyCritical
}

// Request is one symptom submission.
type Request struct {
	SymptomText    string
	TargetLanguage i18n.Language
}

// NewRequest rejects blank symptom text and unsupported languages.
func NewRequest(symptoms string, lang i18n.Language) (Request, error) {
	if strings.TrimSpace(symptoms) == "" {
		return Request{}, inputError("symptom text is required")
	}
	if !lang.Valid() {
		return Request{}, inputError("unsupported target language %q", lang)
	}
	return Request{SymptomText: symptoms, TargetLanguage: lang}, nil
}

// ClassificationResponse is the untrusted payload returned by a classifier.
// Field names follow the wire contract of the external service.
type ClassificationResponse struct {
	Urgency               string `json:"urgency"`
	RecommendedSpecialist string `json:"recommendedSpecialist"`
	Summary               string `json:"summary"`
}

// Result is the confirmed triage record. It is only produced by Normalize.
type Result struct {
	ID                    string    `json:"id"`
	Symptoms              string    `json:"symptoms"`
	Urgency               Urgency   `json:"urgency"`
	RecommendedSpecialist string    `json:"recommended_specialist"`
	Summary               string    `json:"summary"`
	Timestamp             time.Time `json:"timestamp"`
}

// State is a position in the per-session triage flow.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateReviewing  State = "reviewing"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

// Snapshot is a consistent copy of a tracker's state.
type Snapshot struct {
	State    State                   `json:"state"`
	Version  uint64                  `json:"version"`
	Symptoms string                  `json:"symptoms,omitempty"`
	Review   *ClassificationResponse `json:"review,omitempty"`
	Result   *Result                 `json:"result,omitempty"`
	Failure  *Failure                `json:"failure,omitempty"`
}

// Failure describes the last failed submission.
type Failure struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}
