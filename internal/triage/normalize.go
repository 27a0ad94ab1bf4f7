package triage

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalizer turns a classification response into a Result. Now and NewID
// default to the wall clock and a random tr-<uuid> identifier.
type Normalizer struct {
	Now   func() time.Time
	NewID func() string
}

// Normalize uses the default clock and ID source.
func Normalize(resp ClassificationResponse, symptoms string) Result {
	return Normalizer{}.Normalize(resp, symptoms)
}

// Normalize maps resp onto the closed urgency set and fills defaults.
// Unrecognized urgency becomes LOW; a blank specialist becomes
// DefaultSpecialist.
func (n Normalizer) Normalize(resp ClassificationResponse, symptoms string) Result {
	urgency := Urgency(resp.Urgency)
	if !urgency.Valid() {
		urgency = UrgencyLow
	}

	specialist := strings.TrimSpace(resp.RecommendedSpecialist)
	if specialist == "" {
		specialist = DefaultSpecialist
	}

	return Result{
		ID:                    n.id(),
		Symptoms:              symptoms,
		Urgency:               urgency,
		RecommendedSpecialist: specialist,
		Summary:               resp.Summary,
		Timestamp:             n.now(),
	}
}

func (n Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now().UTC()
}

func (n Normalizer) id() string {
	if n.NewID != nil {
		return n.NewID()
	}
	return "tr-" + uuid.New().String()
}
