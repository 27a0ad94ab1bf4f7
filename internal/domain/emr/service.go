package emr

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akmtwell/telehealth/internal/domain/identity"
	"github.com/akmtwell/telehealth/internal/triage"
)

// ResultSource provides the session's confirmed triage, if any.
type ResultSource interface {
	LatestResult(ctx context.Context, sessionID string) (triage.Result, error)
}

type Service struct {
	results ResultSource
	logger  zerolog.Logger
}

func NewService(results ResultSource, logger zerolog.Logger) *Service {
	return &Service{results: results, logger: logger.With().Str("component", "emr").Logger()}
}

// Record assembles the chart viewer's record. Doctors always see the mock
// patient's chart; patients see their own.
func (s *Service) Record(ctx context.Context, sessionID string, viewer identity.User) Record {
	patient := viewer
	if viewer.IsDoctor() || viewer.ID == "" {
		patient = identity.MockPatient
	}
	rec := Record{
		Profile:  ProfileFor(patient),
		Timeline: History(),
	}
	if res, err := s.results.LatestResult(ctx, sessionID); err == nil {
		rec.LatestTriage = &res
	}
	s.logger.Debug().Str("session_id", sessionID).Str("patient_id", patient.ID).Msg("record viewed")
	return rec
}
