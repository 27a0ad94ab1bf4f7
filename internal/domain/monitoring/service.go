package monitoring

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

const EventLogged = "vitals.logged"

type Publisher interface {
	Publish(sessionID, event string, payload any)
}

// Alerter is told about readings at or above the BP threshold.
type Alerter interface {
	BPSpike(ctx context.Context, sessionID string, p Point, threshold int) error
}

type Service struct {
	repo      Repository
	threshold int
	publisher Publisher
	alerter   Alerter
	logger    zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		threshold: DefaultBPThreshold,
		logger:    logger.With().Str("component", "monitoring").Logger(),
	}
}

// SetThreshold changes the BP alert threshold. Non-positive values are ignored.
func (s *Service) SetThreshold(mmHg int) {
	if mmHg > 0 {
		s.threshold = mmHg
	}
}

func (s *Service) SetPublisher(p Publisher) { s.publisher = p }

func (s *Service) SetAlerter(a Alerter) { s.alerter = a }

func (s *Service) Threshold() int { return s.threshold }

func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	points, err := s.repo.Series(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(points, s.threshold), nil
}

// Log records r as today's point. The returned bool reports whether the
// reading crossed the BP threshold.
func (s *Service) Log(ctx context.Context, sessionID string, r Reading) (Summary, bool, error) {
	if err := r.Validate(); err != nil {
		return Summary{}, false, err
	}
	p := Point{Day: TodayLabel, BP: r.BP, GL: r.GL, W: r.W}
	points, err := s.repo.Append(ctx, sessionID, p)
	if err != nil {
		return Summary{}, false, fmt.Errorf("append vitals: %w", err)
	}
	sum := Summarize(points, s.threshold)
	if s.publisher != nil {
		s.publisher.Publish(sessionID, EventLogged, p)
	}

	spike := p.BP >= s.threshold
	if spike {
		s.logger.Warn().Str("session_id", sessionID).Int("bp", p.BP).Int("threshold", s.threshold).Msg("blood pressure spike")
		if s.alerter != nil {
			if err := s.alerter.BPSpike(ctx, sessionID, p, s.threshold); err != nil {
				s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to raise BP alert")
			}
		}
	}
	return sum, spike, nil
}

func (s *Service) Forget(ctx context.Context, sessionID string) {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to drop vitals")
	}
}
