package triage

import (
	"context"
	"errors"
	"time"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/rs/zerolog"
)

// Event names published on state changes.
const (
	EventState     = "triage.state"
	EventConfirmed = "triage.confirmed"
)

// DefaultTimeout bounds a single classification call.
const DefaultTimeout = 30 * time.Second

// Publisher pushes session-scoped events to connected clients.
type Publisher interface {
	Publish(sessionID, event string, payload any)
}

// Alerter is told about confirmed results that need clinician follow-up.
type Alerter interface {
	UrgentTriage(ctx context.Context, sessionID string, r Result) error
}

type Service struct {
	repo       Repository
	classifier Classifier
	logger     zerolog.Logger
	normalizer Normalizer
	timeout    time.Duration
	strict     bool
	publisher  Publisher
	alerter    Alerter
}

func NewService(repo Repository, classifier Classifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		classifier: classifier,
		logger:     logger.With().Str("component", "triage").Logger(),
		timeout:    DefaultTimeout,
		strict:     true,
	}
}

// SetTimeout overrides DefaultTimeout. Non-positive values are ignored.
func (s *Service) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// SetStrictUrgency controls whether an unknown urgency fails the submission
// (true) or is kept for review and coerced to LOW on confirmation (false).
func (s *Service) SetStrictUrgency(strict bool) { s.strict = strict }

func (s *Service) SetNormalizer(n Normalizer) { s.normalizer = n }

func (s *Service) SetPublisher(p Publisher) { s.publisher = p }

func (s *Service) SetAlerter(a Alerter) { s.alerter = a }

// Provider names the configured classifier.
func (s *Service) Provider() string { return s.classifier.Name() }

// Submit classifies symptoms for the session and blocks until the answer is
// under review, the submission fails, or it is superseded. A superseded
// submission returns ErrStale and leaves the newer state untouched.
func (s *Service) Submit(ctx context.Context, sessionID, symptoms string, lang i18n.Language) (Snapshot, error) {
	req, err := NewRequest(symptoms, lang)
	if err != nil {
		return Snapshot{}, err
	}

	tracker, err := s.repo.Tracker(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	runCtx, version, err := tracker.Begin(ctx, symptoms)
	if err != nil {
		return tracker.Snapshot(), err
	}
	s.publishState(sessionID, tracker)

	callCtx, cancel := context.WithTimeout(runCtx, s.timeout)
	defer cancel()

	provider := s.classifier.Name()
	start := time.Now()
	resp, err := s.classifier.Classify(callCtx, req)
	if err == nil {
		err = s.checkSemantics(resp, provider)
	}
	latency := time.Since(start)

	if err != nil {
		ce := asClassificationError(err, provider)
		if ferr := tracker.Fail(version, Failure{Kind: ce.Kind, Message: ce.Err.Error()}); ferr != nil {
			s.logger.Debug().Str("session_id", sessionID).Uint64("version", version).Msg("discarding superseded triage failure")
			return tracker.Snapshot(), ErrStale
		}
		s.logger.Warn().
			Str("session_id", sessionID).
			Str("provider", provider).
			Str("kind", string(ce.Kind)).
			Bool("timeout", timedOut(ce)).
			Dur("latency", latency).
			Err(ce.Err).
			Msg("triage classification failed")
		s.publishState(sessionID, tracker)
		return tracker.Snapshot(), ce
	}

	if cerr := tracker.Complete(version, resp); cerr != nil {
		s.logger.Debug().Str("session_id", sessionID).Uint64("version", version).Msg("discarding superseded triage response")
		return tracker.Snapshot(), ErrStale
	}
	s.logger.Info().
		Str("session_id", sessionID).
		Str("provider", provider).
		Str("urgency", resp.Urgency).
		Dur("latency", latency).
		Msg("triage classified")
	s.publishState(sessionID, tracker)
	return tracker.Snapshot(), nil
}

func (s *Service) checkSemantics(resp ClassificationResponse, provider string) error {
	err := ValidateSemantics(resp)
	if err == nil || s.strict {
		return err
	}
	s.logger.Warn().Str("provider", provider).Str("urgency", resp.Urgency).Msg("unknown urgency kept for review; it will be recorded as LOW")
	return nil
}

// Confirm commits the reviewed classification as the session's result.
func (s *Service) Confirm(ctx context.Context, sessionID string) (Result, error) {
	tracker, ok := s.repo.Find(ctx, sessionID)
	if !ok {
		return Result{}, ErrNothingToConfirm
	}
	res, err := tracker.Confirm(s.normalizer)
	if err != nil {
		return Result{}, err
	}
	s.logger.Info().Str("session_id", sessionID).Str("result_id", res.ID).Str("urgency", string(res.Urgency)).Msg("triage confirmed")

	if s.publisher != nil {
		s.publisher.Publish(sessionID, EventConfirmed, res)
	}
	if res.Urgency.Severe() && s.alerter != nil {
		if err := s.alerter.UrgentTriage(ctx, sessionID, res); err != nil {
			s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to raise urgent triage alert")
		}
	}
	return res, nil
}

// Reset abandons the current flow and cancels any in-flight call.
func (s *Service) Reset(ctx context.Context, sessionID string) Snapshot {
	tracker, ok := s.repo.Find(ctx, sessionID)
	if !ok {
		return Snapshot{State: StateIdle}
	}
	tracker.Reset()
	s.publishState(sessionID, tracker)
	return tracker.Snapshot()
}

func (s *Service) Snapshot(ctx context.Context, sessionID string) Snapshot {
	tracker, ok := s.repo.Find(ctx, sessionID)
	if !ok {
		return Snapshot{State: StateIdle}
	}
	return tracker.Snapshot()
}

// LatestResult returns the session's confirmed result or ErrNoResult.
func (s *Service) LatestResult(ctx context.Context, sessionID string) (Result, error) {
	tracker, ok := s.repo.Find(ctx, sessionID)
	if !ok {
		return Result{}, ErrNoResult
	}
	res, ok := tracker.Result()
	if !ok {
		return Result{}, ErrNoResult
	}
	return res, nil
}

// Forget drops all triage state for an expired session.
func (s *Service) Forget(ctx context.Context, sessionID string) {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to drop triage state")
	}
}

// ClassifyOnce runs the boundary without session state. Used by the CLI.
func (s *Service) ClassifyOnce(ctx context.Context, symptoms string, lang i18n.Language) (Result, error) {
	req, err := NewRequest(symptoms, lang)
	if err != nil {
		return Result{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.classifier.Classify(ctx, req)
	if err == nil {
		err = s.checkSemantics(resp, s.classifier.Name())
	}
	if err != nil {
		return Result{}, asClassificationError(err, s.classifier.Name())
	}
	return s.normalizer.Normalize(resp, symptoms), nil
}

func (s *Service) publishState(sessionID string, t *Tracker) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(sessionID, EventState, t.Snapshot())
}

// IsTimeout reports whether err is a classification that ran out of time.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTransport) && timedOut(err)
}
