package medication

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	EventAdded         = "prescription.added"
	EventStatusChanged = "prescription.status"
)

// Publisher pushes session-scoped events to connected clients.
type Publisher interface {
	Publish(sessionID, event string, payload any)
}

type Service struct {
	repo      Repository
	logger    zerolog.Logger
	publisher Publisher
	now       func() time.Time
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "medication").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetPublisher(p Publisher) { s.publisher = p }

// Issue records a new ordered prescription from doctorName. Items without a
// name are dropped; if none remain, ErrNoItems is returned and nothing is
// stored.
func (s *Service) Issue(ctx context.Context, sessionID, doctorName string, items []Item) (Prescription, error) {
	clean := CleanItems(items)
	if len(clean) == 0 {
		return Prescription{}, ErrNoItems
	}
	now := s.now()
	p := Prescription{
		ID:         "rx-" + uuid.New().String(),
		DoctorName: doctorName,
		Date:       now.Format(DateLayout),
		Status:     StatusOrdered,
		Items:      clean,
		CreatedAt:  now,
	}
	if err := s.repo.Prepend(ctx, sessionID, p); err != nil {
		return Prescription{}, fmt.Errorf("store prescription: %w", err)
	}
	s.logger.Info().Str("session_id", sessionID).Str("prescription_id", p.ID).Int("items", len(clean)).Msg("prescription issued")
	if s.publisher != nil {
		s.publisher.Publish(sessionID, EventAdded, p)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]Prescription, error) {
	return s.repo.List(ctx, sessionID)
}

func (s *Service) Get(ctx context.Context, sessionID, id string) (*Prescription, error) {
	return s.repo.Get(ctx, sessionID, id)
}

// UpdateStatus moves a prescription forward through ordered, processed and
// delivered.
func (s *Service) UpdateStatus(ctx context.Context, sessionID, id string, status Status) (*Prescription, error) {
	p, err := s.repo.Get(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(p.Status, status); err != nil {
		return nil, err
	}
	p.Status = status
	if err := s.repo.Update(ctx, sessionID, *p); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		s.publisher.Publish(sessionID, EventStatusChanged, p)
	}
	return p, nil
}

// ItemCount counts medication items across the session's prescriptions.
func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	list, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range list {
		n += len(p.Items)
	}
	return n, nil
}

// Forget drops the session's prescriptions.
func (s *Service) Forget(ctx context.Context, sessionID string) {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to drop prescriptions")
	}
}
