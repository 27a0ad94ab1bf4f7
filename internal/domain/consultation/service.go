package consultation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akmtwell/telehealth/internal/domain/identity"
	"github.com/akmtwell/telehealth/internal/domain/medication"
	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/akmtwell/telehealth/internal/triage"
)

// ResultSource provides the session's confirmed triage, if any.
type ResultSource interface {
	LatestResult(ctx context.Context, sessionID string) (triage.Result, error)
}

// Prescriber issues prescriptions written during a consultation.
type Prescriber interface {
	Issue(ctx context.Context, sessionID, doctorName string, items []medication.Item) (medication.Prescription, error)
}

type Service struct {
	repo       Repository
	results    ResultSource
	prescriber Prescriber
	catalog    *i18n.Catalog
	logger     zerolog.Logger
	now        func() time.Time

	// mu serializes read-modify-write cycles on consultations.
	mu sync.Mutex
}

func NewService(repo Repository, results ResultSource, prescriber Prescriber, catalog *i18n.Catalog, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		results:    results,
		prescriber: prescriber,
		catalog:    catalog,
		logger:     logger.With().Str("component", "consultation").Logger(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Doctors returns the whole directory. Doctors whose specialty matches the
// latest triage recommendation, in any supported language, are marked, but
// none are filtered out.
func (s *Service) Doctors(ctx context.Context, sessionID string) []Listing {
	var specialist string
	if res, err := s.results.LatestResult(ctx, sessionID); err == nil {
		specialist = triage.CanonicalSpecialist(res.RecommendedSpecialist)
	}
	out := make([]Listing, 0, len(Directory))
	for _, d := range Directory {
		out = append(out, Listing{
			Doctor:      d,
			Recommended: specialist != "" && strings.EqualFold(d.Specialty, specialist),
		})
	}
	return out
}

// Start opens a call with doctorID. The doctor's first message is the
// latest triage summary, or a localized greeting when there is none.
func (s *Service) Start(ctx context.Context, sessionID, doctorID string, lang i18n.Language) (*Consultation, error) {
	doc, err := FindDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	if !doc.Online {
		return nil, ErrDoctorOffline
	}
	opening := s.catalog.T(lang, "consult_greeting")
	if res, err := s.results.LatestResult(ctx, sessionID); err == nil && res.Summary != "" {
		opening = res.Summary
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, err := s.repo.Current(ctx, sessionID); err == nil && cur.State == StateInCall {
		return nil, ErrCallInProgress
	}

	now := s.now()
	c := &Consultation{
		ID:        uuid.New().String(),
		Doctor:    doc,
		State:     StateInCall,
		Messages:  []Message{{Sender: doc.Name, Text: opening, SentAt: now}},
		StartedAt: now,
	}
	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("save consultation: %w", err)
	}
	s.logger.Info().Str("session_id", sessionID).Str("doctor_id", doc.ID).Msg("consultation started")
	return c, nil
}

func (s *Service) Current(ctx context.Context, sessionID string) (*Consultation, error) {
	return s.repo.Current(ctx, sessionID)
}

// SendMessage appends a chat line from sender to the active call.
func (s *Service) SendMessage(ctx context.Context, sessionID, sender, text string) (*Consultation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	return s.mutate(ctx, sessionID, func(c *Consultation) error {
		if c.State != StateInCall {
			return ErrNotInCall
		}
		c.Messages = append(c.Messages, Message{Sender: sender, Text: text, SentAt: s.now()})
		return nil
	})
}

// End hangs up. A doctor is then asked for a SOAP note; a patient's
// consultation closes immediately.
func (s *Service) End(ctx context.Context, sessionID string, user identity.User) (*Consultation, error) {
	return s.mutate(ctx, sessionID, func(c *Consultation) error {
		if c.State != StateInCall {
			return ErrNotInCall
		}
		ended := s.now()
		c.EndedAt = &ended
		if user.IsDoctor() {
			c.State = StateSoapPending
		} else {
			c.State = StateClosed
		}
		return nil
	})
}

// SaveSoap records the doctor's note and issues a prescription from items.
// Items without a name are dropped; when none remain no prescription is
// issued and the note is still saved.
func (s *Service) SaveSoap(ctx context.Context, sessionID string, user identity.User, note SoapNote, items []medication.Item) (*Consultation, *medication.Prescription, error) {
	if !user.IsDoctor() {
		return nil, nil, ErrDoctorOnly
	}
	var rx *medication.Prescription
	c, err := s.mutate(ctx, sessionID, func(c *Consultation) error {
		if c.State != StateSoapPending {
			return ErrNoPendingNote
		}
		p, err := s.prescriber.Issue(ctx, sessionID, user.Name, items)
		switch {
		case err == nil:
			rx = &p
			c.PrescriptionID = p.ID
		case errors.Is(err, medication.ErrNoItems):
		default:
			return fmt.Errorf("issue prescription: %w", err)
		}
		c.Note = &note
		c.State = StateClosed
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().Str("session_id", sessionID).Str("consultation_id", c.ID).Bool("prescription", rx != nil).Msg("SOAP note saved")
	return c, rx, nil
}

// Forget drops the session's consultation.
func (s *Service) Forget(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to drop consultation")
	}
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Consultation) error) (*Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("save consultation: %w", err)
	}
	return c, nil
}
