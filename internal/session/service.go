package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akmtwell/telehealth/internal/domain/identity"
	"github.com/akmtwell/telehealth/internal/platform/i18n"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 12 * time.Hour

// NavigateHook runs after a session changes view.
type NavigateHook func(ctx context.Context, sessionID string, from, to View)

// ExpireHook runs after a session is swept so dependent state can be dropped.
type ExpireHook func(ctx context.Context, sessionID string)

type Service struct {
	repo        Repository
	logger      zerolog.Logger
	defaultLang i18n.Language
	ttl         time.Duration
	now         func() time.Time

	// mu serializes read-modify-write cycles on sessions.
	mu         sync.Mutex
	onNavigate []NavigateHook
	onExpire   []ExpireHook
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		logger:      logger.With().Str("component", "session").Logger(),
		defaultLang: i18n.DefaultLanguage,
		ttl:         DefaultTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetDefaultLanguage sets the language of new sessions. Invalid values are
// ignored.
func (s *Service) SetDefaultLanguage(l i18n.Language) {
	if l.Valid() {
		s.defaultLang = l
	}
}

func (s *Service) SetTTL(d time.Duration) {
	if d > 0 {
		s.ttl = d
	}
}

func (s *Service) TTL() time.Duration { return s.ttl }

func (s *Service) OnNavigate(h NavigateHook) { s.onNavigate = append(s.onNavigate, h) }

func (s *Service) OnExpire(h ExpireHook) { s.onExpire = append(s.onExpire, h) }

// Create starts a session for the mock patient on the dashboard.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		Language:  s.defaultLang,
		User:      identity.MockPatient,
		View:      ViewDashboard,
		CreatedAt: now,
		LastSeen:  now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info().Str("session_id", sess.ID).Msg("session created")
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

// Touch marks the session as active and returns it.
func (s *Service) Touch(ctx context.Context, id string) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) error { return nil })
}

func (s *Service) SetLanguage(ctx context.Context, id, lang string) (*Session, error) {
	l, err := i18n.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(sess *Session) error {
		sess.Language = l
		return nil
	})
}

// ToggleRole swaps the session between the mock patient and mock doctor.
func (s *Service) ToggleRole(ctx context.Context, id string) (*Session, error) {
	sess, err := s.mutate(ctx, id, func(sess *Session) error {
		sess.User = identity.Toggle(sess.User)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("session_id", id).Str("role", string(sess.User.Role)).Msg("role switched")
	return sess, nil
}

// Navigate changes view. Unknown views land on the dashboard.
func (s *Service) Navigate(ctx context.Context, id, view string) (*Session, error) {
	to := ParseView(view)
	var from View
	sess, err := s.mutate(ctx, id, func(sess *Session) error {
		from = sess.View
		sess.View = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, h := range s.onNavigate {
		h(ctx, id, from, to)
	}
	return sess, nil
}

// Sweep removes sessions idle longer than the TTL and returns how many went.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.ttl)
	ids, err := s.repo.IdleSince(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list idle sessions: %w", err)
	}
	for _, id := range ids {
		if err := s.repo.Delete(ctx, id); err != nil {
			return 0, fmt.Errorf("delete session %s: %w", id, err)
		}
		for _, h := range s.onExpire {
			h(ctx, id)
		}
	}
	if len(ids) > 0 {
		s.logger.Info().Int("count", len(ids)).Msg("expired sessions swept")
	}
	return len(ids), nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error().Err(err).Msg("session sweep failed")
			}
		}
	}
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.LastSeen = s.now()
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
