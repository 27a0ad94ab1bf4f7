package consultation

import "context"

// Repository keeps the current consultation of each session.
type Repository interface {
	Current(ctx context.Context, sessionID string) (*Consultation, error)
	Save(ctx context.Context, sessionID string, c *Consultation) error
	DeleteSession(ctx context.Context, sessionID string) error
}
