package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	// IdleSince lists sessions not seen since cutoff.
	IdleSince(ctx context.Context, cutoff time.Time) ([]string, error)
}
