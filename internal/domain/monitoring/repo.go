package monitoring

import "context"

// Repository keeps each session's rolling series.
type Repository interface {
	Series(ctx context.Context, sessionID string) ([]Point, error)
	Append(ctx context.Context, sessionID string, p Point) ([]Point, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
