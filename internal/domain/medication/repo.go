package medication

import "context"

// Repository stores prescriptions per session, newest first.
type Repository interface {
	// List returns the session's prescriptions, seeding a new session.
	List(ctx context.Context, sessionID string) ([]Prescription, error)
	// Prepend adds p ahead of the existing prescriptions.
	Prepend(ctx context.Context, sessionID string, p Prescription) error
	Get(ctx context.Context, sessionID, id string) (*Prescription, error)
	Update(ctx context.Context, sessionID string, p Prescription) error
	DeleteSession(ctx context.Context, sessionID string) error
}
