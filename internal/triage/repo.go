package triage

import "context"

// Repository stores one Tracker per session.
type Repository interface {
	// Tracker returns the session's tracker, creating an idle one on first use.
	Tracker(ctx context.Context, sessionID string) (*Tracker, error)
	// Find returns the session's tracker without creating one.
	Find(ctx context.Context, sessionID string) (*Tracker, bool)
	Delete(ctx context.Context, sessionID string) error
}
