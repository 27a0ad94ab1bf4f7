package triage

import (
	"context"
	"errors"
	"sync"
)

type memoryRepo struct {
	mu       sync.RWMutex
	trackers map[string]*Tracker
}

// NewMemoryRepo returns a process-local Repository.
func NewMemoryRepo() Repository {
	return &memoryRepo{trackers: make(map[string]*Tracker)}
}

func (r *memoryRepo) Tracker(_ context.Context, sessionID string) (*Tracker, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	r.mu.RLock()
	t, ok := r.trackers[sessionID]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.trackers[sessionID]; ok {
		return t, nil
	}
	t = NewTracker()
	r.trackers[sessionID] = t
	return t, nil
}

func (r *memoryRepo) Find(_ context.Context, sessionID string) (*Tracker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trackers[sessionID]
	return t, ok
}

func (r *memoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	t, ok := r.trackers[sessionID]
	delete(r.trackers, sessionID)
	r.mu.Unlock()
	if ok {
		t.Reset()
	}
	return nil
}
