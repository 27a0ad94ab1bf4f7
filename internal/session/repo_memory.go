package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryRepo struct {
	mu    sync.RWMutex
	store map[string]Session
}

func NewMemoryRepo() Repository {
	return &memoryRepo{store: make(map[string]Session)}
}

func (r *memoryRepo) Create(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[s.ID]; ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	r.store[s.ID] = *s
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *memoryRepo) Update(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[s.ID]; !ok {
		return ErrNotFound
	}
	r.store[s.ID] = *s
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, id)
	return nil
}

func (r *memoryRepo) IdleSince(_ context.Context, cutoff time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, s := range r.store {
		if s.LastSeen.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
