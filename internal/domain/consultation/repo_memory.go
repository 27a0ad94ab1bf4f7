package consultation

import (
	"context"
	"sync"
)

type memoryRepo struct {
	mu    sync.RWMutex
	store map[string]Consultation
}

func NewMemoryRepo() Repository {
	return &memoryRepo{store: make(map[string]Consultation)}
}

func (r *memoryRepo) Current(_ context.Context, sessionID string) (*Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.store[sessionID]
	if !ok {
		return nil, ErrNoConsultation
	}
	c.Messages = append([]Message(nil), c.Messages...)
	return &c, nil
}

func (r *memoryRepo) Save(_ context.Context, sessionID string, c *Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Messages = append([]Message(nil), c.Messages...)
	r.store[sessionID] = cp
	return nil
}

func (r *memoryRepo) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, sessionID)
	return nil
}
