package medication

import (
	"context"
	"sync"
)

type memoryRepo struct {
	mu    sync.Mutex
	store map[string][]Prescription
	seed  func() []Prescription
}

// NewMemoryRepo returns a Repository that starts every session with the Seed
// prescription.
func NewMemoryRepo() Repository {
	return &memoryRepo{
		store: make(map[string][]Prescription),
		seed:  func() []Prescription { return []Prescription{Seed()} },
	}
}

// sessionLocked must be called with mu held.
func (r *memoryRepo) sessionLocked(sessionID string) []Prescription {
	list, ok := r.store[sessionID]
	if !ok {
		list = r.seed()
		r.store[sessionID] = list
	}
	return list
}

func (r *memoryRepo) List(_ context.Context, sessionID string) ([]Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sessionLocked(sessionID)
	out := make([]Prescription, len(list))
	for i, p := range list {
		out[i] = clone(p)
	}
	return out, nil
}

func (r *memoryRepo) Prepend(_ context.Context, sessionID string, p Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sessionLocked(sessionID)
	r.store[sessionID] = append([]Prescription{clone(p)}, list...)
	return nil
}

func (r *memoryRepo) Get(_ context.Context, sessionID, id string) (*Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.sessionLocked(sessionID) {
		if p.ID == id {
			out := clone(p)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) Update(_ context.Context, sessionID string, p Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sessionLocked(sessionID)
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = clone(p)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryRepo) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, sessionID)
	return nil
}

func clone(p Prescription) Prescription {
	p.Items = append([]Item(nil), p.Items...)
	return p
}
