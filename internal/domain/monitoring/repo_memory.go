package monitoring

import (
	"context"
	"sync"
)

type memoryRepo struct {
	mu     sync.Mutex
	series map[string][]Point
}

func NewMemoryRepo() Repository {
	return &memoryRepo{series: make(map[string][]Point)}
}

func (r *memoryRepo) load(sessionID string) []Point {
	s, ok := r.series[sessionID]
	if !ok {
		s = Seed()
		r.series[sessionID] = s
	}
	return s
}

func (r *memoryRepo) Series(_ context.Context, sessionID string) ([]Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Point(nil), r.load(sessionID)...), nil
}

// Append adds p and drops the oldest points beyond Window.
func (r *memoryRepo) Append(_ context.Context, sessionID string, p Point) ([]Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := append(r.load(sessionID), p)
	if len(s) > Window {
		s = append([]Point(nil), s[len(s)-Window:]...)
	}
	r.series[sessionID] = s
	return append([]Point(nil), s...), nil
}

func (r *memoryRepo) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.series, sessionID)
	return nil
}
