package triage

import (
	"context"
	"sync"
)

// Tracker holds one session's triage flow. It is safe for concurrent use.
//
// Every Begin and Reset bumps the version; Complete and Fail carry the
// version their submission started with and are rejected with ErrStale once
// it is no longer current.
type Tracker struct {
	mu       sync.Mutex
	state    State
	version  uint64
	symptoms string
	review   *ClassificationResponse
	result   *Result
	failure  *Failure
	cancel   context.CancelFunc
}

// NewTracker returns an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{state: StateIdle}
}

// Begin moves to Submitting and returns a context that is cancelled by Reset
// or by the next terminal transition.
func (t *Tracker) Begin(parent context.Context, symptoms string) (context.Context, uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateSubmitting {
		return nil, 0, ErrSubmissionInFlight
	}

	ctx, cancel := context.WithCancel(parent)
	t.version++
	t.state = StateSubmitting
	t.symptoms = symptoms
	t.review = nil
	t.failure = nil
	t.cancel = cancel
	return ctx, t.version, nil
}

// Complete records a classifier answer for review.
func (t *Tracker) Complete(version uint64, resp ClassificationResponse) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if version != t.version || t.state != StateSubmitting {
		return ErrStale
	}
	t.release()
	t.state = StateReviewing
	t.review = &resp
	return nil
}

// Fail records a failed submission. Nothing is committed.
func (t *Tracker) Fail(version uint64, f Failure) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if version != t.version || t.state != StateSubmitting {
		return ErrStale
	}
	t.release()
	t.state = StateFailed
	t.failure = &f
	return nil
}

// Confirm normalizes the pending review into the session's result, replacing
// any earlier one.
func (t *Tracker) Confirm(n Normalizer) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateReviewing || t.review == nil {
		return Result{}, ErrNothingToConfirm
	}
	res := n.Normalize(*t.review, t.symptoms)
	t.result = &res
	t.review = nil
	t.state = StateConfirmed
	return res, nil
}

// Reset cancels any in-flight submission and returns to Idle. The confirmed
// result is kept.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.release()
	t.version++
	t.state = StateIdle
	t.symptoms = ""
	t.review = nil
	t.failure = nil
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{State: t.state, Version: t.version, Symptoms: t.symptoms}
	if t.review != nil {
		r := *t.review
		s.Review = &r
	}
	if t.result != nil {
		r := *t.result
		s.Result = &r
	}
	if t.failure != nil {
		f := *t.failure
		s.Failure = &f
	}
	return s
}

// Result returns the confirmed result, if any.
func (t *Tracker) Result() (Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.result == nil {
		return Result{}, false
	}
	return *t.result, true
}

// release must be called with mu held.
func (t *Tracker) release() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
