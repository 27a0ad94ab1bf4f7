package triage

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind distinguishes where a classification attempt went wrong.
type ErrorKind string

const (
	KindInput     ErrorKind = "input"
	KindTransport ErrorKind = "transport"
	KindShape     ErrorKind = "shape"
	KindSemantic  ErrorKind = "semantic"
)

// Sentinels for errors.Is against a *ClassificationError of the matching kind.
var (
	ErrInput     = errors.New("invalid triage input")
	ErrTransport = errors.New("classification service unreachable")
	ErrShape     = errors.New("malformed classification response")
	ErrSemantic  = errors.New("unrecognized classification content")
)

// State machine errors.
var (
	ErrSubmissionInFlight = errors.New("a triage submission is already in progress")
	ErrNothingToConfirm   = errors.New("no classification awaiting confirmation")
	ErrStale              = errors.New("triage submission superseded")
	ErrNoResult           = errors.New("no confirmed triage result")
)

// ClassificationError is returned for every failed submission.
type ClassificationError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *ClassificationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("triage %s error (%s): %v", e.Kind, e.Provider, e.Err)
	}
	return fmt.Sprintf("triage %s error: %v", e.Kind, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Is matches the sentinel for e's kind.
func (e *ClassificationError) Is(target error) bool {
	switch e.Kind {
	case KindInput:
		return target == ErrInput
	case KindTransport:
		return target == ErrTransport
	case KindShape:
		return target == ErrShape
	case KindSemantic:
		return target == ErrSemantic
	}
	return false
}

// KindOf extracts the error kind, if err is a classification error.
func KindOf(err error) (ErrorKind, bool) {
	var ce *ClassificationError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

func inputError(format string, args ...any) error {
	return &ClassificationError{Kind: KindInput, Err: fmt.Errorf(format, args...)}
}

func shapeError(format string, args ...any) error {
	return &ClassificationError{Kind: KindShape, Err: fmt.Errorf(format, args...)}
}

func semanticError(format string, args ...any) error {
	return &ClassificationError{Kind: KindSemantic, Err: fmt.Errorf(format, args...)}
}

func transportError(err error) error {
	return &ClassificationError{Kind: KindTransport, Err: err}
}

// asClassificationError wraps any error a classifier returned so callers
// always see a *ClassificationError. Unrecognized errors, including context
// cancellation and deadlines, count as transport failures.
func asClassificationError(err error, provider string) *ClassificationError {
	var ce *ClassificationError
	if errors.As(err, &ce) {
		out := *ce
		if out.Provider == "" {
			out.Provider = provider
		}
		return &out
	}
	return &ClassificationError{Kind: KindTransport, Provider: provider, Err: err}
}

// timedOut reports whether err came from a context deadline.
func timedOut(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
