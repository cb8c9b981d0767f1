package core

import (
	"errors"
	"fmt"
)

var (
	// ErrModelNotTrained is returned by Predict before any successful Train
	ErrModelNotTrained = errors.New("classifier model not trained")

	// ErrMalformedInput marks unparseable email or URL input. It is always
	// recovered locally with a zero score and never reaches callers of
	// AnalyzeEmail.
	ErrMalformedInput = errors.New("malformed input")
)

// PersistenceError wraps a failure to save or load classifier state. A load
// failure leaves the in-memory state untouched.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("classifier %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
