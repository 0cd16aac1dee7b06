package oracle

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind identifies which stage of synthesis failed.
type ErrorKind string

const (
	// KindInvalidInput covers malformed truth tables.
	KindInvalidInput ErrorKind = "INVALID_INPUT"

	// KindSynthesisFailure covers oracle construction, decomposition and verification.
	KindSynthesisFailure ErrorKind = "SYNTHESIS_FAILURE"

	// KindRenderFailure covers drawing and PNG encoding.
	KindRenderFailure ErrorKind = "RENDER_FAILURE"
)

// Error is a synthesis failure tagged with the stage that produced it.
// Reports collapse every kind into one message; the kind is kept for logs and tests.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of a synthesis error, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}

// failureMessage is the user-facing text for any synthesis error.
func failureMessage(err error) string {
	return fmt.Sprintf("synthesis failed: %v", err)
}
