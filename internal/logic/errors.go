package logic

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmptyExpression is returned by Parse for an expression with no terms.
// FromTruthTable produces the empty expression for an all-false table.
var ErrEmptyExpression = errors.New("empty expression")

// InvalidInputError reports a truth table that cannot name a boolean function.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid truth table %q: %s", e.Input, e.Reason)
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// SyntaxError reports a malformed expression. Pos is a byte offset into the input.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Message)
}
