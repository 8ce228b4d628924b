package load

import (
	"errors"
	"strings"
)

// ErrSyntax indicates malformed table source text.
var ErrSyntax = errors.New("langtab: syntax error")

// SyntaxError reports malformed table, category or entry syntax.
type SyntaxError struct {
	Pos     Position
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() || e.Pos.Filename != "" {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("langtab: syntax error")
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// IsSyntaxError reports whether the error is a SyntaxError.
func IsSyntaxError(err error) bool {
	var synErr *SyntaxError
	return errors.As(err, &synErr)
}
