package parser

import (
	"errors"
	"fmt"
	"strings"

	"manipula/interpreter-go/pkg/token"
)

var (
	// ErrUnexpectedToken marks a failed expectation: the parser needed one
	// token kind and found another.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrInvalidAssignmentTarget marks `=` applied to anything but a single
	// identifier inside an expression.
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")

	// ErrInvalidRange marks a `[a .. N]` list whose bounds cannot be expanded.
	ErrInvalidRange = errors.New("invalid range shorthand")
)

// Error is one parse diagnostic, located at the offending token.
type Error struct {
	Token token.Token
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	where := fmt.Sprintf("at %q", e.Token.Lexeme)
	if e.Token.Type == token.EOF {
		where = "at end"
	}
	return fmt.Sprintf("line %d %s: %s", e.Token.Line, where, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorList collects parse errors in the order they were found.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no parse errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d parse errors:", len(l))
	for _, e := range l {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

func (l ErrorList) Unwrap() []error {
	out := make([]error, len(l))
	for i, e := range l {
		out[i] = e
	}
	return out
}

// Err returns nil for an empty list, the list otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
