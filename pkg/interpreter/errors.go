package interpreter

import (
	"fmt"

	"manipula/interpreter-go/pkg/token"
)

// RuntimeError aborts the current run. Err wraps one of the runtime package
// sentinels, so callers can match with errors.Is.
type RuntimeError struct {
	Line   int
	Lexeme string
	Err    error
}

func (e *RuntimeError) Error() string {
	if e.Lexeme == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d at '%s': %v", e.Line, e.Lexeme, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func errorAt(tok token.Token, err error) error {
	return &RuntimeError{Line: tok.Line, Lexeme: tok.Lexeme, Err: err}
}

// errorfAt wraps kind with a formatted detail message.
func errorfAt(tok token.Token, kind error, format string, args ...any) error {
	return errorAt(tok, fmt.Errorf("%w: "+format, append([]any{kind}, args...)...))
}
