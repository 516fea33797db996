package scanner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedCharacter marks a character outside the lexical surface.
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// ErrUnterminatedString marks a string literal missing its closing quote.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrUnterminatedComment marks a brace comment still open at end of input.
	ErrUnterminatedComment = errors.New("unterminated comment")

	// ErrUnmatchedBrace marks a '}' with no open comment.
	ErrUnmatchedBrace = errors.New("unmatched '}'")
)

// Error is a single scan diagnostic.
type Error struct {
	Line   int
	Lexeme string
	Err    error
}

func (e *Error) Error() string {
	if e.Lexeme == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v %q", e.Line, e.Err, e.Lexeme)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorList collects scan errors in source order.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no scan errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d scan errors:", len(l))
	for _, e := range l {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes every entry to errors.Is / errors.As.
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
