package driver

import (
	"fmt"
	"strings"

	"manipula/interpreter-go/pkg/parser"
	"manipula/interpreter-go/pkg/scanner"
)

// CompileError reports every scan and parse diagnostic of one source. A
// program that produced a CompileError is never executed or rendered.
type CompileError struct {
	Name  string
	Scan  scanner.ErrorList
	Parse parser.ErrorList
}

func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d scan error(s), %d parse error(s)", e.Name, len(e.Scan), len(e.Parse))
	for _, err := range e.Scan {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	for _, err := range e.Parse {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *CompileError) Unwrap() []error {
	var out []error
	if len(e.Scan) > 0 {
		out = append(out, e.Scan)
	}
	if len(e.Parse) > 0 {
		out = append(out, e.Parse)
	}
	return out
}

// RunError ties a runtime failure to the source it came from.
type RunError struct {
	Name string
	Err  error
}

func (e *RunError) Error() string { return e.Name + ": " + e.Err.Error() }

func (e *RunError) Unwrap() error { return e.Err }
