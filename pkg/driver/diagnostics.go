package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"manipula/interpreter-go/pkg/interpreter"
)

// Diagnostic is one reportable problem, flattened from the error types of the
// pipeline stages.
type Diagnostic struct {
	Source  string
	Phase   string // scan, parse, runtime or "" for anything else
	Line    int
	Message string
}

func (d Diagnostic) location() string {
	switch {
	case d.Source != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d", d.Source, d.Line)
	case d.Line > 0:
		return fmt.Sprintf("line %d", d.Line)
	default:
		return d.Source
	}
}

// Diagnostics flattens err into source-ordered diagnostics.
func Diagnostics(err error) []Diagnostic {
	if err == nil {
		return nil
	}
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		out := make([]Diagnostic, 0, len(compileErr.Scan)+len(compileErr.Parse))
		for _, e := range compileErr.Scan {
			msg := e.Err.Error()
			if e.Lexeme != "" {
				msg += fmt.Sprintf(" %q", e.Lexeme)
			}
			out = append(out, Diagnostic{Source: compileErr.Name, Phase: "scan", Line: e.Line, Message: msg})
		}
		for _, e := range compileErr.Parse {
			where := fmt.Sprintf("at '%s'", e.Token.Lexeme)
			if e.Token.Lexeme == "" {
				where = "at end"
			}
			out = append(out, Diagnostic{Source: compileErr.Name, Phase: "parse", Line: e.Token.Line, Message: where + ": " + e.Msg})
		}
		return out
	}
	var rtErr *interpreter.RuntimeError
	if errors.As(err, &rtErr) {
		d := Diagnostic{Phase: "runtime", Line: rtErr.Line, Message: rtErr.Err.Error()}
		if rtErr.Lexeme != "" {
			d.Message = fmt.Sprintf("at '%s': %v", rtErr.Lexeme, rtErr.Err)
		}
		var runErr *RunError
		if errors.As(err, &runErr) {
			d.Source = runErr.Name
		}
		return []Diagnostic{d}
	}
	return []Diagnostic{{Message: err.Error()}}
}

// WriteDiagnostics prints each diagnostic of err on its own line as
// `source:line: error: message`, colouring according to mode.
func WriteDiagnostics(w io.Writer, err error, mode ColorMode) error {
	label := color.New(color.FgRed, color.Bold)
	loc := color.New(color.Bold)
	switch mode {
	case ColorAlways:
		label.EnableColor()
		loc.EnableColor()
	case ColorNever:
		label.DisableColor()
		loc.DisableColor()
	}
	for _, d := range Diagnostics(err) {
		prefix := ""
		if where := d.location(); where != "" {
			prefix = loc.Sprint(where+":") + " "
		}
		if _, werr := fmt.Fprintf(w, "%s%s %s\n", prefix, label.Sprint(phaseLabel(d.Phase)), d.Message); werr != nil {
			return werr
		}
	}
	return nil
}

func phaseLabel(phase string) string {
	if phase == "" {
		return "error:"
	}
	return phase + " error:"
}
