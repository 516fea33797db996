package interpreter

import (
	"io"

	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/runtime"
)

// Interpreter walks a parsed program depth first. It holds no bindings of
// its own: every call receives the Environment of the current run, so one
// Interpreter can serve runs that each own a separate Environment.
type Interpreter struct {
	out io.Writer
}

// New returns an interpreter that writes PRINT output to out.
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{out: out}
}

// Interpret executes every statement of program in order. The first runtime
// error stops the run; output already written is left as is.
func (i *Interpreter) Interpret(program *ast.Program, env *runtime.Environment) error {
	for _, stmt := range program.Statements {
		if err := i.Execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs a single statement.
func (i *Interpreter) Execute(stmt ast.Statement, env *runtime.Environment) error {
	return i.evaluateStatement(stmt, env)
}

// Evaluate computes the value of an expression.
func (i *Interpreter) Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	return i.evaluateExpression(expr, env)
}
