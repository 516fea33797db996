package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/token"
)

// truthyHelper is the name of the emitted function that applies Manipula
// truthiness: only NULL and FALSE are false, so 0, '' and [] stay true.
const truthyHelper = "_truthy"

// lhsName holds the left operand of a rendered AND/OR so it is evaluated once.
const lhsName = "_lhs"

// Encode writes program to w as equivalent Python source.
func Encode(w io.Writer, program *ast.Program, opt *Options) error {
	fopt := opt.normalize()
	var body bytes.Buffer
	wr := &writer{w: &body, indent: fopt.Indent}
	if err := wr.writeProgram(program); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if wr.needsTruthy {
		prelude := "def " + truthyHelper + "(x):\n" +
			fopt.Indent + "return x is not None and x is not False\n\n\n"
		if _, err := bw.WriteString(prelude); err != nil {
			return err
		}
	}
	if _, err := bw.Write(body.Bytes()); err != nil {
		return err
	}

	return bw.Flush()
}

// Format renders program to bytes.
func Format(program *ast.Program, opt *Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, program, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writer writes Python statements, one per line.
type writer struct {
	w           io.Writer // Writer to write to
	indent      string    // Indentation string
	cache       []string  // Cache of indentation strings
	level       int       // Current nesting level
	needsTruthy bool      // Set once any output calls truthyHelper
}

func (w *writer) writeProgram(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if err := w.writeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		// A bare assignment is a statement in Python; no walrus needed.
		if assign, ok := s.Expression.(*ast.Assign); ok {
			value, err := w.expression(assign.Value)
			if err != nil {
				return err
			}
			return w.writeLine(assign.Name.Lexeme + " = " + value)
		}
		expr, err := w.expression(s.Expression)
		if err != nil {
			return err
		}
		return w.writeLine(expr)
	case *ast.Print:
		expr, err := w.expression(s.Expression)
		if err != nil {
			return err
		}
		return w.writeLine("print(" + expr + ")")
	case *ast.VarDecl:
		value, err := w.expression(s.Initializer)
		if err != nil {
			return err
		}
		return w.writeLine(s.Target.Name() + " = " + value)
	case *ast.If:
		return w.writeIf(s)
	case *ast.While:
		cond, err := w.condition(s.Condition)
		if err != nil {
			return err
		}
		return w.writeHeaderAndBlock("while "+cond+":", s.Body)
	case *ast.For:
		header, err := w.forHeader(s.Decl)
		if err != nil {
			return err
		}
		return w.writeHeaderAndBlock(header, s.Body)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedNode, stmt.NodeType())
	}
}

func (w *writer) writeIf(s *ast.If) error {
	cond, err := w.condition(s.Condition)
	if err != nil {
		return err
	}
	if err := w.writeHeaderAndBlock("if "+cond+":", s.Then); err != nil {
		return err
	}
	for _, clause := range s.ElseIfs {
		cond, err := w.condition(clause.Condition)
		if err != nil {
			return err
		}
		if err := w.writeHeaderAndBlock("elif "+cond+":", clause.Body); err != nil {
			return err
		}
	}
	if s.Else != nil {
		return w.writeHeaderAndBlock("else:", s.Else)
	}
	return nil
}

// writeHeaderAndBlock writes a compound statement header and its body one
// level deeper. Python needs at least one statement, hence pass.
func (w *writer) writeHeaderAndBlock(header string, body *ast.Block) error {
	if err := w.writeLine(header); err != nil {
		return err
	}
	w.level++
	defer func() { w.level-- }()
	if body == nil || len(body.Statements) == 0 {
		return w.writeLine("pass")
	}
	for _, stmt := range body.Statements {
		if err := w.writeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// forHeader turns the loop declaration into an iteration header. A range
// becomes range(lower, upper + 1) since TO includes its upper bound.
func (w *writer) forHeader(decl *ast.VarDecl) (string, error) {
	name := decl.Target.Name()
	if rng, ok := decl.Initializer.(*ast.Range); ok {
		args, err := w.rangeArgs(rng)
		if err != nil {
			return "", err
		}
		return "for " + name + " in range(" + args + "):", nil
	}
	iterable, err := w.expression(decl.Initializer)
	if err != nil {
		return "", err
	}
	return "for " + name + " in " + iterable + ":", nil
}

func (w *writer) writeLine(s string) error {
	if _, err := io.WriteString(w.w, w.indentFor(w.level)); err != nil {
		return err
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		return err
	}
	_, err := io.WriteString(w.w, "\n")
	return err
}

// indentFor returns the indentation string for level.
func (w *writer) indentFor(level int) string {
	if level <= 0 {
		return ""
	}

	if len(w.cache) <= level {
		w.cache = append(w.cache, make([]string, level-len(w.cache)+1)...)
	}
	if w.cache[level] == "" {
		w.cache[level] = strings.Repeat(w.indent, level)
	}

	return w.cache[level]
}

// condition renders expr where Python tests truthiness. Values not known to
// be booleans go through truthyHelper.
func (w *writer) condition(expr ast.Expression) (string, error) {
	s, err := w.expression(expr)
	if err != nil {
		return "", err
	}
	if isBoolean(expr) {
		return s, nil
	}
	w.needsTruthy = true
	return truthyHelper + "(" + s + ")", nil
}

// expression renders expr as a Python expression.
func (w *writer) expression(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literal(e.Value)
	case *ast.Grouping:
		inner, err := w.expression(e.Expression)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *ast.Unary:
		switch e.Operator.Type {
		case token.BANG, token.NOT:
			operand, err := w.condition(e.Right)
			if err != nil {
				return "", err
			}
			return "not " + operand, nil
		case token.MINUS:
			operand, err := w.operandOf(e.Right)
			if err != nil {
				return "", err
			}
			return "-" + operand, nil
		}
		return "", fmt.Errorf("%w: unary operator %q", ErrUnsupportedNode, e.Operator.Lexeme)
	case *ast.Binary:
		return w.binary(e)
	case *ast.Logical:
		return w.logical(e)
	case *ast.Assign:
		value, err := w.expression(e.Value)
		if err != nil {
			return "", err
		}
		return "(" + e.Name.Lexeme + " := " + value + ")", nil
	case *ast.Variable:
		return e.Name(), nil
	case *ast.List:
		parts := make([]string, 0, len(e.Elements))
		for _, el := range e.Elements {
			part, err := w.expression(el)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case *ast.Range:
		args, err := w.rangeArgs(e)
		if err != nil {
			return "", err
		}
		return "list(range(" + args + "))", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedNode, expr.NodeType())
	}
}

// binary renders a binary operator. Python chains comparisons, so a
// comparison used as an operand of another one is parenthesized.
func (w *writer) binary(e *ast.Binary) (string, error) {
	l, err := w.operandOf(e.Left)
	if err != nil {
		return "", err
	}
	r, err := w.operandOf(e.Right)
	if err != nil {
		return "", err
	}
	if isComparison(e.Operator.Type) {
		if isComparisonExpr(e.Left) {
			l = "(" + l + ")"
		}
		if isComparisonExpr(e.Right) {
			r = "(" + r + ")"
		}
	}
	return l + " " + pythonOperator(e.Operator) + " " + r, nil
}

// logical renders AND/OR. Both yield one of their operands, chosen by
// Manipula truthiness. A left operand known to be a boolean tests the same in
// Python, so plain and/or is exact; anything else is tested through
// truthyHelper and kept in lhsName so it is evaluated once.
func (w *writer) logical(e *ast.Logical) (string, error) {
	l, err := w.operandOf(e.Left)
	if err != nil {
		return "", err
	}
	r, err := w.operandOf(e.Right)
	if err != nil {
		return "", err
	}
	if isBoolean(e.Left) {
		return l + " " + pythonOperator(e.Operator) + " " + r, nil
	}
	w.needsTruthy = true
	test := truthyHelper + "(" + lhsName + " := " + l + ")"
	if e.Operator.Type == token.OR {
		return "(" + lhsName + " if " + test + " else " + r + ")", nil
	}
	return "(" + r + " if " + test + " else " + lhsName + ")", nil
}

// operandOf parenthesizes a negation used as an operand: Python's `not`
// binds looser than comparison and arithmetic, unlike NOT and '!'.
func (w *writer) operandOf(expr ast.Expression) (string, error) {
	s, err := w.expression(expr)
	if err != nil {
		return "", err
	}
	if u, ok := expr.(*ast.Unary); ok && u.Operator.Type != token.MINUS {
		return "(" + s + ")", nil
	}
	return s, nil
}

// rangeArgs renders the arguments of range() for an inclusive TO. A literal
// upper bound is folded, so 1 TO 3 gives "1, 4".
func (w *writer) rangeArgs(rng *ast.Range) (string, error) {
	lower, err := w.expression(rng.Lower)
	if err != nil {
		return "", err
	}
	if lit, ok := rng.Upper.(*ast.Literal); ok {
		if v, ok := lit.Value.(float64); ok {
			return lower + ", " + formatNumber(v+1), nil
		}
	}
	upper, err := w.operandOf(rng.Upper)
	if err != nil {
		return "", err
	}
	return lower + ", " + upper + " + 1", nil
}

func isComparison(tt token.Type) bool {
	switch tt {
	case token.EQUAL_EQUAL, token.BANG_EQUAL, token.LESS, token.LESS_EQUAL,
		token.GREATER, token.GREATER_EQUAL, token.IN:
		return true
	default:
		return false
	}
}

func isComparisonExpr(expr ast.Expression) bool {
	b, ok := expr.(*ast.Binary)
	return ok && isComparison(b.Operator.Type)
}

// isBoolean reports whether expr always evaluates to TRUE or FALSE.
func isBoolean(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Literal:
		_, ok := e.Value.(bool)
		return ok
	case *ast.Unary:
		return e.Operator.Type == token.NOT || e.Operator.Type == token.BANG
	case *ast.Binary:
		return isComparison(e.Operator.Type)
	case *ast.Grouping:
		return isBoolean(e.Expression)
	case *ast.Logical:
		return isBoolean(e.Left) && isBoolean(e.Right)
	case *ast.Assign:
		return isBoolean(e.Value)
	default:
		return false
	}
}

func pythonOperator(op token.Token) string {
	switch op.Type {
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.IN:
		return "in"
	case token.BANG_EQUAL:
		return "!="
	default:
		return op.Lexeme
	}
}
