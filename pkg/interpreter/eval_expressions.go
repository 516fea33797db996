package interpreter

import (
	"fmt"
	"strings"

	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/runtime"
	"manipula/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		val, err := runtime.FromLiteral(n.Value)
		if err != nil {
			return nil, errorAt(n.Token, err)
		}
		return val, nil
	case *ast.Grouping:
		return i.evaluateExpression(n.Expression, env)
	case *ast.Unary:
		return i.evaluateUnaryExpression(n, env)
	case *ast.Binary:
		return i.evaluateBinaryExpression(n, env)
	case *ast.Logical:
		return i.evaluateLogicalExpression(n, env)
	case *ast.Assign:
		return i.evaluateAssignment(n, env)
	case *ast.Variable:
		val, err := env.Get(n.Name())
		if err != nil {
			return nil, errorAt(n.Path[0], err)
		}
		return val, nil
	case *ast.List:
		elements := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			val, err := i.evaluateExpression(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return &runtime.ListValue{Elements: elements}, nil
	case *ast.Range:
		first, last, err := i.evaluateRangeBounds(n, env)
		if err != nil {
			return nil, err
		}
		if last-first >= MaxRangeLength {
			return nil, errorfAt(n.Operator, runtime.ErrInvalidRange, "'%s' would build more than %d numbers", n.Operator.Lexeme, MaxRangeLength)
		}
		elements := make([]runtime.Value, 0, max(last-first+1, 0))
		for v := first; v <= last; v++ {
			elements = append(elements, runtime.NumberValue{Val: float64(v)})
		}
		return &runtime.ListValue{Elements: elements}, nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case token.MINUS:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, errorfAt(expr.Operator, runtime.ErrTypeMismatch, "operand of unary '-' must be a number, got %s", operand.Kind())
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case token.BANG, token.NOT:
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	default:
		return nil, errorfAt(expr.Operator, runtime.ErrInvalidOperator, "'%s' is not a unary operator", expr.Operator.Lexeme)
	}
}

// Both operands are evaluated, left first, before the operator is applied.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	leftVal, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	rightVal, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	op := expr.Operator
	switch op.Type {
	case token.PLUS:
		if ls, ok := leftVal.(runtime.StringValue); ok {
			if rs, ok := rightVal.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
		l, r, ok := numberOperands(leftVal, rightVal)
		if !ok {
			return nil, errorfAt(op, runtime.ErrTypeMismatch, "operands of '%s' must be two numbers or two strings, got %s and %s", op.Lexeme, leftVal.Kind(), rightVal.Kind())
		}
		return runtime.NumberValue{Val: l + r}, nil
	case token.MINUS, token.STAR, token.SLASH:
		l, r, ok := numberOperands(leftVal, rightVal)
		if !ok {
			return nil, errorfAt(op, runtime.ErrTypeMismatch, "operands of '%s' must be numbers, got %s and %s", op.Lexeme, leftVal.Kind(), rightVal.Kind())
		}
		switch op.Type {
		case token.MINUS:
			return runtime.NumberValue{Val: l - r}, nil
		case token.STAR:
			return runtime.NumberValue{Val: l * r}, nil
		}
		if r == 0 {
			return nil, errorAt(op, runtime.ErrDivisionByZero)
		}
		return runtime.NumberValue{Val: l / r}, nil
	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		l, r, ok := numberOperands(leftVal, rightVal)
		if !ok {
			return nil, errorfAt(op, runtime.ErrTypeMismatch, "operands of '%s' must be numbers, got %s and %s", op.Lexeme, leftVal.Kind(), rightVal.Kind())
		}
		return runtime.BoolValue{Val: compareNumbers(op.Type, l, r)}, nil
	case token.EQUAL_EQUAL:
		return runtime.BoolValue{Val: runtime.Equal(leftVal, rightVal)}, nil
	case token.BANG_EQUAL:
		return runtime.BoolValue{Val: !runtime.Equal(leftVal, rightVal)}, nil
	case token.IN:
		return evaluateMembership(op, leftVal, rightVal)
	default:
		return nil, errorfAt(op, runtime.ErrInvalidOperator, "'%s' is not a binary operator", op.Lexeme)
	}
}

// OR and AND are kept apart: OR returns the left value when it is truthy,
// AND returns it when it is falsy. Otherwise both return the right value.
func (i *Interpreter) evaluateLogicalExpression(expr *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	leftVal, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case token.OR:
		if runtime.Truthy(leftVal) {
			return leftVal, nil
		}
		return i.evaluateExpression(expr.Right, env)
	case token.AND:
		if !runtime.Truthy(leftVal) {
			return leftVal, nil
		}
		return i.evaluateExpression(expr.Right, env)
	default:
		return nil, errorfAt(expr.Operator, runtime.ErrInvalidOperator, "'%s' is not a logical operator", expr.Operator.Lexeme)
	}
}

// evaluateAssignment rebinds an existing name and yields the assigned value.
func (i *Interpreter) evaluateAssignment(assign *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(assign.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(assign.Name.Lexeme, val); err != nil {
		return nil, errorAt(assign.Name, err)
	}
	return val, nil
}

// MaxRangeLength caps how many numbers a bare 'TO' may build into a list.
const MaxRangeLength = 1 << 24

// evaluateRangeBounds returns the bounds of a 'TO' as integers. Both must be
// whole numbers within ±MaxRangeBound so every step is exact.
func (i *Interpreter) evaluateRangeBounds(expr *ast.Range, env *runtime.Environment) (int64, int64, error) {
	lowerVal, err := i.evaluateExpression(expr.Lower, env)
	if err != nil {
		return 0, 0, err
	}
	upperVal, err := i.evaluateExpression(expr.Upper, env)
	if err != nil {
		return 0, 0, err
	}
	lower, upper, ok := numberOperands(lowerVal, upperVal)
	if !ok {
		return 0, 0, errorfAt(expr.Operator, runtime.ErrTypeMismatch, "bounds of 'TO' must be numbers, got %s and %s", lowerVal.Kind(), upperVal.Kind())
	}
	for _, bound := range []float64{lower, upper} {
		if !runtime.IsRangeBound(bound) {
			return 0, 0, errorfAt(expr.Operator, runtime.ErrInvalidRange, "bound %s of 'TO' must be a whole number within ±2^53", FormatNumber(bound))
		}
	}
	return int64(lower), int64(upper), nil
}

func evaluateMembership(op token.Token, needle, haystack runtime.Value) (runtime.Value, error) {
	switch h := haystack.(type) {
	case *runtime.ListValue:
		for _, el := range h.Elements {
			if runtime.Equal(needle, el) {
				return runtime.BoolValue{Val: true}, nil
			}
		}
		return runtime.BoolValue{Val: false}, nil
	case runtime.StringValue:
		if n, ok := needle.(runtime.StringValue); ok {
			return runtime.BoolValue{Val: strings.Contains(h.Val, n.Val)}, nil
		}
	}
	return nil, errorfAt(op, runtime.ErrTypeMismatch, "'%s' expects a list or two strings, got %s and %s", op.Lexeme, needle.Kind(), haystack.Kind())
}

func numberOperands(left, right runtime.Value) (float64, float64, bool) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, false
	}
	return l.Val, r.Val, true
}

func compareNumbers(op token.Type, l, r float64) bool {
	switch op {
	case token.GREATER:
		return l > r
	case token.GREATER_EQUAL:
		return l >= r
	case token.LESS:
		return l < r
	case token.LESS_EQUAL:
		return l <= r
	default:
		return false
	}
}
