package runtime

import "errors"

var (
	// ErrUndefinedVariable is returned by Get and Assign for unbound names.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrTypeMismatch marks operands of the wrong kind for an operator.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidOperator marks an operator token no evaluator rule accepts.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrDivisionByZero marks a '/' whose right operand is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidLoop marks a FOR whose declaration is neither a range nor a list.
	ErrInvalidLoop = errors.New("invalid loop")

	// ErrInvalidRange marks 'TO' bounds that are not whole numbers within
	// ±MaxRangeBound, or a range too long to build as a list.
	ErrInvalidRange = errors.New("invalid range")
)
