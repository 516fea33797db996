package interpreter

import (
	"fmt"

	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluateExpression(n.Expression, env)
		return err
	case *ast.Print:
		return i.evaluatePrint(n, env)
	case *ast.VarDecl:
		return i.evaluateVarDecl(n, env)
	case *ast.If:
		return i.evaluateIf(n, env)
	case *ast.While:
		return i.evaluateWhileLoop(n, env)
	case *ast.For:
		return i.evaluateForLoop(n, env)
	default:
		return fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if err := i.evaluateStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluatePrint(stmt *ast.Print, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.out, Stringify(val)); err != nil {
		return &RuntimeError{Line: stmt.Line(), Lexeme: "PRINT", Err: fmt.Errorf("write output: %w", err)}
	}
	return nil
}

// evaluateVarDecl binds the target's flat name, creating it if needed.
func (i *Interpreter) evaluateVarDecl(decl *ast.VarDecl, env *runtime.Environment) error {
	val, err := i.evaluateExpression(decl.Initializer, env)
	if err != nil {
		return err
	}
	env.Define(decl.Target.Name(), val)
	return nil
}

func (i *Interpreter) evaluateIf(stmt *ast.If, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		return i.evaluateBlock(stmt.Then, env)
	}
	for _, clause := range stmt.ElseIfs {
		cond, err := i.evaluateExpression(clause.Condition, env)
		if err != nil {
			return err
		}
		if runtime.Truthy(cond) {
			return i.evaluateBlock(clause.Body, env)
		}
	}
	return i.evaluateBlock(stmt.Else, env)
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.While, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if err := i.evaluateBlock(loop.Body, env); err != nil {
			return err
		}
	}
}

// evaluateForLoop evaluates the declaration's initializer once. A range binds
// the loop name to lower, lower+1, ..., upper; a list binds each element in
// order. The name is redefined before every pass, so assignments to it in the
// body do not change the sequence. After the loop the name keeps its last
// value; an empty range still leaves it bound to lower.
func (i *Interpreter) evaluateForLoop(loop *ast.For, env *runtime.Environment) error {
	name := loop.Decl.Target.Name()
	if rng, ok := loop.Decl.Initializer.(*ast.Range); ok {
		lower, upper, err := i.evaluateRangeBounds(rng, env)
		if err != nil {
			return err
		}
		if lower > upper {
			env.Define(name, runtime.NumberValue{Val: float64(lower)})
			return nil
		}
		for v := lower; v <= upper; v++ {
			env.Define(name, runtime.NumberValue{Val: float64(v)})
			if err := i.evaluateBlock(loop.Body, env); err != nil {
				return err
			}
		}
		return nil
	}

	iterable, err := i.evaluateExpression(loop.Decl.Initializer, env)
	if err != nil {
		return err
	}
	list, ok := iterable.(*runtime.ListValue)
	if !ok {
		return errorfAt(loop.Keyword, runtime.ErrInvalidLoop, "FOR expects a range or a list, got %s", iterable.Kind())
	}
	elements := append([]runtime.Value(nil), list.Elements...)
	for _, el := range elements {
		env.Define(name, el)
		if err := i.evaluateBlock(loop.Body, env); err != nil {
			return err
		}
	}
	return nil
}

