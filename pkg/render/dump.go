package render

import (
	"strings"

	"manipula/interpreter-go/pkg/ast"
)

// Dump renders node in a parenthesized prefix form, one top-level statement
// per line for a Program. It is meant for reading parse trees, not for
// re-parsing.
func Dump(node ast.Node) string {
	var b strings.Builder
	dump(&b, node)
	return b.String()
}

func dump(b *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		for i, stmt := range n.Statements {
			if i > 0 {
				b.WriteByte('\n')
			}
			dump(b, stmt)
		}
	case *ast.Literal:
		b.WriteString(dumpLiteral(n.Value))
	case *ast.Grouping:
		parenthesize(b, "group", n.Expression)
	case *ast.Unary:
		parenthesize(b, n.Operator.Lexeme, n.Right)
	case *ast.Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *ast.Logical:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *ast.Range:
		parenthesize(b, "TO", n.Lower, n.Upper)
	case *ast.Assign:
		b.WriteString("(= " + n.Name.Lexeme + " ")
		dump(b, n.Value)
		b.WriteByte(')')
	case *ast.Variable:
		b.WriteString(n.Name())
	case *ast.List:
		nodes := make([]ast.Node, len(n.Elements))
		for i, el := range n.Elements {
			nodes[i] = el
		}
		parenthesize(b, "list", nodes...)
	case *ast.ExpressionStmt:
		parenthesize(b, "expr", n.Expression)
	case *ast.Print:
		parenthesize(b, "print", n.Expression)
	case *ast.VarDecl:
		b.WriteString("(var " + n.Target.Name() + " ")
		dump(b, n.Initializer)
		b.WriteByte(')')
	case *ast.Block:
		nodes := make([]ast.Node, len(n.Statements))
		for i, stmt := range n.Statements {
			nodes[i] = stmt
		}
		parenthesize(b, "block", nodes...)
	case *ast.If:
		nodes := []ast.Node{n.Condition, n.Then}
		for _, clause := range n.ElseIfs {
			nodes = append(nodes, clause)
		}
		if n.Else != nil {
			b.WriteString("(if ")
			dumpJoined(b, nodes)
			b.WriteString(" (else ")
			dump(b, n.Else)
			b.WriteString("))")
			return
		}
		parenthesize(b, "if", nodes...)
	case *ast.ElseIf:
		parenthesize(b, "elseif", n.Condition, n.Body)
	case *ast.While:
		parenthesize(b, "while", n.Condition, n.Body)
	case *ast.For:
		parenthesize(b, "for", n.Decl, n.Body)
	default:
		b.WriteString("(? " + string(node.NodeType()) + ")")
	}
}

func parenthesize(b *strings.Builder, name string, nodes ...ast.Node) {
	b.WriteByte('(')
	b.WriteString(name)
	if len(nodes) > 0 {
		b.WriteByte(' ')
		dumpJoined(b, nodes)
	}
	b.WriteByte(')')
}

func dumpJoined(b *strings.Builder, nodes []ast.Node) {
	for i, node := range nodes {
		if i > 0 {
			b.WriteByte(' ')
		}
		dump(b, node)
	}
}

func dumpLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return formatNumber(val)
	case string:
		return "'" + val + "'"
	default:
		return "?"
	}
}
