package ast

import (
	"strings"

	"manipula/interpreter-go/pkg/token"
)

type NodeType string

const (
	NodeLiteral        NodeType = "Literal"
	NodeGrouping       NodeType = "Grouping"
	NodeUnary          NodeType = "Unary"
	NodeBinary         NodeType = "Binary"
	NodeLogical        NodeType = "Logical"
	NodeAssign         NodeType = "Assign"
	NodeVariable       NodeType = "Variable"
	NodeList           NodeType = "List"
	NodeRange          NodeType = "Range"
	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodePrint          NodeType = "Print"
	NodeVarDecl        NodeType = "VarDecl"
	NodeIf             NodeType = "If"
	NodeElseIf         NodeType = "ElseIf"
	NodeWhile          NodeType = "While"
	NodeFor            NodeType = "For"
	NodeBlock          NodeType = "Block"
	NodeProgram        NodeType = "Program"
)

// Node is implemented by every AST node. The node set is closed: only this
// package can add variants, so back ends switch over the concrete types.
type Node interface {
	NodeType() NodeType
	Line() int
	isNode()
}

type nodeImpl struct {
	Type    NodeType
	SrcLine int
}

func newNodeImpl(kind NodeType, line int) nodeImpl {
	return nodeImpl{Type: kind, SrcLine: line}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.SrcLine }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

// Literal holds a number (float64), string, bool, or nil for NULL.
type Literal struct {
	nodeImpl
	expressionMarker

	Token token.Token
	Value any
}

func NewLiteral(tok token.Token, value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral, tok.Line), Token: tok, Value: value}
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Expression Expression
}

func NewGrouping(paren token.Token, expr Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping, paren.Line), Expression: expr}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator token.Token
	Right    Expression
}

func NewUnary(operator token.Token, right Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary, operator.Line), Operator: operator, Right: right}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewBinary(left Expression, operator token.Token, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary, operator.Line), Left: left, Operator: operator, Right: right}
}

// Logical is kept apart from Binary because AND/OR short-circuit.
type Logical struct {
	nodeImpl
	expressionMarker

	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewLogical(left Expression, operator token.Token, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical, operator.Line), Left: left, Operator: operator, Right: right}
}

// Assign rebinds an already declared single-identifier name.
type Assign struct {
	nodeImpl
	expressionMarker

	Name  token.Token
	Value Expression
}

func NewAssign(name token.Token, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign, name.Line), Name: name, Value: value}
}

// Variable is either a single identifier or a compound path such as a.b[0].
// The path is kept flat: identifier, dot and bracket tokens in source order.
type Variable struct {
	nodeImpl
	expressionMarker

	Path []token.Token
}

func NewVariable(path ...token.Token) *Variable {
	line := 0
	if len(path) > 0 {
		line = path[0].Line
	}
	return &Variable{nodeImpl: newNodeImpl(NodeVariable, line), Path: path}
}

// Name is the flat lookup key: the lexemes of the path joined together.
func (v *Variable) Name() string {
	if len(v.Path) == 1 {
		return v.Path[0].Lexeme
	}
	var b strings.Builder
	for _, tok := range v.Path {
		b.WriteString(tok.Lexeme)
	}
	return b.String()
}

// IsCompound reports whether the variable uses dots or brackets.
func (v *Variable) IsCompound() bool { return len(v.Path) > 1 }

type List struct {
	nodeImpl
	expressionMarker

	Elements []Expression
}

func NewList(bracket token.Token, elements []Expression) *List {
	return &List{nodeImpl: newNodeImpl(NodeList, bracket.Line), Elements: elements}
}

// Range is the inclusive `lower TO upper` form.
type Range struct {
	nodeImpl
	expressionMarker

	Lower    Expression
	Operator token.Token
	Upper    Expression
}

func NewRange(lower Expression, operator token.Token, upper Expression) *Range {
	return &Range{nodeImpl: newNodeImpl(NodeRange, operator.Line), Lower: lower, Operator: operator, Upper: upper}
}
