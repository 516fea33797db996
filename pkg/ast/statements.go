package ast

import "manipula/interpreter-go/pkg/token"

// Statements

type ExpressionStmt struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewExpressionStmt(expr Expression) *ExpressionStmt {
	return &ExpressionStmt{nodeImpl: newNodeImpl(NodeExpressionStmt, expr.Line()), Expression: expr}
}

type Print struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewPrint(keyword token.Token, expr Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint, keyword.Line), Expression: expr}
}

// VarDecl binds Target in the environment, creating it if needed. Explicit is
// set when the source spelled the optional VAR keyword.
type VarDecl struct {
	nodeImpl
	statementMarker

	Target      *Variable
	Initializer Expression
	Explicit    bool
}

func NewVarDecl(target *Variable, initializer Expression, explicit bool) *VarDecl {
	return &VarDecl{nodeImpl: newNodeImpl(NodeVarDecl, target.Line()), Target: target, Initializer: initializer, Explicit: explicit}
}

type Block struct {
	nodeImpl

	Statements []Statement
}

func NewBlock(line int, statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock, line), Statements: statements}
}

type ElseIf struct {
	nodeImpl

	Condition Expression
	Body      *Block
}

func NewElseIf(keyword token.Token, condition Expression, body *Block) *ElseIf {
	return &ElseIf{nodeImpl: newNodeImpl(NodeElseIf, keyword.Line), Condition: condition, Body: body}
}

// If covers the whole IF / ELSEIF* / ELSE? / ENDIF chain. Else is nil when the
// source has no ELSE branch.
type If struct {
	nodeImpl
	statementMarker

	Condition Expression
	Then      *Block
	ElseIfs   []*ElseIf
	Else      *Block
}

func NewIf(keyword token.Token, condition Expression, then *Block, elseIfs []*ElseIf, elseBlock *Block) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf, keyword.Line), Condition: condition, Then: then, ElseIfs: elseIfs, Else: elseBlock}
}

type While struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      *Block
}

func NewWhile(keyword token.Token, condition Expression, body *Block) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile, keyword.Line), Condition: condition, Body: body}
}

// For iterates the range or list bound by Decl. Keyword is the FOR token,
// kept for error positions.
type For struct {
	nodeImpl
	statementMarker

	Keyword token.Token
	Decl    *VarDecl
	Body    *Block
}

func NewFor(keyword token.Token, decl *VarDecl, body *Block) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor, keyword.Line), Keyword: keyword, Decl: decl, Body: body}
}

// Program is the ordered statement list produced by one parse.
type Program struct {
	nodeImpl

	Statements []Statement
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram, 1), Statements: statements}
}
