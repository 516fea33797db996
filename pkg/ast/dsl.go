package ast

import (
	"strconv"

	"manipula/interpreter-go/pkg/token"
)

// Builders for hand-assembled trees. Tokens they synthesize sit on line 1.

func tok(tt token.Type, lexeme string) token.Token {
	return token.New(tt, lexeme, nil, 1)
}

func operatorToken(op string) token.Token {
	switch op {
	case "+":
		return tok(token.PLUS, op)
	case "-":
		return tok(token.MINUS, op)
	case "*":
		return tok(token.STAR, op)
	case "/":
		return tok(token.SLASH, op)
	case "!":
		return tok(token.BANG, op)
	case "==":
		return tok(token.EQUAL_EQUAL, op)
	case "!=", "<>":
		return tok(token.BANG_EQUAL, op)
	case ">":
		return tok(token.GREATER, op)
	case ">=":
		return tok(token.GREATER_EQUAL, op)
	case "<":
		return tok(token.LESS, op)
	case "<=":
		return tok(token.LESS_EQUAL, op)
	}
	if tt := token.Lookup(op); tt != token.IDENTIFIER {
		return tok(tt, op)
	}
	return tok(token.ILLEGAL, op)
}

// Literal helpers.

func Num(value float64) *Literal {
	return NewLiteral(token.New(token.NUMBER, strconv.FormatFloat(value, 'f', -1, 64), value, 1), value)
}

func Str(value string) *Literal {
	return NewLiteral(token.New(token.STRING, "'"+value+"'", value, 1), value)
}

func Bool(value bool) *Literal {
	if value {
		return NewLiteral(tok(token.TRUE, "TRUE"), true)
	}
	return NewLiteral(tok(token.FALSE, "FALSE"), false)
}

func Null() *Literal {
	return NewLiteral(tok(token.NULL, "NULL"), nil)
}

func Lst(elements ...Expression) *List {
	return NewList(tok(token.LSQUARE, "["), elements)
}

// Variable helpers.

func ID(name string) *Variable {
	return NewVariable(tok(token.IDENTIFIER, name))
}

// Path builds a compound variable from already split tokens, for example
// Path(IdentTok("a"), DotTok(), IdentTok("b")).
func Path(parts ...token.Token) *Variable {
	return NewVariable(parts...)
}

func IdentTok(name string) token.Token { return tok(token.IDENTIFIER, name) }
func DotTok() token.Token              { return tok(token.DOT, ".") }
func LBrackTok() token.Token           { return tok(token.LSQUARE, "[") }
func RBrackTok() token.Token           { return tok(token.RSQUARE, "]") }

// Operator helpers.

func Bin(op string, left, right Expression) *Binary {
	return NewBinary(left, operatorToken(op), right)
}

func Un(op string, right Expression) *Unary {
	return NewUnary(operatorToken(op), right)
}

func And(left, right Expression) *Logical {
	return NewLogical(left, tok(token.AND, "AND"), right)
}

func Or(left, right Expression) *Logical {
	return NewLogical(left, tok(token.OR, "OR"), right)
}

func Rng(lower, upper Expression) *Range {
	return NewRange(lower, tok(token.TO, "TO"), upper)
}

func Grp(expr Expression) *Grouping {
	return NewGrouping(tok(token.LPAREN, "("), expr)
}

func Assn(name string, value Expression) *Assign {
	return NewAssign(tok(token.IDENTIFIER, name), value)
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStmt {
	return NewExpressionStmt(expr)
}

func Prn(expr Expression) *Print {
	return NewPrint(tok(token.PRINT, "PRINT"), expr)
}

func Decl(name string, initializer Expression) *VarDecl {
	return NewVarDecl(ID(name), initializer, true)
}

func Blk(statements ...Statement) *Block {
	return NewBlock(1, statements)
}

func IfThen(condition Expression, then *Block) *If {
	return NewIf(tok(token.IF, "IF"), condition, then, nil, nil)
}

// IfElse builds an IF with an ELSE branch. ELSEIF clauses are added with
// Elif.
func IfElse(condition Expression, then, elseBlock *Block) *If {
	return NewIf(tok(token.IF, "IF"), condition, then, nil, elseBlock)
}

func Elif(condition Expression, body *Block) *ElseIf {
	return NewElseIf(tok(token.ELSEIF, "ELSEIF"), condition, body)
}

// WithElseIfs returns a copy of ifStmt carrying clauses.
func WithElseIfs(ifStmt *If, clauses ...*ElseIf) *If {
	out := *ifStmt
	out.ElseIfs = append([]*ElseIf(nil), clauses...)
	return &out
}

func Whl(condition Expression, body *Block) *While {
	return NewWhile(tok(token.WHILE, "WHILE"), condition, body)
}

func ForIn(name string, initializer Expression, body *Block) *For {
	return NewFor(tok(token.FOR, "FOR"), Decl(name, initializer), body)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
