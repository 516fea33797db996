package parser

import (
	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/token"
)

func (p *Parser) declaration() (ast.Statement, error) {
	if p.match(token.VAR) {
		return p.finishStatement(p.varDeclaration(true))
	}
	if p.check(token.IDENTIFIER) {
		switch p.peekNext().Type {
		case token.DOT, token.LSQUARE, token.EQUAL:
			return p.finishStatement(p.varDeclaration(false))
		}
	}
	return p.statement()
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.PRINT):
		return p.finishStatement(p.printStatement())
	case p.match(token.IF):
		return p.finishStatement(p.ifStatement())
	case p.match(token.WHILE):
		return p.finishStatement(p.whileStatement())
	case p.match(token.FOR):
		return p.finishStatement(p.forStatement())
	default:
		return p.finishStatement(p.expressionStatement())
	}
}

// finishStatement eats the optional ';' that may end any statement.
func (p *Parser) finishStatement(stmt ast.Statement, err error) (ast.Statement, error) {
	if err != nil {
		return nil, err
	}
	p.match(token.SEMICOLON)
	return stmt, nil
}

// varDeclaration parses `target = initializer`. The VAR keyword, if present,
// has already been consumed.
func (p *Parser) varDeclaration(explicit bool) (*ast.VarDecl, error) {
	name, err := p.consume(token.IDENTIFIER, "expect variable name")
	if err != nil {
		return nil, err
	}
	target, err := p.variablePath(name)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.EQUAL, "expect '=' after variable name"); err != nil {
		return nil, err
	}
	initializer, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.NewVarDecl(target, initializer, explicit), nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.NewPrint(keyword, value), nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.NewExpressionStmt(expr), nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	keyword := p.previous()
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.THEN, "expect 'THEN' after IF condition"); err != nil {
		return nil, err
	}
	then := p.block(token.ELSEIF, token.ELSE, token.ENDIF)

	var elseIfs []*ast.ElseIf
	for p.match(token.ELSEIF) {
		clauseKeyword := p.previous()
		clauseCondition, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.THEN, "expect 'THEN' after ELSEIF condition"); err != nil {
			return nil, err
		}
		body := p.block(token.ELSEIF, token.ELSE, token.ENDIF)
		elseIfs = append(elseIfs, ast.NewElseIf(clauseKeyword, clauseCondition, body))
	}

	var elseBlock *ast.Block
	if p.match(token.ELSE) {
		elseBlock = p.block(token.ENDIF)
	}
	if _, err := p.consume(token.ENDIF, "expect 'ENDIF' to close IF"); err != nil {
		return nil, err
	}
	return ast.NewIf(keyword, condition, then, elseIfs, elseBlock), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(token.LPAREN, "expect '(' after WHILE"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "expect ')' after WHILE condition"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.DO, "expect 'DO' after WHILE condition"); err != nil {
		return nil, err
	}
	body := p.block(token.ENDDO)
	if _, err := p.consume(token.ENDDO, "expect 'ENDDO' to close WHILE"); err != nil {
		return nil, err
	}
	return ast.NewWhile(keyword, condition, body), nil
}

func (p *Parser) forStatement() (ast.Statement, error) {
	keyword := p.previous()
	explicit := p.match(token.VAR)
	decl, err := p.varDeclaration(explicit)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.DO, "expect 'DO' after FOR declaration"); err != nil {
		return nil, err
	}
	body := p.block(token.ENDDO)
	if _, err := p.consume(token.ENDDO, "expect 'ENDDO' to close FOR"); err != nil {
		return nil, err
	}
	return ast.NewFor(keyword, decl, body), nil
}

// block collects declarations until one of terminators (left unconsumed) or
// the end of input. Statements that fail are skipped the same way as at top
// level, so one bad line does not take the enclosing statement with it.
func (p *Parser) block(terminators ...token.Type) *ast.Block {
	line := p.peek().Line
	statements := make([]ast.Statement, 0)
	for !p.isAtEnd() && !p.checkAny(terminators...) {
		if stmt := p.declarationOrSkip(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return ast.NewBlock(line, statements)
}
