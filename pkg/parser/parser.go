package parser

import (
	"errors"

	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/scanner"
	"manipula/interpreter-go/pkg/token"
)

// Parser is a recursive-descent parser over a scanned token slice. It keeps
// one token of lookahead plus peekNext for identifier-led declarations.
type Parser struct {
	tokens  []token.Token
	current int
	errs    ErrorList
}

// New returns a parser over tokens. A missing trailing EOF token is added.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Type: token.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse consumes every token. Statements that fail to parse are dropped and
// the parser resumes at the next statement, so the returned program always
// holds everything that parsed cleanly. The error is the ErrorList, or nil.
func (p *Parser) Parse() (*ast.Program, error) {
	statements := make([]ast.Statement, 0)
	for !p.isAtEnd() {
		if stmt := p.declarationOrSkip(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return ast.NewProgram(statements), p.errs.Err()
}

// Errors returns the parse errors recorded so far.
func (p *Parser) Errors() ErrorList { return p.errs }

// HadError reports whether any parse error was recorded.
func (p *Parser) HadError() bool { return len(p.errs) > 0 }

// ParseSource scans and parses src in one call. The program is returned even
// when errors were found; the error joins the scan and parse lists.
func ParseSource(src string) (*ast.Program, error) {
	tokens, scanErr := scanner.New(src).Scan()
	program, parseErr := New(tokens).Parse()
	return program, errors.Join(scanErr, parseErr)
}

// declarationOrSkip parses one declaration. On failure the error is already
// recorded; the parser is moved to the next statement boundary and nil is
// returned.
func (p *Parser) declarationOrSkip() ast.Statement {
	start := p.current
	stmt, err := p.declaration()
	if err != nil {
		if p.current == start {
			p.advance()
		}
		p.synchronize()
		return nil
	}
	return stmt
}

// synchronize discards tokens until something that can begin or end a
// statement.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.PRINT, token.IF, token.WHILE, token.FOR, token.VAR,
			token.ELSEIF, token.ELSE, token.ENDIF, token.ENDDO:
			return
		case token.IDENTIFIER:
			if p.peek().Line > p.previous().Line {
				return
			}
		}
		p.advance()
	}
}
