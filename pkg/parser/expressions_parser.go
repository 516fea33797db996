package parser

import (
	"fmt"
	"math"
	"strconv"

	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/token"
)

// Precedence, lowest first: assignment, OR, AND, TO, equality, comparison
// (including IN), additive, multiplicative, unary, primary.

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(token.EQUAL) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if v, ok := expr.(*ast.Variable); ok && !v.IsCompound() {
		return ast.NewAssign(v.Path[0], value), nil
	}
	return nil, p.errorAt(equals, ErrInvalidAssignmentTarget, "invalid assignment target")
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.OR) {
		operator := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, operator, right)
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.rangeExpr()
	if err != nil {
		return nil, err
	}
	for p.match(token.AND) {
		operator := p.previous()
		right, err := p.rangeExpr()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, operator, right)
	}
	return expr, nil
}

// rangeExpr does not chain: `1 TO 2 TO 3` stops after the first TO.
func (p *Parser) rangeExpr() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	if p.match(token.TO) {
		operator := p.previous()
		upper, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewRange(expr, operator, upper)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLeft(p.comparison, token.EQUAL_EQUAL, token.BANG_EQUAL)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLeft(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL, token.IN)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLeft(p.factor, token.MINUS, token.PLUS)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLeft(p.unary, token.SLASH, token.STAR)
}

// binaryLeft parses a left-associative tier of binary operators.
func (p *Parser) binaryLeft(operand func() (ast.Expression, error), operators ...token.Type) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, operator, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.BANG, token.MINUS, token.NOT) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(operator, right), nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.FALSE):
		return ast.NewLiteral(p.previous(), false), nil
	case p.match(token.TRUE):
		return ast.NewLiteral(p.previous(), true), nil
	case p.match(token.NULL):
		return ast.NewLiteral(p.previous(), nil), nil
	case p.match(token.NUMBER, token.STRING):
		tok := p.previous()
		return ast.NewLiteral(tok, tok.Literal), nil
	case p.match(token.IDENTIFIER):
		return p.variablePath(p.previous())
	case p.match(token.LPAREN):
		paren := p.previous()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "expect ')' after expression"); err != nil {
			return nil, err
		}
		return ast.NewGrouping(paren, expr), nil
	case p.match(token.LSQUARE):
		return p.list(p.previous())
	}
	return nil, p.errorAt(p.peek(), ErrUnexpectedToken, "expect expression")
}

// variablePath extends an identifier into a compound path: `.name` segments
// and `[index]` segments whose index is a number, string or identifier.
// A '.' not followed by an identifier is left alone so `[1..3]` and
// `[x .. 3]` still reach the range shorthand.
func (p *Parser) variablePath(name token.Token) (*ast.Variable, error) {
	path := []token.Token{name}
	for {
		switch {
		case p.check(token.DOT) && p.checkNext(token.IDENTIFIER):
			path = append(path, p.advance(), p.advance())
		case p.match(token.LSQUARE):
			open := p.previous()
			if !p.match(token.NUMBER, token.STRING, token.IDENTIFIER) {
				return nil, p.errorAt(p.peek(), ErrUnexpectedToken, "expect number, string or name inside '[]'")
			}
			index := p.previous()
			closing, err := p.consume(token.RSQUARE, "expect ']' after index")
			if err != nil {
				return nil, err
			}
			path = append(path, open, index, closing)
		default:
			return ast.NewVariable(path...), nil
		}
	}
}

// list parses `[e1, e2, ...]` and the shorthand `[a .. N]`, which is expanded
// here into the literal numbers a, a+1, ..., N.
func (p *Parser) list(bracket token.Token) (ast.Expression, error) {
	elements := make([]ast.Expression, 0)
	if !p.check(token.RSQUARE) {
		for {
			element, err := p.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if p.check(token.DOT) && p.checkNext(token.DOT) {
		dots := p.advance()
		p.advance()
		upper, err := p.consume(token.NUMBER, "expect number after '..'")
		if err != nil {
			return nil, err
		}
		elements, err = p.expandRange(dots, elements, upper)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RSQUARE, "expect ']' after list elements"); err != nil {
		return nil, err
	}
	return ast.NewList(bracket, elements), nil
}

// maxShorthandLength caps how many literals `[a .. N]` may expand into.
const maxShorthandLength = 1 << 16

// maxRangeBound is the largest magnitude at which consecutive integers are
// still distinct float64 values.
const maxRangeBound = 1<<53 - 1

func isRangeBound(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v) && math.Abs(v) <= maxRangeBound
}

func (p *Parser) expandRange(dots token.Token, elements []ast.Expression, upper token.Token) ([]ast.Expression, error) {
	if len(elements) == 0 {
		return nil, p.errorAt(dots, ErrInvalidRange, "expect a starting number before '..'")
	}
	lower, ok := numericLiteral(elements[0])
	if !ok {
		return nil, p.errorAt(dots, ErrInvalidRange, "range shorthand must start with a number")
	}
	if !isRangeBound(lower) {
		return nil, p.errorAt(dots, ErrInvalidRange, fmt.Sprintf("range start %v must be a whole number within ±2^53", lower))
	}
	hi := upper.Literal.(float64)
	if !isRangeBound(hi) {
		return nil, p.errorAt(upper, ErrInvalidRange, fmt.Sprintf("range end %v must be a whole number within ±2^53", hi))
	}
	if lower > hi {
		return nil, p.errorAt(upper, ErrInvalidRange, fmt.Sprintf("range start %v is greater than end %v", lower, hi))
	}
	if hi-lower >= maxShorthandLength {
		return nil, p.errorAt(upper, ErrInvalidRange, fmt.Sprintf("range shorthand expands to more than %d numbers", maxShorthandLength))
	}
	first, last := int64(lower), int64(hi)
	out := make([]ast.Expression, 0, last-first+1)
	for n := first; n <= last; n++ {
		v := float64(n)
		lexeme := strconv.FormatInt(n, 10)
		out = append(out, ast.NewLiteral(token.New(token.NUMBER, lexeme, v, upper.Line), v))
	}
	return out, nil
}

// numericLiteral accepts a number literal or a negated one.
func numericLiteral(expr ast.Expression) (float64, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		v, ok := e.Value.(float64)
		return v, ok
	case *ast.Unary:
		if e.Operator.Type != token.MINUS {
			return 0, false
		}
		v, ok := numericLiteral(e.Right)
		return -v, ok
	}
	return 0, false
}
