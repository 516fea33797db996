package parser

import "manipula/interpreter-go/pkg/token"

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

// peekNext looks one token past peek. It returns the EOF token at the end.
func (p *Parser) peekNext() token.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt token.Type) bool {
	if p.isAtEnd() {
		return tt == token.EOF
	}
	return p.peek().Type == tt
}

func (p *Parser) checkNext(tt token.Type) bool {
	return p.peekNext().Type == tt
}

func (p *Parser) checkAny(types ...token.Type) bool {
	for _, tt := range types {
		if p.check(tt) {
			return true
		}
	}
	return false
}

// match consumes the next token when it is one of types.
func (p *Parser) match(types ...token.Type) bool {
	if p.checkAny(types...) {
		p.advance()
		return true
	}
	return false
}

// consume advances past a token of type tt or records msg as an error.
func (p *Parser) consume(tt token.Type, msg string) (token.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return p.peek(), p.errorAt(p.peek(), ErrUnexpectedToken, msg)
}

func (p *Parser) errorAt(tok token.Token, kind error, msg string) error {
	err := &Error{Token: tok, Msg: msg, Err: kind}
	p.errs = append(p.errs, err)
	return err
}
