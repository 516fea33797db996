package scanner

import (
	"strconv"

	"manipula/interpreter-go/pkg/token"
)

// Scanner turns source text into tokens in a single left-to-right pass.
type Scanner struct {
	src    string
	start  int // start of the lexeme being scanned
	cur    int // next unread byte
	line   int
	tokens []token.Token
	errs   ErrorList
}

// New returns a scanner over src.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Scan consumes the whole input. The token slice always ends with an EOF
// token, even when errors were recorded. The returned error is the collected
// ErrorList, or nil.
func (s *Scanner) Scan() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.cur
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Type: token.EOF, Line: s.line})
	return s.tokens, s.errs.Err()
}

// Errors returns the scan errors recorded so far.
func (s *Scanner) Errors() ErrorList { return s.errs }

// HadError reports whether any scan error was recorded.
func (s *Scanner) HadError() bool { return len(s.errs) > 0 }

func (s *Scanner) isAtEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) advance() byte {
	ch := s.src[s.cur]
	s.cur++
	return ch
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.src[s.cur]
}

// peekNext is only needed to decide whether a '.' starts a fraction.
func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cur+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.src[s.cur] != expected {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) addToken(tt token.Type, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Type:    tt,
		Lexeme:  s.src[s.start:s.cur],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) errorAt(line int, lexeme string, err error) {
	s.errs = append(s.errs, &Error{Line: line, Lexeme: lexeme, Err: err})
}

func (s *Scanner) scanToken() {
	ch := s.advance()
	switch ch {
	case '(':
		s.addToken(token.LPAREN, nil)
	case ')':
		s.addToken(token.RPAREN, nil)
	case '[':
		s.addToken(token.LSQUARE, nil)
	case ']':
		s.addToken(token.RSQUARE, nil)
	case ',':
		s.addToken(token.COMMA, nil)
	case '.':
		s.addToken(token.DOT, nil)
	case '-':
		s.addToken(token.MINUS, nil)
	case '+':
		s.addToken(token.PLUS, nil)
	case ';':
		s.addToken(token.SEMICOLON, nil)
	case ':':
		s.addToken(token.COLON, nil)
	case '/':
		s.addToken(token.SLASH, nil)
	case '*':
		s.addToken(token.STAR, nil)
	case '!':
		if s.match('=') {
			s.addToken(token.BANG_EQUAL, nil)
		} else {
			s.addToken(token.BANG, nil)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EQUAL_EQUAL, nil)
		} else {
			s.addToken(token.EQUAL, nil)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GREATER_EQUAL, nil)
		} else {
			s.addToken(token.GREATER, nil)
		}
	case '<':
		switch {
		case s.match('='):
			s.addToken(token.LESS_EQUAL, nil)
		case s.match('>'):
			s.addToken(token.BANG_EQUAL, nil)
		default:
			s.addToken(token.LESS, nil)
		}
	case '{':
		s.skipComment()
	case '}':
		s.errorAt(s.line, "}", ErrUnmatchedBrace)
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '\'':
		s.scanString()
	default:
		switch {
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch):
			s.scanIdentifier()
		default:
			s.errorAt(s.line, string(ch), ErrUnexpectedCharacter)
		}
	}
}

// skipComment skips a brace comment. Nested '{' raise the depth; the comment ends
// when the depth returns to zero.
func (s *Scanner) skipComment() {
	startLine := s.line
	depth := 1
	for depth > 0 {
		if s.isAtEnd() {
			s.errorAt(startLine, "{", ErrUnterminatedComment)
			return
		}
		switch s.advance() {
		case '{':
			depth++
		case '}':
			depth--
		case '\n':
			s.line++
		}
	}
}

func (s *Scanner) scanString() {
	startLine := s.line
	for s.peek() != '\'' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.errorAt(startLine, s.src[s.start:s.cur], ErrUnterminatedString)
		return
	}
	s.advance() // closing quote
	s.addToken(token.STRING, s.src[s.start+1:s.cur-1])
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lexeme := s.src[s.start:s.cur]
	val, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		// Only reachable for values outside float64 range.
		s.errorAt(s.line, lexeme, err)
		return
	}
	s.addToken(token.NUMBER, val)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	s.addToken(token.Lookup(s.src[s.start:s.cur]), nil)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAlphaNumeric(b byte) bool { return isAlpha(b) || isDigit(b) }
