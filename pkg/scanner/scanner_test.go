package scanner

import (
	"errors"
	"strconv"
	"testing"

	"manipula/interpreter-go/pkg/token"
)

func scanTypes(t *testing.T, src string) []token.Type {
	t.Helper()
	toks, err := New(src).Scan()
	if err != nil {
		t.Fatalf("scan %q: %v", src, err)
	}
	types := make([]token.Type, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	return types
}

func assertTypes(t *testing.T, got []token.Type, want ...token.Type) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s (all: %v)", i, want[i], got[i], got)
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	got := scanTypes(t, "( ) [ ] , . - + ; : / * ! != = == > >= < <= <>")
	assertTypes(t, got,
		token.LPAREN, token.RPAREN, token.LSQUARE, token.RSQUARE, token.COMMA, token.DOT,
		token.MINUS, token.PLUS, token.SEMICOLON, token.COLON, token.SLASH, token.STAR,
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL, token.GREATER,
		token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL, token.BANG_EQUAL, token.EOF,
	)
}

func TestScanKeywordsAreCaseSensitive(t *testing.T) {
	got := scanTypes(t, "IF ELSEIF ELSE ENDIF THEN AND OR NOT IN TO FOR DO ENDDO WHILE PRINT VAR TRUE FALSE NULL if Print _x9")
	want := []token.Type{
		token.IF, token.ELSEIF, token.ELSE, token.ENDIF, token.THEN, token.AND, token.OR,
		token.NOT, token.IN, token.TO, token.FOR, token.DO, token.ENDDO, token.WHILE,
		token.PRINT, token.VAR, token.TRUE, token.FALSE, token.NULL,
		token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.EOF,
	}
	assertTypes(t, got, want...)
}

func TestScanNumberRoundTrip(t *testing.T) {
	cases := []string{"0", "7", "42", "3.5", "0.25", "1000000", "12.0078125"}
	for _, src := range cases {
		toks, err := New(src).Scan()
		if err != nil {
			t.Fatalf("scan %q: %v", src, err)
		}
		if len(toks) != 2 || toks[0].Type != token.NUMBER {
			t.Fatalf("expected single NUMBER for %q, got %v", src, toks)
		}
		want, _ := strconv.ParseFloat(src, 64)
		if got := toks[0].Literal.(float64); got != want {
			t.Fatalf("literal mismatch for %q: %v != %v", src, got, want)
		}
		if toks[0].Lexeme != src {
			t.Fatalf("lexeme mismatch: %q != %q", toks[0].Lexeme, src)
		}
	}
}

func TestScanNumberDoesNotSwallowRangeDots(t *testing.T) {
	got := scanTypes(t, "[1..3]")
	assertTypes(t, got, token.LSQUARE, token.NUMBER, token.DOT, token.DOT, token.NUMBER, token.RSQUARE, token.EOF)

	got = scanTypes(t, "-4")
	assertTypes(t, got, token.MINUS, token.NUMBER, token.EOF)
}

func TestScanStringLiteral(t *testing.T) {
	toks, err := New("PRINT 'hello\nworld' x").Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if toks[1].Type != token.STRING || toks[1].Literal != "hello\nworld" {
		t.Fatalf("unexpected string token %#v", toks[1])
	}
	if toks[1].Lexeme != "'hello\nworld'" {
		t.Fatalf("lexeme should keep quotes, got %q", toks[1].Lexeme)
	}
	if toks[2].Line != 2 {
		t.Fatalf("expected identifier on line 2, got %d", toks[2].Line)
	}
}

func TestScanUnterminatedStringIsRecorded(t *testing.T) {
	s := New("x = 1\nPRINT 'oops\nmore")
	toks, err := s.Scan()
	if err == nil || !s.HadError() {
		t.Fatalf("expected unterminated string error")
	}
	if !errors.Is(err, ErrUnterminatedString) {
		t.Fatalf("expected ErrUnterminatedString, got %v", err)
	}
	if s.Errors()[0].Line != 2 {
		t.Fatalf("expected error on line 2, got %d", s.Errors()[0].Line)
	}
	last := toks[len(toks)-1]
	if last.Type != token.EOF || last.Line != 3 {
		t.Fatalf("expected scanner to finish with EOF on line 3, got %v", last)
	}
	if toks[0].Type != token.IDENTIFIER || toks[3].Type != token.PRINT {
		t.Fatalf("tokens before the bad string should survive: %v", toks)
	}
}

func TestScanNestedComments(t *testing.T) {
	got := scanTypes(t, "a { outer { inner }\n still comment } b")
	assertTypes(t, got, token.IDENTIFIER, token.IDENTIFIER, token.EOF)

	toks, _ := New("{ one\ntwo }\nx").Scan()
	if toks[0].Line != 3 {
		t.Fatalf("comment newlines must count, got line %d", toks[0].Line)
	}
}

func TestScanCommentErrors(t *testing.T) {
	s := New("a { never closed {}")
	if _, err := s.Scan(); !errors.Is(err, ErrUnterminatedComment) {
		t.Fatalf("expected unterminated comment, got %v", err)
	}

	s = New("a } b")
	toks, err := s.Scan()
	if !errors.Is(err, ErrUnmatchedBrace) {
		t.Fatalf("expected unmatched brace, got %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected scanning to continue past '}', got %v", toks)
	}
}

func TestScanErrorsAccumulate(t *testing.T) {
	s := New("a @ b # c \"d")
	toks, err := s.Scan()
	if err == nil {
		t.Fatalf("expected errors")
	}
	if len(s.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(s.Errors()), err)
	}
	for _, e := range s.Errors() {
		if !errors.Is(e, ErrUnexpectedCharacter) {
			t.Fatalf("unexpected error kind %v", e)
		}
	}
	var identifiers int
	for _, tok := range toks {
		if tok.Type == token.IDENTIFIER {
			identifiers++
		}
	}
	if identifiers != 4 {
		t.Fatalf("expected all 4 identifiers to be scanned, got %d", identifiers)
	}
}

func TestScanLineNumbers(t *testing.T) {
	toks, err := New("a\nb\r\n\nc").Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	lines := []int{1, 2, 4, 4}
	for i, want := range lines {
		if toks[i].Line != want {
			t.Fatalf("token %d: expected line %d, got %d", i, want, toks[i].Line)
		}
	}
}
