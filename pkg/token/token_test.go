package token

import "testing"

func TestLookup(t *testing.T) {
	for word, want := range Keywords {
		if got := Lookup(word); got != want {
			t.Fatalf("Lookup(%q) = %s, want %s", word, got, want)
		}
		if !want.IsKeyword() {
			t.Fatalf("%s should be a keyword", want)
		}
	}
	for _, ident := range []string{"if", "Print", "counter", "TOO"} {
		if got := Lookup(ident); got != IDENTIFIER {
			t.Fatalf("Lookup(%q) = %s, want IDENTIFIER", ident, got)
		}
	}
	if IDENTIFIER.IsKeyword() || EOF.IsKeyword() {
		t.Fatalf("IDENTIFIER and EOF are not keywords")
	}
}

func TestTokenString(t *testing.T) {
	if got := New(NUMBER, "12", 12.0, 3).String(); got != `NUMBER "12" on line 3` {
		t.Fatalf("unexpected %q", got)
	}
	if got := New(EOF, "", nil, 7).String(); got != "EOF on line 7" {
		t.Fatalf("unexpected %q", got)
	}
}
