package token

import "fmt"

// Type represents the kind of token.
type Type int

const (
	// Special
	EOF Type = iota
	ILLEGAL

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	LSQUARE   // "["
	RSQUARE   // "]"
	COMMA     // ","
	DOT       // "."
	MINUS     // "-"
	PLUS      // "+"
	SEMICOLON // ";"
	COLON     // ":"
	SLASH     // "/"
	STAR      // "*"

	// One or two character operators
	BANG          // "!"
	BANG_EQUAL    // "!=" or "<>"
	EQUAL         // "="
	EQUAL_EQUAL   // "=="
	GREATER       // ">"
	GREATER_EQUAL // ">="
	LESS          // "<"
	LESS_EQUAL    // "<="

	// Literals
	IDENTIFIER
	STRING
	NUMBER

	// Keywords
	IF
	ELSEIF
	ELSE
	ENDIF
	THEN
	AND
	OR
	NOT
	IN
	TO
	FOR
	DO
	ENDDO
	WHILE
	PRINT
	VAR
	TRUE
	FALSE
	NULL
)

var typeNames = [...]string{
	EOF:           "EOF",
	ILLEGAL:       "ILLEGAL",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	LSQUARE:       "LSQUARE",
	RSQUARE:       "RSQUARE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	COLON:         "COLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	IF:            "IF",
	ELSEIF:        "ELSEIF",
	ELSE:          "ELSE",
	ENDIF:         "ENDIF",
	THEN:          "THEN",
	AND:           "AND",
	OR:            "OR",
	NOT:           "NOT",
	IN:            "IN",
	TO:            "TO",
	FOR:           "FOR",
	DO:            "DO",
	ENDDO:         "ENDDO",
	WHILE:         "WHILE",
	PRINT:         "PRINT",
	VAR:           "VAR",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	NULL:          "NULL",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Keywords maps the exact reserved spellings to their token types.
// Matching is case-sensitive: "if" is an identifier.
var Keywords = map[string]Type{
	"IF":     IF,
	"ELSEIF": ELSEIF,
	"ELSE":   ELSE,
	"ENDIF":  ENDIF,
	"THEN":   THEN,
	"AND":    AND,
	"OR":     OR,
	"NOT":    NOT,
	"IN":     IN,
	"TO":     TO,
	"FOR":    FOR,
	"DO":     DO,
	"ENDDO":  ENDDO,
	"WHILE":  WHILE,
	"PRINT":  PRINT,
	"VAR":    VAR,
	"TRUE":   TRUE,
	"FALSE":  FALSE,
	"NULL":   NULL,
}

// Lookup returns the keyword type for ident, or IDENTIFIER.
func Lookup(ident string) Type {
	if tt, ok := Keywords[ident]; ok {
		return tt
	}
	return IDENTIFIER
}

// IsKeyword reports whether t is a reserved word.
func (t Type) IsKeyword() bool {
	return t >= IF && t <= NULL
}

// Token is one lexical unit. Tokens are never modified after the scanner
// produces them.
type Token struct {
	Type    Type
	Lexeme  string // raw source slice
	Literal any    // float64 for NUMBER, string for STRING, nil otherwise
	Line    int
}

// New builds a token. Mostly useful in tests and AST builders.
func New(tt Type, lexeme string, literal any, line int) Token {
	return Token{Type: tt, Lexeme: lexeme, Literal: literal, Line: line}
}

func (t Token) String() string {
	if t.Type == EOF {
		return fmt.Sprintf("EOF on line %d", t.Line)
	}
	return fmt.Sprintf("%s %q on line %d", t.Type, t.Lexeme, t.Line)
}
