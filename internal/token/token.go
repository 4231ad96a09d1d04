package token

import "fmt"

// Token is one lexeme of the source with its kind, literal value and line.
// Literal holds float64 for NUMBER, string for STRING, nil otherwise.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

func NewToken(t TokenType, lexeme string, literal any, line int) Token {
	return Token{Type: t, Lexeme: lexeme, Literal: literal, Line: line}
}

// NewTokenHeap is NewToken for AST nodes, which keep tokens by pointer.
func NewTokenHeap(t TokenType, lexeme string, literal any, line int) *Token {
	tok := NewToken(t, lexeme, literal, line)
	return &tok
}

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool {
	return t.Type == EOF
}

// Location renders the token for diagnostics: "at end" for EOF, "at 'lexeme'" otherwise.
func (t Token) Location() string {
	if t.IsEOF() {
		return "at end"
	}
	return "at '" + t.Lexeme + "'"
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}

// GoString implements fmt.GoStringer.
func (t Token) GoString() string {
	return fmt.Sprintf("{Type: %s, Lexeme: %q, Literal: %#v, Line: %d}", t.Type, t.Lexeme, t.Literal, t.Line)
}

var (
	_ fmt.Stringer   = Token{}
	_ fmt.GoStringer = Token{}
)
