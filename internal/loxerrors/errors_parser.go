package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/loxexpr/internal/token"
)

var (
	ErrParseUnexpectedToken                       = errors.New("Expect expression.")
	ErrParseUnexpectedVariableName                = errors.New("Expect variable name.")
	ErrParseExpectedRightParenToken               = errors.New("Expect ')' after expression.")
	ErrParseExpectedSemicolonTokenAfterPrintValue = errors.New("Expect ';' after print value.")
	ErrParseExpectedSemicolonTokenAfterExpr       = errors.New("Expect ';' after value.")
	ErrParseExpectedSemicolonTokenAfterVar        = errors.New("Expect ';' after variable declaration.")
	ErrParseExpectedEndOfExpression               = errors.New("Expect end of expression.")
	ErrParseNestingTooDeep                        = errors.New("Expression nesting too deep.")
)

func NewParseError(tok *token.Token, cause error) error {
	return &ParserError{tok: tok, cause: cause}
}

type ParserError struct {
	tok   *token.Token
	cause error
}

// Error implements error.
func (p *ParserError) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %v", p.tok.Line, p.tok.Location(), p.cause)
}

// Token returns the token the parser failed on.
func (p *ParserError) Token() *token.Token {
	return p.tok
}

func (p *ParserError) Line() int {
	return p.tok.Line
}

func (p *ParserError) Unwrap() error {
	return p.cause
}

var _ error = (*ParserError)(nil)
var _ unwrapInterface = (*ParserError)(nil)
