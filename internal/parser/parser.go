package parser

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leonardinius/loxexpr/internal/loxerrors"
	"github.com/leonardinius/loxexpr/internal/token"
)

var (
	nilExpr       Expr   = nil
	nilStmt       Stmt   = nil
	nilStatements []Stmt = nil
)

// DefaultMaxDepth bounds the nesting of unary operators and groupings.
const DefaultMaxDepth = 256

type Parser interface {
	// Parse parses a program, a sequence of statements up to EOF.
	// A malformed statement is reported and skipped up to the next statement
	// boundary. If any statement failed no statements are returned.
	Parse() ([]Stmt, error)

	// ParseExpression parses a single expression which must span all tokens.
	ParseExpression() (Expr, error)
}

type parserOpts struct {
	maxDepth          int
	implicitSemicolon bool
}

type ParserOption func(*parserOpts)

// WithMaxDepth sets the nesting limit, see DefaultMaxDepth.
// A limit of zero or less keeps the default.
func WithMaxDepth(depth int) ParserOption {
	return func(opts *parserOpts) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}
		opts.maxDepth = depth
	}
}

// WithImplicitSemicolon lets the last statement omit its ';' before EOF.
func WithImplicitSemicolon() ParserOption {
	return func(opts *parserOpts) {
		opts.implicitSemicolon = true
	}
}

type parser struct {
	tokens   []token.Token
	current  int
	depth    int
	reporter loxerrors.ErrReporter
	opts     parserOpts
}

func NewParser(tokens []token.Token, reporter loxerrors.ErrReporter, options ...ParserOption) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if !tokens[len(tokens)-1].IsEOF() {
		panic("tokens must end with EOF")
	}

	opts := parserOpts{maxDepth: DefaultMaxDepth}
	for _, opt := range options {
		opt(&opts)
	}

	return &parser{
		tokens:   tokens,
		current:  0,
		reporter: reporter,
		opts:     opts,
	}
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, depth: %d}", p.tokens, p.current, p.depth)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, current: %d}", len(p.tokens), p.current)
}

// Parse implements Parser.
func (p *parser) Parse() ([]Stmt, error) {
	var statements []Stmt
	var errs []error

	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			errs = append(errs, err)
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	// if we are at error state, we do not return invalid ast tree
	if len(errs) > 0 {
		return nilStatements, errors.Join(errs...)
	}
	return statements, nil
}

// ParseExpression implements Parser.
func (p *parser) ParseExpression() (Expr, error) {
	expr, err := p.expression()
	if err != nil {
		return nilExpr, err
	}

	if !p.isAtEnd() {
		return nilExpr, p.reportError(p.peek(), loxerrors.ErrParseExpectedEndOfExpression)
	}

	return expr, nil
}

func (p *parser) declaration() (Stmt, error) {
	if p.match(token.VAR) {
		return p.varDeclaration()
	}

	return p.statement()
}

func (p *parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(token.IDENTIFIER, loxerrors.ErrParseUnexpectedVariableName)
	if err != nil {
		return nilStmt, err
	}

	initializer := nilExpr
	if p.match(token.EQUAL) {
		if initializer, err = p.expression(); err != nil {
			return nilStmt, err
		}
	}

	if err = p.endStatement(loxerrors.ErrParseExpectedSemicolonTokenAfterVar); err != nil {
		return nilStmt, err
	}

	return &StmtVar{Name: name, Initializer: initializer}, nil
}

func (p *parser) statement() (Stmt, error) {
	if p.match(token.PRINT) {
		return p.printStatement()
	}

	return p.expressionStatement()
}

func (p *parser) printStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nilStmt, err
	}

	if err = p.endStatement(loxerrors.ErrParseExpectedSemicolonTokenAfterPrintValue); err != nil {
		return nilStmt, err
	}

	return &StmtPrint{Expression: expr}, nil
}

func (p *parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nilStmt, err
	}

	if err = p.endStatement(loxerrors.ErrParseExpectedSemicolonTokenAfterExpr); err != nil {
		return nilStmt, err
	}

	return &StmtExpression{Expression: expr}, nil
}

func (p *parser) endStatement(cause error) error {
	if p.match(token.SEMICOLON) {
		return nil
	}
	if p.opts.implicitSemicolon && p.isAtEnd() {
		return nil
	}
	return p.reportError(p.peek(), cause)
}

func (p *parser) expression() (Expr, error) {
	return p.equality()
}

func (p *parser) equality() (Expr, error) {
	return p.binary(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

func (p *parser) comparison() (Expr, error) {
	return p.binary(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

func (p *parser) term() (Expr, error) {
	return p.binary(p.factor, token.MINUS, token.PLUS)
}

func (p *parser) factor() (Expr, error) {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

// binary parses one left-associative precedence level: operand ( op operand )*.
func (p *parser) binary(operand func() (Expr, error), operators ...token.TokenType) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nilExpr, err
	}

	for p.anyMatch(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nilExpr, err
		}
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

func (p *parser) unary() (Expr, error) {
	if p.anyMatch(token.BANG, token.MINUS) {
		operator := p.previous()

		err := p.enter()
		defer p.leave()
		if err != nil {
			return nilExpr, err
		}

		right, err := p.unary()
		if err != nil {
			return nilExpr, err
		}
		return &ExprUnary{Operator: operator, Right: right}, nil
	}

	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	if p.match(token.FALSE) {
		return &ExprLiteral{Value: FalseValue}, nil
	}
	if p.match(token.TRUE) {
		return &ExprLiteral{Value: TrueValue}, nil
	}
	if p.match(token.NIL) {
		return &ExprLiteral{Value: NilValue}, nil
	}

	if p.anyMatch(token.NUMBER, token.STRING) {
		tok := p.previous()
		value, ok := ValueOf(tok.Literal)
		if !ok {
			return nilExpr, p.reportError(tok, loxerrors.ErrParseUnexpectedToken)
		}
		return &ExprLiteral{Value: value}, nil
	}

	if p.match(token.IDENTIFIER) {
		return &ExprVariable{Name: p.previous()}, nil
	}

	return p.grouping()
}

func (p *parser) grouping() (Expr, error) {
	if !p.match(token.LEFT_PAREN) {
		return nilExpr, p.reportError(p.peek(), loxerrors.ErrParseUnexpectedToken)
	}

	err := p.enter()
	defer p.leave()
	if err != nil {
		return nilExpr, err
	}

	expr, err := p.expression()
	if err != nil {
		return nilExpr, err
	}

	if _, err = p.consume(token.RIGHT_PAREN, loxerrors.ErrParseExpectedRightParenToken); err != nil {
		return nilExpr, err
	}

	return &ExprGrouping{Expression: expr}, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.opts.maxDepth {
		return p.reportError(p.peek(), loxerrors.ErrParseNestingTooDeep)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) anyMatch(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) match(tokType token.TokenType) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) consume(tokType token.TokenType, cause error) (*token.Token, error) {
	if p.check(tokType) {
		return p.advance(), nil
	}
	return nil, p.reportError(p.peek(), cause)
}

func (p *parser) check(tokenType token.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == tokenType
}

func (p *parser) peek() *token.Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return &p.tokens[p.current-1]
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().IsEOF()
}

// reportError reports the failure right away and returns it for the caller to
// unwind to the nearest statement boundary.
func (p *parser) reportError(tok *token.Token, cause error) error {
	err := loxerrors.NewParseError(tok, cause)
	if p.reporter != nil {
		p.reporter.ReportError(err)
	}
	return err
}

func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		if slices.Contains(statementKeywords, p.peek().Type) {
			return
		}

		p.advance()
	}
}

var statementKeywords = []token.TokenType{
	token.CLASS,
	token.FUN,
	token.VAR,
	token.FOR,
	token.IF,
	token.WHILE,
	token.PRINT,
	token.RETURN,
}

var _ Parser = (*parser)(nil)
var _ fmt.Stringer = (*parser)(nil)
var _ fmt.GoStringer = (*parser)(nil)
