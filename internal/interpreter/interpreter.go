package interpreter

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/leonardinius/loxexpr/internal/loxerrors"
	"github.com/leonardinius/loxexpr/internal/parser"
	"github.com/leonardinius/loxexpr/internal/token"
)

type Interpreter interface {
	// Interpret executes the given statements in order.
	// Returns the stringified value of the last statement when it is an
	// expression statement, otherwise an empty string.
	//
	// Not thread safe.
	// Every call starts with an empty set of variables.
	Interpret(ctx context.Context, statements []parser.Stmt) (string, error)

	// Evaluate evaluates the given expression.
	// Returns the result of the expression and an error if any.
	//
	// Not thread safe.
	Evaluate(ctx context.Context, expr parser.Expr) (parser.Value, error)
}

type interpreter struct {
	opts *interpreterOpts
	env  *environment
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	return &interpreter{
		opts: newInterpreterOpts(options...),
		env:  newEnvironment(),
	}
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(ctx context.Context, statements []parser.Stmt) (string, error) {
	i.env = newEnvironment()

	var value parser.Value
	for n, stmt := range statements {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		v, err := i.execute(stmt)
		if err != nil {
			return "", i.runtimeError(err)
		}
		value = v

		_ = level.Debug(i.opts.logger).Log("msg", "executed statement", "index", n, "env", i.env)
	}

	if _, ok := lastStatement(statements).(*parser.StmtExpression); ok && value != nil {
		return value.String(), nil
	}
	return "", nil
}

// Evaluate implements Interpreter.
func (i *interpreter) Evaluate(ctx context.Context, expr parser.Expr) (parser.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.env = newEnvironment()
	value, err := i.evaluate(expr)
	if err != nil {
		return nil, i.runtimeError(err)
	}
	return value, nil
}

// VisitStmtExpression implements parser.StmtVisitor.
func (i *interpreter) VisitStmtExpression(stmt *parser.StmtExpression) (parser.Value, error) {
	return i.evaluate(stmt.Expression)
}

// VisitStmtPrint implements parser.StmtVisitor.
func (i *interpreter) VisitStmtPrint(stmt *parser.StmtPrint) (parser.Value, error) {
	value, err := i.evaluate(stmt.Expression)
	if err != nil {
		return nil, err
	}

	if _, err = fmt.Fprintln(i.opts.stdout, value.String()); err != nil {
		return nil, err
	}
	return parser.NilValue, nil
}

// VisitStmtVar implements parser.StmtVisitor.
func (i *interpreter) VisitStmtVar(stmt *parser.StmtVar) (parser.Value, error) {
	var value parser.Value = parser.NilValue
	if stmt.Initializer != nil {
		var err error
		if value, err = i.evaluate(stmt.Initializer); err != nil {
			return nil, err
		}
	}

	i.env.Define(stmt.Name.Lexeme, value)
	return parser.NilValue, nil
}

// VisitExprBinary implements parser.ExprVisitor.
func (i *interpreter) VisitExprBinary(expr *parser.ExprBinary) (parser.Value, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.BANG_EQUAL:
		return parser.ValueBool(!i.isEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return parser.ValueBool(i.isEqual(left, right)), nil
	case token.PLUS:
		if l, ok := left.(parser.ValueString); ok {
			if r, ok := right.(parser.ValueString); ok {
				return l + r, nil
			}
		}
		if l, ok := left.(parser.ValueFloat); ok {
			if r, ok := right.(parser.ValueFloat); ok {
				return l + r, nil
			}
		}
		return nil, loxerrors.NewRuntimeError(expr.Operator, loxerrors.ErrRuntimeOperandsMustNumbersOrStrings)
	}

	l, r, err := i.checkNumberOperands(expr.Operator, left, right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.GREATER:
		return parser.ValueBool(l > r), nil
	case token.GREATER_EQUAL:
		return parser.ValueBool(l >= r), nil
	case token.LESS:
		return parser.ValueBool(l < r), nil
	case token.LESS_EQUAL:
		return parser.ValueBool(l <= r), nil
	case token.MINUS:
		return l - r, nil
	case token.SLASH:
		return l / r, nil
	case token.STAR:
		return l * r, nil
	}

	return i.unknownOperator(expr.Operator)
}

// VisitExprGrouping implements parser.ExprVisitor.
func (i *interpreter) VisitExprGrouping(expr *parser.ExprGrouping) (parser.Value, error) {
	return i.evaluate(expr.Expression)
}

// VisitExprLiteral implements parser.ExprVisitor.
func (i *interpreter) VisitExprLiteral(expr *parser.ExprLiteral) (parser.Value, error) {
	return expr.Value, nil
}

// VisitExprUnary implements parser.ExprVisitor.
func (i *interpreter) VisitExprUnary(expr *parser.ExprUnary) (parser.Value, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.MINUS:
		v, err := i.checkNumberOperand(expr.Operator, right)
		if err != nil {
			return nil, err
		}
		return -v, nil
	case token.BANG:
		return parser.ValueBool(!i.isTruthy(right)), nil
	}

	return i.unknownOperator(expr.Operator)
}

// VisitExprVariable implements parser.ExprVisitor.
func (i *interpreter) VisitExprVariable(expr *parser.ExprVariable) (parser.Value, error) {
	return i.env.Get(expr.Name)
}

func (i *interpreter) execute(stmt parser.Stmt) (parser.Value, error) {
	return stmt.Accept(i)
}

func (i *interpreter) evaluate(expr parser.Expr) (parser.Value, error) {
	return expr.Accept(i)
}

// isTruthy: nil and false are falsey, everything else is truthy.
func (i *interpreter) isTruthy(value parser.Value) bool {
	switch v := value.(type) {
	case nil, parser.ValueNil:
		return false
	case parser.ValueBool:
		return bool(v)
	}

	return true
}

// isEqual never converts between types. NaN is not equal to itself.
func (i *interpreter) isEqual(left, right parser.Value) bool {
	return left == right
}

func (i *interpreter) checkNumberOperands(operator *token.Token, left, right parser.Value) (parser.ValueFloat, parser.ValueFloat, error) {
	l, ok := left.(parser.ValueFloat)
	if !ok {
		return 0, 0, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperandsMustBeNumbers)
	}
	r, ok := right.(parser.ValueFloat)
	if !ok {
		return 0, 0, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperandsMustBeNumbers)
	}
	return l, r, nil
}

func (i *interpreter) checkNumberOperand(operator *token.Token, operand parser.Value) (parser.ValueFloat, error) {
	if v, ok := operand.(parser.ValueFloat); ok {
		return v, nil
	}
	return 0, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperandMustBeNumber)
}

func (i *interpreter) unknownOperator(operator *token.Token) (parser.Value, error) {
	return nil, loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeUnknownOperator)
}

func (i *interpreter) runtimeError(err error) error {
	_ = level.Debug(i.opts.logger).Log("msg", "runtime error", "err", err)
	i.opts.reporter.ReportRuntimeError(err)
	return err
}

func lastStatement(statements []parser.Stmt) parser.Stmt {
	if len(statements) == 0 {
		return nil
	}
	return statements[len(statements)-1]
}

var (
	_ parser.ExprVisitor = (*interpreter)(nil)
	_ parser.StmtVisitor = (*interpreter)(nil)
	_ Interpreter        = (*interpreter)(nil)
)
