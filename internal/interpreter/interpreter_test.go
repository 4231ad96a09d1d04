package interpreter_test

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/leonardinius/loxexpr/internal/interpreter"
	"github.com/leonardinius/loxexpr/internal/loxerrors"
	"github.com/leonardinius/loxexpr/internal/parser"
	"github.com/leonardinius/loxexpr/internal/token"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func literal(v parser.Value) *parser.ExprLiteral {
	return &parser.ExprLiteral{Value: v}
}

func operator(t token.TokenType, lexeme string, line int) *token.Token {
	return token.NewTokenHeap(t, lexeme, nil, line)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		expr parser.Expr
		want parser.Value
	}{
		{
			name: "literal",
			expr: literal(parser.ValueString("lox")),
			want: parser.ValueString("lox"),
		},
		{
			name: "grouping",
			expr: &parser.ExprGrouping{Expression: literal(parser.ValueFloat(2))},
			want: parser.ValueFloat(2),
		},
		{
			name: "negate",
			expr: &parser.ExprUnary{Operator: operator(token.MINUS, "-", 1), Right: literal(parser.ValueFloat(3))},
			want: parser.ValueFloat(-3),
		},
		{
			name: "not nil",
			expr: &parser.ExprUnary{Operator: operator(token.BANG, "!", 1), Right: literal(parser.NilValue)},
			want: parser.TrueValue,
		},
		{
			name: "concat",
			expr: &parser.ExprBinary{
				Left:     literal(parser.ValueString("foo")),
				Operator: operator(token.PLUS, "+", 1),
				Right:    literal(parser.ValueString("bar")),
			},
			want: parser.ValueString("foobar"),
		},
		{
			name: "multiply",
			expr: &parser.ExprBinary{
				Left:     literal(parser.ValueFloat(-123)),
				Operator: operator(token.STAR, "*", 1),
				Right:    &parser.ExprGrouping{Expression: literal(parser.ValueFloat(0.5))},
			},
			want: parser.ValueFloat(-61.5),
		},
		{
			name: "divide by zero",
			expr: &parser.ExprBinary{
				Left:     literal(parser.ValueFloat(1)),
				Operator: operator(token.SLASH, "/", 1),
				Right:    literal(parser.ValueFloat(0)),
			},
			want: parser.ValueFloat(math.Inf(1)),
		},
		{
			name: "equal across types",
			expr: &parser.ExprBinary{
				Left:     literal(parser.ValueFloat(0)),
				Operator: operator(token.EQUAL_EQUAL, "==", 1),
				Right:    literal(parser.FalseValue),
			},
			want: parser.FalseValue,
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			eval := interpreter.NewInterpreter(interpreter.WithStderr(io.Discard))
			got, err := eval.Evaluate(context.Background(), tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateRuntimeErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name  string
		expr  parser.Expr
		cause error
		line  int
	}{
		{
			name:  "negate string",
			expr:  &parser.ExprUnary{Operator: operator(token.MINUS, "-", 7), Right: literal(parser.ValueString("x"))},
			cause: loxerrors.ErrRuntimeOperandMustBeNumber,
			line:  7,
		},
		{
			name: "compare bools",
			expr: &parser.ExprBinary{
				Left:     literal(parser.TrueValue),
				Operator: operator(token.GREATER, ">", 3),
				Right:    literal(parser.FalseValue),
			},
			cause: loxerrors.ErrRuntimeOperandsMustBeNumbers,
			line:  3,
		},
		{
			name: "add nil",
			expr: &parser.ExprBinary{
				Left:     literal(parser.ValueFloat(1)),
				Operator: operator(token.PLUS, "+", 2),
				Right:    literal(parser.NilValue),
			},
			cause: loxerrors.ErrRuntimeOperandsMustNumbersOrStrings,
			line:  2,
		},
		{
			name: "unknown binary operator",
			expr: &parser.ExprBinary{
				Left:     literal(parser.ValueFloat(1)),
				Operator: operator(token.COMMA, ",", 4),
				Right:    literal(parser.ValueFloat(2)),
			},
			cause: loxerrors.ErrRuntimeUnknownOperator,
			line:  4,
		},
		{
			name:  "undefined variable",
			expr:  &parser.ExprVariable{Name: token.NewTokenHeap(token.IDENTIFIER, "x", nil, 5)},
			cause: loxerrors.ErrRuntimeUndefinedVariable,
			line:  5,
		},
		{
			name: "error in left operand wins",
			expr: &parser.ExprBinary{
				Left:     &parser.ExprUnary{Operator: operator(token.MINUS, "-", 1), Right: literal(parser.NilValue)},
				Operator: operator(token.PLUS, "+", 1),
				Right:    &parser.ExprVariable{Name: token.NewTokenHeap(token.IDENTIFIER, "y", nil, 9)},
			},
			cause: loxerrors.ErrRuntimeOperandMustBeNumber,
			line:  1,
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			stderr := new(strings.Builder)
			reporter := loxerrors.NewErrReporter(stderr)
			eval := interpreter.NewInterpreter(interpreter.WithErrorReporter(reporter))

			got, err := eval.Evaluate(context.Background(), tc.expr)
			assert.Nil(t, got)
			require.ErrorIs(t, err, tc.cause)
			assert.True(t, reporter.HadRuntimeError())
			assert.Equal(t, err.Error()+"\n", stderr.String())

			var runtimeErr *loxerrors.RuntimeError
			require.True(t, errors.As(err, &runtimeErr))
			assert.Equal(t, tc.line, runtimeErr.Line())
		})
	}
}

func TestInterpretCancelled(t *testing.T) {
	t.Parallel()

	stdout := new(strings.Builder)
	eval := interpreter.NewInterpreter(interpreter.WithStdout(stdout))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stmts := []parser.Stmt{&parser.StmtPrint{Expression: literal(parser.TrueValue)}}
	_, err := eval.Interpret(ctx, stmts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stdout.String())

	_, err = eval.Evaluate(ctx, literal(parser.TrueValue))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInterpretLogs(t *testing.T) {
	t.Parallel()

	logs := new(strings.Builder)
	eval := interpreter.NewInterpreter(
		interpreter.WithStdout(io.Discard),
		interpreter.WithStderr(io.Discard),
		interpreter.WithLogger(log.NewLogfmtLogger(logs)),
	)

	stmts := []parser.Stmt{
		&parser.StmtVar{Name: token.NewTokenHeap(token.IDENTIFIER, "a", nil, 1), Initializer: literal(parser.ValueString("x"))},
		&parser.StmtExpression{Expression: &parser.ExprVariable{Name: token.NewTokenHeap(token.IDENTIFIER, "a", nil, 1)}},
	}
	value, err := eval.Interpret(context.Background(), stmts)
	require.NoError(t, err)
	assert.Equal(t, "x", value)
	assert.Contains(t, logs.String(), `level=debug msg="executed statement" index=0 env="{a=\"x\"}"`)
	assert.Contains(t, logs.String(), `index=1`)
}
