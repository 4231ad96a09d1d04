package parser

import "github.com/leonardinius/loxexpr/internal/token"

// ExprVisitor is implemented by every consumer of expression trees.
//
// Accept routes each node to the method for its own kind, so a consumer
// that misses a kind does not compile.
type ExprVisitor interface {
	VisitExprBinary(expr *ExprBinary) (Value, error)
	VisitExprGrouping(expr *ExprGrouping) (Value, error)
	VisitExprLiteral(expr *ExprLiteral) (Value, error)
	VisitExprUnary(expr *ExprUnary) (Value, error)
	VisitExprVariable(expr *ExprVariable) (Value, error)
}

type Expr interface {
	Accept(v ExprVisitor) (Value, error)
}

type ExprBinary struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

func (e *ExprBinary) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprBinary(e)
}

type ExprGrouping struct {
	Expression Expr
}

func (e *ExprGrouping) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprGrouping(e)
}

type ExprLiteral struct {
	Value Value
}

func (e *ExprLiteral) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprLiteral(e)
}

type ExprUnary struct {
	Operator *token.Token
	Right    Expr
}

func (e *ExprUnary) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprUnary(e)
}

type ExprVariable struct {
	Name *token.Token
}

func (e *ExprVariable) Accept(v ExprVisitor) (Value, error) {
	return v.VisitExprVariable(e)
}

var (
	_ Expr = (*ExprBinary)(nil)
	_ Expr = (*ExprGrouping)(nil)
	_ Expr = (*ExprLiteral)(nil)
	_ Expr = (*ExprUnary)(nil)
	_ Expr = (*ExprVariable)(nil)
)
