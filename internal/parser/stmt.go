package parser

import "github.com/leonardinius/loxexpr/internal/token"

type StmtVisitor interface {
	VisitStmtExpression(stmt *StmtExpression) (Value, error)
	VisitStmtPrint(stmt *StmtPrint) (Value, error)
	VisitStmtVar(stmt *StmtVar) (Value, error)
}

type Stmt interface {
	Accept(v StmtVisitor) (Value, error)
}

type StmtExpression struct {
	Expression Expr
}

func (s *StmtExpression) Accept(v StmtVisitor) (Value, error) {
	return v.VisitStmtExpression(s)
}

type StmtPrint struct {
	Expression Expr
}

func (s *StmtPrint) Accept(v StmtVisitor) (Value, error) {
	return v.VisitStmtPrint(s)
}

// StmtVar declares Name. Initializer is nil for a bare "var x;".
type StmtVar struct {
	Name        *token.Token
	Initializer Expr
}

func (s *StmtVar) Accept(v StmtVisitor) (Value, error) {
	return v.VisitStmtVar(s)
}

var (
	_ Stmt = (*StmtExpression)(nil)
	_ Stmt = (*StmtPrint)(nil)
	_ Stmt = (*StmtVar)(nil)
)
