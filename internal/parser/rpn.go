package parser

import (
	"strings"

	"github.com/leonardinius/loxexpr/internal/token"
)

// RPNPrinter renders an expression in reverse Polish notation.
// Unary minus is written "~" to tell it apart from subtraction and
// groupings vanish: "(1 + 2) * -3" becomes "1 2 + 3 ~ *".
type RPNPrinter struct{}

func NewRPNPrinter() *RPNPrinter {
	return &RPNPrinter{}
}

// VisitExprBinary implements ExprVisitor.
func (p *RPNPrinter) VisitExprBinary(expr *ExprBinary) (Value, error) {
	return p.reverse(expr.Operator.Lexeme, expr.Left, expr.Right)
}

// VisitExprGrouping implements ExprVisitor.
func (p *RPNPrinter) VisitExprGrouping(expr *ExprGrouping) (Value, error) {
	return p.reverse("", expr.Expression)
}

// VisitExprLiteral implements ExprVisitor.
func (p *RPNPrinter) VisitExprLiteral(expr *ExprLiteral) (Value, error) {
	if s, ok := expr.Value.(ValueString); ok {
		return ValueString(s.GoString()), nil
	}
	return ValueString(expr.Value.String()), nil
}

// VisitExprUnary implements ExprVisitor.
func (p *RPNPrinter) VisitExprUnary(expr *ExprUnary) (Value, error) {
	operator := expr.Operator.Lexeme
	if expr.Operator.Type == token.MINUS {
		operator = "~"
	}
	return p.reverse(operator, expr.Right)
}

// VisitExprVariable implements ExprVisitor.
func (p *RPNPrinter) VisitExprVariable(expr *ExprVariable) (Value, error) {
	return ValueString(expr.Name.Lexeme), nil
}

// VisitStmtExpression implements StmtVisitor.
func (p *RPNPrinter) VisitStmtExpression(stmt *StmtExpression) (Value, error) {
	return p.reverse(";", stmt.Expression)
}

// VisitStmtPrint implements StmtVisitor.
func (p *RPNPrinter) VisitStmtPrint(stmt *StmtPrint) (Value, error) {
	return p.reverse("print", stmt.Expression)
}

// VisitStmtVar implements StmtVisitor.
func (p *RPNPrinter) VisitStmtVar(stmt *StmtVar) (Value, error) {
	if stmt.Initializer == nil {
		return p.reverse("nil " + stmt.Name.Lexeme + " var")
	}
	return p.reverse(stmt.Name.Lexeme+" var", stmt.Initializer)
}

func (p *RPNPrinter) reverse(name string, exprs ...Expr) (Value, error) {
	out := new(strings.Builder)
	for _, expr := range exprs {
		v, err := expr.Accept(p)
		if err != nil {
			return nil, err
		}
		_, _ = out.WriteString(v.String())
		_, _ = out.WriteString(" ")
	}
	_, _ = out.WriteString(name)
	return ValueString(strings.TrimSuffix(out.String(), " ")), nil
}

func (p *RPNPrinter) Print(expr Expr) string {
	return p.asStr(expr.Accept(p))
}

func (p *RPNPrinter) PrintStmt(stmt Stmt) string {
	return p.asStr(stmt.Accept(p))
}

func (p *RPNPrinter) asStr(v Value, err error) string {
	if err != nil {
		return err.Error()
	}
	return v.String()
}

var _ ExprVisitor = (*RPNPrinter)(nil)
var _ StmtVisitor = (*RPNPrinter)(nil)
