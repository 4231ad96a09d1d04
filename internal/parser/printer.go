package parser

import (
	"strings"
)

// AstPrinter renders an expression as a fully parenthesized S-expression,
// e.g. "1 + 2 * 3" becomes "(+ 1 (* 2 3))".
type AstPrinter struct{}

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

// VisitExprBinary implements ExprVisitor.
func (p *AstPrinter) VisitExprBinary(expr *ExprBinary) (Value, error) {
	return p.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
}

// VisitExprGrouping implements ExprVisitor.
func (p *AstPrinter) VisitExprGrouping(expr *ExprGrouping) (Value, error) {
	return p.parenthesize("group", expr.Expression)
}

// VisitExprLiteral implements ExprVisitor.
func (p *AstPrinter) VisitExprLiteral(expr *ExprLiteral) (Value, error) {
	if s, ok := expr.Value.(ValueString); ok {
		return ValueString(s.GoString()), nil
	}
	return ValueString(expr.Value.String()), nil
}

// VisitExprUnary implements ExprVisitor.
func (p *AstPrinter) VisitExprUnary(expr *ExprUnary) (Value, error) {
	return p.parenthesize(expr.Operator.Lexeme, expr.Right)
}

// VisitExprVariable implements ExprVisitor.
func (p *AstPrinter) VisitExprVariable(expr *ExprVariable) (Value, error) {
	return ValueString(expr.Name.Lexeme), nil
}

// VisitStmtExpression implements StmtVisitor.
func (p *AstPrinter) VisitStmtExpression(stmt *StmtExpression) (Value, error) {
	return p.parenthesize(";", stmt.Expression)
}

// VisitStmtPrint implements StmtVisitor.
func (p *AstPrinter) VisitStmtPrint(stmt *StmtPrint) (Value, error) {
	return p.parenthesize("print", stmt.Expression)
}

// VisitStmtVar implements StmtVisitor.
func (p *AstPrinter) VisitStmtVar(stmt *StmtVar) (Value, error) {
	if stmt.Initializer == nil {
		return p.parenthesize("var " + stmt.Name.Lexeme)
	}
	return p.parenthesize("var "+stmt.Name.Lexeme, stmt.Initializer)
}

func (p *AstPrinter) parenthesize(name string, exprs ...Expr) (Value, error) {
	out := new(strings.Builder)
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, expr := range exprs {
		v, err := expr.Accept(p)
		if err != nil {
			return nil, err
		}
		_, _ = out.WriteString(" ")
		_, _ = out.WriteString(v.String())
	}
	_, _ = out.WriteString(")")
	return ValueString(out.String()), nil
}

func (p *AstPrinter) Print(expr Expr) string {
	return p.asStr(expr.Accept(p))
}

func (p *AstPrinter) PrintStmt(stmt Stmt) string {
	return p.asStr(stmt.Accept(p))
}

func (p *AstPrinter) asStr(v Value, err error) string {
	if err != nil {
		return err.Error()
	}
	return v.String()
}

var _ ExprVisitor = (*AstPrinter)(nil)
var _ StmtVisitor = (*AstPrinter)(nil)
