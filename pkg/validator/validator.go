// Package validator implements static checks of expression trees.
//
// Validation never changes evaluation: the evaluator reports the same
// conditions at run time. Validate lets a front-end reject a malformed tree
// before any variable is bound.
package validator

import (
	"fmt"

	"github.com/thomasrohde/schierke/go/pkg/ast"
	"github.com/thomasrohde/schierke/go/pkg/diagnostics"
	"github.com/thomasrohde/schierke/go/pkg/formatter"
)

type validator struct {
	diags []diagnostics.Diagnostic
}

// Validate walks the whole tree and returns every problem it finds, in
// depth-first, left-to-right order.
func Validate(expr ast.Expr) []diagnostics.Diagnostic {
	v := &validator{}
	v.validateExpr(expr)
	return v.diags
}

func (v *validator) report(code, message string, expr ast.Expr, hint string) {
	v.diags = append(v.diags, diagnostics.MakeDiag(code, message, formatter.Format(expr), hint))
}

func (v *validator) validateExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.NumberLiteral, *ast.TextLiteral:
		// always valid

	case *ast.VariableExpr:
		if len(e.Parts) == 0 || len(e.Parts) > 2 {
			v.report(diagnostics.ETooManyArguments,
				fmt.Sprintf("variable expression takes 1 or 2 parts, got %d", len(e.Parts)),
				e, "use [name] to read or [name, value] to bind")
		}
		for _, p := range e.Parts {
			v.validateExpr(p)
		}

	case *ast.BinaryExpr:
		switch e.Op {
		case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		default:
			v.report(diagnostics.EUnknownExpr, fmt.Sprintf("unknown operator '%s'", string(e.Op)), e, "")
		}
		if len(e.Operands) != 2 {
			v.report(diagnostics.EUnknownExpr,
				fmt.Sprintf("'%s' takes 2 operands, got %d", string(e.Op), len(e.Operands)),
				e, "")
		}
		for _, o := range e.Operands {
			if _, isText := o.(*ast.TextLiteral); isText {
				v.report(diagnostics.EUnknownExpr,
					fmt.Sprintf("'%s' requires numbers, got text literal", string(e.Op)),
					e, "arithmetic operands must evaluate to numbers")
			}
			v.validateExpr(o)
		}
		if e.Op == ast.OpDiv && len(e.Operands) == 2 {
			if n, ok := e.Operands[1].(*ast.NumberLiteral); ok && n.Value == 0 {
				v.report(diagnostics.EDivisionByZero, "division by zero", e, "")
			}
		}

	default:
		v.report(diagnostics.EUnknownExpr, "unknown expression", expr, "")
	}
}
