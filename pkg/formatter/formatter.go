// Package formatter renders expression trees as canonical text.
package formatter

import (
	"strconv"
	"strings"

	"github.com/thomasrohde/schierke/go/pkg/ast"
)

// Format pretty-prints an expression tree. Binary nodes are always
// parenthesized, text literals are quoted, and variable names are bare:
//
//	(x := (2 + (2 + 2)))
//
// Nodes with an arity the evaluator would reject are printed in call form,
// e.g. +(1, 2, 3) or var(), so diagnostics can show them faithfully.
func Format(e ast.Expr) string {
	var b strings.Builder
	formatExpr(&b, e)
	return b.String()
}

func formatExpr(b *strings.Builder, e ast.Expr) {
	switch n := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *ast.NumberLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *ast.TextLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *ast.VariableExpr:
		switch len(n.Parts) {
		case 1:
			b.WriteString(ast.Render(n.Parts[0]))
		case 2:
			b.WriteString("(")
			b.WriteString(ast.Render(n.Parts[0]))
			b.WriteString(" := ")
			formatExpr(b, n.Parts[1])
			b.WriteString(")")
		default:
			formatCall(b, "var", n.Parts)
		}
	case *ast.BinaryExpr:
		if len(n.Operands) != 2 {
			formatCall(b, string(n.Op), n.Operands)
			return
		}
		b.WriteString("(")
		formatExpr(b, n.Operands[0])
		b.WriteString(" " + string(n.Op) + " ")
		formatExpr(b, n.Operands[1])
		b.WriteString(")")
	}
}

func formatCall(b *strings.Builder, name string, args []ast.Expr) {
	b.WriteString(name)
	b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		formatExpr(b, a)
	}
	b.WriteString(")")
}
