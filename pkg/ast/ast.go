// Package ast defines the expression tree node types.
package ast

import (
	"strconv"
	"strings"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	String() string
}

// BinaryOp represents an arithmetic operator.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
)

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Literal Expressions ---

// NumberLiteral is an integer constant.
type NumberLiteral struct {
	Value int64
}

func (n *NumberLiteral) Kind() string   { return "NumberLiteral" }
func (n *NumberLiteral) String() string { return strconv.FormatInt(n.Value, 10) }
func (n *NumberLiteral) exprNode()      {}

// TextLiteral is a string constant.
type TextLiteral struct {
	Value string
}

func (n *TextLiteral) Kind() string   { return "TextLiteral" }
func (n *TextLiteral) String() string { return n.Value }
func (n *TextLiteral) exprNode()      {}

// --- Variables ---

// VariableExpr reads the variable named by Parts[0] when it has one part,
// and binds it to the value of Parts[1] when it has two.
type VariableExpr struct {
	Parts []Expr
}

func (n *VariableExpr) Kind() string { return "VariableExpr" }
func (n *VariableExpr) String() string {
	if len(n.Parts) == 0 {
		return ""
	}
	return Render(n.Parts[0])
}
func (n *VariableExpr) exprNode() {}

// --- Arithmetic ---

// BinaryExpr applies Op to its operands. Only two operands are valid;
// other arities are rejected by the evaluator.
type BinaryExpr struct {
	Op       BinaryOp
	Operands []Expr
}

func (n *BinaryExpr) Kind() string { return "BinaryExpr" }
func (n *BinaryExpr) String() string {
	parts := make([]string, len(n.Operands))
	for i, o := range n.Operands {
		parts[i] = Render(o)
	}
	return strings.Join(parts, " "+string(n.Op)+" ")
}
func (n *BinaryExpr) exprNode() {}

// --- Constructors ---

// Number creates an integer literal.
func Number(n int64) Expr {
	return &NumberLiteral{Value: n}
}

// Text creates a string literal.
func Text(s string) Expr {
	return &TextLiteral{Value: s}
}

// Variable creates a variable read (one part) or binding (two parts).
func Variable(parts ...Expr) Expr {
	return &VariableExpr{Parts: parts}
}

// Add creates an addition node.
func Add(operands ...Expr) Expr { return &BinaryExpr{Op: OpAdd, Operands: operands} }

// Subtract creates a subtraction node.
func Subtract(operands ...Expr) Expr { return &BinaryExpr{Op: OpSub, Operands: operands} }

// Multiply creates a multiplication node.
func Multiply(operands ...Expr) Expr { return &BinaryExpr{Op: OpMul, Operands: operands} }

// Divide creates a truncating division node.
func Divide(operands ...Expr) Expr { return &BinaryExpr{Op: OpDiv, Operands: operands} }

// Render returns e.String(), or "" for a nil expression.
func Render(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *NumberLiteral:
		y, ok := b.(*NumberLiteral)
		return ok && x.Value == y.Value
	case *TextLiteral:
		y, ok := b.(*TextLiteral)
		return ok && x.Value == y.Value
	case *VariableExpr:
		y, ok := b.(*VariableExpr)
		return ok && equalAll(x.Parts, y.Parts)
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Op == y.Op && equalAll(x.Operands, y.Operands)
	}
	return false
}

func equalAll(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of e.
func Clone(e Expr) Expr {
	switch n := e.(type) {
	case *NumberLiteral:
		return &NumberLiteral{Value: n.Value}
	case *TextLiteral:
		return &TextLiteral{Value: n.Value}
	case *VariableExpr:
		return &VariableExpr{Parts: cloneAll(n.Parts)}
	case *BinaryExpr:
		return &BinaryExpr{Op: n.Op, Operands: cloneAll(n.Operands)}
	}
	return nil
}

func cloneAll(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = Clone(e)
	}
	return out
}
