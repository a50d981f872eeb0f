// Package evaluator implements the expression evaluator and its environment.
package evaluator

import "strconv"

// Value is the interface for all evaluation results.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	value() // sealed marker
}

// Number represents a signed 64-bit integer value.
type Number struct {
	Value int64
}

func (Number) value() {}

// Text represents a string value.
type Text struct {
	Value string
}

func (Text) value() {}

// NewNumber creates a numeric value.
func NewNumber(n int64) Value {
	return Number{Value: n}
}

// NewText creates a string value.
func NewText(s string) Value {
	return Text{Value: s}
}

// FormatValue renders a value for display. Text is quoted.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case Number:
		return strconv.FormatInt(val.Value, 10)
	case Text:
		return strconv.Quote(val.Value)
	}
	return "<nil>"
}

// DeepEqual reports whether two values have the same kind and content.
func DeepEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case Text:
		bv, ok := b.(Text)
		return ok && av.Value == bv.Value
	}
	return a == nil && b == nil
}

func typeNameOf(v Value) string {
	switch v.(type) {
	case Number:
		return "number"
	case Text:
		return "text"
	}
	return "nil"
}
