// Package diagnostics defines diagnostic types for evaluation and validation errors.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Diagnostic code constants.
const (
	// EParse is reserved for a textual front-end; the evaluator never reports it.
	EParse            = "E_PARSE"
	EUndefinedVar     = "E_UNDEFINED_VARIABLE"
	ETooManyArguments = "E_TOO_MANY_ARGUMENTS"
	EUnknownExpr      = "E_UNKNOWN_EXPRESSION"
	EDivisionByZero   = "E_DIVISION_BY_ZERO"
)

// Diagnostic represents an evaluation or validation diagnostic.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Expr    string `json:"expr,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message, expr, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Expr:    expr,
		Hint:    hint,
	}
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	out := fmt.Sprintf("error[%s]: %s", d.Code, d.Message)
	if d.Expr != "" {
		out += fmt.Sprintf("\n  --> %s", d.Expr)
	}
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n\n")
}
