package evaluator

import (
	"fmt"
	"sync"
	"time"

	"github.com/thomasrohde/schierke/go/pkg/ast"
	"github.com/thomasrohde/schierke/go/pkg/diagnostics"
	"github.com/thomasrohde/schierke/go/pkg/formatter"
)

// TraceEventType identifies the type of a trace event.
type TraceEventType string

const (
	TraceEvalStart TraceEventType = "eval_start"
	TraceEvalEnd   TraceEventType = "eval_end"
	TraceDefine    TraceEventType = "define"
	TraceLookup    TraceEventType = "lookup"
	TraceCommit    TraceEventType = "commit"
)

// TraceEvent represents a single trace event emitted during evaluation.
type TraceEvent struct {
	Timestamp string            `json:"ts"`
	RunID     string            `json:"runId,omitempty"`
	Event     TraceEventType    `json:"event"`
	Expr      string            `json:"expr,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

// RuntimeError represents a typed evaluation error.
type RuntimeError struct {
	Code    string
	Message string
	Expr    string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Is matches any RuntimeError with the same code, so callers can test
// against the sentinel errors below with errors.Is.
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	return ok && t.Code == e.Code
}

// Diagnostic converts the error into a diagnostic for display.
func (e *RuntimeError) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.MakeDiag(e.Code, e.Message, e.Expr, hints[e.Code])
}

var (
	ErrParse             = &RuntimeError{Code: diagnostics.EParse, Message: "error while parsing passed expression"}
	ErrUndefinedVariable = &RuntimeError{Code: diagnostics.EUndefinedVar, Message: "the following variable is undefined"}
	ErrTooManyArguments  = &RuntimeError{Code: diagnostics.ETooManyArguments, Message: "too many arguments passed"}
	ErrUnknownExpression = &RuntimeError{Code: diagnostics.EUnknownExpr, Message: "the following expression is unknown"}
	ErrDivisionByZero    = &RuntimeError{Code: diagnostics.EDivisionByZero, Message: "division by zero"}
)

var hints = map[string]string{
	diagnostics.EUndefinedVar:     "bind the variable with a two-part variable expression first",
	diagnostics.ETooManyArguments: "a variable expression takes a name, optionally followed by a value",
	diagnostics.EUnknownExpr:      "arithmetic takes exactly two operands that evaluate to numbers",
	diagnostics.EDivisionByZero:   "guard the divisor before dividing",
}

func undefinedVariable(name string) *RuntimeError {
	return &RuntimeError{
		Code:    diagnostics.EUndefinedVar,
		Message: fmt.Sprintf("the following variable is undefined: %s", name),
		Expr:    name,
	}
}

// Evaluator reduces expression trees to values. It owns a default
// environment that persists across calls to Evaluate.
type Evaluator struct {
	mu     sync.Mutex
	global *Env
	trace  func(event TraceEvent)
	runID  string
}

// Option is a functional option for configuring the Evaluator.
type Option func(*Evaluator)

// WithTrace sets a callback that receives trace events.
func WithTrace(fn func(event TraceEvent)) Option {
	return func(ev *Evaluator) {
		ev.trace = fn
	}
}

// WithRunID sets the run ID attached to trace events.
func WithRunID(id string) Option {
	return func(ev *Evaluator) {
		ev.runID = id
	}
}

// WithDefault seeds the default environment with a copy of env.
func WithDefault(env *Env) Option {
	return func(ev *Evaluator) {
		if env != nil {
			ev.global = env.Clone()
		}
	}
}

// New creates an Evaluator with an empty default environment.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{global: NewEnv()}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Default returns a copy of the current default environment.
func (ev *Evaluator) Default() *Env {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.global.Clone()
}

// Evaluate reduces expr to a value.
//
// When env is nil the evaluator works directly on its default environment.
// Otherwise env is used (and mutated) as the working environment, and on
// return its full contents replace the default environment, whether or not
// evaluation succeeded. Operands of variable bindings and arithmetic are
// always evaluated against the default environment, never against env.
// Definitions made by those nested evaluations are kept in the default
// environment whether the outer call succeeds or fails.
func (ev *Evaluator) Evaluate(expr ast.Expr, env *Env) (Value, error) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.eval(expr, env)
}

func (ev *Evaluator) eval(expr ast.Expr, env *Env) (Value, error) {
	working := env
	if working == nil {
		working = ev.global
	}

	ev.emit(TraceEvalStart, expr, nil)
	val, err := ev.evalExpr(expr, working)

	if working != ev.global {
		ev.global.Load(working)
		ev.emit(TraceCommit, expr, map[string]string{"vars": fmt.Sprint(ev.global.Len())})
	}

	if err != nil {
		ev.emit(TraceEvalEnd, expr, map[string]string{"error": err.Error()})
		return nil, err
	}
	ev.emit(TraceEvalEnd, expr, map[string]string{"value": FormatValue(val)})
	return val, nil
}

func (ev *Evaluator) evalExpr(expr ast.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return NewNumber(e.Value), nil
	case *ast.TextLiteral:
		return NewText(e.Value), nil
	case *ast.VariableExpr:
		return ev.evalVariable(e, env)
	case *ast.BinaryExpr:
		return ev.evalBinaryOp(e)
	}
	return nil, &RuntimeError{
		Code:    diagnostics.EUnknownExpr,
		Message: fmt.Sprintf("the following expression is unknown: %s", formatter.Format(expr)),
		Expr:    formatter.Format(expr),
	}
}

func (ev *Evaluator) evalVariable(e *ast.VariableExpr, env *Env) (Value, error) {
	switch len(e.Parts) {
	case 1:
		name := ast.Render(e.Parts[0])
		ev.emit(TraceLookup, e, map[string]string{"name": name})
		return env.Lookup(name)

	case 2:
		val, err := ev.eval(e.Parts[1], nil)
		if err != nil {
			return nil, err
		}
		name := ast.Render(e.Parts[0])
		ev.emit(TraceDefine, e, map[string]string{"name": name, "value": FormatValue(val)})
		return env.Define(e.Parts[0], val), nil
	}

	return nil, &RuntimeError{
		Code:    diagnostics.ETooManyArguments,
		Message: fmt.Sprintf("too many arguments passed: variable expression takes 1 or 2 parts, got %d", len(e.Parts)),
		Expr:    formatter.Format(e),
	}
}

func (ev *Evaluator) evalBinaryOp(e *ast.BinaryExpr) (Value, error) {
	if len(e.Operands) != 2 {
		return nil, &RuntimeError{
			Code:    diagnostics.EUnknownExpr,
			Message: fmt.Sprintf("the following expression is unknown: '%s' takes 2 operands, got %d", string(e.Op), len(e.Operands)),
			Expr:    formatter.Format(e),
		}
	}

	left, err := ev.evalOperand(e, e.Operands[0])
	if err != nil {
		return nil, err
	}
	right, err := ev.evalOperand(e, e.Operands[1])
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpAdd:
		return NewNumber(left + right), nil
	case ast.OpSub:
		return NewNumber(left - right), nil
	case ast.OpMul:
		return NewNumber(left * right), nil
	case ast.OpDiv:
		if right == 0 {
			return nil, &RuntimeError{
				Code:    diagnostics.EDivisionByZero,
				Message: "division by zero",
				Expr:    formatter.Format(e),
			}
		}
		return NewNumber(left / right), nil
	}

	return nil, &RuntimeError{
		Code:    diagnostics.EUnknownExpr,
		Message: fmt.Sprintf("the following expression is unknown: operator '%s'", string(e.Op)),
		Expr:    formatter.Format(e),
	}
}

// evalOperand evaluates one arithmetic operand against the default
// environment and requires it to reduce to a number.
func (ev *Evaluator) evalOperand(parent *ast.BinaryExpr, operand ast.Expr) (int64, error) {
	val, err := ev.eval(operand, nil)
	if err != nil {
		return 0, err
	}
	n, ok := val.(Number)
	if !ok {
		return 0, &RuntimeError{
			Code:    diagnostics.EUnknownExpr,
			Message: fmt.Sprintf("the following expression is unknown: '%s' requires numbers, got %s", string(parent.Op), typeNameOf(val)),
			Expr:    formatter.Format(parent),
		}
	}
	return n.Value, nil
}

func (ev *Evaluator) emit(event TraceEventType, expr ast.Expr, data map[string]string) {
	if ev.trace != nil {
		ev.trace(TraceEvent{
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			RunID:     ev.runID,
			Event:     event,
			Expr:      formatter.Format(expr),
			Data:      data,
		})
	}
}
