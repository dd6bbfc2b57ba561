// Package gorational evaluates arithmetic expressions over exact rational
// numbers.
//
// Every value is a fraction of arbitrary-precision integers, so 1/3 + 1/6
// is exactly 1/2 and (4 - 8) / (1 + 2) renders as -1.{3}R, the repeating
// block wrapped in cycle markers. Transcendental functions (exp, ln, sin,
// ...) are approximated by truncated series of a configurable degree and
// still return rationals.
//
// # Quick Start
//
//	// Simple evaluation
//	res, err := gorational.Eval("max(1/3, 0.25) * 6", nil)
//
//	// Compile once, evaluate many times
//	expr, err := gorational.Compile("x * x - 2")
//	ev := gorational.New()
//	r1, _ := ev.Eval(ctx, expr, map[string]rational.Number{"x": rational.Frac(3, 2)})
//
//	// With options
//	res, err := gorational.Eval("sin(30)", nil,
//	    gorational.WithConfig(config.WithAngle(config.Degrees)),
//	    gorational.WithTimeout(5*time.Second),
//	)
//
// # More Information
//
// For detailed documentation, see:
//   - Numbers: github.com/sandrolain/gorational/pkg/rational
//   - Parser: github.com/sandrolain/gorational/pkg/parser
//   - Evaluator: github.com/sandrolain/gorational/pkg/evaluator
//   - Functions: github.com/sandrolain/gorational/pkg/functions
//   - Settings: github.com/sandrolain/gorational/pkg/config
package gorational

import (
	"context"
	"fmt"
	"time"

	"github.com/sandrolain/gorational/pkg/evaluator"
	"github.com/sandrolain/gorational/pkg/parser"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Version returns the current version of gorational.
func Version() string {
	return "v0.1.0-dev"
}

// Compile parses an expression for repeated evaluation. The result is
// immutable and safe for concurrent use.
func Compile(source string) (*types.Expression, error) {
	return parser.Parse(source)
}

// MustCompile is like Compile but panics if the expression cannot be
// parsed. It simplifies safe initialization of global variables.
func MustCompile(source string) *types.Expression {
	expr, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("gorational: Compile(%q): %v", source, err))
	}
	return expr
}

// New creates an Evaluator.
func New(opts ...evaluator.EvalOption) *evaluator.Evaluator {
	return evaluator.New(opts...)
}

// Eval is a convenience function that compiles and evaluates an expression
// in a single call.
//
// For repeated evaluations of the same expression, use Compile instead.
func Eval(source string, bindings map[string]rational.Number, opts ...evaluator.EvalOption) (evaluator.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return EvalWithContext(ctx, source, bindings, opts...)
}

// EvalWithContext evaluates an expression with a custom context.
func EvalWithContext(ctx context.Context, source string, bindings map[string]rational.Number, opts ...evaluator.EvalOption) (evaluator.Result, error) {
	expr, err := Compile(source)
	if err != nil {
		return evaluator.Result{}, err
	}
	return evaluator.New(opts...).Eval(ctx, expr, bindings)
}
