package groups

import (
	"context"

	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/numeric"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/taylor"
)

var ten = rational.FromInt(10)

// Logarithmic returns exp, ln, log, power and sqrt for the rational
// backend.
func Logarithmic() functions.Group {
	return functions.Group{
		Name:    "logarithmic",
		Backend: numeric.RationalName,
		Mappings: []functions.Mapping{
			series("exp", "e raised to x", 1, func(a functions.Args, n int) (rational.Number, error) {
				return taylor.Exp(a.Fixed[0], n)
			}),
			series("ln", "natural logarithm", 1, func(a functions.Args, n int) (rational.Number, error) {
				return taylor.Ln(a.Fixed[0], n)
			}),
			series("log", "decimal logarithm", 1, func(a functions.Args, n int) (rational.Number, error) {
				return logBase(a.Fixed[0], ten, n)
			}),
			series("log", "logarithm of a in base b", 2, func(a functions.Args, n int) (rational.Number, error) {
				return logBase(a.Fixed[0], a.Fixed[1], n)
			}),
			series("power", "a raised to b", 2, func(a functions.Args, n int) (rational.Number, error) {
				return taylor.Power(a.Fixed[0], a.Fixed[1], n)
			}),
			series("sqrt", "square root", 1, func(a functions.Args, n int) (rational.Number, error) {
				return taylor.Sqrt(a.Fixed[0], n)
			}),
		},
	}
}

func series(name, desc string, arity int, fn func(functions.Args, int) (rational.Number, error)) functions.Mapping {
	return functions.Mapping{
		Name:        name,
		Description: desc,
		Category:    functions.Function,
		Arity:       arity,
		Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
			return fn(a, a.Config.Degree)
		},
	}
}

// logBase computes ln(x)/ln(base). A base of 1 has a zero logarithm and
// fails as a division by zero.
func logBase(x, base rational.Number, degree int) (rational.Number, error) {
	lx, err := taylor.Ln(x, degree)
	if err != nil {
		return rational.Number{}, err
	}
	lb, err := taylor.Ln(base, degree)
	if err != nil {
		return rational.Number{}, err
	}
	return lx.Divide(lb)
}
