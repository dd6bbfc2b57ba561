package groups

import (
	"context"
	"sort"

	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/numeric"
	"github.com/sandrolain/gorational/pkg/rational"
)

// Statistical returns the aggregate functions for backend. sum, min and max
// exist on every backend; avg, median and variance only on the rational
// one, since their results are fractional in general.
func Statistical(backend string) functions.Group {
	ms := []functions.Mapping{
		variadic("sum", "sum of all operands, 0 for none", 1, sum),
		variadic("min", "smallest operand", 2, extreme(-1)),
		variadic("max", "largest operand", 2, extreme(1)),
	}
	if backend == numeric.RationalName {
		ms = append(ms,
			variadic("avg", "arithmetic mean", 2, avg),
			variadic("median", "middle value, mean of the two middle values for an even count", 2, median),
			variadic("variance", "population variance", 2, variance),
		)
	}
	return functions.Group{
		Name:     "statistical",
		Backend:  backend,
		Mappings: ms,
	}
}

func variadic(name, desc string, arity int, fn func(functions.Args) (rational.Number, error)) functions.Mapping {
	return functions.Mapping{
		Name:        name,
		Description: desc,
		Category:    functions.Function,
		Arity:       arity,
		Variadic:    true,
		Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
			return fn(a)
		},
	}
}

func sumOf(b numeric.Arithmetic, values []rational.Number) (rational.Number, error) {
	total := rational.Zero
	for _, v := range values {
		var err error
		if total, err = b.Add(total, v); err != nil {
			return rational.Number{}, err
		}
	}
	return total, nil
}

func sum(a functions.Args) (rational.Number, error) {
	return sumOf(a.Backend, a.All())
}

// extreme picks the minimum (dir -1) or maximum (dir 1).
func extreme(dir int) func(functions.Args) (rational.Number, error) {
	return func(a functions.Args) (rational.Number, error) {
		best := a.Fixed[0]
		for _, v := range a.Rest {
			if a.Backend.CompareTo(v, best) == dir {
				best = v
			}
		}
		return best, nil
	}
}

func mean(a functions.Args, values []rational.Number) (rational.Number, error) {
	total, err := sumOf(a.Backend, values)
	if err != nil {
		return rational.Number{}, err
	}
	return a.Backend.Divide(total, rational.FromInt(int64(len(values))))
}

func avg(a functions.Args) (rational.Number, error) {
	return mean(a, a.All())
}

func median(a functions.Args) (rational.Number, error) {
	values := a.All()
	sort.SliceStable(values, func(i, j int) bool {
		return a.Backend.CompareTo(values[i], values[j]) < 0
	})
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid], nil
	}
	return mean(a, values[mid-1:mid+1])
}

func variance(a functions.Args) (rational.Number, error) {
	values := a.All()
	m, err := mean(a, values)
	if err != nil {
		return rational.Number{}, err
	}
	squares := make([]rational.Number, len(values))
	for i, v := range values {
		d, err := a.Backend.Subtract(v, m)
		if err != nil {
			return rational.Number{}, err
		}
		if squares[i], err = a.Backend.Multiply(d, d); err != nil {
			return rational.Number{}, err
		}
	}
	return mean(a, squares)
}
