package groups

import (
	"context"
	"math/big"

	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// MaxFactorial bounds the argument of factorial.
const MaxFactorial = 10000

// Arithmetic returns the operators and the integer-oriented helpers for
// backend.
func Arithmetic(backend string) functions.Group {
	return functions.Group{
		Name:    "arithmetic",
		Backend: backend,
		Mappings: []functions.Mapping{
			{
				Name:        "+",
				Description: "identity",
				Category:    functions.UnaryOperator,
				Arity:       1,
				Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
					return a.Backend.Coerce(a.Fixed[0])
				},
			},
			{
				Name:        "-",
				Description: "negation",
				Category:    functions.UnaryOperator,
				Arity:       1,
				Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
					return a.Backend.Negate(a.Fixed[0])
				},
			},
			binary("+", "addition", functions.BinaryOperator, func(a functions.Args) (rational.Number, error) {
				return a.Backend.Add(a.Fixed[0], a.Fixed[1])
			}),
			binary("-", "subtraction", functions.BinaryOperator, func(a functions.Args) (rational.Number, error) {
				return a.Backend.Subtract(a.Fixed[0], a.Fixed[1])
			}),
			binary("*", "multiplication", functions.BinaryOperatorHighPriority, func(a functions.Args) (rational.Number, error) {
				return a.Backend.Multiply(a.Fixed[0], a.Fixed[1])
			}),
			binary("/", "division", functions.BinaryOperatorHighPriority, func(a functions.Args) (rational.Number, error) {
				return a.Backend.Divide(a.Fixed[0], a.Fixed[1])
			}),
			unaryFunc("abs", "absolute value", func(a functions.Args) (rational.Number, error) {
				return a.Backend.Abs(a.Fixed[0])
			}),
			unaryFunc("sign", "signum: -1, 0 or 1", func(a functions.Args) (rational.Number, error) {
				return rational.FromInt(int64(a.Backend.Signum(a.Fixed[0]))), nil
			}),
			binary("div", "quotient truncated toward zero", functions.Function, func(a functions.Args) (rational.Number, error) {
				q, _, err := a.Fixed[0].DivideAndRemainder(a.Fixed[1])
				return q, err
			}),
			binary("mod", "remainder of div, with the sign of the dividend", functions.Function, func(a functions.Args) (rational.Number, error) {
				_, r, err := a.Fixed[0].DivideAndRemainder(a.Fixed[1])
				return r, err
			}),
			unaryFunc("factorial", "n! for a natural n", factorial),
			binary("gcd", "greatest common divisor of two integers", functions.Function, gcd),
			binary("lcm", "least common multiple of two integers", functions.Function, lcm),
		},
	}
}

func binary(name, desc string, c functions.Category, fn func(functions.Args) (rational.Number, error)) functions.Mapping {
	return functions.Mapping{
		Name:        name,
		Description: desc,
		Category:    c,
		Arity:       2,
		Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
			return fn(a)
		},
	}
}

func unaryFunc(name, desc string, fn func(functions.Args) (rational.Number, error)) functions.Mapping {
	return functions.Mapping{
		Name:        name,
		Description: desc,
		Category:    functions.Function,
		Arity:       1,
		Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
			return fn(a)
		},
	}
}

func factorial(a functions.Args) (rational.Number, error) {
	n, err := a.Fixed[0].Integer()
	if err != nil {
		return rational.Number{}, err
	}
	if n.Sign() < 0 || n.Cmp(big.NewInt(MaxFactorial)) > 0 {
		return rational.Number{}, types.Errorf(types.ErrOutOfDomain,
			"factorial is defined for 0 <= n <= %d, got %s", MaxFactorial, n)
	}
	return rational.FromBigInt(new(big.Int).MulRange(1, n.Int64())), nil
}

func gcdOf(a functions.Args) (*big.Int, *big.Int, *big.Int, error) {
	x, err := a.Fixed[0].Integer()
	if err != nil {
		return nil, nil, nil, err
	}
	y, err := a.Fixed[1].Integer()
	if err != nil {
		return nil, nil, nil, err
	}
	x.Abs(x)
	y.Abs(y)
	return new(big.Int).GCD(nil, nil, x, y), x, y, nil
}

func gcd(a functions.Args) (rational.Number, error) {
	g, _, _, err := gcdOf(a)
	if err != nil {
		return rational.Number{}, err
	}
	return rational.FromBigInt(g), nil
}

func lcm(a functions.Args) (rational.Number, error) {
	g, x, y, err := gcdOf(a)
	if err != nil {
		return rational.Number{}, err
	}
	if g.Sign() == 0 {
		return rational.Zero, nil
	}
	l := new(big.Int).Mul(x, y)
	return rational.FromBigInt(l.Quo(l, g)), nil
}
