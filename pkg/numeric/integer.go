package numeric

import (
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Integer is the integer-only backend. Operands must be integers and
// divisions must be exact. Results are always n/1.
type Integer struct{}

func (Integer) Name() string { return IntegerName }

func (Integer) Coerce(n rational.Number) (rational.Number, error) {
	i, err := n.Integer()
	if err != nil {
		return rational.Number{}, types.Errorf(types.ErrNotNaturalNumber,
			"%s is not an integer", n.Exact())
	}
	return rational.FromBigInt(i), nil
}

func (b Integer) binary(x, y rational.Number, op func(x, y rational.Number) (rational.Number, error)) (rational.Number, error) {
	x, err := b.Coerce(x)
	if err != nil {
		return rational.Number{}, err
	}
	y, err = b.Coerce(y)
	if err != nil {
		return rational.Number{}, err
	}
	r, err := op(x, y)
	if err != nil {
		return rational.Number{}, err
	}
	return b.Coerce(r)
}

func (b Integer) Add(x, y rational.Number) (rational.Number, error) {
	return b.binary(x, y, func(x, y rational.Number) (rational.Number, error) { return x.Add(y), nil })
}

func (b Integer) Subtract(x, y rational.Number) (rational.Number, error) {
	return b.binary(x, y, func(x, y rational.Number) (rational.Number, error) { return x.Subtract(y), nil })
}

func (b Integer) Multiply(x, y rational.Number) (rational.Number, error) {
	return b.binary(x, y, func(x, y rational.Number) (rational.Number, error) { return x.Multiply(y), nil })
}

// Divide fails unless y divides x exactly.
func (b Integer) Divide(x, y rational.Number) (rational.Number, error) {
	return b.binary(x, y, rational.Number.Divide)
}

func (b Integer) Negate(x rational.Number) (rational.Number, error) {
	x, err := b.Coerce(x)
	if err != nil {
		return rational.Number{}, err
	}
	return x.Negate(), nil
}

func (b Integer) Abs(x rational.Number) (rational.Number, error) {
	x, err := b.Coerce(x)
	if err != nil {
		return rational.Number{}, err
	}
	return x.Abs(), nil
}

func (Integer) CompareTo(x, y rational.Number) int { return x.CompareTo(y) }

func (Integer) IsNaturalNumber(x rational.Number) bool { return x.IsNaturalNumber() }

func (Integer) Signum(x rational.Number) int { return x.Signum() }
