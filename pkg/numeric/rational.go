package numeric

import "github.com/sandrolain/gorational/pkg/rational"

// Rational is the exact fraction backend. With Normalize set every result
// is reduced by the gcd of its terms.
type Rational struct {
	Normalize bool
}

func (Rational) Name() string { return RationalName }

func (b Rational) out(n rational.Number) rational.Number {
	if b.Normalize {
		return n.Normalized()
	}
	return n
}

func (b Rational) Coerce(n rational.Number) (rational.Number, error) {
	return b.out(n), nil
}

func (b Rational) Add(x, y rational.Number) (rational.Number, error) {
	return b.out(x.Add(y)), nil
}

func (b Rational) Subtract(x, y rational.Number) (rational.Number, error) {
	return b.out(x.Subtract(y)), nil
}

func (b Rational) Multiply(x, y rational.Number) (rational.Number, error) {
	return b.out(x.Multiply(y)), nil
}

func (b Rational) Divide(x, y rational.Number) (rational.Number, error) {
	q, err := x.Divide(y)
	if err != nil {
		return rational.Number{}, err
	}
	return b.out(q), nil
}

func (b Rational) Negate(x rational.Number) (rational.Number, error) {
	return b.out(x.Negate()), nil
}

func (b Rational) Abs(x rational.Number) (rational.Number, error) {
	return b.out(x.Abs()), nil
}

func (Rational) CompareTo(x, y rational.Number) int { return x.CompareTo(y) }

func (Rational) IsNaturalNumber(x rational.Number) bool { return x.IsNaturalNumber() }

func (Rational) Signum(x rational.Number) int { return x.Signum() }
