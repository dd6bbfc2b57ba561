// Package taylor approximates transcendental functions over exact rationals
// with truncated Taylor and Maclaurin series.
//
// Every function takes the degree of the polynomial, the number of series
// terms kept. Results are exact sums of rational terms, so the only error is
// the truncation of the series (and of the constants E and Pi); it shrinks
// as the degree grows. Use WithinTolerance to verify a result against a
// reference value.
package taylor

import (
	"math"
	"math/big"

	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Exact approximations of the constants, 66 fractional digits.
var (
	E  = rational.MustParse("2.718281828459045235360287471352662497757247093699959574966967627724")
	Pi = rational.MustParse("3.141592653589793238462643383279502884197169399375105820974944592307")
)

const (
	// workingScale is the number of fractional digits kept by range
	// reductions. It is well below the precision of E and Pi.
	workingScale = 80

	// MaxExpArgument bounds |x| for Exp.
	MaxExpArgument = 1000

	// MaxIntegerExponent bounds |p| for the exact integer Power path.
	MaxIntegerExponent = 1 << 16
)

var (
	two    = rational.FromInt(2)
	twoPi  = Pi.Multiply(two)
	invE   = mustReciprocal(E)
	halfPi = Pi.Multiply(rational.Frac(1, 2))
)

func mustReciprocal(n rational.Number) rational.Number {
	r, err := n.Reciprocal()
	if err != nil {
		panic(err)
	}
	return r
}

func checkDegree(degree int) error {
	if degree < 0 {
		return types.Errorf(types.ErrInvalidConfiguration, "degree must be >= 0, got %d", degree)
	}
	return nil
}

// reduce keeps range-reduced arguments at a bounded size.
func reduce(n rational.Number) rational.Number {
	r, err := n.Round(workingScale, rational.RoundHalfEven)
	if err != nil {
		return n
	}
	return r.Normalized()
}

// Exp approximates e^x.
//
// For x in [0,1] it sums x^i/i! for i = 0..degree. Larger arguments are
// split into an integer count and a remainder in [0,1) and the result is
// E^count * exp(remainder). Negative arguments use 1/exp(|x|).
func Exp(x rational.Number, degree int) (rational.Number, error) {
	if err := checkDegree(degree); err != nil {
		return rational.Number{}, err
	}
	if x.Abs().CompareTo(rational.FromInt(MaxExpArgument)) > 0 {
		return rational.Number{}, types.Errorf(types.ErrOutOfDomain,
			"exp argument %s exceeds %d in magnitude", x.Exact(), MaxExpArgument)
	}

	switch {
	case x.Signum() < 0:
		r, err := Exp(x.Abs(), degree)
		if err != nil {
			return rational.Number{}, err
		}
		return r.Reciprocal()
	case x.CompareTo(rational.One) <= 0:
		return expSeries(x, degree), nil
	}

	count, rem, err := x.DivideAndRemainder(rational.One)
	if err != nil {
		return rational.Number{}, err
	}
	n, err := count.Int64()
	if err != nil {
		return rational.Number{}, err
	}
	return intPower(E, n).Multiply(expSeries(rem, degree)).Normalized(), nil
}

// expSeries sums x^i/i! for i = 0..degree, each term derived from the
// previous one as term_i = term_{i-1} * x / i.
func expSeries(x rational.Number, degree int) rational.Number {
	sum := rational.One
	term := rational.One
	for i := 1; i <= degree; i++ {
		term = term.Multiply(x).Multiply(rational.Frac(1, int64(i))).Normalized()
		sum = sum.Add(term)
	}
	return sum.Normalized()
}

// Ln approximates the natural logarithm of x > 0.
//
// x is divided (or multiplied) by a power of E until it lies in (1/E, 1];
// the exponent is the integer part of the result. It is estimated from the
// bit lengths of the terms, so the cost grows with log(log(x)). The
// remainder uses ln(x) = sum -d^i/i for i = 1..degree, with d = 1 - x.
func Ln(x rational.Number, degree int) (rational.Number, error) {
	if err := checkDegree(degree); err != nil {
		return rational.Number{}, err
	}
	if x.Signum() <= 0 {
		return rational.Number{}, types.Errorf(types.ErrNonPositiveLog,
			"logarithm of non-positive value %s", x.Exact())
	}

	k := estimateLn(x)
	switch {
	case k > 1:
		// powE is never zero
		x, _ = x.Divide(powE(k))
		x = reduce(x)
	case k < -1:
		x = reduce(x.Multiply(powE(-k)))
	default:
		k = 0
	}
	for x.CompareTo(rational.One) > 0 {
		x = reduce(x.Multiply(invE))
		k++
	}
	for x.CompareTo(invE) <= 0 {
		x = reduce(x.Multiply(E))
		k--
	}

	d := rational.One.Subtract(x)
	sum := rational.FromInt(k)
	power := rational.One
	for i := 1; i <= degree; i++ {
		power = power.Multiply(d).Normalized()
		sum = sum.Subtract(power.Multiply(rational.Frac(1, int64(i))))
	}
	return sum.Normalized(), nil
}

// estimateLn approximates ln(x) from the bit lengths of its terms. The
// result is within two of the true value.
func estimateLn(x rational.Number) int64 {
	bits := x.Num().BitLen() - x.Den().BitLen()
	return int64(float64(bits) * math.Ln2)
}

// powE returns E^k for k >= 0 by repeated squaring, rounding every step to
// the working scale.
func powE(k int64) rational.Number {
	result := rational.One
	base := E
	for ; k > 0; k >>= 1 {
		if k&1 == 1 {
			result = reduce(result.Multiply(base))
		}
		if k > 1 {
			base = reduce(base.Multiply(base))
		}
	}
	return result
}

// Power approximates base^p. Integer exponents are computed exactly;
// fractional ones as exp(p * ln(base)).
func Power(base, p rational.Number, degree int) (rational.Number, error) {
	if err := checkDegree(degree); err != nil {
		return rational.Number{}, err
	}
	if p.IsNaturalNumber() {
		n, err := p.Int64()
		if err != nil || n > MaxIntegerExponent || n < -MaxIntegerExponent {
			return rational.Number{}, types.Errorf(types.ErrOutOfDomain,
				"exponent %s is too large", p.Exact())
		}
		switch {
		case n == 0:
			return rational.One, nil
		case n < 0:
			if base.IsZero() {
				return rational.Number{}, types.Errorf(types.ErrDivisionByZero,
					"zero raised to negative power %d", n)
			}
			return intPower(base, -n).Reciprocal()
		}
		return intPower(base, n), nil
	}

	switch base.Signum() {
	case 0:
		if p.Signum() > 0 {
			return rational.Zero, nil
		}
		return rational.Number{}, types.Errorf(types.ErrDivisionByZero,
			"zero raised to negative power %s", p.Exact())
	case -1:
		return rational.Number{}, types.Errorf(types.ErrOutOfDomain,
			"negative base %s with fractional exponent %s", base.Exact(), p.Exact())
	}

	l, err := Ln(base, degree)
	if err != nil {
		return rational.Number{}, err
	}
	return Exp(reduce(p.Multiply(l)), degree)
}

// intPower returns base^n for n >= 0 exactly.
func intPower(base rational.Number, n int64) rational.Number {
	e := big.NewInt(n)
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Den(), e, nil)
	return rational.MustNew(num, den)
}

// Sqrt approximates the square root of x >= 0. Perfect squares are exact.
func Sqrt(x rational.Number, degree int) (rational.Number, error) {
	if x.Signum() < 0 {
		return rational.Number{}, types.Errorf(types.ErrNegativeRoot,
			"square root of negative value %s", x.Exact())
	}
	if x.IsZero() {
		return rational.Zero, nil
	}
	n := x.Normalized()
	if rn, ok := exactSqrt(n.Num()); ok {
		if rd, ok := exactSqrt(n.Den()); ok {
			return rational.MustNew(rn, rd), nil
		}
	}
	return Power(x, rational.Frac(1, 2), degree)
}

func exactSqrt(i *big.Int) (*big.Int, bool) {
	r := new(big.Int).Sqrt(i)
	return r, new(big.Int).Mul(r, r).Cmp(i) == 0
}

// reduceAngle brings x into [-Pi, Pi] when it lies outside.
func reduceAngle(x rational.Number) rational.Number {
	if x.Abs().CompareTo(Pi) <= 0 {
		return x
	}
	// twoPi is never zero
	_, r, _ := x.DivideAndRemainder(twoPi)
	switch {
	case r.CompareTo(Pi) > 0:
		r = r.Subtract(twoPi)
	case r.CompareTo(Pi.Negate()) < 0:
		r = r.Add(twoPi)
	}
	return reduce(r)
}

// Sin approximates sin(x) with the first degree terms of its Maclaurin
// series. Angles outside [-Pi, Pi] are reduced modulo 2*Pi first. Degree 0
// yields the empty sum 0 and degree 1 yields the angle unchanged.
func Sin(x rational.Number, degree int) (rational.Number, error) {
	if err := checkDegree(degree); err != nil {
		return rational.Number{}, err
	}
	switch degree {
	case 0:
		return rational.Zero, nil
	case 1:
		return x, nil
	}
	x = reduceAngle(x)
	sq := x.Multiply(x)
	term := x
	sum := x
	for i := int64(1); i < int64(degree); i++ {
		term = term.Multiply(sq).Multiply(rational.Frac(-1, (2*i)*(2*i+1))).Normalized()
		sum = sum.Add(term)
	}
	return sum.Normalized(), nil
}

// Cos approximates cos(x) with the first degree terms of its Maclaurin
// series. Degree 0 yields the empty sum 0 and degree 1 yields 1.
func Cos(x rational.Number, degree int) (rational.Number, error) {
	if err := checkDegree(degree); err != nil {
		return rational.Number{}, err
	}
	if degree == 0 {
		return rational.Zero, nil
	}
	x = reduceAngle(x)
	sq := x.Multiply(x)
	term := rational.One
	sum := rational.One
	for i := int64(1); i < int64(degree); i++ {
		term = term.Multiply(sq).Multiply(rational.Frac(-1, (2*i-1)*(2*i))).Normalized()
		sum = sum.Add(term)
	}
	return sum.Normalized(), nil
}

// Tan approximates sin(x)/cos(x).
func Tan(x rational.Number, degree int) (rational.Number, error) {
	s, err := Sin(x, degree)
	if err != nil {
		return rational.Number{}, err
	}
	c, err := Cos(x, degree)
	if err != nil {
		return rational.Number{}, err
	}
	if c.IsZero() {
		return rational.Number{}, types.Errorf(types.ErrDivisionByZero,
			"tangent undefined for %s at degree %d", x.Exact(), degree)
	}
	return s.Divide(c)
}

// ToRadians converts an angle expressed in unit to radians.
func ToRadians(x rational.Number, unit config.AngleUnit) rational.Number {
	switch unit {
	case config.Degrees:
		return x.Multiply(Pi).Multiply(rational.Frac(1, 180))
	case config.Gradians:
		return x.Multiply(Pi).Multiply(rational.Frac(1, 200))
	}
	return x
}

// RightAngle returns a quarter turn in radians.
func RightAngle() rational.Number {
	return halfPi
}

// RelativeError returns |got - want| / |want|, or |got| when want is zero.
func RelativeError(got, want rational.Number) rational.Number {
	diff := got.Subtract(want).Abs()
	if want.IsZero() {
		return diff
	}
	// want is non-zero
	r, _ := diff.Divide(want.Abs())
	return r
}

// WithinTolerance reports whether got approximates want within the given
// maximum relative error.
func WithinTolerance(got, want, maxRelErr rational.Number) bool {
	return RelativeError(got, want).CompareTo(maxRelErr) <= 0
}
