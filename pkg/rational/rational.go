// Package rational implements exact arbitrary-precision fractions.
//
// A Number is an immutable (numerator, denominator) pair of big integers.
// The denominator is always positive, so the sign lives in the numerator.
// Numbers are never reduced implicitly: 2/4 stays 2/4 until Normalized is
// called. Comparison and equality use cross multiplication, so 1/2 equals
// 2/4 whether or not either side is reduced.
//
// # Example
//
//	a := rational.Frac(1, 3)
//	b := rational.FromInt(2)
//	sum := a.Add(b)            // 7/3
//	fmt.Println(sum.Exact())   // 2.{3}R
package rational

import (
	"fmt"
	"math/big"

	"github.com/sandrolain/gorational/pkg/types"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTen  = big.NewInt(10)
)

// Number is an exact rational number. The zero value is 0/1.
type Number struct {
	num *big.Int
	den *big.Int
}

// Common values.
var (
	Zero = FromInt(0)
	One  = FromInt(1)
)

// New creates num/den. A negative denominator moves its sign into the
// numerator; a zero denominator is a division by zero.
func New(num, den *big.Int) (Number, error) {
	if den.Sign() == 0 {
		return Number{}, types.Errorf(types.ErrDivisionByZero,
			"zero denominator in %s/%s", num, den)
	}
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return Number{num: n, den: d}, nil
}

// MustNew is like New but panics on a zero denominator.
func MustNew(num, den *big.Int) Number {
	n, err := New(num, den)
	if err != nil {
		panic(fmt.Sprintf("rational: MustNew(%s, %s): %v", num, den, err))
	}
	return n
}

// Frac returns a/b. It panics if b is zero.
func Frac(a, b int64) Number {
	return MustNew(big.NewInt(a), big.NewInt(b))
}

// FromInt returns i/1.
func FromInt(i int64) Number {
	return Number{num: big.NewInt(i), den: big.NewInt(1)}
}

// FromBigInt returns i/1.
func FromBigInt(i *big.Int) Number {
	return Number{num: new(big.Int).Set(i), den: big.NewInt(1)}
}

// FromRat converts a big.Rat. The result is normalized.
func FromRat(r *big.Rat) Number {
	return Number{num: new(big.Int).Set(r.Num()), den: new(big.Int).Set(r.Denom())}
}

// parts returns the internal numerator and denominator, treating the zero
// value as 0/1. Callers must not mutate the results.
func (n Number) parts() (*big.Int, *big.Int) {
	if n.den == nil {
		return bigZero, bigOne
	}
	return n.num, n.den
}

// Num returns a copy of the numerator.
func (n Number) Num() *big.Int {
	num, _ := n.parts()
	return new(big.Int).Set(num)
}

// Den returns a copy of the denominator.
func (n Number) Den() *big.Int {
	_, den := n.parts()
	return new(big.Int).Set(den)
}

// Rat converts n to a big.Rat (which is always reduced).
func (n Number) Rat() *big.Rat {
	num, den := n.parts()
	return new(big.Rat).SetFrac(num, den)
}

// Float64 returns the nearest float64. It is meant for display and
// tolerance checks only.
func (n Number) Float64() float64 {
	f, _ := n.Rat().Float64()
	return f
}

// gcd returns gcd(|num|, den).
func (n Number) gcd() *big.Int {
	num, den := n.parts()
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
}

// Normalized divides both terms by their greatest common divisor.
func (n Number) Normalized() Number {
	num, den := n.parts()
	if num.Sign() == 0 {
		return FromInt(0)
	}
	g := n.gcd()
	if g.Cmp(bigOne) == 0 {
		return Number{num: new(big.Int).Set(num), den: new(big.Int).Set(den)}
	}
	return Number{num: new(big.Int).Quo(num, g), den: new(big.Int).Quo(den, g)}
}

// IsNormalized reports whether gcd(num, den) is 1. Zero is normalized only
// as 0/1.
func (n Number) IsNormalized() bool {
	return n.gcd().Cmp(bigOne) == 0
}

// Add returns n + o.
func (n Number) Add(o Number) Number {
	an, ad := n.parts()
	bn, bd := o.parts()
	if ad.Cmp(bd) == 0 {
		return Number{num: new(big.Int).Add(an, bn), den: new(big.Int).Set(ad)}
	}
	num := new(big.Int).Mul(an, bd)
	num.Add(num, new(big.Int).Mul(bn, ad))
	return Number{num: num, den: new(big.Int).Mul(ad, bd)}
}

// Subtract returns n - o.
func (n Number) Subtract(o Number) Number {
	return n.Add(o.Negate())
}

// Multiply returns n * o.
func (n Number) Multiply(o Number) Number {
	an, ad := n.parts()
	bn, bd := o.parts()
	return Number{num: new(big.Int).Mul(an, bn), den: new(big.Int).Mul(ad, bd)}
}

// Divide returns n / o, failing if o is zero.
func (n Number) Divide(o Number) (Number, error) {
	r, err := o.Reciprocal()
	if err != nil {
		return Number{}, types.Errorf(types.ErrDivisionByZero,
			"division of %s by zero", n)
	}
	return n.Multiply(r), nil
}

// Reciprocal returns 1 / n, failing if n is zero.
func (n Number) Reciprocal() (Number, error) {
	num, den := n.parts()
	if num.Sign() == 0 {
		return Number{}, types.Errorf(types.ErrDivisionByZero, "reciprocal of zero")
	}
	return New(den, num)
}

// Negate returns -n.
func (n Number) Negate() Number {
	num, den := n.parts()
	return Number{num: new(big.Int).Neg(num), den: new(big.Int).Set(den)}
}

// Abs returns |n|.
func (n Number) Abs() Number {
	num, den := n.parts()
	return Number{num: new(big.Int).Abs(num), den: new(big.Int).Set(den)}
}

// Signum returns -1, 0 or +1.
func (n Number) Signum() int {
	num, _ := n.parts()
	return num.Sign()
}

// IsZero reports whether n is zero.
func (n Number) IsZero() bool {
	return n.Signum() == 0
}

// CompareTo returns -1, 0 or +1 as n is less than, equal to or greater
// than o.
func (n Number) CompareTo(o Number) int {
	an, ad := n.parts()
	bn, bd := o.parts()
	left := new(big.Int).Mul(an, bd)
	right := new(big.Int).Mul(bn, ad)
	return left.Cmp(right)
}

// Equals reports numeric equality, independent of reduction.
func (n Number) Equals(o Number) bool {
	return n.CompareTo(o) == 0
}

// DivideAndRemainder returns q and r such that n = d*q + r, where q is an
// integer truncated toward zero.
func (n Number) DivideAndRemainder(d Number) (q, r Number, err error) {
	an, ad := n.parts()
	bn, bd := d.parts()
	if bn.Sign() == 0 {
		return Number{}, Number{}, types.Errorf(types.ErrDivisionByZero,
			"division of %s by zero", n)
	}
	// n/d = (an*bd) / (ad*bn)
	top := new(big.Int).Mul(an, bd)
	bottom := new(big.Int).Mul(ad, bn)
	q = FromBigInt(new(big.Int).Quo(top, bottom))
	r = n.Subtract(d.Multiply(q))
	return q, r, nil
}

// IsNaturalNumber reports whether n has no fractional part, that is whether
// the numerator is an exact multiple of the denominator.
func (n Number) IsNaturalNumber() bool {
	num, den := n.parts()
	return new(big.Int).Rem(num, den).Sign() == 0
}

// Integer returns the integer value of n, failing if n has a fractional
// part.
func (n Number) Integer() (*big.Int, error) {
	if !n.IsNaturalNumber() {
		return nil, types.Errorf(types.ErrNotNaturalNumber, "%s is not an integer", n)
	}
	num, den := n.parts()
	return new(big.Int).Quo(num, den), nil
}

// Int64 returns the integer value of n if it fits in an int64.
func (n Number) Int64() (int64, error) {
	i, err := n.Integer()
	if err != nil {
		return 0, err
	}
	if !i.IsInt64() {
		return 0, types.Errorf(types.ErrOutOfDomain, "%s overflows int64", n)
	}
	return i.Int64(), nil
}

// String renders n in components form (num/den).
func (n Number) String() string {
	num, den := n.parts()
	return num.String() + "/" + den.String()
}
