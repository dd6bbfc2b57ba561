package rational_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// sample returns a spread of numbers, unnormalized ones included.
func sample() []rational.Number {
	var out []rational.Number
	for _, p := range []int64{-22, -7, -1, 0, 1, 2, 3, 10, 22, 355} {
		for _, q := range []int64{1, 2, 3, 4, 6, 7, 12, 113, -5} {
			out = append(out, rational.Frac(p, q))
		}
	}
	return out
}

func TestNewNormalizesSign(t *testing.T) {
	n, err := rational.New(big.NewInt(3), big.NewInt(-4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := n.String(); got != "-3/4" {
		t.Errorf("got %s, want -3/4", got)
	}
	if n.Den().Sign() <= 0 {
		t.Errorf("denominator %s is not positive", n.Den())
	}
}

func TestNewZeroDenominator(t *testing.T) {
	_, err := rational.New(big.NewInt(1), big.NewInt(0))
	if !errors.Is(err, types.ErrArithmeticDomain) {
		t.Fatalf("got %v, want arithmetic domain error", err)
	}
}

func TestZeroValue(t *testing.T) {
	var z rational.Number
	if !z.IsZero() || z.String() != "0/1" {
		t.Errorf("zero value renders %s", z)
	}
	if got := z.Add(rational.One); !got.Equals(rational.One) {
		t.Errorf("0 + 1 = %s", got)
	}
}

func TestNoImplicitNormalization(t *testing.T) {
	n := rational.Frac(2, 4)
	if n.String() != "2/4" {
		t.Errorf("got %s, want 2/4", n)
	}
	if got := n.Normalized().String(); got != "1/2" {
		t.Errorf("normalized: got %s, want 1/2", got)
	}
	if !n.Equals(rational.Frac(1, 2)) {
		t.Error("2/4 should equal 1/2")
	}
}

func TestIsNormalized(t *testing.T) {
	tests := []struct {
		n    rational.Number
		want bool
	}{
		{rational.Frac(1, 2), true},
		{rational.Frac(2, 4), false},
		{rational.Frac(-3, 7), true},
		{rational.Frac(-6, 14), false},
		{rational.Frac(0, 5), false},
		{rational.Zero, true},
		{rational.Number{}, true},
	}
	for _, tt := range tests {
		if got := tt.n.IsNormalized(); got != tt.want {
			t.Errorf("%s.IsNormalized() = %v, want %v", tt.n, got, tt.want)
		}
		if norm := tt.n.Normalized(); !norm.IsNormalized() || !norm.Equals(tt.n) {
			t.Errorf("%s.Normalized() = %s", tt.n, norm)
		}
	}
}

func TestFromRat(t *testing.T) {
	n := rational.FromRat(big.NewRat(6, -8))
	if n.String() != "-3/4" || !n.IsNormalized() {
		t.Errorf("got %s, want -3/4", n)
	}
	for _, s := range sample() {
		if back := rational.FromRat(s.Rat()); !back.Equals(s) || !back.IsNormalized() {
			t.Errorf("FromRat(%s.Rat()) = %s", s, back)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := rational.Frac(1, 2)
	b := rational.Frac(1, 3)

	tests := []struct {
		name string
		got  rational.Number
		want rational.Number
	}{
		{"add", a.Add(b), rational.Frac(5, 6)},
		{"subtract", a.Subtract(b), rational.Frac(1, 6)},
		{"multiply", a.Multiply(b), rational.Frac(1, 6)},
		{"negate", a.Negate(), rational.Frac(-1, 2)},
		{"abs", rational.Frac(-3, 7).Abs(), rational.Frac(3, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.want) {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	q, err := a.Divide(b)
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}
	if !q.Equals(rational.Frac(3, 2)) {
		t.Errorf("divide: got %s, want 3/2", q)
	}
}

func TestDivideByZero(t *testing.T) {
	_, err := rational.One.Divide(rational.Frac(0, 5))
	e, ok := types.AsError(err)
	if !ok || e.Code != types.ErrDivisionByZero {
		t.Fatalf("got %v, want %s", err, types.ErrDivisionByZero)
	}
}

func TestSignumAndCompare(t *testing.T) {
	if s := rational.Frac(-1, 3).Signum(); s != -1 {
		t.Errorf("signum = %d", s)
	}
	if c := rational.Frac(1, 3).CompareTo(rational.Frac(1, 2)); c != -1 {
		t.Errorf("1/3 cmp 1/2 = %d", c)
	}
	if c := rational.Frac(-1, 2).CompareTo(rational.Frac(-2, 4)); c != 0 {
		t.Errorf("-1/2 cmp -2/4 = %d", c)
	}
}

func TestDivideAndRemainder(t *testing.T) {
	tests := []struct {
		a, d  rational.Number
		wantQ int64
	}{
		{rational.Frac(7, 2), rational.One, 3},
		{rational.Frac(-7, 2), rational.One, -3},
		{rational.FromInt(17), rational.FromInt(5), 3},
		{rational.Frac(5, 3), rational.Frac(1, 2), 3},
	}
	for _, tt := range tests {
		q, r, err := tt.a.DivideAndRemainder(tt.d)
		if err != nil {
			t.Fatalf("%s.DivideAndRemainder(%s): %v", tt.a, tt.d, err)
		}
		if !q.Equals(rational.FromInt(tt.wantQ)) {
			t.Errorf("%s / %s: q = %s, want %d", tt.a, tt.d, q, tt.wantQ)
		}
		if back := tt.d.Multiply(q).Add(r); !back.Equals(tt.a) {
			t.Errorf("%s != %s*%s + %s", tt.a, tt.d, q, r)
		}
	}
}

func TestIsNaturalNumber(t *testing.T) {
	if !rational.Frac(6, 3).IsNaturalNumber() {
		t.Error("6/3 should be natural")
	}
	if rational.Frac(7, 3).IsNaturalNumber() {
		t.Error("7/3 should not be natural")
	}
	if _, err := rational.Frac(7, 3).Integer(); !errors.Is(err, types.ErrArithmeticDomain) {
		t.Errorf("Integer(7/3) error = %v", err)
	}
}

func TestIdentities(t *testing.T) {
	nums := sample()
	for _, a := range nums {
		if !a.Negate().Negate().Equals(a) {
			t.Errorf("--%s != %s", a, a)
		}
		if !a.Normalized().Equals(a) {
			t.Errorf("normalized %s != %s", a.Normalized(), a)
		}
		if a.Normalized().Normalized().String() != a.Normalized().String() {
			t.Errorf("normalization of %s is not idempotent", a)
		}
		for _, b := range nums[:12] {
			if !a.Add(b).Subtract(b).Equals(a) {
				t.Errorf("%s + %s - %s != %s", a, b, b, a)
			}
			if b.IsZero() {
				continue
			}
			q, err := a.Divide(b)
			if err != nil {
				t.Fatalf("%s / %s: %v", a, b, err)
			}
			if !q.Multiply(b).Equals(a) {
				t.Errorf("%s / %s * %s != %s", a, b, b, a)
			}
		}
	}
}
