package rational

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandrolain/gorational/pkg/types"
)

// MaxExponent bounds the magnitude of a parsed decimal exponent.
const MaxExponent = 100000

var (
	decimalPattern    = regexp.MustCompile(`^([+-])?(\d+)(?:\.(\d*)(?:\{(\d+)\}R)?)?(?:[eE]([+-])?(\d+))?$`)
	componentsPattern = regexp.MustCompile(`^([+-]?\d+)\s*/\s*([+-]?\d+)$`)
)

// Parse is the inverse of Exact. It accepts
//
//	[+-]integer[.digits[{repeating}R]][(e|E)[+-]exponent]
//
// as well as the components form num/den.
func Parse(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if m := componentsPattern.FindStringSubmatch(s); m != nil {
		num, _ := new(big.Int).SetString(m[1], 10)
		den, _ := new(big.Int).SetString(m[2], 10)
		return New(num, den)
	}

	m := decimalPattern.FindStringSubmatch(s)
	if m == nil {
		return Number{}, types.Errorf(types.ErrMalformedNumber, "malformed number %q", s)
	}
	sign, intPart, nonRep, rep, expSign, expDigits := m[1], m[2], m[3], m[4], m[5], m[6]

	frac, err := fraction(nonRep, rep)
	if err != nil {
		return Number{}, err
	}
	whole, _ := new(big.Int).SetString(intPart, 10)
	n := FromBigInt(whole).Add(frac)
	if sign == "-" {
		n = n.Negate()
	}

	if expDigits != "" {
		exp, err := strconv.Atoi(expDigits)
		if err != nil || exp > MaxExponent {
			return Number{}, types.Errorf(types.ErrMalformedNumber, "exponent out of range in %q", s)
		}
		scale := FromBigInt(pow10(exp))
		if expSign == "-" {
			// scale is never zero
			n, _ = n.Divide(scale)
		} else {
			n = n.Multiply(scale)
		}
	}
	return n, nil
}

// MustParse is like Parse but panics on malformed input. It is intended for
// constants.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic("rational: MustParse(" + strconv.Quote(s) + "): " + err.Error())
	}
	return n
}

// fraction returns the value of 0.nonRep{rep}R: with k non-repeating and m
// repeating digits it is (allDigits - nonRep) / (10^(k+m) - 10^k).
func fraction(nonRep, rep string) (Number, error) {
	k := len(nonRep)
	if rep == "" {
		if k == 0 {
			return FromInt(0), nil
		}
		num, _ := new(big.Int).SetString(nonRep, 10)
		return New(num, pow10(k))
	}
	m := len(rep)
	all, _ := new(big.Int).SetString(nonRep+rep, 10)
	head := new(big.Int)
	if k > 0 {
		head.SetString(nonRep, 10)
	}
	num := new(big.Int).Sub(all, head)
	den := new(big.Int).Sub(pow10(k+m), pow10(k))
	return New(num, den)
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
