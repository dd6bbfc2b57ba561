package rational

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/sandrolain/gorational/pkg/types"
)

// RoundingMode selects how digits beyond a scale are discarded.
type RoundingMode uint8

const (
	RoundUp RoundingMode = iota
	RoundDown
	RoundCeiling
	RoundFloor
	RoundHalfUp
	RoundHalfDown
	RoundHalfEven
	RoundUnnecessary
)

var roundingNames = [...]string{
	RoundUp:          "UP",
	RoundDown:        "DOWN",
	RoundCeiling:     "CEILING",
	RoundFloor:       "FLOOR",
	RoundHalfUp:      "HALF_UP",
	RoundHalfDown:    "HALF_DOWN",
	RoundHalfEven:    "HALF_EVEN",
	RoundUnnecessary: "UNNECESSARY",
}

func (m RoundingMode) String() string {
	if int(m) < len(roundingNames) {
		return roundingNames[m]
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(m))
}

// ParseRoundingMode parses a mode name such as "HALF_EVEN" (case
// insensitive).
func ParseRoundingMode(s string) (RoundingMode, error) {
	for i, name := range roundingNames {
		if strings.EqualFold(s, name) {
			return RoundingMode(i), nil
		}
	}
	return 0, types.Errorf(types.ErrInvalidConfiguration, "unknown rounding mode %q", s)
}

// Round returns n rounded to scale fractional digits. The result has
// denominator 10^scale.
func (n Number) Round(scale int, mode RoundingMode) (Number, error) {
	if scale < 0 {
		return Number{}, types.Errorf(types.ErrInvalidConfiguration, "negative scale %d", scale)
	}
	num, den := n.parts()
	pow := new(big.Int).Exp(bigTen, big.NewInt(int64(scale)), nil)

	scaled := new(big.Int).Mul(num, pow)
	q, r := new(big.Int).QuoRem(scaled, den, new(big.Int))
	if r.Sign() == 0 {
		return Number{num: q, den: pow}, nil
	}

	sign := num.Sign()
	// twice the discarded fraction against the denominator
	half := new(big.Int).Abs(r)
	half.Lsh(half, 1)
	cmpHalf := half.Cmp(den)

	awayFromZero := false
	switch mode {
	case RoundUp:
		awayFromZero = true
	case RoundDown:
		awayFromZero = false
	case RoundCeiling:
		awayFromZero = sign > 0
	case RoundFloor:
		awayFromZero = sign < 0
	case RoundHalfUp:
		awayFromZero = cmpHalf >= 0
	case RoundHalfDown:
		awayFromZero = cmpHalf > 0
	case RoundHalfEven:
		awayFromZero = cmpHalf > 0 || (cmpHalf == 0 && q.Bit(0) == 1)
	case RoundUnnecessary:
		return Number{}, types.Errorf(types.ErrRoundingNecessary,
			"%s cannot be represented with %d digits without rounding", n, scale)
	default:
		return Number{}, types.Errorf(types.ErrInvalidConfiguration, "unknown rounding mode %d", mode)
	}
	if awayFromZero {
		if sign > 0 {
			q.Add(q, bigOne)
		} else {
			q.Sub(q, bigOne)
		}
	}
	return Number{num: q, den: pow}, nil
}

// Decimal renders n rounded to exactly scale fractional digits.
func (n Number) Decimal(scale int, mode RoundingMode) (string, error) {
	r, err := n.Round(scale, mode)
	if err != nil {
		return "", err
	}
	num, _ := r.parts()
	digits := new(big.Int).Abs(num).String()
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	var b strings.Builder
	if num.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteString(digits[:len(digits)-scale])
	if scale > 0 {
		b.WriteByte('.')
		b.WriteString(digits[len(digits)-scale:])
	}
	return b.String(), nil
}
