package rational

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/sandrolain/gorational/pkg/types"
)

// Mode selects how a Number is rendered.
type Mode uint8

const (
	// Components renders num/den.
	Components Mode = iota
	// Exact renders the full decimal expansion with the repeating block
	// wrapped in cycle markers, e.g. 0.{142857}R.
	Exact
	// Truncated renders Scale fractional digits, continuing a repeating
	// block as needed.
	Truncated
	// ComponentsAndExact renders "num/den = exact".
	ComponentsAndExact
	// All renders "num/den = exact ~ rounded".
	All
)

// Cycle markers used by the Exact rendering.
const (
	CycleOpen  = "{"
	CycleClose = "}R"
)

var modeNames = [...]string{
	Components:         "COMPONENTS",
	Exact:              "EXACT",
	Truncated:          "TRUNCATED",
	ComponentsAndExact: "COMPONENTS_AND_EXACT",
	All:                "ALL",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses a rendering mode name (case insensitive).
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, types.Errorf(types.ErrInvalidConfiguration, "unknown output mode %q", s)
}

// Format describes a rendering.
type Format struct {
	Mode     Mode
	Scale    int
	Rounding RoundingMode
}

// Expansion is the decimal expansion of a Number.
type Expansion struct {
	Negative bool
	Integer  *big.Int
	// Prefix holds the non-repeating fractional digits.
	Prefix string
	// Cycle holds the repeating block, empty for a finite expansion.
	Cycle string
}

// expand performs the long division of |n| until the remainder is zero or
// repeats. A non-negative limit also stops it after limit fractional digits.
func (n Number) expand(limit int) Expansion {
	num, den := n.parts()
	abs := new(big.Int).Abs(num)
	q, r := new(big.Int).QuoRem(abs, den, new(big.Int))

	x := Expansion{Negative: num.Sign() < 0, Integer: q}
	var digits []byte
	seen := make(map[string]int)
	digit, rem := new(big.Int), new(big.Int)
	for {
		if r.Sign() == 0 {
			x.Prefix = string(digits)
			return x
		}
		key := string(r.Bytes())
		if at, ok := seen[key]; ok {
			x.Prefix = string(digits[:at])
			x.Cycle = string(digits[at:])
			return x
		}
		if limit >= 0 && len(digits) >= limit {
			x.Prefix = string(digits)
			return x
		}
		seen[key] = len(digits)
		r.Mul(r, bigTen)
		digit.QuoRem(r, den, rem)
		r, rem = rem, r
		digits = append(digits, byte('0'+digit.Int64()))
	}
}

// Expansion returns the complete decimal expansion of n. The repeating
// block of a/b has at most b-1 digits.
func (n Number) Expansion() Expansion {
	return n.expand(-1)
}

// Exact renders the decimal expansion with cycle markers: 1/7 renders as
// 0.{142857}R, 1/6 as 0.1{6}R and 3/4 as 0.75.
func (n Number) Exact() string {
	x := n.Expansion()
	var b strings.Builder
	if x.Negative {
		b.WriteByte('-')
	}
	b.WriteString(x.Integer.String())
	if x.Prefix == "" && x.Cycle == "" {
		return b.String()
	}
	b.WriteByte('.')
	b.WriteString(x.Prefix)
	if x.Cycle != "" {
		b.WriteString(CycleOpen)
		b.WriteString(x.Cycle)
		b.WriteString(CycleClose)
	}
	return b.String()
}

// Truncated renders at most scale fractional digits without rounding. A
// detected repeating block is repeated to fill the scale.
func (n Number) Truncated(scale int) string {
	if scale < 0 {
		scale = 0
	}
	x := n.expand(scale)
	frac := x.Prefix
	if x.Cycle != "" {
		var b strings.Builder
		b.WriteString(frac)
		for b.Len() < scale {
			b.WriteString(x.Cycle)
		}
		frac = b.String()
	}
	if len(frac) > scale {
		frac = frac[:scale]
	}

	var b strings.Builder
	if x.Negative && (x.Integer.Sign() != 0 || strings.Trim(frac, "0") != "") {
		b.WriteByte('-')
	}
	b.WriteString(x.Integer.String())
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Format renders n according to f.
func (n Number) Format(f Format) (string, error) {
	switch f.Mode {
	case Components:
		return n.String(), nil
	case Exact:
		return n.Exact(), nil
	case Truncated:
		return n.Truncated(f.Scale), nil
	case ComponentsAndExact:
		return n.String() + " = " + n.Exact(), nil
	case All:
		rounded, err := n.Decimal(f.Scale, f.Rounding)
		if err != nil {
			return "", err
		}
		return n.String() + " = " + n.Exact() + " ~ " + rounded, nil
	}
	return "", types.Errorf(types.ErrInvalidConfiguration, "unknown output mode %d", f.Mode)
}
