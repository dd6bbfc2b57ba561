// Package numeric defines the arithmetic capability set used during one
// evaluation and its concrete backends.
//
// The set of backends is closed: Rational performs exact fraction
// arithmetic, Integer restricts values to integers and rejects any
// operation whose result has a fractional part. A backend is selected once
// per evaluation with Select.
package numeric

import (
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Backend names.
const (
	RationalName = "rational"
	IntegerName  = "integer"
)

// Arithmetic is the capability set of a numeric backend.
type Arithmetic interface {
	// Name identifies the backend in the function registry.
	Name() string
	// Coerce admits a value (a literal or a binding) into the backend.
	Coerce(rational.Number) (rational.Number, error)

	Add(a, b rational.Number) (rational.Number, error)
	Subtract(a, b rational.Number) (rational.Number, error)
	Multiply(a, b rational.Number) (rational.Number, error)
	Divide(a, b rational.Number) (rational.Number, error)
	Negate(a rational.Number) (rational.Number, error)
	Abs(a rational.Number) (rational.Number, error)
	CompareTo(a, b rational.Number) int
	IsNaturalNumber(a rational.Number) bool
	Signum(a rational.Number) int
}

// Select returns the backend with the given name.
func Select(name string, normalize bool) (Arithmetic, error) {
	switch name {
	case RationalName, "":
		return Rational{Normalize: normalize}, nil
	case IntegerName:
		return Integer{}, nil
	}
	return nil, types.Errorf(types.ErrInvalidConfiguration, "unknown numeric backend %q", name)
}

// Names lists the available backends.
func Names() []string {
	return []string{RationalName, IntegerName}
}
