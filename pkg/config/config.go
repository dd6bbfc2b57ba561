// Package config holds the numeric and display settings of an evaluation.
//
// A Config is a plain value. Each evaluation works on its own copy, either
// passed explicitly or carried by a context.Context (see NewContext and
// FromContext), so concurrent evaluations never share mutable settings.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandrolain/gorational/pkg/numeric"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// AngleUnit is the unit of goniometric function arguments.
type AngleUnit uint8

const (
	Radians AngleUnit = iota
	Degrees
	Gradians
)

func (u AngleUnit) String() string {
	switch u {
	case Radians:
		return "RAD"
	case Degrees:
		return "DEG"
	case Gradians:
		return "GRAD"
	}
	return fmt.Sprintf("AngleUnit(%d)", uint8(u))
}

// ParseAngleUnit parses DEG, GRAD or RAD (case insensitive).
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToUpper(s) {
	case "RAD":
		return Radians, nil
	case "DEG":
		return Degrees, nil
	case "GRAD":
		return Gradians, nil
	}
	return 0, types.Errorf(types.ErrInvalidConfiguration, "unknown angle unit %q", s)
}

// Config configures numeric behavior and rendering.
type Config struct {
	// Scale is the number of fractional digits for truncated and rounded
	// output.
	Scale int
	// Rounding applies when a value is rounded to Scale.
	Rounding rational.RoundingMode
	// Output selects the rendering of results.
	Output rational.Mode
	// Normalize reduces every arithmetic result by its gcd.
	Normalize bool
	// Angle is the unit of goniometric arguments.
	Angle AngleUnit
	// Degree is the number of series terms used by transcendental
	// functions.
	Degree int
	// MaxRelativeError is the tolerance used when verifying approximated
	// results. It never influences evaluation.
	MaxRelativeError rational.Number
	// Backend names the numeric backend, see numeric.Select.
	Backend string
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Scale:            10,
		Rounding:         rational.RoundHalfEven,
		Output:           rational.Exact,
		Normalize:        true,
		Angle:            Radians,
		Degree:           20,
		MaxRelativeError: rational.Frac(1, 1000000),
		Backend:          numeric.RationalName,
	}
}

// Option modifies a Config.
type Option func(*Config)

// New returns the default configuration with opts applied, validated.
func New(opts ...Option) (Config, error) {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithScale sets the number of fractional digits.
func WithScale(scale int) Option {
	return func(c *Config) {
		c.Scale = scale
	}
}

// WithRounding sets the rounding mode.
func WithRounding(mode rational.RoundingMode) Option {
	return func(c *Config) {
		c.Rounding = mode
	}
}

// WithOutput sets the output mode.
func WithOutput(mode rational.Mode) Option {
	return func(c *Config) {
		c.Output = mode
	}
}

// WithNormalize enables or disables normalization of results.
func WithNormalize(enabled bool) Option {
	return func(c *Config) {
		c.Normalize = enabled
	}
}

// WithAngle sets the angle unit.
func WithAngle(unit AngleUnit) Option {
	return func(c *Config) {
		c.Angle = unit
	}
}

// WithDegree sets the number of series terms.
func WithDegree(degree int) Option {
	return func(c *Config) {
		c.Degree = degree
	}
}

// WithMaxRelativeError sets the verification tolerance.
func WithMaxRelativeError(n rational.Number) Option {
	return func(c *Config) {
		c.MaxRelativeError = n
	}
}

// WithBackend selects the numeric backend by name.
func WithBackend(name string) Option {
	return func(c *Config) {
		c.Backend = name
	}
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.Scale < 0 {
		return types.Errorf(types.ErrInvalidConfiguration, "scale must be >= 0, got %d", c.Scale)
	}
	if c.Degree < 0 {
		return types.Errorf(types.ErrInvalidConfiguration, "degree must be >= 0, got %d", c.Degree)
	}
	if c.Rounding > rational.RoundUnnecessary {
		return types.Errorf(types.ErrInvalidConfiguration, "unknown rounding mode %d", c.Rounding)
	}
	if c.Output > rational.All {
		return types.Errorf(types.ErrInvalidConfiguration, "unknown output mode %d", c.Output)
	}
	if c.Angle > Gradians {
		return types.Errorf(types.ErrInvalidConfiguration, "unknown angle unit %d", c.Angle)
	}
	if c.MaxRelativeError.Signum() < 0 {
		return types.Errorf(types.ErrInvalidConfiguration,
			"maximum relative error must be >= 0, got %s", c.MaxRelativeError)
	}
	if _, err := numeric.Select(c.Backend, c.Normalize); err != nil {
		return err
	}
	return nil
}

// Arithmetic returns the numeric backend selected by c.
func (c Config) Arithmetic() (numeric.Arithmetic, error) {
	return numeric.Select(c.Backend, c.Normalize)
}

// Format returns the rendering described by c.
func (c Config) Format() rational.Format {
	return rational.Format{Mode: c.Output, Scale: c.Scale, Rounding: c.Rounding}
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying c.
func NewContext(ctx context.Context, c Config) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the Config carried by ctx, if any.
func FromContext(ctx context.Context) (Config, bool) {
	c, ok := ctx.Value(contextKey{}).(Config)
	return c, ok
}
