package config

import (
	"strconv"
	"strings"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Set applies a textual setting such as ("scale", "12") or
// ("output", "components"). It is used by the command line and WASI
// entrypoints.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "scale":
		n, err := strconv.Atoi(value)
		if err != nil {
			return types.Errorf(types.ErrInvalidConfiguration, "invalid scale %q", value)
		}
		c.Scale = n
	case "rounding":
		m, err := rational.ParseRoundingMode(value)
		if err != nil {
			return err
		}
		c.Rounding = m
	case "output":
		m, err := rational.ParseMode(value)
		if err != nil {
			return err
		}
		c.Output = m
	case "normalize":
		switch strings.ToUpper(value) {
		case "YES", "TRUE", "1":
			c.Normalize = true
		case "NO", "FALSE", "0":
			c.Normalize = false
		default:
			return types.Errorf(types.ErrInvalidConfiguration, "invalid normalize value %q", value)
		}
	case "angle":
		u, err := ParseAngleUnit(value)
		if err != nil {
			return err
		}
		c.Angle = u
	case "degree":
		n, err := strconv.Atoi(value)
		if err != nil {
			return types.Errorf(types.ErrInvalidConfiguration, "invalid degree %q", value)
		}
		c.Degree = n
	case "maxrelativeerror", "max_relative_error":
		n, err := rational.Parse(value)
		if err != nil {
			return types.Errorf(types.ErrInvalidConfiguration, "invalid maximum relative error %q", value).WithCause(err)
		}
		c.MaxRelativeError = n
	case "backend":
		c.Backend = strings.ToLower(value)
	default:
		return types.Errorf(types.ErrInvalidConfiguration, "unknown setting %q", key)
	}
	return nil
}

// Get returns the textual value of a setting.
func (c Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "scale":
		return strconv.Itoa(c.Scale), nil
	case "rounding":
		return c.Rounding.String(), nil
	case "output":
		return c.Output.String(), nil
	case "normalize":
		if c.Normalize {
			return "YES", nil
		}
		return "NO", nil
	case "angle":
		return c.Angle.String(), nil
	case "degree":
		return strconv.Itoa(c.Degree), nil
	case "maxrelativeerror", "max_relative_error":
		return c.MaxRelativeError.Exact(), nil
	case "backend":
		return c.Backend, nil
	}
	return "", types.Errorf(types.ErrInvalidConfiguration, "unknown setting %q", key)
}

// Apply sets every key/value pair of settings and validates the result.
func (c *Config) Apply(settings map[string]string) error {
	for k, v := range settings {
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return c.Validate()
}
