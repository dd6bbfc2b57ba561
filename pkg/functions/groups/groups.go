// Package groups provides the standard function groups and the default
// registry built from them.
package groups

import (
	"sync"

	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/numeric"
)

// All returns every standard group, for every backend it supports.
func All() []functions.Group {
	return []functions.Group{
		Arithmetic(numeric.RationalName),
		Arithmetic(numeric.IntegerName),
		Statistical(numeric.RationalName),
		Statistical(numeric.IntegerName),
		Goniometric(),
		Logarithmic(),
	}
}

var defaultRegistry = sync.OnceValues(func() (*functions.Registry, error) {
	return functions.New(All()...)
})

// Default returns the registry of the standard groups. It is built on first
// use and shared afterwards.
func Default() (*functions.Registry, error) {
	return defaultRegistry()
}

// MustDefault is like Default but panics if the registry cannot be built.
func MustDefault() *functions.Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}
