package groups

import (
	"context"

	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/numeric"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/taylor"
)

// Goniometric returns sin, cos and tan for the rational backend. Arguments
// are read in the configured angle unit and the series length is the
// configured degree.
func Goniometric() functions.Group {
	return functions.Group{
		Name:    "goniometric",
		Backend: numeric.RationalName,
		Mappings: []functions.Mapping{
			angle("sin", "sine", taylor.Sin),
			angle("cos", "cosine", taylor.Cos),
			angle("tan", "tangent", taylor.Tan),
		},
	}
}

func angle(name, desc string, fn func(rational.Number, int) (rational.Number, error)) functions.Mapping {
	return functions.Mapping{
		Name:        name,
		Description: desc,
		Category:    functions.Function,
		Arity:       1,
		Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
			x := taylor.ToRadians(a.Fixed[0], a.Config.Angle)
			return fn(x, a.Config.Degree)
		},
	}
}
