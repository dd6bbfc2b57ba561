package evaluator

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Result is the value of an evaluated expression: one number per
// comma-separated top-level component.
type Result struct {
	Values []rational.Number
	// Format is the rendering configured for the evaluation.
	Format rational.Format
}

// Dimension returns the number of components.
func (r Result) Dimension() int {
	return len(r.Values)
}

// Scalar returns the single value of a one-component result.
func (r Result) Scalar() (rational.Number, error) {
	if len(r.Values) != 1 {
		return rational.Number{}, types.Errorf(types.ErrVectorInScalarContext,
			"result has %d components", len(r.Values))
	}
	return r.Values[0], nil
}

// Render formats every component with r.Format.
func (r Result) Render() ([]string, error) {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		s, err := v.Format(r.Format)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// String renders the components separated by commas. Rendering errors are
// reported inline.
func (r Result) String() string {
	parts, err := r.Render()
	if err != nil {
		return fmt.Sprintf("!(%v)", err)
	}
	return strings.Join(parts, ", ")
}
