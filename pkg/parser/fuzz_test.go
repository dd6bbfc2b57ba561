package parser

import (
	"testing"

	"github.com/sandrolain/gorational/pkg/types"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		`1 + 2`,
		`(4 - 8) / (1 + 2)`,
		`1 + 2, 5 - 3`,
		`max(1, 2, {3})`,
		`0.{3}R`,
		`(1 + 2`,
		`1 + 2)`,
		`(}`,
		`,`,
		``,
		`f(,)`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		expr, err := Parse(input)
		if err != nil {
			if _, ok := types.AsError(err); !ok {
				t.Fatalf("Parse(%q) returned an untyped error: %v", input, err)
			}
			return
		}
		if expr.Dimension() < 1 {
			t.Fatalf("Parse(%q): dimension %d", input, expr.Dimension())
		}
		walk(t, input, expr.Root())
	})
}

// walk lexes every node reachable from head; it must never panic.
func walk(t *testing.T, src string, head *types.Node) {
	for _, n := range head.Siblings() {
		if n.State() != types.NodeTerminated {
			t.Fatalf("%q: node left %s", src, n.State())
		}
		_, _ = Lexemes(src, n)
		subs, err := n.SubExpressions()
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range subs {
			walk(t, src, s)
		}
	}
}
