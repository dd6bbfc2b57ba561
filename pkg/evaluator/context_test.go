package evaluator

import (
	"strings"
	"testing"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/taylor"
)

func TestScope(t *testing.T) {
	bindings := map[string]rational.Number{"x": rational.One, "e": rational.FromInt(3)}
	s := NewScope(bindings)
	bindings["x"] = rational.Zero

	if v, ok := s.Get("x"); !ok || !v.Equals(rational.One) {
		t.Errorf("x = %v, %v; bindings must be copied", v, ok)
	}
	if v, _ := s.Get("e"); v.String() != "3/1" {
		t.Errorf("e = %s, want the shadowing binding", v)
	}
	if v, ok := s.Get("pi"); !ok || !v.Equals(taylor.Pi) {
		t.Error("pi is not visible")
	}
	if _, ok := s.Get("y"); ok {
		t.Error("y is not bound")
	}

	child := s.NewChild(nil)
	child.Set("y", rational.Frac(1, 2))
	if child.Parent() != s {
		t.Error("wrong parent")
	}
	if _, ok := s.Get("y"); ok {
		t.Error("child binding leaked into parent")
	}
	if got := strings.Join(child.Names(), ","); got != "e,pi,x,y" {
		t.Errorf("Names() = %s", got)
	}
}
