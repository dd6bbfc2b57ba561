package rational_test

import (
	"errors"
	"testing"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want rational.Number
	}{
		{"0.{142857}R", rational.Frac(1, 7)},
		{"0.1{6}R", rational.Frac(1, 6)},
		{"-0.{3}R", rational.Frac(-1, 3)},
		{"0.75", rational.Frac(3, 4)},
		{"12", rational.FromInt(12)},
		{"+1.5", rational.Frac(3, 2)},
		{"1.5e2", rational.FromInt(150)},
		{"15E-1", rational.Frac(3, 2)},
		{"0.{3}Re1", rational.Frac(10, 3)},
		{"3/-6", rational.Frac(-1, 2)},
		{" 7 / 2 ", rational.Frac(7, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := rational.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "0.{}R", "1e", "1/0", "1e999999"} {
		if _, err := rational.Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		} else if !errors.Is(err, types.ErrLexicalStructure) && !errors.Is(err, types.ErrArithmeticDomain) {
			t.Errorf("Parse(%q) returned unexpected error kind: %v", in, err)
		}
	}
}

func TestExactRoundTrip(t *testing.T) {
	for _, n := range sample() {
		text := n.Exact()
		back, err := rational.Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		if !back.Equals(n) {
			t.Errorf("round trip of %s through %q gave %s", n, text, back)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on malformed input")
		}
	}()
	rational.MustParse("x")
}
