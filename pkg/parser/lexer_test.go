package parser

import (
	. "gopkg.in/check.v1"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

type LexSuite struct{}

var _ = Suite(&LexSuite{})

func kinds(ls []Lexeme) []LexemeKind {
	out := make([]LexemeKind, len(ls))
	for i, l := range ls {
		out[i] = l.Kind
	}
	return out
}

func (s *LexSuite) TestMixedLexemes(c *C) {
	src := "2 * sin(x) - 1.5e1/foo_2"
	expr := MustParse(src)
	ls, err := Lexemes(src, expr.Root())
	c.Assert(err, IsNil)
	c.Check(kinds(ls), DeepEquals, []LexemeKind{
		LexNumber, LexOperator, LexName, LexCompound, LexOperator, LexNumber, LexOperator, LexName,
	})
	c.Check(ls[3].Text, Equals, "(x)")
	c.Check(ls[3].Position, Equals, 7)
	c.Check(ls[5].Value.Equals(rational.FromInt(15)), Equals, true)
	c.Check(ls[7].Text, Equals, "foo_2")

	inner, err := Lexemes(src, ls[3].Chain)
	c.Assert(err, IsNil)
	c.Assert(inner, HasLen, 1)
	c.Check(inner[0].Text, Equals, "x")
	c.Check(inner[0].Position, Equals, 8)
}

func (s *LexSuite) TestNumbers(c *C) {
	tests := []struct {
		text string
		want rational.Number
	}{
		{"42", rational.FromInt(42)},
		{"0.25", rational.Frac(1, 4)},
		{"2e3", rational.FromInt(2000)},
		{"25E-2", rational.Frac(1, 4)},
		{"1.5e+1", rational.FromInt(15)},
	}
	for _, t := range tests {
		ls, err := Lexemes(t.text, MustParse(t.text).Root())
		c.Assert(err, IsNil, Commentf("%q", t.text))
		c.Assert(ls, HasLen, 1, Commentf("%q", t.text))
		c.Check(ls[0].Kind, Equals, LexNumber)
		c.Check(ls[0].Value.Equals(t.want), Equals, true, Commentf("%q = %s", t.text, ls[0].Value))
	}
}

func (s *LexSuite) TestSiblingLexemes(c *C) {
	src := "f(1, 2 + x)"
	root := MustParse(src).Root()
	subs, err := root.SubExpressions()
	c.Assert(err, IsNil)
	second, err := subs[0].NthSibling(1)
	c.Assert(err, IsNil)
	ls, err := Lexemes(src, second)
	c.Assert(err, IsNil)
	c.Check(kinds(ls), DeepEquals, []LexemeKind{LexNumber, LexOperator, LexName})
}

func (s *LexSuite) TestUnexpectedCharacter(c *C) {
	for _, src := range []string{"2 $ 3", "1 ^ 2", ".5", "3 % 2", "2 € 1"} {
		_, err := Lexemes(src, MustParse(src).Root())
		e, ok := types.AsError(err)
		if !c.Check(ok, Equals, true, Commentf("%q: %v", src, err)) {
			continue
		}
		c.Check(e.Code, Equals, types.ErrUnexpectedCharacter, Commentf("%q", src))
		c.Check(e.Annotated, Not(Equals), "")
	}
}

func (s *LexSuite) TestUnterminatedNode(c *C) {
	_, err := Lexemes("1", types.NewNode())
	c.Check(err, NotNil)
}
