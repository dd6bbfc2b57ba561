package parser

import (
	"fmt"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// LexemeKind is the lexical class of a Lexeme.
type LexemeKind uint8

const (
	LexNumber   LexemeKind = iota // 12, 1.5, 2e-3
	LexName                       // pi, sum
	LexOperator                   // + - * /
	LexCompound                   // a nested chain: (...) or {...}
)

func (k LexemeKind) String() string {
	switch k {
	case LexNumber:
		return "number"
	case LexName:
		return "name"
	case LexOperator:
		return "operator"
	case LexCompound:
		return "compound"
	}
	return fmt.Sprintf("LexemeKind(%d)", uint8(k))
}

// Lexeme is one lexical unit of a node.
type Lexeme struct {
	Kind     LexemeKind
	Text     string
	Position int
	// Value is the exact value of a LexNumber.
	Value rational.Number
	// Chain is the head of the nested chain of a LexCompound.
	Chain *types.Node
}

func (l Lexeme) String() string {
	return fmt.Sprintf("%s %q at %d", l.Kind, l.Text, l.Position)
}
