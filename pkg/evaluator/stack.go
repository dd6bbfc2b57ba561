package evaluator

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// ElementKind is the grammatical class of a stack element.
type ElementKind uint8

const (
	UnaryOperator ElementKind = iota
	BinaryOperator
	Number
	CompoundExpression
	VariableName
	FunctionName
)

func (k ElementKind) String() string {
	switch k {
	case UnaryOperator:
		return "unary operator"
	case BinaryOperator:
		return "binary operator"
	case Number:
		return "number"
	case CompoundExpression:
		return "compound expression"
	case VariableName:
		return "variable name"
	case FunctionName:
		return "function name"
	}
	return fmt.Sprintf("ElementKind(%d)", uint8(k))
}

func (k ElementKind) isOperator() bool {
	return k == UnaryOperator || k == BinaryOperator
}

// Binary operator priorities.
const (
	lowPriority  = 1 // + -
	highPriority = 2 // * /
)

// Element is one classified lexeme of a node.
type Element struct {
	Kind     ElementKind
	Text     string
	Position int
	// Priority of a BinaryOperator.
	Priority int
	// Value of a Number.
	Value rational.Number
	// Chain is the head of the nested chain of a CompoundExpression.
	Chain *types.Node
}

func (e Element) String() string {
	return fmt.Sprintf("%s %q", e.Kind, e.Text)
}

// follows lists the kinds allowed after each kind.
var follows = map[ElementKind][]ElementKind{
	UnaryOperator:      {Number, VariableName, CompoundExpression, FunctionName},
	BinaryOperator:     {Number, VariableName, FunctionName, CompoundExpression, UnaryOperator},
	FunctionName:       {BinaryOperator, CompoundExpression},
	VariableName:       {BinaryOperator, CompoundExpression},
	Number:             {BinaryOperator},
	CompoundExpression: {BinaryOperator},
}

// initial lists the kinds allowed on an empty stack.
var initial = []ElementKind{Number, VariableName, FunctionName, UnaryOperator, CompoundExpression}

func allowed(kinds []ElementKind, k ElementKind) bool {
	for _, a := range kinds {
		if a == k {
			return true
		}
	}
	return false
}

func kindList(kinds []ElementKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// Stack is the grammar-validated sequence of elements of one node. Every
// push is checked against the element on top.
type Stack struct {
	elems []Element
}

// Push appends e if it may follow the current top.
func (s *Stack) Push(e Element) error {
	expected := initial
	prev := "start of expression"
	if top, ok := s.Top(); ok {
		expected = follows[top.Kind]
		prev = top.String()
	}
	if !allowed(expected, e.Kind) {
		return types.NewError(types.ErrIllegalSequence,
			fmt.Sprintf("%s cannot follow %s, expected %s", e, prev, kindList(expected)),
			e.Position).WithToken(e.Text)
	}
	s.elems = append(s.elems, e)
	return nil
}

// Top returns the last pushed element.
func (s *Stack) Top() (Element, bool) {
	if len(s.elems) == 0 {
		return Element{}, false
	}
	return s.elems[len(s.elems)-1], true
}

// IsIncomplete reports whether the stack is empty or ends with an operator.
func (s *Stack) IsIncomplete() bool {
	top, ok := s.Top()
	return !ok || top.Kind.isOperator()
}

// Len returns the number of elements.
func (s *Stack) Len() int { return len(s.elems) }

// Elements returns a copy of the elements, bottom first.
func (s *Stack) Elements() []Element {
	out := make([]Element, len(s.elems))
	copy(out, s.elems)
	return out
}
