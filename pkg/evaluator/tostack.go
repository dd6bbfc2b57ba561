package evaluator

import (
	"fmt"

	"github.com/sandrolain/gorational/pkg/annotate"
	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/parser"
	"github.com/sandrolain/gorational/pkg/types"
)

// NameSets are the names known while classifying lexemes.
type NameSets struct {
	Functions    map[string]bool
	Unary        map[string]bool
	Binary       map[string]bool // + -
	HighPriority map[string]bool // * /
}

func set(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// NamesFrom collects the names registered in reg for backend.
func NamesFrom(reg *functions.Registry, backend string) NameSets {
	return NameSets{
		Functions:    set(reg.Names(backend)),
		Unary:        set(reg.Operators(backend, functions.UnaryOperator)),
		Binary:       set(reg.Operators(backend, functions.BinaryOperator)),
		HighPriority: set(reg.Operators(backend, functions.BinaryOperatorHighPriority)),
	}
}

// ToStack lexes the terminated node n of source and pushes its lexemes on a
// new grammar stack. + and - are unary at the start or after another
// operator, binary otherwise. A name is a function name if names knows it,
// a variable name otherwise.
func ToStack(source string, n *types.Node, names NameSets) (*Stack, error) {
	lexemes, err := parser.Lexemes(source, n)
	if err != nil {
		return nil, err
	}
	s := &Stack{}
	for _, l := range lexemes {
		e := Element{Text: l.Text, Position: l.Position}
		switch l.Kind {
		case parser.LexNumber:
			e.Kind = Number
			e.Value = l.Value
		case parser.LexCompound:
			e.Kind = CompoundExpression
			e.Chain = l.Chain
		case parser.LexName:
			e.Kind = VariableName
			if names.Functions[l.Text] {
				e.Kind = FunctionName
			}
		case parser.LexOperator:
			if err := classifyOperator(s, &e, names); err != nil {
				return nil, annotated(err, source, l.Position)
			}
		}
		if err := s.Push(e); err != nil {
			return nil, annotated(err, source, l.Position)
		}
	}
	if s.IsIncomplete() {
		pos, _ := n.EndPosition()
		msg := "expression ends with an operator"
		if top, ok := s.Top(); ok {
			pos = top.Position
			msg = fmt.Sprintf("expression ends with %s", top)
		}
		return nil, annotated(types.NewError(types.ErrIncompleteExpression, msg, pos), source, pos)
	}
	return s, nil
}

func classifyOperator(s *Stack, e *Element, names NameSets) error {
	top, ok := s.Top()
	if (!ok || top.Kind.isOperator()) && names.Unary[e.Text] {
		e.Kind = UnaryOperator
		return nil
	}
	e.Kind = BinaryOperator
	switch {
	case names.Binary[e.Text]:
		e.Priority = lowPriority
	case names.HighPriority[e.Text]:
		e.Priority = highPriority
	default:
		return types.NewError(types.ErrUnknownFunction,
			fmt.Sprintf("operator %q is not available", e.Text), e.Position).WithToken(e.Text)
	}
	return nil
}

func annotated(err error, source string, pos int) error {
	if e, ok := types.AsError(err); ok && e.Annotated == "" {
		return e.WithAnnotation(annotate.Text(source, pos))
	}
	return err
}
