// Package parser builds raw expression trees from source text.
//
// Parsing is a single left-to-right scan. Aggregation tokens, ( ) and { },
// open nested chains; commas split a level into sibling nodes. The result
// is a tree of spans over the source: the literal characters of each level
// are kept in the node buffers and are only split into lexemes later, by
// Lexemes.
//
// # Example
//
//	expr, err := parser.Parse("max(1, 2) + (3 - 4)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	root := expr.Root()
//	fmt.Println(expr.Dimension()) // 1
//
// Lexical errors carry the source annotated with carets at the offending
// positions, see types.Error.Annotated.
package parser

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gorational/pkg/annotate"
	"github.com/sandrolain/gorational/pkg/types"
)

// closing maps each aggregation open token to its close token.
var closing = map[rune]rune{
	'(': ')',
	'{': '}',
}

func isClose(r rune) bool {
	return r == ')' || r == '}'
}

type frame struct {
	token rune
	pos   int
}

type builder struct {
	text   string
	active *types.Node
	stack  []frame
}

// Parse builds the expression tree of text.
func Parse(text string) (*types.Expression, error) {
	b := &builder{text: text}
	root := types.NewNode()
	b.active = root

	for i, r := range text {
		var err error
		switch {
		case r == ',':
			err = b.sibling(i)
		case closing[r] != 0:
			err = b.open(r, i)
		case isClose(r):
			err = b.close(r, i)
		default:
			err = b.char(r, i)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := b.end(); err != nil {
		return nil, err
	}
	return types.NewExpression(root, text), nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *types.Expression {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

func (b *builder) errorAt(code types.ErrorCode, msg string, positions ...int) *types.Error {
	pos := -1
	if len(positions) > 0 {
		pos = positions[0]
	}
	return types.NewError(code, msg, pos).WithAnnotation(annotate.Text(b.text, positions...))
}

func (b *builder) startIfNeeded(pos int) error {
	if b.active.State() == types.NodeNotStarted {
		return b.active.Start(pos)
	}
	return nil
}

func (b *builder) char(r rune, pos int) error {
	if err := b.startIfNeeded(pos); err != nil {
		return err
	}
	return b.active.Append(r)
}

// finish terminates the active node at pos. An unstarted node at a comma is
// a premature sibling; elsewhere, like a whitespace-only node, it is a
// blank span.
func (b *builder) finish(pos int, atComma bool) error {
	n := b.active
	if n.State() == types.NodeNotStarted {
		if atComma {
			return b.errorAt(types.ErrPrematureSibling,
				"comma before any content", pos)
		}
		return b.errorAt(types.ErrBlankSpan,
			fmt.Sprintf("blank span [%d, %d)", pos, pos), pos)
	}
	if n.IsBlank() {
		start, _ := n.StartPosition()
		return b.errorAt(types.ErrBlankSpan,
			fmt.Sprintf("blank span [%d, %d)", start, pos), start, pos)
	}
	return n.Terminate(pos)
}

func (b *builder) sibling(pos int) error {
	if err := b.finish(pos, true); err != nil {
		return err
	}
	s, err := b.active.NewSibling()
	if err != nil {
		return err
	}
	b.active = s
	return nil
}

func (b *builder) open(r rune, pos int) error {
	if err := b.startIfNeeded(pos); err != nil {
		return err
	}
	c, err := b.active.NewChild(r, pos)
	if err != nil {
		return err
	}
	b.stack = append(b.stack, frame{token: r, pos: pos})
	b.active = c
	return nil
}

func (b *builder) close(r rune, pos int) error {
	if len(b.stack) == 0 {
		return b.errorAt(types.ErrMissingOpenToken,
			fmt.Sprintf("%q without a matching open token", r), pos).WithToken(string(r))
	}
	top := b.stack[len(b.stack)-1]
	if want := closing[top.token]; want != r {
		return b.errorAt(types.ErrWrongClosingToken,
			fmt.Sprintf("%q closes %q opened at %d, expected %q", r, top.token, top.pos, want),
			pos, top.pos).WithToken(string(r))
	}
	if err := b.finish(pos, false); err != nil {
		return err
	}
	b.active.CloseChain(pos)
	b.stack = b.stack[:len(b.stack)-1]
	b.active = b.active.Parent()
	return nil
}

func (b *builder) end() error {
	if len(b.stack) > 0 {
		positions := make([]int, len(b.stack))
		names := make([]string, len(b.stack))
		for i, f := range b.stack {
			positions[i] = f.pos
			names[i] = fmt.Sprintf("%q at %d", f.token, f.pos)
		}
		return b.errorAt(types.ErrUnmatchedOpenToken,
			"unmatched open tokens: "+strings.Join(names, ", "), positions...)
	}
	return b.finish(len(b.text), false)
}
