package parser

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/sandrolain/gorational/pkg/annotate"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

var (
	numberPattern = regexp.MustCompile(`^\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	namePattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

// Lexemes splits the span of the terminated node n of source into lexemes.
// Each nested chain of n becomes a single LexCompound lexeme spanning its
// aggregation tokens.
func Lexemes(source string, n *types.Node) ([]Lexeme, error) {
	start, err := n.StartPosition()
	if err != nil {
		return nil, err
	}
	end, err := n.EndPosition()
	if err != nil {
		return nil, err
	}
	children, err := n.SubExpressions()
	if err != nil {
		return nil, err
	}

	var out []Lexeme
	next := 0
	for i := start; i < end; {
		if next < len(children) && children[next].OpenPosition() == i {
			c := children[next]
			closePos := c.ClosePosition()
			out = append(out, Lexeme{
				Kind:     LexCompound,
				Text:     source[i : closePos+1],
				Position: i,
				Chain:    c,
			})
			next++
			i = closePos + 1
			continue
		}

		ch := source[i]
		switch {
		case isSpace(ch):
			i++
		case isOperator(ch):
			out = append(out, Lexeme{Kind: LexOperator, Text: source[i : i+1], Position: i})
			i++
		case ch >= '0' && ch <= '9':
			text := numberPattern.FindString(source[i:end])
			v, err := rational.Parse(text)
			if err != nil {
				return nil, types.NewError(types.ErrMalformedNumber,
					fmt.Sprintf("malformed number %q", text), i).
					WithToken(text).
					WithAnnotation(annotate.Text(source, i)).
					WithCause(err)
			}
			out = append(out, Lexeme{Kind: LexNumber, Text: text, Position: i, Value: v})
			i += len(text)
		default:
			text := namePattern.FindString(source[i:end])
			if text == "" {
				r, _ := utf8.DecodeRuneInString(source[i:])
				return nil, types.NewError(types.ErrUnexpectedCharacter,
					fmt.Sprintf("unexpected character %q", r), i).
					WithToken(string(r)).
					WithAnnotation(annotate.Text(source, i))
			}
			out = append(out, Lexeme{Kind: LexName, Text: text, Position: i})
			i += len(text)
		}
	}
	return out, nil
}
