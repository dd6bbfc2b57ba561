package evaluator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sandrolain/gorational/pkg/annotate"
	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/numeric"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// run is the state of one evaluation.
type run struct {
	source   string
	registry *functions.Registry
	backend  numeric.Arithmetic
	config   config.Config
	names    NameSets
	scope    *Scope
	logger   *slog.Logger
	debug    bool
}

// vector evaluates every sibling of the chain starting at head.
func (r *run) vector(ctx context.Context, head *types.Node) ([]rational.Number, error) {
	siblings := head.Siblings()
	out := make([]rational.Number, len(siblings))
	for i, n := range siblings {
		v, err := r.node(ctx, n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// scalar evaluates a chain that must hold exactly one expression.
func (r *run) scalar(ctx context.Context, e Element) (rational.Number, error) {
	d, err := e.Chain.Dimension()
	if err != nil {
		return rational.Number{}, err
	}
	if d != 1 {
		return rational.Number{}, types.NewError(types.ErrVectorInScalarContext,
			fmt.Sprintf("%s has %d components where a single value is expected", e.Text, d),
			e.Position).WithToken(e.Text).WithAnnotation(annotate.Text(r.source, e.Position))
	}
	return r.node(ctx, e.Chain)
}

// node evaluates a single terminated node.
func (r *run) node(ctx context.Context, n *types.Node) (rational.Number, error) {
	if err := ctx.Err(); err != nil {
		return rational.Number{}, err
	}
	s, err := ToStack(r.source, n, r.names)
	if err != nil {
		return rational.Number{}, err
	}
	p := &climber{run: r, elems: s.Elements()}
	return p.expression(ctx, lowPriority)
}

func (r *run) invoke(ctx context.Context, e Element, operands ...rational.Number) (rational.Number, error) {
	if r.debug {
		r.logger.Debug("invoke", "name", e.Text, "operands", len(operands), "position", e.Position)
	}
	v, err := r.registry.Invoke(ctx, functions.Call{
		Name:     e.Text,
		Operands: operands,
		Backend:  r.backend,
		Config:   r.config,
	})
	if err != nil {
		if te, ok := types.AsError(err); ok && te.Position < 0 {
			te.Position = e.Position
			if te.Annotated == "" {
				te.Annotated = annotate.Text(r.source, e.Position)
			}
		}
		return rational.Number{}, err
	}
	return v, nil
}

// climber evaluates the elements of one stack by precedence climbing.
// Unary operators bind tightest, then * and /, then + and -; binary
// operators associate to the left.
type climber struct {
	*run
	elems []Element
	pos   int
}

func (c *climber) expression(ctx context.Context, minPriority int) (rational.Number, error) {
	lhs, err := c.operand(ctx)
	if err != nil {
		return rational.Number{}, err
	}
	for c.pos < len(c.elems) {
		op := c.elems[c.pos]
		if op.Kind != BinaryOperator || op.Priority < minPriority {
			break
		}
		c.pos++
		rhs, err := c.expression(ctx, op.Priority+1)
		if err != nil {
			return rational.Number{}, err
		}
		if lhs, err = c.invoke(ctx, op, lhs, rhs); err != nil {
			return rational.Number{}, err
		}
	}
	return lhs, nil
}

func (c *climber) next() (Element, bool) {
	if c.pos >= len(c.elems) {
		return Element{}, false
	}
	e := c.elems[c.pos]
	c.pos++
	return e, true
}

// call reports whether the element after a name is its argument list.
func (c *climber) call() (Element, bool) {
	if c.pos < len(c.elems) && c.elems[c.pos].Kind == CompoundExpression {
		c.pos++
		return c.elems[c.pos-1], true
	}
	return Element{}, false
}

func (c *climber) operand(ctx context.Context) (rational.Number, error) {
	e, ok := c.next()
	if !ok {
		return rational.Number{}, types.NewError(types.ErrIncompleteExpression,
			"missing operand", len(c.source))
	}
	switch e.Kind {
	case UnaryOperator:
		v, err := c.operand(ctx)
		if err != nil {
			return rational.Number{}, err
		}
		return c.invoke(ctx, e, v)
	case Number:
		return c.backend.Coerce(e.Value)
	case CompoundExpression:
		return c.scalar(ctx, e)
	case FunctionName, VariableName:
		if args, ok := c.call(); ok {
			operands, err := c.vector(ctx, args.Chain)
			if err != nil {
				return rational.Number{}, err
			}
			return c.invoke(ctx, e, operands...)
		}
		v, ok := c.scope.Get(e.Text)
		if !ok {
			return rational.Number{}, types.NewError(types.ErrUndefinedVariable,
				fmt.Sprintf("undefined variable %q", e.Text), e.Position).
				WithToken(e.Text).
				WithAnnotation(annotate.Text(c.source, e.Position))
		}
		return c.backend.Coerce(v)
	}
	return rational.Number{}, types.NewError(types.ErrIllegalSequence,
		fmt.Sprintf("unexpected %s", e), e.Position).WithToken(e.Text)
}
