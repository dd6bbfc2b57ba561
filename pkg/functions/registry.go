// Package functions provides the registry of operators and named functions
// available inside expressions.
//
// A registry is assembled from groups of mappings, each group bound to one
// numeric backend. It is validated once when built and is read-only
// afterwards, so a single registry can be shared by concurrent evaluations.
//
// # Example
//
//	double := functions.Group{
//	    Name:    "custom",
//	    Backend: numeric.RationalName,
//	    Mappings: []functions.Mapping{{
//	        Name:     "double",
//	        Category: functions.Function,
//	        Arity:    1,
//	        Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
//	            return a.Backend.Add(a.Fixed[0], a.Fixed[0])
//	        },
//	    }},
//	}
//	reg, err := functions.New(double)
package functions

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/numeric"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Category classifies a mapping.
type Category uint8

const (
	// Function is a named function, called as name(args).
	Function Category = iota
	// UnaryOperator is a prefix + or -.
	UnaryOperator
	// BinaryOperator is an infix + or -.
	BinaryOperator
	// BinaryOperatorHighPriority is an infix * or /.
	BinaryOperatorHighPriority
)

func (c Category) String() string {
	switch c {
	case Function:
		return "FUNCTION"
	case UnaryOperator:
		return "UNARY_OPERATOR"
	case BinaryOperator:
		return "BINARY_OPERATOR"
	case BinaryOperatorHighPriority:
		return "BINARY_OPERATOR_HIGH_PRIORITY"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

var functionName = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// valid reports whether name and arity fit the category.
func (c Category) valid(name string, arity int) (nameOK, arityOK bool) {
	switch c {
	case Function:
		return functionName.MatchString(name), arity >= 1
	case UnaryOperator:
		return name == "+" || name == "-", arity == 1
	case BinaryOperator:
		return name == "+" || name == "-", arity == 2
	case BinaryOperatorHighPriority:
		return name == "*" || name == "/", arity == 2
	}
	return false, false
}

// Args are the operands handed to a mapping implementation.
type Args struct {
	Backend numeric.Arithmetic
	Config  config.Config
	// Fixed holds the positional parameters.
	Fixed []rational.Number
	// Rest holds the trailing operands of a variadic mapping.
	Rest []rational.Number
}

// All returns the fixed and rest operands in order.
func (a Args) All() []rational.Number {
	out := make([]rational.Number, 0, len(a.Fixed)+len(a.Rest))
	out = append(out, a.Fixed...)
	return append(out, a.Rest...)
}

// Func implements a mapping.
type Func func(ctx context.Context, args Args) (rational.Number, error)

// Mapping binds a name and arity to an implementation.
//
// A variadic mapping of arity n takes n-1 positional parameters followed by
// any number (zero included) of rest operands.
type Mapping struct {
	Name        string
	Description string
	Category    Category
	Arity       int
	Variadic    bool
	Fn          Func
}

const paramNames = "abcdefghijklmnopqrstuvwxyz"

// Signature renders the mapping as name(a, b, rest...).
func (m Mapping) Signature() string {
	fixed := m.Arity
	if m.Variadic {
		fixed--
	}
	params := make([]string, 0, m.Arity)
	for i := 0; i < fixed; i++ {
		j := i % len(paramNames)
		params = append(params, paramNames[j:j+1])
	}
	if m.Variadic {
		params = append(params, "rest...")
	}
	return m.Name + "(" + strings.Join(params, ", ") + ")"
}

func (m Mapping) accepts(argCount int) bool {
	if m.Variadic {
		return argCount >= m.Arity-1
	}
	return argCount == m.Arity
}

// Group is a named set of mappings for one numeric backend.
type Group struct {
	Name     string
	Backend  string
	Mappings []Mapping
}

type key struct {
	name  string
	arity int
}

// table holds the mappings of one backend, by name.
type table struct {
	byName map[string][]Mapping
	keys   map[key]string
}

// Registry resolves and invokes mappings. Build it with New.
type Registry struct {
	backends map[string]*table
}

// New validates groups and builds a registry from them. Names must fit
// their category, arities must fit their category and no two mappings of
// one backend may share a (name, arity) pair. Any violation fails the whole
// build.
func New(groups ...Group) (*Registry, error) {
	r := &Registry{backends: make(map[string]*table)}
	for _, g := range groups {
		if _, err := numeric.Select(g.Backend, false); err != nil {
			return nil, types.Errorf(types.ErrInvalidConfiguration,
				"group %q: unknown backend %q", g.Name, g.Backend).WithCause(err)
		}
		t := r.backends[g.Backend]
		if t == nil {
			t = &table{byName: make(map[string][]Mapping), keys: make(map[key]string)}
			r.backends[g.Backend] = t
		}
		for _, m := range g.Mappings {
			if err := t.add(g.Name, m); err != nil {
				return nil, err
			}
		}
	}
	for _, t := range r.backends {
		for _, ms := range t.byName {
			sort.SliceStable(ms, func(i, j int) bool { return ms[i].Arity < ms[j].Arity })
		}
	}
	return r, nil
}

func (t *table) add(group string, m Mapping) error {
	nameOK, arityOK := m.Category.valid(m.Name, m.Arity)
	if !nameOK {
		return types.Errorf(types.ErrInvalidMappingName,
			"group %q: invalid name %q for %s", group, m.Name, m.Category).WithToken(m.Name)
	}
	if !arityOK {
		return types.Errorf(types.ErrInvalidArity,
			"group %q: invalid arity %d for %s %q", group, m.Arity, m.Category, m.Name).WithToken(m.Name)
	}
	if m.Fn == nil {
		return types.Errorf(types.ErrInvalidConfiguration,
			"group %q: mapping %q has no implementation", group, m.Name).WithToken(m.Name)
	}
	k := key{name: m.Name, arity: m.Arity}
	if prev, ok := t.keys[k]; ok {
		return types.Errorf(types.ErrMappingCollision,
			"group %q: %s with arity %d already defined by group %q", group, m.Name, m.Arity, prev).WithToken(m.Name)
	}
	t.keys[k] = group
	t.byName[m.Name] = append(t.byName[m.Name], m)
	return nil
}

// Lookup resolves name for argCount operands on backend. An exact arity
// match wins over a variadic one.
func (r *Registry) Lookup(backend, name string, argCount int) (Mapping, bool) {
	t := r.backends[backend]
	if t == nil {
		return Mapping{}, false
	}
	ms := t.byName[name]
	for _, m := range ms {
		if !m.Variadic && m.Arity == argCount {
			return m, true
		}
	}
	for _, m := range ms {
		if m.Variadic && m.accepts(argCount) {
			return m, true
		}
	}
	return Mapping{}, false
}

// Has reports whether backend defines name with any arity.
func (r *Registry) Has(backend, name string) bool {
	t := r.backends[backend]
	return t != nil && len(t.byName[name]) > 0
}

// Call is one invocation request.
type Call struct {
	Name     string
	Operands []rational.Number
	Backend  numeric.Arithmetic
	Config   config.Config
}

// Invoke resolves and runs call. Failures are reported as invocation errors
// carrying the signature and the actual operands; arithmetic domain errors
// keep their own code.
func (r *Registry) Invoke(ctx context.Context, call Call) (rational.Number, error) {
	if err := ctx.Err(); err != nil {
		return rational.Number{}, err
	}
	backend := call.Backend.Name()
	n := len(call.Operands)
	m, ok := r.Lookup(backend, call.Name, n)
	if !ok {
		if !r.Has(backend, call.Name) {
			return rational.Number{}, types.Errorf(types.ErrUnknownFunction,
				"unknown function %q for backend %s", call.Name, backend).WithToken(call.Name)
		}
		return rational.Number{}, types.Errorf(types.ErrArgumentCount,
			"%q does not accept %d operands, candidates: %s",
			call.Name, n, strings.Join(r.signatures(backend, call.Name), ", ")).WithToken(call.Name)
	}

	fixed := m.Arity
	if m.Variadic {
		fixed--
	}
	args := Args{
		Backend: call.Backend,
		Config:  call.Config,
		Fixed:   call.Operands[:fixed],
		Rest:    call.Operands[fixed:],
	}
	res, err := m.Fn(ctx, args)
	if err == nil {
		res, err = call.Backend.Coerce(res)
	}
	if err != nil {
		return rational.Number{}, invocationError(m, call.Operands, err)
	}
	return res, nil
}

func invocationError(m Mapping, operands []rational.Number, err error) error {
	ops := make([]string, len(operands))
	for i, o := range operands {
		ops[i] = o.String()
	}
	if e, ok := types.AsError(err); ok && errors.Is(e, types.ErrArithmeticDomain) && e.Signature == "" {
		return e.WithSignature(m.Signature(), ops)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return types.Errorf(types.ErrInvocationFailed, "invocation failed").
		WithSignature(m.Signature(), ops).
		WithToken(m.Name).
		WithCause(err)
}

func (r *Registry) signatures(backend, name string) []string {
	var out []string
	for _, m := range r.backends[backend].byName[name] {
		out = append(out, m.Signature())
	}
	return out
}

// Mappings returns every mapping of backend sorted by name and arity.
func (r *Registry) Mappings(backend string) []Mapping {
	t := r.backends[backend]
	if t == nil {
		return nil
	}
	var out []Mapping
	for _, ms := range t.byName {
		out = append(out, ms...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Arity < out[j].Arity
	})
	return out
}

// Names returns the sorted function names of backend.
func (r *Registry) Names(backend string) []string {
	return r.names(backend, Function)
}

// Operators returns the sorted symbols of backend in category c.
func (r *Registry) Operators(backend string, c Category) []string {
	return r.names(backend, c)
}

func (r *Registry) names(backend string, c Category) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range r.Mappings(backend) {
		if m.Category == c && !seen[m.Name] {
			seen[m.Name] = true
			out = append(out, m.Name)
		}
	}
	return out
}

// Backends returns the sorted names of the backends with mappings.
func (r *Registry) Backends() []string {
	out := make([]string, 0, len(r.backends))
	for b := range r.backends {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}
