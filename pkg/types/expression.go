// Package types defines the core types shared by the gorational packages.
//
// This package contains type definitions for:
//   - Expression: a parsed expression tree together with its source
//   - Node: raw expression spans built by the parser
//   - Error: structured errors with codes and error kinds
package types

// Expression is a parsed expression.
//
// An Expression can be evaluated many times with different bindings by
// passing it to [evaluator.Evaluator.Eval]. It is never mutated after
// parsing and is safe for concurrent use by multiple goroutines.
type Expression struct {
	root   *Node
	source string
}

// NewExpression creates a new Expression from the head of a terminated
// top-level chain.
func NewExpression(root *Node, source string) *Expression {
	return &Expression{
		root:   root,
		source: source,
	}
}

// Root returns the head of the top-level sibling chain.
func (e *Expression) Root() *Node {
	return e.root
}

// Source returns the original source text.
func (e *Expression) Source() string {
	return e.source
}

// Dimension returns the number of comma separated top-level expressions.
func (e *Expression) Dimension() int {
	if e.root == nil {
		return 0
	}
	d, err := e.root.Dimension()
	if err != nil {
		return 0
	}
	return d
}

// String returns the source text.
func (e *Expression) String() string {
	return e.source
}
