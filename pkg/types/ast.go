package types

import (
	"fmt"
	"strings"
)

// NodeState is the lifecycle state of a Node.
type NodeState uint8

const (
	NodeNotStarted NodeState = iota
	NodeStarted
	NodeTerminated
)

func (s NodeState) String() string {
	switch s {
	case NodeNotStarted:
		return "not started"
	case NodeStarted:
		return "started"
	case NodeTerminated:
		return "terminated"
	}
	return fmt.Sprintf("NodeState(%d)", uint8(s))
}

// Node is a raw expression span produced by the tree builder.
//
// A node covers the half-open range [Start, End) of the source. Characters
// that belong to the node's own nesting level are accumulated in its buffer;
// nested aggregations become child chains. Nodes separated by commas at the
// same level are linked as siblings, forming a chain whose length is the
// chain's dimension.
type Node struct {
	state      NodeState
	start, end int
	buf        strings.Builder

	children []*Node // heads of the nested chains, in source order
	next     *Node   // next sibling
	parent   *Node
	head     *Node // first node of this node's sibling chain

	// Aggregation tokens delimiting this node's chain, -1 at top level.
	// Only meaningful on the chain head.
	open, close int
	openToken   rune
}

// NewNode creates an unstarted top-level node.
func NewNode() *Node {
	n := &Node{open: -1, close: -1}
	n.head = n
	return n
}

// NewChild creates an unstarted child chain of n opened by token at pos.
func (n *Node) NewChild(token rune, pos int) (*Node, error) {
	if n.state == NodeTerminated {
		return nil, n.stateError("add a child to")
	}
	c := &Node{parent: n, open: pos, close: -1, openToken: token}
	c.head = c
	n.children = append(n.children, c)
	return c, nil
}

// NewSibling links a new unstarted sibling after n. n must be the last node
// of its chain.
func (n *Node) NewSibling() (*Node, error) {
	if n.next != nil {
		return nil, NewError(ErrNodeState, "node already has a sibling", n.start)
	}
	s := &Node{parent: n.parent, head: n.head, open: -1, close: -1}
	n.next = s
	return s, nil
}

// Start marks the node as started at pos. It can only happen once.
func (n *Node) Start(pos int) error {
	if n.state != NodeNotStarted {
		return n.stateError("start")
	}
	n.start = pos
	n.state = NodeStarted
	return nil
}

// Append adds r to the node's literal buffer.
func (n *Node) Append(r rune) error {
	if n.state != NodeStarted {
		return n.stateError("append to")
	}
	n.buf.WriteRune(r)
	return nil
}

// Terminate marks the node as terminated at pos (exclusive end).
func (n *Node) Terminate(pos int) error {
	if n.state != NodeStarted {
		return n.stateError("terminate")
	}
	if pos < n.start {
		return NewError(ErrNodeState,
			fmt.Sprintf("end %d before start %d", pos, n.start), pos)
	}
	n.end = pos
	n.state = NodeTerminated
	return nil
}

// CloseChain records the position of the token closing n's chain.
func (n *Node) CloseChain(pos int) {
	n.head.close = pos
}

func (n *Node) stateError(action string) *Error {
	return NewError(ErrNodeState,
		fmt.Sprintf("cannot %s a %s node", action, n.state), n.start)
}

// State returns the lifecycle state.
func (n *Node) State() NodeState { return n.state }

// Parent returns the node owning n's chain, or nil at top level.
func (n *Node) Parent() *Node { return n.parent }

// Next returns the next sibling, or nil.
func (n *Node) Next() *Node { return n.next }

// Head returns the first node of n's sibling chain.
func (n *Node) Head() *Node { return n.head }

// OpenPosition returns the position of the aggregation token that opened
// n's chain, or -1 at top level.
func (n *Node) OpenPosition() int { return n.head.open }

// ClosePosition returns the position of the aggregation token that closed
// n's chain, or -1 at top level.
func (n *Node) ClosePosition() int { return n.head.close }

// OpenToken returns the aggregation token that opened n's chain, or 0.
func (n *Node) OpenToken() rune { return n.head.openToken }

// StartPosition returns the start of the span.
func (n *Node) StartPosition() (int, error) {
	if n.state == NodeNotStarted {
		return 0, n.stateError("read the start of")
	}
	return n.start, nil
}

// EndPosition returns the exclusive end of the span.
func (n *Node) EndPosition() (int, error) {
	if n.state != NodeTerminated {
		return 0, n.stateError("read the end of")
	}
	return n.end, nil
}

// Buffer returns the characters accumulated at this node's level.
func (n *Node) Buffer() string { return n.buf.String() }

// IsBlank reports whether the buffer is all whitespace and there are no
// children.
func (n *Node) IsBlank() bool {
	return len(n.children) == 0 && strings.TrimSpace(n.buf.String()) == ""
}

// IsContentFreeWithChildren reports whether the buffer is all whitespace but
// children exist.
func (n *Node) IsContentFreeWithChildren() bool {
	return len(n.children) > 0 && strings.TrimSpace(n.buf.String()) == ""
}

// Length returns End - Start of a terminated node.
func (n *Node) Length() (int, error) {
	if n.state != NodeTerminated {
		return 0, n.stateError("measure")
	}
	return n.end - n.start, nil
}

// LengthWithSiblings returns the extent from the start of n's chain head to
// the end of its last sibling. Every node of the chain must be terminated.
func (n *Node) LengthWithSiblings() (int, error) {
	last := n.head
	for s := n.head; s != nil; s = s.next {
		if s.state != NodeTerminated {
			return 0, s.stateError("measure")
		}
		last = s
	}
	return last.end - n.head.start, nil
}

// Dimension returns the length of n's sibling chain. Every node of the chain
// must be terminated.
func (n *Node) Dimension() (int, error) {
	d := 0
	for s := n.head; s != nil; s = s.next {
		if s.state != NodeTerminated {
			return 0, s.stateError("count the dimension of")
		}
		d++
	}
	return d, nil
}

// NthSibling returns the i-th node (0-based) of n's chain.
func (n *Node) NthSibling(i int) (*Node, error) {
	if i < 0 {
		return nil, NewError(ErrNodeState, fmt.Sprintf("negative sibling index %d", i), -1)
	}
	s := n.head
	for ; s != nil && i > 0; i-- {
		s = s.next
	}
	if s == nil {
		return nil, NewError(ErrNodeState, "sibling index out of range", -1)
	}
	if s.state == NodeNotStarted {
		return nil, s.stateError("access")
	}
	return s, nil
}

// Siblings returns all nodes of n's chain.
func (n *Node) Siblings() []*Node {
	var out []*Node
	for s := n.head; s != nil; s = s.next {
		out = append(out, s)
	}
	return out
}

// SubExpressions returns the heads of n's nested chains. n must be
// terminated.
func (n *Node) SubExpressions() ([]*Node, error) {
	if n.state != NodeTerminated {
		return nil, n.stateError("list the sub-expressions of")
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out, nil
}
