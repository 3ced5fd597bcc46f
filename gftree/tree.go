package gftree

import (
	"fmt"
	"slices"
	"strings"
)

// Tree is a forest of nodes stored in pre-order in a single slice.
//
// The zero value is an empty tree ready for use.
type Tree[K Index, V any] struct {
	nodes []Node[K, V]

	// Indices of the nodes that are still open for new children,
	// outermost first.
	// The last entry is the current node.
	// Queries never read the stack.
	stack []int
}

// New returns an empty tree.
func New[K Index, V any]() *Tree[K, V] {
	return new(Tree[K, V])
}

// NewWithCapacity returns an empty tree
// with room for n nodes before the backing slice needs to grow.
func NewWithCapacity[K Index, V any](n int) *Tree[K, V] {
	if n < 0 {
		panic(fmt.Errorf("BUG: capacity must be non-negative: got %d", n))
	}
	return &Tree[K, V]{
		nodes: make([]Node[K, V], 0, n),
	}
}

// Push adds v as a child of the current node and returns its index.
// If there is no current node, because the tree is empty
// or because Up has been called past the outermost node,
// the new node becomes a new root.
// Either way, the new node becomes the current node.
//
// Push runs in time proportional to the depth of the current node.
func (t *Tree[K, V]) Push(v V) K {
	id := len(t.nodes)

	parent := noParent
	if len(t.stack) > 0 {
		parent = t.stack[len(t.stack)-1]
	}

	t.nodes = append(t.nodes, Node[K, V]{
		Value:  v,
		parent: parent,
	})

	// Every open node is an ancestor of the new node.
	for _, a := range t.stack {
		t.nodes[a].descendants++
	}

	t.stack = append(t.stack, id)

	return K(id)
}

// Up makes the parent of the current node the new current node,
// and returns the index of that new current node.
// The ok value is false if there is no longer a current node,
// in which case the next call to Push starts a new root.
//
// Calling Up when there is no current node does nothing.
func (t *Tree[K, V]) Up() (id K, ok bool) {
	if len(t.stack) == 0 {
		return 0, false
	}
	t.stack = t.stack[:len(t.stack)-1]
	return t.Current()
}

// Current returns the index of the node that the next Push
// would attach a child to.
// The ok value is false if the next Push would start a new root.
func (t *Tree[K, V]) Current() (id K, ok bool) {
	if len(t.stack) == 0 {
		return 0, false
	}
	return K(t.stack[len(t.stack)-1]), true
}

// Depth returns the number of nodes currently open,
// that is, the number of Up calls needed to return to the top level.
func (t *Tree[K, V]) Depth() int {
	return len(t.stack)
}

// Reset removes every node from the tree and closes every open node.
// The allocated capacity is kept for reuse.
func (t *Tree[K, V]) Reset() {
	// Clear first so the old values can be collected.
	clear(t.nodes)
	t.nodes = t.nodes[:0]
	t.stack = t.stack[:0]
}

// Len returns the number of nodes in the tree.
func (t *Tree[K, V]) Len() int {
	return len(t.nodes)
}

// IsEmpty reports whether the tree has no nodes, and therefore no root.
func (t *Tree[K, V]) IsEmpty() bool {
	return len(t.nodes) == 0
}

// index converts id to a slice index,
// reporting whether it refers to an existing node.
func (t *Tree[K, V]) index(id K) (int, bool) {
	// A very large unsigned id converts to a negative int.
	i := int(id)
	if i < 0 || i >= len(t.nodes) {
		return 0, false
	}
	return i, true
}

// Get returns the node at id, or nil if there is no such node.
//
// The returned pointer may be used to modify the node's Value.
// It is only valid until the next call to Push.
func (t *Tree[K, V]) Get(id K) *Node[K, V] {
	i, ok := t.index(id)
	if !ok {
		return nil
	}
	return &t.nodes[i]
}

// First returns the first node pushed, or nil if the tree is empty.
// This is normally the only root,
// but a tree may contain multiple roots.
func (t *Tree[K, V]) First() *Node[K, V] {
	if len(t.nodes) == 0 {
		return nil
	}
	return &t.nodes[0]
}

// Last returns the most recently pushed node, or nil if the tree is empty.
// While the tree is being built and Up has not been called since,
// this is the current node.
func (t *Tree[K, V]) Last() *Node[K, V] {
	if len(t.nodes) == 0 {
		return nil
	}
	return &t.nodes[len(t.nodes)-1]
}

// All returns every node in the order they were pushed,
// which is pre-order.
// The returned slice shares memory with the tree
// and must be treated as read-only apart from node values.
func (t *Tree[K, V]) All() []Node[K, V] {
	return t.nodes[:len(t.nodes):len(t.nodes)]
}

// Descendants returns every node below id, at any depth, in pre-order.
// The node at position j of the result has index id+1+j.
//
// The returned slice shares memory with the tree, like [Tree.All].
// An invalid id results in an empty slice.
func (t *Tree[K, V]) Descendants(id K) []Node[K, V] {
	i, ok := t.index(id)
	if !ok {
		return nil
	}
	end := i + 1 + t.nodes[i].descendants
	return t.nodes[i+1 : end : end]
}

// Release returns the tree's nodes to the caller
// and leaves the tree empty.
// The tree does not retain any reference to the returned slice.
func (t *Tree[K, V]) Release() []Node[K, V] {
	nodes := t.nodes
	t.nodes = nil
	t.stack = t.stack[:0]
	return nodes
}

// Clone returns a copy of t, including its open nodes.
// Values are copied as with assignment.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	return &Tree[K, V]{
		nodes: slices.Clone(t.nodes),
		stack: slices.Clone(t.stack),
	}
}

func (t *Tree[K, V]) String() string {
	var b strings.Builder
	b.WriteString("Tree{Nodes: [")
	for i := range t.nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.nodes[i].String())
	}
	fmt.Fprintf(&b, "], Stack: %v}", t.stack)
	return b.String()
}

// Equal reports whether a and b have equal nodes
// and the same open nodes.
// Two nil trees are equal; a nil tree is not equal to an empty one.
func Equal[K Index, V comparable](a, b *Tree[K, V]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return slices.Equal(a.nodes, b.nodes) && slices.Equal(a.stack, b.stack)
}
