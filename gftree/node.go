package gftree

import "fmt"

// Index is the constraint for key types of a [Tree].
type Index interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// noParent is the stored parent of every root.
// It is never a valid slice index,
// so a non-root node cannot be mistaken for a root.
const noParent = -1

// Node is a single entry in a [Tree].
//
// Nodes are plain values: two nodes are equal (with ==, when V is comparable)
// if they have equal values, the same parent and the same descendant count.
type Node[K Index, V any] struct {
	// Value is the caller's payload.
	// It is the only part of a Node that may change after it is pushed.
	Value V

	parent      int
	descendants int
}

// Parent returns the index of the node's parent.
// The ok value is false if the node is a root.
func (n Node[K, V]) Parent() (id K, ok bool) {
	if n.parent == noParent {
		return 0, false
	}
	return K(n.parent), true
}

// IsRoot reports whether the node has no parent.
// A tree may contain more than one root.
func (n Node[K, V]) IsRoot() bool {
	return n.parent == noParent
}

// NumDescendants returns the number of nodes below this node,
// at any depth, not counting the node itself.
func (n Node[K, V]) NumDescendants() int {
	return n.descendants
}

func (n Node[K, V]) String() string {
	if n.parent == noParent {
		return fmt.Sprintf("Node{Value: %v, Parent: root, Descendants: %d}", n.Value, n.descendants)
	}
	return fmt.Sprintf("Node{Value: %v, Parent: %d, Descendants: %d}", n.Value, n.parent, n.descendants)
}
