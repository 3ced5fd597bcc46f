package gftreetest

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/flattree/gftree"
)

// NodeID is the key type used by trees built in this package.
type NodeID int

// Recorder forwards Push and Up calls to a [gftree.Tree]
// while maintaining an independent, brute-force model of the same forest.
// The model is used by [RequireConsistent] to check the tree's answers.
type Recorder[V any] struct {
	Tree *gftree.Tree[NodeID, V]

	// Values in the order they were pushed.
	Values []V

	// Model state.
	stack   []int
	parents []int // -1 for roots.

	// under[i] has bit j set if i was open when j was pushed.
	under []*bitset.BitSet
}

// NewRecorder returns a Recorder wrapping a new, empty tree.
func NewRecorder[V any]() *Recorder[V] {
	return &Recorder[V]{
		Tree: gftree.New[NodeID, V](),
	}
}

// Push pushes v to the tree and the model,
// returning the id assigned by the tree.
func (r *Recorder[V]) Push(v V) NodeID {
	id := len(r.parents)

	parent := -1
	if len(r.stack) > 0 {
		parent = r.stack[len(r.stack)-1]
	}
	r.parents = append(r.parents, parent)
	for _, a := range r.stack {
		r.under[a].Set(uint(id))
	}
	r.under = append(r.under, new(bitset.BitSet))
	r.stack = append(r.stack, id)
	r.Values = append(r.Values, v)

	return r.Tree.Push(v)
}

// Up calls Up on the tree and the model,
// returning the tree's result.
func (r *Recorder[V]) Up() (NodeID, bool) {
	if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	return r.Tree.Up()
}

// Len returns the number of nodes pushed so far.
func (r *Recorder[V]) Len() int {
	return len(r.parents)
}

// Current returns the model's current node, or -1 at the top level.
func (r *Recorder[V]) Current() int {
	if len(r.stack) == 0 {
		return -1
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the model's number of open nodes.
func (r *Recorder[V]) Depth() int {
	return len(r.stack)
}

// Parent returns the model parent of id, or -1 for a root.
func (r *Recorder[V]) Parent(id int) int {
	return r.parents[id]
}

// NumDescendants returns the number of nodes pushed while id was open.
func (r *Recorder[V]) NumDescendants(id int) int {
	return int(r.under[id].Count())
}

// Ancestors returns the model ancestors of id, nearest first.
// The result is never nil, to simplify comparisons.
func (r *Recorder[V]) Ancestors(id int) []int {
	out := []int{}
	for p := r.parents[id]; p != -1; p = r.parents[p] {
		out = append(out, p)
	}
	return out
}

// Children returns the model children of id, in push order.
// A negative id returns the roots.
func (r *Recorder[V]) Children(id int) []int {
	if id < 0 {
		id = -1
	}
	out := []int{}
	for j, p := range r.parents {
		if p == id {
			out = append(out, j)
		}
	}
	return out
}

// Roots returns the model roots, in push order.
func (r *Recorder[V]) Roots() []int {
	return r.Children(-1)
}

// DescendantIDs returns the ids of every node pushed while id was open.
func (r *Recorder[V]) DescendantIDs(id int) []int {
	out := make([]int, 0, r.under[id].Count())
	for j, ok := r.under[id].NextSet(0); ok; j, ok = r.under[id].NextSet(j + 1) {
		out = append(out, int(j))
	}
	return out
}
