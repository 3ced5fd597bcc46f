package gftree

import "iter"

// Parents returns an iterator over the ancestors of id,
// starting with its parent and ending with the root of its tree.
// The node at id itself is not included.
//
// An invalid id, or the id of a root, results in an empty sequence.
// Each call to the returned function starts a new walk.
func (t *Tree[K, V]) Parents(id K) iter.Seq2[K, *Node[K, V]] {
	return func(yield func(K, *Node[K, V]) bool) {
		i, ok := t.index(id)
		if !ok {
			return
		}

		for {
			p := t.nodes[i].parent
			if p == noParent {
				return
			}
			i = p
			if !yield(K(i), &t.nodes[i]) {
				return
			}
		}
	}
}

// Children returns an iterator over the immediate children of id,
// in the order they were pushed.
//
// Rather than visiting every descendant,
// the iterator jumps from each child over that child's whole subtree,
// so it runs in time proportional to the number of children.
//
// An invalid id results in an empty sequence.
func (t *Tree[K, V]) Children(id K) iter.Seq2[K, *Node[K, V]] {
	return func(yield func(K, *Node[K, V]) bool) {
		i, ok := t.index(id)
		if !ok {
			return
		}
		t.siblings(i+1, i+1+t.nodes[i].descendants, yield)
	}
}

// DescendantNodes returns an iterator over every node below id
// and its index, in pre-order.
// It visits the same nodes as [Tree.Descendants].
func (t *Tree[K, V]) DescendantNodes(id K) iter.Seq2[K, *Node[K, V]] {
	return func(yield func(K, *Node[K, V]) bool) {
		i, ok := t.index(id)
		if !ok {
			return
		}
		for c := i + 1; c <= i+t.nodes[i].descendants; c++ {
			if !yield(K(c), &t.nodes[c]) {
				return
			}
		}
	}
}

// Roots returns an iterator over the root of every tree in the forest,
// in the order they were pushed.
func (t *Tree[K, V]) Roots() iter.Seq2[K, *Node[K, V]] {
	return func(yield func(K, *Node[K, V]) bool) {
		t.siblings(0, len(t.nodes), yield)
	}
}

// siblings yields the nodes in [start, end) that head their own subtree
// within that range, jumping over each subtree.
func (t *Tree[K, V]) siblings(start, end int, yield func(K, *Node[K, V]) bool) {
	for c := start; c < end; c += 1 + t.nodes[c].descendants {
		if !yield(K(c), &t.nodes[c]) {
			return
		}
	}
}

// Nodes returns an iterator over every node and its index, in pre-order.
func (t *Tree[K, V]) Nodes() iter.Seq2[K, *Node[K, V]] {
	return func(yield func(K, *Node[K, V]) bool) {
		for i := range t.nodes {
			if !yield(K(i), &t.nodes[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over every node's value, in pre-order.
func (t *Tree[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := range t.nodes {
			if !yield(t.nodes[i].Value) {
				return
			}
		}
	}
}

// Level returns the number of ancestors of id:
// zero for a root, and -1 if id is invalid.
func (t *Tree[K, V]) Level(id K) int {
	if _, ok := t.index(id); !ok {
		return -1
	}
	n := 0
	for range t.Parents(id) {
		n++
	}
	return n
}
