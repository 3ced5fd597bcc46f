package gftreetest

import (
	"iter"
	"testing"

	"github.com/gordian-engine/flattree/gftree"
	"github.com/stretchr/testify/require"
)

// IDs collects the keys of seq into a slice.
// The result is never nil, to simplify comparisons.
func IDs[V any](seq iter.Seq2[NodeID, *gftree.Node[NodeID, V]]) []int {
	out := []int{}
	for id := range seq {
		out = append(out, int(id))
	}
	return out
}

// NodeValues collects the node values of seq into a slice.
func NodeValues[V any](seq iter.Seq2[NodeID, *gftree.Node[NodeID, V]]) []V {
	out := []V{}
	for _, n := range seq {
		out = append(out, n.Value)
	}
	return out
}

// RequireConsistent asserts that every answer from r.Tree
// matches r's brute-force model:
// push order, parents, descendant counts, ancestor walks,
// children and roots, descendant slices,
// the cursor position, tolerance of invalid ids, and [gftree.Tree.Check].
func RequireConsistent[V any](t *testing.T, r *Recorder[V]) {
	t.Helper()

	tree := r.Tree
	n := r.Len()

	require.Equal(t, n, tree.Len())
	require.Equal(t, n == 0, tree.IsEmpty())
	require.NoError(t, tree.Check())

	vals := []V{}
	for v := range tree.Values() {
		vals = append(vals, v)
	}
	wantVals := r.Values
	if wantVals == nil {
		wantVals = []V{}
	}
	require.Equal(t, wantVals, vals, "values must be in push order")

	for i := range n {
		id := NodeID(i)
		node := tree.Get(id)
		require.NotNil(t, node)

		p, ok := node.Parent()
		if want := r.Parent(i); want == -1 {
			require.False(t, ok, "node %d should be a root", i)
			require.True(t, node.IsRoot())
		} else {
			require.True(t, ok, "node %d should not be a root", i)
			require.Equal(t, want, int(p), "parent of node %d", i)
		}

		require.Equal(t, r.NumDescendants(i), node.NumDescendants(), "descendants of node %d", i)

		require.Equal(t, r.Ancestors(i), IDs(tree.Parents(id)), "ancestors of node %d", i)
		require.Equal(t, len(r.Ancestors(i)), tree.Level(id))

		wantChildren := r.Children(i)
		require.Equal(t, wantChildren, IDs(tree.Children(id)), "children of node %d", i)

		// Filtering the descendants by parent must agree with the jump.
		filtered := []int{}
		for j, d := range tree.Descendants(id) {
			if dp, ok := d.Parent(); ok && int(dp) == i {
				filtered = append(filtered, i+1+j)
			}
		}
		require.Equal(t, wantChildren, filtered, "filtered descendants of node %d", i)

		wantDesc := r.DescendantIDs(i)
		desc := tree.Descendants(id)
		require.Len(t, desc, len(wantDesc))
		for j, d := range wantDesc {
			require.Equal(t, i+1+j, d, "descendants of node %d must be contiguous", i)
			require.Equal(t, r.Values[d], desc[j].Value)
		}
		require.Equal(t, wantDesc, IDs(tree.DescendantNodes(id)), "descendant nodes of node %d", i)
	}

	require.Equal(t, r.Roots(), IDs(tree.Roots()))

	cur, ok := tree.Current()
	if want := r.Current(); want == -1 {
		require.False(t, ok)
	} else {
		require.True(t, ok)
		require.Equal(t, want, int(cur))
	}
	require.Equal(t, r.Depth(), tree.Depth())

	requireInvalidIDTolerated(t, tree, NodeID(n))
	requireInvalidIDTolerated(t, tree, NodeID(n+100))
	requireInvalidIDTolerated(t, tree, NodeID(-1))
}

func requireInvalidIDTolerated[V any](t *testing.T, tree *gftree.Tree[NodeID, V], id NodeID) {
	t.Helper()

	require.Nil(t, tree.Get(id))
	require.Empty(t, tree.Descendants(id))
	require.Empty(t, IDs(tree.Parents(id)))
	require.Empty(t, IDs(tree.Children(id)))
	require.Empty(t, IDs(tree.DescendantNodes(id)))
	require.Equal(t, -1, tree.Level(id))
}
