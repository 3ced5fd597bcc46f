package gftree_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/gordian-engine/flattree/gftree"
	"github.com/gordian-engine/flattree/gftree/gftreetest"
	"github.com/stretchr/testify/require"
)

func TestTree_exampleForest(t *testing.T) {
	t.Parallel()

	r := gftreetest.ExampleForest()
	tree := r.Tree

	require.Equal(t, 19, tree.Len())
	require.Equal(t, 18, tree.Get(18).Value)
	require.Nil(t, tree.Get(19))

	want := make([]int, 19)
	for i := range want {
		want[i] = i
	}
	require.Equal(t, want, slices.Collect(tree.Values()))

	var counts []int
	for _, n := range tree.Nodes() {
		counts = append(counts, n.NumDescendants())
	}
	require.Equal(t, gftreetest.ExampleForestDescendants, counts)

	gftreetest.RequireConsistent(t, r)
}

func TestTree_Parents(t *testing.T) {
	t.Parallel()

	tree := gftreetest.ExampleForest().Tree

	for _, tc := range []struct {
		id   gftreetest.NodeID
		want []int
	}{
		{0, []int{}},
		{1, []int{0}},
		{2, []int{1, 0}},
		{5, []int{4, 3, 0}},
		{10, []int{8, 7, 0}},
		{12, []int{11, 7, 0}},
		{14, []int{0}},
		{15, []int{}},
		{17, []int{16, 15}},
		{18, []int{15}},
		{19, []int{}},
	} {
		require.Equal(t, tc.want, gftreetest.NodeValues(tree.Parents(tc.id)), "parents of %d", tc.id)
	}
}

func TestTree_Children(t *testing.T) {
	t.Parallel()

	tree := gftreetest.ExampleForest().Tree

	for _, tc := range []struct {
		id   gftreetest.NodeID
		want []int
	}{
		{0, []int{1, 3, 7, 14}},
		{1, []int{2}},
		{2, []int{}},
		{3, []int{4, 6}},
		{7, []int{8, 11}},
		{8, []int{9, 10}},
		{11, []int{12, 13}},
		{14, []int{}},
		{15, []int{16, 18}},
		{16, []int{17}},
		{18, []int{}},
		{19, []int{}},
	} {
		require.Equal(t, tc.want, gftreetest.NodeValues(tree.Children(tc.id)), "children of %d", tc.id)
	}
}

func TestTree_iteratorsStopEarly(t *testing.T) {
	t.Parallel()

	tree := gftreetest.ExampleForest().Tree

	var got []gftreetest.NodeID
	for id := range tree.Children(0) {
		got = append(got, id)
		if id == 3 {
			break
		}
	}
	require.Equal(t, []gftreetest.NodeID{1, 3}, got)

	got = got[:0]
	for id := range tree.Parents(12) {
		got = append(got, id)
		break
	}
	require.Equal(t, []gftreetest.NodeID{11}, got)

	got = got[:0]
	for id := range tree.Roots() {
		got = append(got, id)
		break
	}
	require.Equal(t, []gftreetest.NodeID{0}, got)

	// Sequences can be ranged over again from the start.
	children := tree.Children(7)
	require.Equal(t, []int{8, 11}, gftreetest.IDs(children))
	require.Equal(t, []int{8, 11}, gftreetest.IDs(children))
}

func TestTree_Descendants(t *testing.T) {
	t.Parallel()

	tree := gftreetest.ExampleForest().Tree

	var vals []int
	for _, n := range tree.Descendants(7) {
		vals = append(vals, n.Value)
	}
	require.Equal(t, []int{8, 9, 10, 11, 12, 13}, vals)
	require.Equal(t, []int{8, 9, 10, 11, 12, 13}, gftreetest.IDs(tree.DescendantNodes(7)))

	require.Empty(t, tree.Descendants(14))
	require.Empty(t, tree.Descendants(19))

	// Appending to the returned slice must not overwrite the tree.
	d := tree.Descendants(1)
	require.Len(t, d, 1)
	_ = append(d, gftree.Node[gftreetest.NodeID, int]{Value: -1})
	require.Equal(t, 3, tree.Get(3).Value)

	all := tree.All()
	require.Len(t, all, 19)
	_ = append(all, gftree.Node[gftreetest.NodeID, int]{Value: -1})
	require.Equal(t, 19, tree.Len())
}

func TestTree_FirstLast(t *testing.T) {
	t.Parallel()

	tree := gftreetest.ExampleForest().Tree
	require.Equal(t, 0, tree.First().Value)
	require.Equal(t, 18, tree.Last().Value)

	empty := gftree.New[gftreetest.NodeID, int]()
	require.Nil(t, empty.First())
	require.Nil(t, empty.Last())
	require.True(t, empty.IsEmpty())
	require.Empty(t, empty.All())
	require.Empty(t, gftreetest.IDs(empty.Roots()))
	require.NoError(t, empty.Check())
}

func TestTree_Up(t *testing.T) {
	t.Parallel()

	var tree gftree.Tree[gftreetest.NodeID, string]

	// Up on an empty tree is harmless.
	_, ok := tree.Up()
	require.False(t, ok)
	require.True(t, tree.IsEmpty())

	a := tree.Push("a")
	b := tree.Push("b")
	c := tree.Push("c")
	require.Equal(t, gftreetest.NodeID(2), c)
	require.Equal(t, 3, tree.Depth())

	cur, ok := tree.Current()
	require.True(t, ok)
	require.Equal(t, c, cur)

	cur, ok = tree.Up()
	require.True(t, ok)
	require.Equal(t, b, cur)

	cur, ok = tree.Up()
	require.True(t, ok)
	require.Equal(t, a, cur)

	_, ok = tree.Up()
	require.False(t, ok)
	require.Equal(t, 0, tree.Depth())

	_, ok = tree.Up()
	require.False(t, ok)

	// Past the top, the next push is a new root.
	d := tree.Push("d")
	require.True(t, tree.Get(d).IsRoot())
	require.Equal(t, []int{0, 3}, gftreetest.IDs(tree.Roots()))
	require.Equal(t, 2, tree.Get(a).NumDescendants())
	require.Equal(t, 0, tree.Get(d).NumDescendants())
}

func TestTree_GetMutatesValue(t *testing.T) {
	t.Parallel()

	tree := gftreetest.ExampleForest().Tree
	tree.Get(8).Value = 80
	tree.First().Value = 100
	tree.Last().Value = 180

	require.Equal(t, []int{80, 11}, gftreetest.NodeValues(tree.Children(7)))
	require.Equal(t, []int{11, 7, 100}, gftreetest.NodeValues(tree.Parents(12)))
	require.Equal(t, []int{16, 180}, gftreetest.NodeValues(tree.Children(15)))
}

func TestTree_Level(t *testing.T) {
	t.Parallel()

	tree := gftreetest.ExampleForest().Tree
	require.Equal(t, 0, tree.Level(0))
	require.Equal(t, 3, tree.Level(5))
	require.Equal(t, 0, tree.Level(15))
	require.Equal(t, 2, tree.Level(17))
	require.Equal(t, -1, tree.Level(19))
}

func TestTree_unsignedKeys(t *testing.T) {
	t.Parallel()

	type id uint32

	tree := gftree.NewWithCapacity[id, string](4)
	tree.Push("root")
	tree.Push("child")

	require.Nil(t, tree.Get(^id(0)))
	require.Empty(t, tree.Descendants(^id(0)))

	p, ok := tree.Get(1).Parent()
	require.True(t, ok)
	require.Equal(t, id(0), p)
}

func TestTree_ResetRelease(t *testing.T) {
	t.Parallel()

	tree := gftreetest.ExampleForest().Tree
	tree.Reset()
	require.True(t, tree.IsEmpty())
	require.Equal(t, 0, tree.Depth())

	root := tree.Push(1)
	require.Equal(t, gftreetest.NodeID(0), root)
	require.True(t, tree.Get(root).IsRoot())

	tree = gftreetest.ExampleForest().Tree
	nodes := tree.Release()
	require.Len(t, nodes, 19)
	require.True(t, tree.IsEmpty())
	_, ok := tree.Current()
	require.False(t, ok)

	// Released nodes keep their structure.
	require.Equal(t, 14, nodes[0].NumDescendants())
	p, ok := nodes[12].Parent()
	require.True(t, ok)
	require.Equal(t, gftreetest.NodeID(11), p)

	// The tree does not share memory with the released slice.
	tree.Push(-1)
	require.Equal(t, 0, nodes[0].Value)
}

func TestAdopt(t *testing.T) {
	t.Parallel()

	nodes := gftreetest.ExampleForest().Tree.Release()
	nodes[3].Value = 33

	tree, err := gftree.Adopt(nodes)
	require.NoError(t, err)
	require.Equal(t, []int{4, 6}, gftreetest.IDs(tree.Children(3)))
	require.Equal(t, 33, tree.Get(3).Value)

	// Adopted trees have no open nodes.
	id := tree.Push(19)
	require.True(t, tree.Get(id).IsRoot())
	require.Equal(t, []int{0, 15, 19}, gftreetest.IDs(tree.Roots()))

	t.Run("rejects a descendant slice", func(t *testing.T) {
		t.Parallel()

		src := gftreetest.ExampleForest().Tree
		sub := slices.Clone(src.Descendants(7))
		_, err := gftree.Adopt(sub)
		require.ErrorIs(t, err, gftree.ErrMalformed)

		var ce *gftree.CheckError
		require.ErrorAs(t, err, &ce)
		require.Equal(t, 0, ce.Index)
	})

	t.Run("rejects concatenated trees", func(t *testing.T) {
		t.Parallel()

		a := gftreetest.ExampleForest().Tree.All()
		b := gftreetest.ExampleForest().Tree.All()

		// The first root of b is still a root, but the children of b
		// point back into a.
		_, err := gftree.Adopt(slices.Concat(a, b))
		require.ErrorIs(t, err, gftree.ErrMalformed)
	})
}

func TestTree_CloneEqual(t *testing.T) {
	t.Parallel()

	orig := gftreetest.ExampleForest().Tree
	clone := orig.Clone()
	require.True(t, gftree.Equal(orig, clone))

	clone.Get(5).Value = 50
	require.False(t, gftree.Equal(orig, clone))
	require.Equal(t, 5, orig.Get(5).Value)

	clone.Get(5).Value = 5
	require.True(t, gftree.Equal(orig, clone))

	// Open nodes are part of equality.
	clone.Up()
	require.False(t, gftree.Equal(orig, clone))

	require.True(t, gftree.Equal[gftreetest.NodeID, int](nil, nil))
	require.False(t, gftree.Equal(nil, orig))
}

func TestNode_equality(t *testing.T) {
	t.Parallel()

	a := gftreetest.ExampleForest().Tree
	b := gftreetest.ExampleForest().Tree

	require.True(t, *a.Get(9) == *b.Get(9))
	require.False(t, *a.Get(9) == *a.Get(10))

	// Position in the tree is not part of a node.
	b.Get(13).Value = 12
	require.True(t, *a.Get(12) == *b.Get(13))
}

func TestTree_String(t *testing.T) {
	t.Parallel()

	var tree gftree.Tree[gftreetest.NodeID, string]
	tree.Push("a")
	tree.Push("b")

	require.Equal(t, "Node{Value: a, Parent: root, Descendants: 1}", tree.Get(0).String())
	require.Equal(t, "Node{Value: b, Parent: 0, Descendants: 0}", tree.Get(1).String())
	require.Equal(t,
		"Tree{Nodes: [Node{Value: a, Parent: root, Descendants: 1}, Node{Value: b, Parent: 0, Descendants: 0}], Stack: [0 1]}",
		fmt.Sprint(&tree),
	)
}

func TestTree_fanout(t *testing.T) {
	for _, f := range []gftreetest.Fanout{
		{Width: 1, Layers: 1},
		{Width: 1, Layers: 6},
		{Width: 2, Layers: 5},
		{Width: 3, Layers: 4},
		{Width: 7, Layers: 3},
	} {
		t.Run(fmt.Sprintf("width=%d layers=%d", f.Width, f.Layers), func(t *testing.T) {
			t.Parallel()

			r := gftreetest.NewRecorder[int]()
			f.Build(r)
			require.Equal(t, f.Size(), r.Tree.Len())
			gftreetest.RequireConsistent(t, r)

			// Breadth-first numbering gives an independent answer
			// for the parent of every value.
			for id, n := range r.Tree.Nodes() {
				p, ok := n.Parent()
				if !ok {
					require.Equal(t, -1, f.Parent(n.Value))
					continue
				}
				require.Equal(t, f.Parent(n.Value), r.Tree.Get(p).Value, "parent of node %d", id)
			}

			// Non-leaves have Width children.
			for id, n := range r.Tree.Nodes() {
				kids := gftreetest.NodeValues(r.Tree.Children(id))
				if f.Layer(n.Value) == f.Layers-1 {
					require.Empty(t, kids)
					continue
				}
				first := f.FirstChild(n.Value)
				require.Len(t, kids, f.Width)
				require.Equal(t, first, kids[0])
				require.Equal(t, first+f.Width-1, kids[len(kids)-1])
			}
		})
	}
}

func TestTree_random(t *testing.T) {
	for seed := range uint64(20) {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			t.Parallel()

			r := gftreetest.NewRecorder[int]()
			gftreetest.Random(r, gftreetest.NewRand(seed), 200, 1+int(seed%8), func(i int) int { return i })
			gftreetest.RequireConsistent(t, r)
		})
	}

	t.Run("named", func(t *testing.T) {
		t.Parallel()

		r := gftreetest.NamedForest(42, 100, 5)
		gftreetest.RequireConsistent(t, r)
		for v := range r.Tree.Values() {
			require.NotEmpty(t, v)
		}
	})
}
