package gftreetest

import (
	"fmt"

	"github.com/gordian-engine/flattree/gftree"
)

// Fanout describes a complete tree in which every non-leaf node
// has exactly Width children and every leaf is in the last of Layers layers.
//
// Methods on Fanout refer to nodes by breadth-first number.
// With Width=3 and Layers=3 the numbering is:
//
//	0 (L0)
//	1 2 3 (L1)
//	4 5 6 7 8 9 10 11 12 (L2)
//
// A [gftree.Tree] stores nodes depth-first,
// so [Fanout.Build] pushes them in an order different from their numbering.
// That makes Fanout a useful independent reference for parent and child lookups.
type Fanout struct {
	Width  int
	Layers int
}

func (f Fanout) validate() {
	if f.Width < 1 || f.Layers < 1 {
		panic(fmt.Errorf("BUG: Fanout width and layers must be positive: got %d and %d", f.Width, f.Layers))
	}
}

// layerStart returns the breadth-first number of the first node in layer l.
func (f Fanout) layerStart(l int) int {
	start, width := 0, 1
	for range l {
		start += width
		width *= f.Width
	}
	return start
}

// Size returns the number of nodes in the tree.
func (f Fanout) Size() int {
	f.validate()
	return f.layerStart(f.Layers)
}

// Layer returns the layer containing node n.
func (f Fanout) Layer(n int) int {
	layer, end, width := 0, 1, 1
	for n >= end {
		layer++
		width *= f.Width
		end += width
	}
	return layer
}

// Parent returns the parent of node n, or -1 for node 0.
func (f Fanout) Parent(n int) int {
	if n == 0 {
		return -1
	}
	l := f.Layer(n)
	offset := n - f.layerStart(l)
	return f.layerStart(l-1) + offset/f.Width
}

// FirstChild returns the first child of node n.
// It is the caller's responsibility to ensure n is not in the last layer.
func (f Fanout) FirstChild(n int) int {
	l := f.Layer(n)
	offset := n - f.layerStart(l)
	return f.layerStart(l+1) + offset*f.Width
}

// builder is satisfied by both [*Recorder] and [*gftree.Tree].
type builder interface {
	Push(int) NodeID
	Up() (NodeID, bool)
}

// Build pushes every node of the tree to r, depth-first,
// with each node's breadth-first number as its value.
// The recorder is left at the same depth it started at.
func (f Fanout) Build(r *Recorder[int]) {
	f.validate()
	f.build(r, 0, 0)
}

// Tree returns a new tree built as [Fanout.Build] would,
// without the cost of a [Recorder] model.
func (f Fanout) Tree() *gftree.Tree[NodeID, int] {
	f.validate()
	t := gftree.NewWithCapacity[NodeID, int](f.Size())
	f.build(t, 0, 0)
	return t
}

func (f Fanout) build(b builder, n, layer int) {
	b.Push(n)
	if layer+1 < f.Layers {
		first := f.FirstChild(n)
		for c := first; c < first+f.Width; c++ {
			f.build(b, c, layer+1)
		}
	}
	b.Up()
}
