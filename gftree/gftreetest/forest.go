package gftreetest

// ExampleForest builds a forest of 19 nodes in two trees,
// where every value equals the node's index:
//
//	0              15
//	├── 1          ├── 16
//	│   └── 2      │   └── 17
//	├── 3          └── 18
//	│   ├── 4
//	│   │   └── 5
//	│   └── 6
//	├── 7
//	│   ├── 8
//	│   │   ├── 9
//	│   │   └── 10
//	│   └── 11
//	│       ├── 12
//	│       └── 13
//	└── 14
//
// Construction is left open at node 18.
func ExampleForest() *Recorder[int] {
	r := NewRecorder[int]()

	r.Push(0)
	r.Push(1)
	r.Push(2)
	r.Up()
	r.Up()
	r.Push(3)
	r.Push(4)
	r.Push(5)
	r.Up()
	r.Up()
	r.Push(6)
	r.Up()
	r.Up()
	r.Push(7)
	r.Push(8)
	r.Push(9)
	r.Up()
	r.Push(10)
	r.Up()
	r.Up()
	r.Push(11)
	r.Push(12)
	r.Up()
	r.Push(13)
	r.Up()
	r.Up()
	r.Up()
	r.Push(14)
	r.Up()

	// Leaves the first tree entirely,
	// so the next push starts a second root.
	r.Up()

	r.Push(15)
	r.Push(16)
	r.Push(17)
	r.Up()
	r.Up()
	r.Push(18)

	return r
}

// ExampleForestDescendants is the descendant count
// of each node in [ExampleForest], by index.
var ExampleForestDescendants = []int{14, 1, 0, 3, 1, 0, 0, 6, 2, 0, 0, 2, 0, 0, 0, 3, 1, 0, 0}
