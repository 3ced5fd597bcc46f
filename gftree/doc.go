// Package gftree (Gordian Flattened TREE) contains [Tree],
// a generic tree whose nodes live in a single slice in pre-order.
//
// A Tree is built once with a streaming cursor protocol:
// [Tree.Push] appends a child of the current node and makes it current,
// and [Tree.Up] moves the cursor back to the current node's parent.
// This suits parsers of nested input, where the caller only knows
// "open a new scope" and "close the current scope".
//
// Every node records its parent index and the number of its descendants.
// Because nodes are stored depth-first,
// the descendants of a node at index i are exactly the contiguous range
// [i+1, i+1+NumDescendants()), and the immediate children of a node
// can be enumerated by jumping over each child's whole subtree.
// No node holds a pointer to another node.
//
// The key type K is chosen by the caller, typically a named integer type
// such as
//
//	type LineID int
//
// so that indices from unrelated trees cannot be mixed by accident.
// K is converted to and from the slice index with plain integer conversions,
// so K must be wide enough to hold the index of every node in the tree.
//
// Lookups and traversals are tolerant of invalid indices:
// they return nil or an empty sequence rather than panicking.
//
// A Tree has no internal synchronization.
// Concurrent reads are safe once construction is finished,
// but pointers, slices and iterators obtained from a Tree
// must not be used across a call to [Tree.Push], [Tree.Reset] or [Tree.Release].
package gftree
