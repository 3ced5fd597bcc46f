package gftree

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ErrMalformed is the error wrapped by every [*CheckError].
var ErrMalformed = errors.New("malformed tree")

// CheckError describes the first node found to break
// the pre-order layout of a tree.
type CheckError struct {
	Index  int
	Reason string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("node %d: %s", e.Index, e.Reason)
}

func (e *CheckError) Unwrap() error {
	return ErrMalformed
}

// Check verifies that the tree's nodes form a valid pre-order forest:
// the roots' subtrees tile the whole tree,
// each child's subtree lies within its parent's subtree,
// and each node reached as a child of p records p as its parent.
//
// A tree built only with Push and Up always passes.
// Check is mainly useful for node slices assembled by other means;
// see [Adopt].
func (t *Tree[K, V]) Check() error {
	return checkNodes(t.nodes)
}

// Adopt returns a tree that owns nodes,
// typically a slice obtained from [Tree.Release],
// after verifying it as [Tree.Check] does.
// The returned tree has no open nodes,
// so its next Push starts a new root.
func Adopt[K Index, V any](nodes []Node[K, V]) (*Tree[K, V], error) {
	if err := checkNodes(nodes); err != nil {
		return nil, fmt.Errorf("cannot adopt nodes: %w", err)
	}
	return &Tree[K, V]{nodes: nodes}, nil
}

func checkNodes[K Index, V any](nodes []Node[K, V]) error {
	n := len(nodes)

	// Every node must be reached exactly once
	// by jumping through roots and then children.
	seen := bitset.New(uint(n))

	// Pending subtree heads to expand.
	var pending []int

	for i := 0; i < n; {
		if !nodes[i].IsRoot() {
			return &CheckError{Index: i, Reason: fmt.Sprintf("expected a root, found parent %d", nodes[i].parent)}
		}
		end, err := blockEnd(nodes, i, n)
		if err != nil {
			return err
		}
		seen.Set(uint(i))
		pending = append(pending, i)
		i = end
	}

	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		limit := p + 1 + nodes[p].descendants
		for c := p + 1; c < limit; {
			if nodes[c].parent != p {
				return &CheckError{
					Index:  c,
					Reason: fmt.Sprintf("expected parent %d, found %s", p, parentString(nodes[c].parent)),
				}
			}
			end, err := blockEnd(nodes, c, limit)
			if err != nil {
				return err
			}
			if seen.Test(uint(c)) {
				return &CheckError{Index: c, Reason: "reached more than once"}
			}
			seen.Set(uint(c))
			pending = append(pending, c)
			c = end
		}
	}

	if got := seen.Count(); got != uint(n) {
		i, _ := seen.NextClear(0)
		return &CheckError{
			Index:  int(i),
			Reason: fmt.Sprintf("unreachable (%d of %d nodes reachable)", got, n),
		}
	}

	return nil
}

// blockEnd returns the index just past the subtree of the node at i,
// confirming that the subtree ends no later than limit.
func blockEnd[K Index, V any](nodes []Node[K, V], i, limit int) (int, error) {
	d := nodes[i].descendants
	if d < 0 {
		return 0, &CheckError{Index: i, Reason: fmt.Sprintf("negative descendant count %d", d)}
	}
	end := i + 1 + d
	if end > limit {
		return 0, &CheckError{
			Index:  i,
			Reason: fmt.Sprintf("%d descendants overrun the enclosing subtree ending at %d", d, limit),
		}
	}
	return end, nil
}

func parentString(p int) string {
	if p == noParent {
		return "root"
	}
	return fmt.Sprint(p)
}
