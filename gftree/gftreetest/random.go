package gftreetest

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	petname "github.com/dustinkirkland/golang-petname"
)

// NewRand returns a deterministic RNG for the given seed.
func NewRand(seed uint64) *rand.Rand {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	return rand.New(rand.NewChaCha8(s))
}

// Random pushes n nodes to r in a pseudorandom shape,
// never opening more than maxDepth nodes at once.
// Between pushes it sometimes moves up one or more levels,
// occasionally one more than the current depth,
// which exercises Up at the top level and produces forests.
//
// The value of the i'th pushed node is value(i).
func Random[V any](r *Recorder[V], rng *rand.Rand, n, maxDepth int, value func(i int) V) {
	if maxDepth < 1 {
		panic(fmt.Errorf("BUG: maxDepth must be positive: got %d", maxDepth))
	}

	for i := 0; i < n; {
		d := r.Depth()
		if d >= maxDepth || (d > 0 && rng.IntN(3) == 0) {
			for range 1 + rng.IntN(d+1) {
				r.Up()
			}
			continue
		}

		r.Push(value(i))
		i++
	}
}

// NamedForest returns a recorder holding n nodes in a random shape
// determined by seed, where each value is a generated pet name.
// The names themselves are not deterministic; only the shape is.
func NamedForest(seed uint64, n, maxDepth int) *Recorder[string] {
	r := NewRecorder[string]()
	Random(r, NewRand(seed), n, maxDepth, func(int) string {
		return petname.Generate(2, "-")
	})
	return r
}
