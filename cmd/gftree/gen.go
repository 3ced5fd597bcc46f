package main

import (
	"encoding/binary"
	"errors"
	"math/rand/v2"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gordian-engine/flattree/goutline"
	"github.com/spf13/cobra"
)

func newGenCmd(f *rootFlags) *cobra.Command {
	var (
		nodes    int
		maxDepth int
		seed     uint64
		indent   string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write a random outline of pet names",
		Long: `gen writes a random outline to standard output.
The shape depends only on --seed; the names are random on every run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if nodes < 0 {
				return errors.New("--nodes must not be negative")
			}
			if maxDepth < 1 {
				return errors.New("--max-depth must be positive")
			}

			log, err := f.logger(cmd)
			if err != nil {
				return err
			}

			tree := randomOutline(seed, nodes, maxDepth)
			log.Info("Generated outline", "nodes", tree.Len(), "seed", seed)

			return goutline.Write(cmd.OutOrStdout(), tree, indent)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&nodes, "nodes", 20, "number of lines to generate")
	fl.IntVar(&maxDepth, "max-depth", 4, "maximum nesting depth")
	fl.Uint64Var(&seed, "seed", 1, "seed for the outline shape")
	fl.StringVar(&indent, "indent", "  ", "indentation for each level")

	return cmd
}

// randomOutline builds a tree of n nodes,
// moving up between pushes with probability one third.
func randomOutline(seed uint64, n, maxDepth int) *goutline.Tree {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	rng := rand.New(rand.NewChaCha8(s))

	tree := new(goutline.Tree)
	for i := 0; i < n; {
		d := tree.Depth()
		if d >= maxDepth || (d > 0 && rng.IntN(3) == 0) {
			for range 1 + rng.IntN(d) {
				tree.Up()
			}
			continue
		}

		tree.Push(goutline.Line{Text: petname.Generate(2, "-"), Number: i + 1})
		i++
	}
	return tree
}
