package main

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gordian-engine/flattree/gftree"
	"github.com/gordian-engine/flattree/goutline"
	"github.com/spf13/cobra"
)

type node = gftree.Node[goutline.LineID, goutline.Line]

func newDumpCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every node with its parent and descendant count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, _, err := f.load(cmd)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPARENT\tDESC\tLINE\tTEXT")
			for id, n := range tree.Nodes() {
				parent := "-"
				if p, ok := n.Parent(); ok {
					parent = strconv.Itoa(int(p))
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s%s\n",
					id, parent, n.NumDescendants(), n.Value.Number,
					strings.Repeat("  ", tree.Level(id)), n.Value.Text,
				)
			}
			return tw.Flush()
		},
	}
}

// newIDQueryCmd returns a command that prints the nodes
// produced by query for the node ID given as the only argument.
func newIDQueryCmd(
	f *rootFlags,
	use, short string,
	query func(t *goutline.Tree, id goutline.LineID) iter.Seq2[goutline.LineID, *node],
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid node ID %q: %w", args[0], err)
			}

			tree, _, err := f.load(cmd)
			if err != nil {
				return err
			}

			id := goutline.LineID(n)
			if tree.Get(id) == nil {
				return fmt.Errorf("no node with ID %d (outline has %d nodes)", n, tree.Len())
			}

			return printNodes(cmd.OutOrStdout(), query(tree, id))
		},
	}
}

func newChildrenCmd(f *rootFlags) *cobra.Command {
	return newIDQueryCmd(f, "children", "Print the immediate children of a node",
		(*goutline.Tree).Children)
}

func newParentsCmd(f *rootFlags) *cobra.Command {
	return newIDQueryCmd(f, "parents", "Print the ancestors of a node, nearest first",
		(*goutline.Tree).Parents)
}

func newDescendantsCmd(f *rootFlags) *cobra.Command {
	return newIDQueryCmd(f, "descendants", "Print every node below a node, in outline order",
		(*goutline.Tree).DescendantNodes)
}

func newRootsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "Print the top-level nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, _, err := f.load(cmd)
			if err != nil {
				return err
			}
			return printNodes(cmd.OutOrStdout(), tree.Roots())
		},
	}
}

func newCheckCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the structure of the parsed outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, log, err := f.load(cmd)
			if err != nil {
				return err
			}
			if err := tree.Check(); err != nil {
				return err
			}

			roots := 0
			for range tree.Roots() {
				roots++
			}
			log.Debug("Check passed", "nodes", tree.Len())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d nodes in %d trees\n", tree.Len(), roots)
			return err
		},
	}
}

func printNodes(w io.Writer, seq iter.Seq2[goutline.LineID, *node]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for id, n := range seq {
		fmt.Fprintf(tw, "%d\t%s\n", id, n.Value.Text)
	}
	return tw.Flush()
}
