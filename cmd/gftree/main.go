// Command gftree parses indented outlines into a flattened tree
// and answers structural queries about them.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gordian-engine/flattree/goutline"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

type rootFlags struct {
	tabWidth int
	strict   bool
	logLevel string
}

func NewRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "gftree",
		Short: "Query the structure of indented outlines",
		Long: `gftree reads an outline, where each non-blank line is a node
and indentation expresses nesting, and answers questions about its shape.

Commands that take an outline read it from the file named by --file,
or from standard input if --file is "-" or unset.`,

		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.IntVar(&f.tabWidth, "tab-width", goutline.DefaultTabWidth, "columns per tab character")
	pf.BoolVar(&f.strict, "strict", false, "reject outlines whose first line is indented")
	pf.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.String("file", "-", "outline file to read")

	cmd.AddCommand(
		newDumpCmd(&f),
		newChildrenCmd(&f),
		newParentsCmd(&f),
		newDescendantsCmd(&f),
		newRootsCmd(&f),
		newCheckCmd(&f),
		newGenCmd(&f),
		newServeCmd(&f),
	)

	return cmd
}

// logger returns a text logger writing to the command's error stream.
func (f *rootFlags) logger(cmd *cobra.Command) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

// load parses the outline selected by the --file flag.
func (f *rootFlags) load(cmd *cobra.Command) (*goutline.Tree, *slog.Logger, error) {
	log, err := f.logger(cmd)
	if err != nil {
		return nil, nil, err
	}

	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, nil, err
	}

	var r io.Reader
	if path == "" || path == "-" {
		r = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open outline: %w", err)
		}
		defer file.Close()
		r = file
	}

	tree, err := goutline.Parse(cmd.Context(), r, goutline.Options{
		Log:      log.With("sys", "outline"),
		TabWidth: f.tabWidth,
		Strict:   f.strict,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("parse outline %q: %w", path, err)
	}
	return tree, log, nil
}
