package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/gordian-engine/flattree/goutline/goutlinehttp"
	"github.com/spf13/cobra"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve queries over the outline as JSON over HTTP",
		Long: `serve parses the outline once and serves it until interrupted.

Routes: /nodes, /roots, /nodes/{id}, and /nodes/{id}/children,
/nodes/{id}/parents, /nodes/{id}/descendants.

--listen takes a TCP address, or unix:/path/to/socket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, log, err := f.load(cmd)
			if err != nil {
				return err
			}

			network, addr := "tcp", listen
			if path, ok := strings.CutPrefix(listen, "unix:"); ok {
				network, addr = "unix", path
			}
			ln, err := net.Listen(network, addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}

			log.Info("Serving outline", "addr", ln.Addr().String(), "nodes", tree.Len())

			s := goutlinehttp.NewServer(cmd.Context(), log.With("sys", "http"), goutlinehttp.Config{
				Listener: ln,
				Tree:     tree,
			})
			s.Wait()
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8080", "address to listen on")

	return cmd
}
