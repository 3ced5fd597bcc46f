// Package goutlinehttp serves read-only JSON queries over a parsed outline.
package goutlinehttp

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gordian-engine/flattree/gftree"
	"github.com/gordian-engine/flattree/goutline"
	"github.com/gorilla/mux"
)

type Server struct {
	done chan struct{}
}

type Config struct {
	Listener net.Listener

	// The tree must be fully built before the server starts,
	// and must not be modified while it is running.
	Tree *goutline.Tree
}

// NodeJSON is the representation of a single node in every response.
type NodeJSON struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Line        int    `json:"line"`
	Parent      *int   `json:"parent"`
	Descendants int    `json:"descendants"`
}

// NewServer starts serving cfg.Tree on cfg.Listener
// until ctx is cancelled.
func NewServer(ctx context.Context, log *slog.Logger, cfg Config) *Server {
	srv := &http.Server{
		Handler: newMux(log, cfg),

		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s := &Server{
		done: make(chan struct{}),
	}
	go s.serve(log, cfg.Listener, srv)
	go s.waitForShutdown(ctx, srv)

	return s
}

// Wait blocks until the server has stopped.
func (s *Server) Wait() {
	<-s.done
}

func (s *Server) waitForShutdown(ctx context.Context, srv *http.Server) {
	select {
	case <-s.done:
		// s.serve returned on its own, nothing left to do here.
		return
	case <-ctx.Done():
		_ = srv.Close()
	}
}

func (s *Server) serve(log *slog.Logger, ln net.Listener, srv *http.Server) {
	defer close(s.done)

	if err := srv.Serve(ln); err != nil {
		if errors.Is(err, net.ErrClosed) || errors.Is(err, http.ErrServerClosed) {
			log.Info("HTTP server shutting down")
		} else {
			log.Info("HTTP server shutting down due to error", "err", err)
		}
	}
}

func newMux(log *slog.Logger, cfg Config) http.Handler {
	r := mux.NewRouter()
	t := cfg.Tree

	r.HandleFunc("/nodes", handleSeq(log, func(*http.Request) (iter.Seq2[goutline.LineID, *node], int) {
		return t.Nodes(), 0
	})).Methods("GET")
	r.HandleFunc("/roots", handleSeq(log, func(*http.Request) (iter.Seq2[goutline.LineID, *node], int) {
		return t.Roots(), 0
	})).Methods("GET")

	r.HandleFunc("/nodes/{id}", handleNode(log, t)).Methods("GET")
	r.HandleFunc("/nodes/{id}/children", handleSeq(log, withID(t, t.Children))).Methods("GET")
	r.HandleFunc("/nodes/{id}/parents", handleSeq(log, withID(t, t.Parents))).Methods("GET")
	r.HandleFunc("/nodes/{id}/descendants", handleSeq(log, withID(t, t.DescendantNodes))).Methods("GET")

	return r
}

type node = gftree.Node[goutline.LineID, goutline.Line]

// seqFunc resolves a request to the nodes to return,
// or to an HTTP status code on failure.
type seqFunc func(*http.Request) (iter.Seq2[goutline.LineID, *node], int)

func withID(
	t *goutline.Tree, f func(goutline.LineID) iter.Seq2[goutline.LineID, *node],
) seqFunc {
	return func(req *http.Request) (iter.Seq2[goutline.LineID, *node], int) {
		id, status := parseID(t, req)
		if status != 0 {
			return nil, status
		}
		return f(id), 0
	}
}

func parseID(t *goutline.Tree, req *http.Request) (goutline.LineID, int) {
	n, err := strconv.Atoi(mux.Vars(req)["id"])
	if err != nil {
		return 0, http.StatusBadRequest
	}
	id := goutline.LineID(n)
	if t.Get(id) == nil {
		return 0, http.StatusNotFound
	}
	return id, 0
}

func handleNode(log *slog.Logger, t *goutline.Tree) func(w http.ResponseWriter, req *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		id, status := parseID(t, req)
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}

		writeJSON(log, w, toJSON(id, t.Get(id)))
	}
}

func handleSeq(log *slog.Logger, f seqFunc) func(w http.ResponseWriter, req *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		seq, status := f(req)
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}

		out := []NodeJSON{}
		for id, n := range seq {
			out = append(out, toJSON(id, n))
		}
		writeJSON(log, w, out)
	}
}

func toJSON(id goutline.LineID, n *node) NodeJSON {
	j := NodeJSON{
		ID:          int(id),
		Text:        n.Value.Text,
		Line:        n.Value.Number,
		Descendants: n.NumDescendants(),
	}
	if p, ok := n.Parent(); ok {
		pi := int(p)
		j.Parent = &pi
	}
	return j
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Failed to marshal response", "err", err)
	}
}
