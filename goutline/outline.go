// Package goutline parses indented text outlines into a [gftree.Tree].
//
// Each non-blank line of an outline is one node.
// A line indented further than the line before it is a child of that line;
// a line at the same indentation is a sibling;
// a line indented less closes scopes until it reaches a line
// at the same indentation, and becomes that line's sibling.
// A line at the outermost indentation starts a new root,
// so a single outline may hold a forest.
//
// Parsing is a single streaming pass that only calls Push and Up,
// so no node is revisited after it is read.
package goutline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gordian-engine/flattree/gftree"
)

// LineID identifies a node in a parsed outline.
type LineID int

// Line is the value of each node in a parsed outline.
type Line struct {
	// The line's content without indentation or trailing whitespace.
	Text string

	// 1-based line number in the input.
	Number int

	// Indentation width in columns, with tabs expanded.
	Indent int
}

// Tree is the type produced by [Parse].
type Tree = gftree.Tree[LineID, Line]

var (
	// ErrInconsistentIndent is returned when a line is indented less than
	// the line before it, but not to the indentation of any open scope.
	ErrInconsistentIndent = errors.New("indentation does not match any enclosing line")

	// ErrFirstLineIndented is returned in strict mode
	// when the first non-blank line is indented.
	ErrFirstLineIndented = errors.New("first line is indented")
)

// DefaultTabWidth is the tab width used when [Options.TabWidth] is zero.
const DefaultTabWidth = 4

// maxLineBytes bounds the length of a single input line.
const maxLineBytes = 1 << 20

// checkEvery is how many lines Parse reads between context checks.
const checkEvery = 1024

// Options configures [Parse].
// The zero value is ready for use.
type Options struct {
	// Debug-level records are emitted for every scope change.
	// Defaults to discarding all records.
	Log *slog.Logger

	// Columns per tab character.
	TabWidth int

	// Reject outlines whose first line is indented.
	Strict bool
}

// Parse reads an outline from r.
// Every scope is closed in the returned tree,
// so a later Push on it starts a new root.
func Parse(ctx context.Context, r io.Reader, opts Options) (*Tree, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	tree := gftree.New[LineID, Line]()

	// Indentation of each open node, parallel to the tree's open nodes.
	var widths []int

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for s.Scan() {
		lineNum++
		if lineNum%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("parse interrupted at line %d: %w", lineNum, err)
			}
		}

		raw := s.Text()
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		w := indentWidth(raw, tabWidth)

		if opts.Strict && tree.IsEmpty() && w > 0 {
			return nil, fmt.Errorf("line %d: %w", lineNum, ErrFirstLineIndented)
		}

		// Close deeper scopes, then the sibling scope at the same indentation.
		dedented := false
		for len(widths) > 0 && widths[len(widths)-1] > w {
			widths = widths[:len(widths)-1]
			id, ok := tree.Up()
			log.Debug("Closed scope", "line", lineNum, "current", id, "has_current", ok)
			dedented = true
		}
		if len(widths) > 0 {
			top := widths[len(widths)-1]
			if top == w {
				widths = widths[:len(widths)-1]
				tree.Up()
			} else if dedented {
				return nil, fmt.Errorf(
					"line %d: indent %d inside scope indented %d: %w",
					lineNum, w, top, ErrInconsistentIndent,
				)
			}
		}

		id := tree.Push(Line{Text: text, Number: lineNum, Indent: w})
		widths = append(widths, w)
		log.Debug("Pushed line", "line", lineNum, "id", id, "depth", tree.Depth())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}

	for range widths {
		tree.Up()
	}

	roots := 0
	for range tree.Roots() {
		roots++
	}
	log.Info("Parsed outline", "lines", lineNum, "nodes", tree.Len(), "roots", roots)

	return tree, nil
}

// indentWidth returns the width of the leading whitespace of s.
func indentWidth(s string, tabWidth int) int {
	w := 0
	for _, c := range s {
		switch c {
		case ' ':
			w++
		case '\t':
			w += tabWidth - w%tabWidth
		default:
			return w
		}
	}
	return w
}

// Write renders tree as an outline,
// indenting each level by one more copy of indent.
// Writing the result of [Parse] reproduces its input
// with blank lines removed and indentation normalized.
func Write(w io.Writer, tree *Tree, indent string) error {
	bw := bufio.NewWriter(w)
	for id, n := range tree.Roots() {
		writeNode(bw, tree, id, n, 0, indent)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}

func writeNode(bw *bufio.Writer, tree *Tree, id LineID, n *gftree.Node[LineID, Line], level int, indent string) {
	for range level {
		bw.WriteString(indent)
	}
	bw.WriteString(n.Value.Text)
	bw.WriteByte('\n')

	for cid, c := range tree.Children(id) {
		writeNode(bw, tree, cid, c, level+1, indent)
	}
}
