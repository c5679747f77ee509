// Package vault extracts a graph from a directory of Markdown notes.
//
// One node is produced per note, identified by its vault-relative path
// without the extension ("work/Roadmap.md" becomes "work/Roadmap").
// Edges come from three places:
//
//   - Wiki links in the note body ("[[Target]]" or "[[Target|alias]]")
//     become default edges.
//   - Tags (inline "#tag" tokens and the front-matter "tags" list) become
//     property edges to tag pseudo-nodes ("tag:<name>").
//   - Other front-matter values that resolve to notes become property
//     edges carrying the front-matter key.
//
// Front matter is TOML fenced by "+++" lines. Extraction is best-effort:
// unreadable files and malformed front matter are logged and skipped, never
// fatal.
package vault

import (
	"context"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/graphtint/graphtint/pkg/errors"
	"github.com/graphtint/graphtint/pkg/graph"
)

// Options configures a vault scan.
type Options struct {
	// Logger receives warnings about skipped files. Defaults to a discard
	// logger.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Scan walks a notes directory and extracts its graph.
func Scan(ctx context.Context, root string, opts Options) (*graph.Graph, error) {
	return ScanFS(ctx, dirFS(root), opts)
}

// ScanFS extracts a graph from any fs.FS containing Markdown notes.
func ScanFS(ctx context.Context, fsys fs.FS, opts Options) (*graph.Graph, error) {
	logger := opts.logger()

	var notes []note
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Hidden directories (.obsidian, .git) hold tool state, not notes.
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(path.Ext(p), ".md") {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			logger.Warn("skipping unreadable note", "path", p, "err", err)
			return nil
		}
		n, err := parseNote(p, data)
		if err != nil {
			logger.Warn("skipping malformed note", "path", p, "err", err)
			return nil
		}
		notes = append(notes, n)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidVault, err, "scan vault")
	}

	return assemble(notes), nil
}

// =============================================================================
// Graph Assembly
// =============================================================================

// assemble turns parsed notes into a graph with resolved links, tag
// pseudo-nodes, and property edges. Output order is deterministic.
func assemble(notes []note) *graph.Graph {
	g := &graph.Graph{}
	index := newNoteIndex(notes)

	for _, n := range notes {
		g.Nodes = append(g.Nodes, graph.Node{ID: n.id, Label: n.title, Tags: n.tags})
	}

	var extra []graph.Node // placeholders and tag nodes, sorted before appending
	seenExtra := make(map[string]bool)
	seenEdge := make(map[graph.Edge]bool)

	addEdge := func(e graph.Edge) {
		if seenEdge[e] {
			return
		}
		seenEdge[e] = true
		g.Edges = append(g.Edges, e)
	}

	for _, n := range notes {
		// Body wiki links. Unresolved targets still appear in the graph,
		// the way unresolved links show up in a knowledge-base graph view.
		for _, target := range n.links {
			to, ok := index.resolve(target)
			if !ok {
				to = target
				if !seenExtra[to] {
					seenExtra[to] = true
					extra = append(extra, graph.Node{ID: to})
				}
				index.add(to)
			}
			if to == n.id {
				continue
			}
			addEdge(graph.Edge{From: n.id, To: to, Kind: graph.EdgeKindDefault})
		}

		// Tags become edges to tag pseudo-nodes.
		for _, tag := range n.tags {
			name := strings.ToLower(strings.TrimPrefix(tag, "#"))
			if name == "" {
				continue
			}
			id := graph.TagNodePrefix + name
			if !seenExtra[id] {
				seenExtra[id] = true
				extra = append(extra, graph.Node{ID: id})
			}
			addEdge(graph.Edge{From: n.id, To: id, Kind: graph.EdgeKindProperty, Property: "tags"})
		}

		// Front-matter properties that point at other notes.
		for _, prop := range n.props {
			to, ok := index.resolve(prop.value)
			if !ok {
				continue
			}
			addEdge(graph.Edge{From: n.id, To: to, Kind: graph.EdgeKindProperty, Property: prop.key})
		}
	}

	sort.Slice(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	g.Nodes = append(g.Nodes, extra...)
	return g
}

// =============================================================================
// Link Resolution
// =============================================================================

// noteIndex resolves wiki-link targets to node IDs. Lookup mirrors
// graph.NameMatches: case-insensitive, extension-insensitive, and a bare
// name matches the final path segment of an ID.
type noteIndex struct {
	byPath map[string]string // lower full id -> id
	byBase map[string]string // lower base name -> id (first wins)
}

func newNoteIndex(notes []note) *noteIndex {
	idx := &noteIndex{
		byPath: make(map[string]string, len(notes)),
		byBase: make(map[string]string, len(notes)),
	}
	for _, n := range notes {
		idx.add(n.id)
	}
	return idx
}

func (idx *noteIndex) add(id string) {
	lower := strings.ToLower(id)
	if _, ok := idx.byPath[lower]; !ok {
		idx.byPath[lower] = id
	}
	base := lower
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if _, ok := idx.byBase[base]; !ok {
		idx.byBase[base] = id
	}
}

func (idx *noteIndex) resolve(target string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(target))
	key = strings.TrimSuffix(key, path.Ext(key))
	if key == "" {
		return "", false
	}
	if id, ok := idx.byPath[key]; ok {
		return id, true
	}
	if id, ok := idx.byBase[key]; ok {
		return id, true
	}
	return "", false
}
