package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/graphtint/graphtint/pkg/graph"
)

// runCommand executes the root command with the given args.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeTempGraph(t *testing.T) string {
	t.Helper()
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "Inbox", Label: "Inbox"},
			{ID: "work/Roadmap", Label: "Roadmap", Tags: []string{"project"}},
		},
		Edges: []graph.Edge{
			{From: "work/Roadmap", To: "Inbox", Kind: graph.EdgeKindDefault},
		},
	}
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteFile(g, path); err != nil {
		t.Fatalf("write graph: %v", err)
	}
	return path
}

func TestCheckCommandValid(t *testing.T) {
	rules := writeTempFile(t, "rules.txt",
		"default => color(\"#888888\")\ntagged(\"project\") => color(\"#ff8800\"), shape(\"box\")\n")

	if err := runCommand(t, "check", rules); err != nil {
		t.Fatalf("check returned error: %v", err)
	}
}

func TestCheckCommandParseErrors(t *testing.T) {
	rules := writeTempFile(t, "bad.txt", "tagged( => color(\"#fff\")\n")

	err := runCommand(t, "check", rules)
	if err == nil {
		t.Fatal("check should fail on a malformed rules file")
	}
	if !strings.Contains(err.Error(), "parse error") {
		t.Errorf("check error = %q, want mention of parse errors", err)
	}
}

func TestCheckCommandMissingFile(t *testing.T) {
	if err := runCommand(t, "check", filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("check should fail when the rules file does not exist")
	}
}

func TestApplyCommand(t *testing.T) {
	graphPath := writeTempGraph(t)
	rules := writeTempFile(t, "rules.txt", "tagged(\"project\") => color(\"#ff8800\")\n")
	out := filepath.Join(t.TempDir(), "styled.json")

	if err := runCommand(t, "apply", rules, "-g", graphPath, "-o", out); err != nil {
		t.Fatalf("apply returned error: %v", err)
	}

	styled, err := graph.ReadFile(out)
	if err != nil {
		t.Fatalf("read styled graph: %v", err)
	}
	roadmap := styled.Node("work/Roadmap")
	if roadmap == nil {
		t.Fatal("styled graph lost node work/Roadmap")
	}
	if roadmap.Color != "#ff8800" {
		t.Errorf("Roadmap color = %q, want %q", roadmap.Color, "#ff8800")
	}
	if inbox := styled.Node("Inbox"); inbox == nil || inbox.Color != "" {
		t.Errorf("Inbox should be unstyled, got %+v", inbox)
	}
}

func TestApplyCommandMutuallyExclusiveInputs(t *testing.T) {
	rules := writeTempFile(t, "rules.txt", "default => color(\"#fff\")\n")

	err := runCommand(t, "apply", rules, "-g", "graph.json", "--vault", "vault")
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("apply with both inputs: err = %v, want mutually exclusive error", err)
	}
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	notes := map[string]string{
		"Inbox.md":   "Links to [[Roadmap]].\n",
		"Roadmap.md": "+++\ntags = [\"project\"]\n+++\n\nSee #q3.\n",
	}
	for name, body := range notes {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write note: %v", err)
		}
	}
	out := filepath.Join(t.TempDir(), "graph.json")

	if err := runCommand(t, "scan", dir, "--no-cache", "-o", out); err != nil {
		t.Fatalf("scan returned error: %v", err)
	}

	g, err := graph.ReadFile(out)
	if err != nil {
		t.Fatalf("read scanned graph: %v", err)
	}
	if g.Node("Roadmap") == nil || g.Node("Inbox") == nil {
		t.Fatalf("scanned graph missing note nodes, got %d nodes", len(g.Nodes))
	}
	if g.Node("tag:project") == nil || g.Node("tag:q3") == nil {
		t.Error("scanned graph missing tag pseudo-nodes")
	}
}

func TestScanCommandCached(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Note.md"), []byte("Hello [[World]].\n"), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}
	out := filepath.Join(t.TempDir(), "graph.json")

	for i := 0; i < 2; i++ {
		if err := runCommand(t, "scan", dir, "-o", out); err != nil {
			t.Fatalf("scan run %d returned error: %v", i+1, err)
		}
	}

	g, err := graph.ReadFile(out)
	if err != nil {
		t.Fatalf("read scanned graph: %v", err)
	}
	if g.Node("Note") == nil || g.Node("World") == nil {
		t.Errorf("cached scan output missing nodes, got %d nodes", len(g.Nodes))
	}
}

func TestRenderCommandDOT(t *testing.T) {
	graphPath := writeTempGraph(t)
	rules := writeTempFile(t, "rules.txt", "tagged(\"project\") => color(\"#ff8800\")\n")
	out := filepath.Join(t.TempDir(), "graph.dot")

	if err := runCommand(t, "render", "-g", graphPath, "-r", rules, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("render returned error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read DOT output: %v", err)
	}
	dot := string(data)
	if !strings.Contains(dot, "digraph G {") {
		t.Error("DOT output missing digraph header")
	}
	if !strings.Contains(dot, `fillcolor="#ff8800"`) {
		t.Error("DOT output missing styled fill color")
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	graphPath := writeTempGraph(t)

	err := runCommand(t, "render", "-g", graphPath, "-f", "png")
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("render with bad format: err = %v, want unsupported format error", err)
	}
}
