package vault

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/graphtint/graphtint/pkg/graph"
)

func testVault() fstest.MapFS {
	return fstest.MapFS{
		"Inbox.md": {Data: []byte("Plain note linking [[roadmap]].\n")},
		"People/Jane.md": {Data: []byte(
			"+++\ntitle = \"Jane\"\n+++\nHello.\n")},
		"work/Roadmap.md": {Data: []byte(
			"+++\n" +
				"title = \"Roadmap\"\n" +
				"tags = [\"project\", \"active\"]\n" +
				"owner = \"[[People/Jane]]\"\n" +
				"+++\n\n" +
				"Linked to [[Inbox]] and [[Missing Note|alias]].\n" +
				"Body tag #q3.\n")},
		".obsidian/workspace.md": {Data: []byte("[[ShouldNotAppear]]")},
		"assets/image.png":       {Data: []byte{0x89}},
	}
}

func TestScanFS(t *testing.T) {
	g, err := ScanFS(context.Background(), testVault(), Options{})
	if err != nil {
		t.Fatalf("ScanFS: %v", err)
	}

	wantNodes := []string{
		"Inbox", "People/Jane", "work/Roadmap",
		"Missing Note", "tag:active", "tag:project", "tag:q3",
	}
	if len(g.Nodes) != len(wantNodes) {
		t.Fatalf("nodes = %d, want %d (%v)", len(g.Nodes), len(wantNodes), g.Nodes)
	}
	for i, id := range wantNodes {
		if g.Nodes[i].ID != id {
			t.Errorf("node %d = %q, want %q", i, g.Nodes[i].ID, id)
		}
	}

	roadmap := g.Node("work/Roadmap")
	if roadmap.Label != "Roadmap" {
		t.Errorf("label = %q, want Roadmap", roadmap.Label)
	}
	wantTags := []string{"project", "active", "q3"}
	if len(roadmap.Tags) != len(wantTags) {
		t.Fatalf("tags = %v, want %v", roadmap.Tags, wantTags)
	}
	for i, tag := range wantTags {
		if roadmap.Tags[i] != tag {
			t.Errorf("tag %d = %q, want %q", i, roadmap.Tags[i], tag)
		}
	}

	wantEdges := []graph.Edge{
		{From: "Inbox", To: "work/Roadmap", Kind: graph.EdgeKindDefault},
		{From: "work/Roadmap", To: "Inbox", Kind: graph.EdgeKindDefault},
		{From: "work/Roadmap", To: "Missing Note", Kind: graph.EdgeKindDefault},
		{From: "work/Roadmap", To: "tag:project", Kind: graph.EdgeKindProperty, Property: "tags"},
		{From: "work/Roadmap", To: "tag:active", Kind: graph.EdgeKindProperty, Property: "tags"},
		{From: "work/Roadmap", To: "tag:q3", Kind: graph.EdgeKindProperty, Property: "tags"},
		{From: "work/Roadmap", To: "People/Jane", Kind: graph.EdgeKindProperty, Property: "owner"},
	}
	if len(g.Edges) != len(wantEdges) {
		t.Fatalf("edges = %d, want %d (%v)", len(g.Edges), len(wantEdges), g.Edges)
	}
	for i, want := range wantEdges {
		if g.Edges[i] != want {
			t.Errorf("edge %d = %+v, want %+v", i, g.Edges[i], want)
		}
	}
}

func TestScanFSValidOutput(t *testing.T) {
	g, err := ScanFS(context.Background(), testVault(), Options{})
	if err != nil {
		t.Fatalf("ScanFS: %v", err)
	}
	if err := graph.Validate(g); err != nil {
		t.Errorf("scanned graph fails validation: %v", err)
	}
}

func TestScanFSSkipsMalformedNotes(t *testing.T) {
	fsys := fstest.MapFS{
		"Good.md":   {Data: []byte("fine\n")},
		"Broken.md": {Data: []byte("+++\nnever closed\n")},
	}
	g, err := ScanFS(context.Background(), fsys, Options{})
	if err != nil {
		t.Fatalf("ScanFS: %v", err)
	}
	if len(g.Nodes) != 1 || g.Nodes[0].ID != "Good" {
		t.Errorf("nodes = %v, want only Good", g.Nodes)
	}
}

func TestScanFSSelfLinksDropped(t *testing.T) {
	fsys := fstest.MapFS{
		"Loop.md": {Data: []byte("I link [[Loop]] to myself.\n")},
	}
	g, err := ScanFS(context.Background(), fsys, Options{})
	if err != nil {
		t.Fatalf("ScanFS: %v", err)
	}
	if len(g.Edges) != 0 {
		t.Errorf("edges = %v, want none", g.Edges)
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTitle string
		wantTags  []string
		wantLinks []string
	}{
		{
			name:    "plain body",
			content: "just text",
		},
		{
			name:      "links and duplicate tags",
			content:   "See [[A]] and [[B|b]].\n#one #ONE #two\n",
			wantTags:  []string{"one", "two"},
			wantLinks: []string{"A", "B"},
		},
		{
			name:      "front matter only",
			content:   "+++\ntitle = \"T\"\ntags = \"solo\"\n+++\n",
			wantTitle: "T",
			wantTags:  []string{"solo"},
		},
		{
			name:    "hash inside word is not a tag",
			content: "c#sharp and x #real",
			wantTags: []string{
				"real",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := parseNote("Note.md", []byte(tt.content))
			if err != nil {
				t.Fatalf("parseNote: %v", err)
			}
			if n.id != "Note" {
				t.Errorf("id = %q, want Note", n.id)
			}
			if n.title != tt.wantTitle {
				t.Errorf("title = %q, want %q", n.title, tt.wantTitle)
			}
			if !equalStrings(n.tags, tt.wantTags) {
				t.Errorf("tags = %v, want %v", n.tags, tt.wantTags)
			}
			if !equalStrings(n.links, tt.wantLinks) {
				t.Errorf("links = %v, want %v", n.links, tt.wantLinks)
			}
		})
	}
}

func TestParseNoteUnclosedFrontMatter(t *testing.T) {
	if _, err := parseNote("X.md", []byte("+++\ntitle = \"x\"\n")); err == nil {
		t.Error("expected error for unclosed front matter")
	}
}

func TestFingerprintFS(t *testing.T) {
	a := fstest.MapFS{"A.md": {Data: []byte("one")}}
	b := fstest.MapFS{"A.md": {Data: []byte("longer content")}}

	fpA1, err := FingerprintFS(a)
	if err != nil {
		t.Fatalf("FingerprintFS: %v", err)
	}
	fpA2, _ := FingerprintFS(a)
	if fpA1 != fpA2 {
		t.Error("fingerprint should be deterministic")
	}

	fpB, _ := FingerprintFS(b)
	if fpA1 == fpB {
		t.Error("different content size should change the fingerprint")
	}

	// Non-Markdown files are ignored.
	c := fstest.MapFS{"A.md": {Data: []byte("one")}, "img.png": {Data: []byte{1}}}
	fpC, _ := FingerprintFS(c)
	if fpC != fpA1 {
		t.Error("non-Markdown files should not affect the fingerprint")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
