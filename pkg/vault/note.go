package vault

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// note is the parsed form of a single Markdown file.
type note struct {
	id    string
	title string
	tags  []string
	links []string  // wiki-link targets from the body, in order
	props []propRef // front-matter properties, sorted by key
}

// propRef is one front-matter value that may point at another note.
type propRef struct {
	key   string
	value string
}

var (
	wikiLinkRe  = regexp.MustCompile(`\[\[([^\[\]|]+)(?:\|[^\[\]]*)?\]\]`)
	inlineTagRe = regexp.MustCompile(`(?m)(?:^|[\s(\[])#([A-Za-z0-9_][A-Za-z0-9_/-]*)`)
)

// parseNote parses one note. The path is vault-relative with forward slashes.
func parseNote(relPath string, data []byte) (note, error) {
	n := note{id: strings.TrimSuffix(relPath, path.Ext(relPath))}

	front, body, err := splitFrontMatter(string(data))
	if err != nil {
		return note{}, err
	}

	var tags []string
	if front != "" {
		var meta map[string]any
		if err := toml.Unmarshal([]byte(front), &meta); err != nil {
			return note{}, fmt.Errorf("front matter: %w", err)
		}

		if title, ok := meta["title"].(string); ok {
			n.title = title
		}
		tags = append(tags, stringList(meta["tags"])...)

		keys := make([]string, 0, len(meta))
		for k := range meta {
			if k == "title" || k == "tags" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for _, v := range stringList(meta[k]) {
				n.props = append(n.props, propRef{key: k, value: unwrapWikiLink(v)})
			}
		}
	}

	for _, m := range wikiLinkRe.FindAllStringSubmatch(body, -1) {
		if target := strings.TrimSpace(m[1]); target != "" {
			n.links = append(n.links, target)
		}
	}
	for _, m := range inlineTagRe.FindAllStringSubmatch(body, -1) {
		tags = append(tags, m[1])
	}

	n.tags = dedupeFold(tags)
	return n, nil
}

// splitFrontMatter separates a "+++" fenced TOML block from the body.
// Returns an error for an unclosed fence.
func splitFrontMatter(content string) (front, body string, err error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "+++" {
		return "", content, nil
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "+++" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", fmt.Errorf("unclosed front matter fence")
}

// stringList coerces a TOML value into a list of strings.
// Scalars become single-element lists; non-string entries are dropped.
func stringList(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []any:
		var out []string
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// unwrapWikiLink strips "[[...]]" from a front-matter value if present.
func unwrapWikiLink(v string) string {
	if m := wikiLinkRe.FindStringSubmatch(v); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(v)
}

// dedupeFold removes case-insensitive duplicates, keeping the first spelling.
func dedupeFold(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	var out []string
	for _, s := range items {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
