// ABOUTME: Tag catalogue for the tag popover and tag extraction from note content
// ABOUTME: Server tags are flattened to "parent/child" paths and fuzzy-matched against the typed query

package tags

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/blinko-go/internal/api"
)

var tagRe = regexp.MustCompile(`(?:^|[\s\x{00a0}])#([\p{L}\p{N}_/-]+)`)

// Lister fetches the server tag list.
type Lister interface {
	ListTags(ctx context.Context) ([]api.Tag, error)
}

// Catalog holds the known tag paths.
type Catalog struct {
	src Lister

	mu    sync.RWMutex
	paths []string
	keys  []string // normalised paths, parallel to paths
}

// NewCatalog creates an empty catalogue backed by src.
func NewCatalog(src Lister) *Catalog {
	return &Catalog{src: src}
}

// Load replaces the catalogue with the server's tags.
func (c *Catalog) Load(ctx context.Context) error {
	list, err := c.src.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}
	c.Set(Paths(list))
	return nil
}

// Set replaces the catalogue with paths. Duplicates collapse.
func (c *Catalog) Set(paths []string) {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)

	keys := make([]string, len(out))
	for i, p := range out {
		keys[i] = normalize(p)
	}

	c.mu.Lock()
	c.paths, c.keys = out, keys
	c.mu.Unlock()
}

// All returns every known path, sorted.
func (c *Catalog) All() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.paths...)
}

// Match returns up to limit paths for query, best first. An empty query
// lists paths in order. limit <= 0 means no limit.
func (c *Catalog) Match(query string, limit int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	if q := normalize(query); q == "" {
		out = append(out, c.paths...)
	} else {
		for _, m := range fuzzy.Find(q, c.keys) {
			out = append(out, c.paths[m.Index])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Paths flattens server tags into "parent/child" paths.
func Paths(list []api.Tag) []string {
	byID := make(map[int]api.Tag, len(list))
	for _, t := range list {
		byID[t.ID] = t
	}
	out := make([]string, 0, len(list))
	for _, t := range list {
		parts := []string{t.Name}
		seen := map[int]bool{t.ID: true}
		for p := t.ParentID; p != 0 && !seen[p]; {
			parent, ok := byID[p]
			if !ok {
				break
			}
			seen[p] = true
			parts = append([]string{parent.Name}, parts...)
			p = parent.ParentID
		}
		out = append(out, strings.Join(parts, "/"))
	}
	return out
}

// Extract lists the tags in content, including every parent of a nested
// tag ("#a/b" yields "a" and "a/b"). The result is sorted and unique.
func Extract(content string) []string {
	set := make(map[string]struct{})
	for _, line := range strings.Split(norm.NFC.String(content), "\n") {
		for _, m := range tagRe.FindAllStringSubmatch(line, -1) {
			for _, t := range expandPrefixes(m[1]) {
				set[t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func expandPrefixes(tag string) []string {
	parts := strings.FieldsFunc(tag, func(r rune) bool { return r == '/' })
	out := make([]string, 0, len(parts))
	for i := range parts {
		out = append(out, strings.Join(parts[:i+1], "/"))
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
