// ABOUTME: Extracts http(s) links from note markdown using the goldmark AST
// ABOUTME: Covers inline links, autolinks and bare URLs via the linkify extension

package linkpreview

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// ExtractLinks returns the unique http(s) URLs in markdown, in order of
// appearance. Image sources are skipped.
func ExtractLinks(markdown string) []string {
	src := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(src))

	seen := make(map[string]bool)
	var out []string
	add := func(u string) {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return
		}
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			add(string(v.Destination))
		case *ast.AutoLink:
			if v.AutoLinkType == ast.AutoLinkURL {
				add(string(v.URL(src)))
			}
		case *ast.Image:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}
