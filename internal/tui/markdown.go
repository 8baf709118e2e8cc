// ABOUTME: Note rendering through glamour with a per-width cache
// ABOUTME: Falls back to the raw markdown when rendering fails

package tui

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the note list.
type MarkdownRenderer struct {
	cache map[string]string
}

// NewMarkdownRenderer creates a renderer with an empty cache.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{cache: make(map[string]string)}
}

// Render returns md styled for the active theme and wrapped to width.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	theme := CurrentTheme()
	key := renderKey(md, width, theme)
	if out, ok := r.cache[key]; ok {
		return out
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	out = strings.Trim(out, "\n")
	r.cache[key] = out
	return out
}

func renderKey(md string, width int, theme string) string {
	h := sha256.Sum256([]byte(md))
	return fmt.Sprintf("%x:%d:%s", h[:8], width, theme)
}
