// ABOUTME: Markdown drafts with optional YAML front matter for posting from files
// ABOUTME: Front matter picks note type, pin/share flags, extra tags and files to attach

package notes

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/blinko-go/internal/api"
)

const fence = "---"

// ErrUnterminatedFrontMatter is returned when the closing fence is missing.
var ErrUnterminatedFrontMatter = errors.New("front matter: missing closing ---")

// DraftMeta is the front matter of a draft file.
type DraftMeta struct {
	Type        string   `yaml:"type"`
	Pinned      bool     `yaml:"pinned"`
	Public      bool     `yaml:"public"`
	Tags        []string `yaml:"tags"`
	Attachments []string `yaml:"attachments"`
}

// NoteType maps the "type" field; anything but "note" is a blinko.
func (m DraftMeta) NoteType() api.NoteType {
	if strings.EqualFold(m.Type, "note") {
		return api.TypeNote
	}
	return api.TypeBlinko
}

// ParseDraft splits optional front matter from the body. Without an opening
// fence the whole input is the body.
func ParseDraft(content string) (DraftMeta, string, error) {
	var meta DraftMeta
	text := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(text, fence+"\n") {
		return meta, content, nil
	}
	rest := text[len(fence)+1:]

	var header, body string
	if strings.HasPrefix(rest, fence+"\n") || rest == fence {
		body = strings.TrimPrefix(rest, fence)
	} else {
		var ok bool
		header, body, ok = strings.Cut(rest, "\n"+fence)
		if !ok {
			return meta, "", ErrUnterminatedFrontMatter
		}
	}
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return DraftMeta{}, "", fmt.Errorf("front matter: %w", err)
	}
	body = strings.TrimPrefix(body, "\n")
	return meta, AppendTags(body, meta.Tags), nil
}
