// ABOUTME: Message catalogue keyed by string ids with locale negotiation
// ABOUTME: Embedded JSON per language; falls back to English, then to the key itself

package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Fallback is used when no requested locale matches.
const Fallback = "en"

var (
	loadOnce  sync.Once
	catalogs  map[string]map[string]string
	supported []language.Tag
	tagNames  []string
	matcher   language.Matcher
	loadErr   error
)

func load() {
	catalogs = make(map[string]map[string]string)
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		loadErr = err
		return
	}
	// Fallback first so the matcher prefers it on ties.
	names := []string{Fallback}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		if name != Fallback {
			names = append(names, name)
		}
	}
	for _, name := range names {
		data, err := localeFS.ReadFile(path.Join("locales", name+".json"))
		if err != nil {
			loadErr = fmt.Errorf("reading locale %s: %w", name, err)
			return
		}
		var msgs map[string]string
		if err := json.Unmarshal(data, &msgs); err != nil {
			loadErr = fmt.Errorf("parsing locale %s: %w", name, err)
			return
		}
		catalogs[name] = msgs
		supported = append(supported, language.Make(name))
		tagNames = append(tagNames, name)
	}
	matcher = language.NewMatcher(supported)
}

// Catalog translates keys for one resolved locale.
type Catalog struct {
	locale string
	msgs   map[string]string
	base   map[string]string
}

// New resolves the best available catalogue for the requested locales
// ("zh-tw", "de", "en-US"...).
func New(requested ...string) (*Catalog, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	var tags []language.Tag
	for _, r := range requested {
		if t, err := language.Parse(r); err == nil {
			tags = append(tags, t)
		}
	}
	name := Fallback
	if len(tags) > 0 {
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			name = tagNames[idx]
		}
	}
	return &Catalog{locale: name, msgs: catalogs[name], base: catalogs[Fallback]}, nil
}

// MustNew is New for callers that embed known-good catalogues.
func MustNew(requested ...string) *Catalog {
	c, err := New(requested...)
	if err != nil {
		panic(err)
	}
	return c
}

// Locale returns the resolved locale name.
func (c *Catalog) Locale() string { return c.locale }

// T returns the message for key, or key when no catalogue has it.
func (c *Catalog) T(key string) string {
	if c == nil {
		return key
	}
	if m, ok := c.msgs[key]; ok {
		return m
	}
	if m, ok := c.base[key]; ok {
		return m
	}
	return key
}

// Tf formats the message for key with args.
func (c *Catalog) Tf(key string, args ...any) string {
	return fmt.Sprintf(c.T(key), args...)
}

// Available lists the locales with a catalogue.
func Available() []string {
	loadOnce.Do(load)
	return append([]string(nil), tagNames...)
}
