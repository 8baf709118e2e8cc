// ABOUTME: Route table, current route, title resolution and the persisted UI locale
// ABOUTME: Observers get a callback on navigation; safe for concurrent use

package nav

import (
	"fmt"
	"sync"

	"github.com/mauromedda/blinko-go/internal/prefs"
)

// Route is one top-level destination.
type Route struct {
	Title string
	Path  string
	Icon  string
}

// Routes are the sidebar destinations, in display order.
var Routes = []Route{
	{Title: "blinko", Path: "/", Icon: "⚡"},
	{Title: "notes", Path: "/notes", Icon: "✎"},
	{Title: "resources", Path: "/resources", Icon: "▤"},
	{Title: "archived", Path: "/archived", Icon: "▣"},
	{Title: "settings", Path: "/settings", Icon: "⚙"},
}

// Pages outside the sidebar.
const (
	PathReview = "/review"
	PathDetail = "/detail"
	PathAll    = "/all"
	PathSignIn = "/signin"
)

// Locale is a selectable UI language.
type Locale struct {
	Value string
	Label string
}

// Locales are the languages offered in settings.
var Locales = []Locale{
	{"en", "English"},
	{"zh", "简体中文"},
	{"zh-tw", "繁體中文"},
	{"vi", "Tiếng Việt"},
	{"tr", "Türkçe"},
	{"de", "Deutsch"},
	{"es", "Español"},
	{"fr", "Français"},
	{"pt", "Português"},
	{"ru", "Русский"},
	{"ko", "한국어"},
	{"ja", "日本語"},
}

// Translator resolves message keys.
type Translator interface {
	T(key string) string
}

// KeyLocale is the storage key of the UI language.
const KeyLocale = "language"

// Router tracks where the UI is.
type Router struct {
	mu       sync.Mutex
	path     string
	current  Route
	locale   *prefs.State[string]
	onChange func(path string)
}

// NewRouter starts at "/" with the locale loaded from store.
func NewRouter(store *prefs.Store, onChange func(path string)) *Router {
	if onChange == nil {
		onChange = func(string) {}
	}
	return &Router{
		path:     Routes[0].Path,
		current:  Routes[0],
		locale:   prefs.NewState(store, KeyLocale, "en"),
		onChange: onChange,
	}
}

// Push navigates to path. Sidebar paths also become the current route.
func (r *Router) Push(path string) {
	r.mu.Lock()
	r.path = path
	for _, rt := range Routes {
		if rt.Path == path {
			r.current = rt
			break
		}
	}
	r.mu.Unlock()
	r.onChange(path)
}

// Path returns the current path.
func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Current returns the last sidebar route visited.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// IsDetail reports whether the detail page is showing.
func (r *Router) IsDetail() bool {
	return r.Path() == PathDetail
}

// Title resolves the header title for the current path.
func (r *Router) Title(tr Translator) string {
	r.mu.Lock()
	path, current := r.path, r.current
	r.mu.Unlock()

	switch path {
	case PathReview:
		return tr.T("daily-review")
	case PathDetail:
		return tr.T("detail")
	case PathAll:
		return tr.T("total")
	default:
		return tr.T(current.Title)
	}
}

// Locale returns the persisted UI language.
func (r *Router) Locale() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locale.Value
}

// SetLocale validates and persists the UI language.
func (r *Router) SetLocale(value string) error {
	known := false
	for _, l := range Locales {
		if l.Value == value {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown locale %q", value)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locale.Save(value)
}
