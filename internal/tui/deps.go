// ABOUTME: Dependency bundle for the Bubble Tea client
// ABOUTME: Backend is the whole server surface; *api.Client satisfies it

package tui

import (
	"context"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/auth"
	"github.com/mauromedda/blinko-go/internal/config"
	"github.com/mauromedda/blinko-go/internal/eventbus"
	"github.com/mauromedda/blinko-go/internal/i18n"
	"github.com/mauromedda/blinko-go/internal/importer"
	"github.com/mauromedda/blinko-go/internal/linkpreview"
	"github.com/mauromedda/blinko-go/internal/notes"
	"github.com/mauromedda/blinko-go/internal/prefs"
	"github.com/mauromedda/blinko-go/internal/tags"
	"github.com/mauromedda/blinko-go/internal/upload"
)

// Backend is every server call the UI makes.
type Backend interface {
	notes.Client
	upload.Client
	auth.Client
	importer.Client
	tags.Lister
	linkpreview.Remote
	AIWrite(ctx context.Context, kind api.WriteKind, content string) (string, error)
}

var _ Backend = (*api.Client)(nil)

// AppDeps bundles what the app needs from main.
type AppDeps struct {
	Backend  Backend
	Settings *config.Settings
	Prefs    *prefs.Store
	Hub      *eventbus.Hub
	Catalog  *i18n.Catalog
	Version  string
}

// Translator resolves message keys; *i18n.Catalog satisfies it.
type Translator interface {
	T(key string) string
	Tf(key string, args ...any) string
}
