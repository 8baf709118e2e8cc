// ABOUTME: Message types flowing into the root model
// ABOUTME: Bus signals, store change notifications and async command results

package tui

import (
	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/config"
	"github.com/mauromedda/blinko-go/internal/eventbus"
	"github.com/mauromedda/blinko-go/internal/notes"
)

// SettingsReloaded carries settings re-read from disk by a config watcher.
var SettingsReloaded = eventbus.NewKey[*config.Settings]("settings:reloaded")

// Bus signals forwarded by the bridge.
type (
	TagShowMsg   struct{ Query string }
	TagHiddenMsg struct{}
	AIShowMsg    struct{}
	AIHiddenMsg  struct{}

	SettingsReloadedMsg struct{ Settings *config.Settings }
)

// Store change notifications. They only trigger a re-render.
type (
	EditorChangedMsg struct{}
	QueueChangedMsg  struct{}
	NotesChangedMsg  struct{}
	ToastsChangedMsg struct{}
	RouteChangedMsg  struct{ Path string }
)

// ImportProgressMsg is one line of a running import.
type ImportProgressMsg struct{ Progress api.ImportProgress }

// importDoneMsg ends an import.
type importDoneMsg struct{ err error }

// loadedMsg reports the startup fetch of config, tags and notes.
type loadedMsg struct{ err error }

// savedMsg reports a compose submission.
type savedMsg struct {
	note api.Note
	err  error
}

// actionDoneMsg reports a menu action.
type actionDoneMsg struct {
	result notes.Result
	err    error
}

// aiWriteDoneMsg carries the AI writing result.
type aiWriteDoneMsg struct {
	text string
	err  error
}

// signInDoneMsg reports the sign-in outcome.
type signInDoneMsg struct{ ok bool }

// canRegisterMsg reports whether the server offers sign-up.
type canRegisterMsg struct{ ok bool }

// previewsMsg carries link previews for the loaded notes.
type previewsMsg struct{ previews map[string]api.LinkPreview }

// pruneToastsMsg asks the root to drop expired toasts.
type pruneToastsMsg struct{}
