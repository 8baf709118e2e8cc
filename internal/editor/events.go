// ABOUTME: Named event keys shared by the editor, popovers and toolbar
// ABOUTME: Payload types are fixed per key so publishers and subscribers agree at compile time

package editor

import "github.com/mauromedda/blinko-go/internal/eventbus"

// ViewMode selects how the editor presents markdown.
type ViewMode string

const (
	ModeRichText ViewMode = "rich-text"
	ModeSource   ViewMode = "source"
)

// ReplaceRequest asks the editor to swap the trailing tag for Text.
type ReplaceRequest struct {
	Text       string
	ForceFocus bool
}

// Popover signals.
var (
	TagSelectShow   = eventbus.NewKey[string]("tagselect:show")
	TagSelectHidden = eventbus.NewKey[struct{}]("tagselect:hidden")
	AIWriteShow     = eventbus.NewKey[struct{}]("aiwrite:show")
	AIWriteHidden   = eventbus.NewKey[struct{}]("aiwrite:hidden")
)

// Editor commands.
var (
	EvInsert         = eventbus.NewKey[string]("editor:insert")
	EvReplace        = eventbus.NewKey[ReplaceRequest]("editor:replace")
	EvClear          = eventbus.NewKey[struct{}]("editor:clear")
	EvDeleteLastChar = eventbus.NewKey[struct{}]("editor:deleteLastChar")
	EvFocus          = eventbus.NewKey[bool]("editor:focus")
	EvSetLoading     = eventbus.NewKey[bool]("editor:setMarkdownLoading")
	EvSetViewMode    = eventbus.NewKey[ViewMode]("editor:setViewMode")
)
