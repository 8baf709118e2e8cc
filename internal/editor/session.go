// ABOUTME: Session owns one editor buffer and reacts to triggers and editor events
// ABOUTME: Mutex-guarded; bus emits and change callbacks always run outside the lock

package editor

import (
	"strings"
	"sync"
	"time"

	"github.com/mauromedda/blinko-go/internal/eventbus"
	"github.com/mauromedda/blinko-go/internal/log"
)

// LoadingMarker is shown while an AI request is in flight.
const LoadingMarker = "Thinking..."

// DefaultHideDelay defers popover hide signals past the current event.
const DefaultHideDelay = 40 * time.Millisecond

// Options configure a Session. Zero values pick defaults.
type Options struct {
	Hub       *eventbus.Hub
	HideDelay time.Duration
	// AIEnabled gates AI command detection. Nil means disabled.
	AIEnabled func() bool
	// OnChange receives the full text after every content change.
	OnChange func(text string)
}

// State is a read-only copy of what the editor shows.
type State struct {
	Lines   []string
	Caret   Pos
	Mode    ViewMode
	Loading bool
	Focused bool
}

// Session is the editor component other parts of the program address.
type Session struct {
	hub       *eventbus.Hub
	hideDelay time.Duration
	aiEnabled func() bool
	onChange  func(string)

	mu         sync.Mutex
	doc        *Document
	tracker    Tracker
	tagVisible bool
	aiVisible  bool
	loading    bool
	focused    bool
	mode       ViewMode
	hideTimers map[string]*time.Timer
	hideGen    map[string]uint64

	// signalMu serialises popover show and deferred hide emits. It is never
	// taken while mu is held.
	signalMu sync.Mutex

	subs eventbus.Group
}

// NewSession creates a session holding text.
func NewSession(text string, opts Options) *Session {
	if opts.Hub == nil {
		opts.Hub = eventbus.Default
	}
	if opts.HideDelay <= 0 {
		opts.HideDelay = DefaultHideDelay
	}
	if opts.AIEnabled == nil {
		opts.AIEnabled = func() bool { return false }
	}
	if opts.OnChange == nil {
		opts.OnChange = func(string) {}
	}
	return &Session{
		hub:        opts.Hub,
		hideDelay:  opts.HideDelay,
		aiEnabled:  opts.AIEnabled,
		onChange:   opts.OnChange,
		doc:        NewDocument(text),
		mode:       ModeRichText,
		hideTimers: make(map[string]*time.Timer),
		hideGen:    make(map[string]uint64),
	}
}

// Mount subscribes the session to editor and popover events.
func (s *Session) Mount() {
	h := s.hub
	s.subs.Add(eventbus.On(h, EvInsert, func(text string) { s.InsertAtCursor(text) }))
	s.subs.Add(eventbus.On(h, EvReplace, func(r ReplaceRequest) { s.ReplaceToken(r.Text, r.ForceFocus) }))
	s.subs.Add(eventbus.On(h, EvClear, func(struct{}) { s.Clear() }))
	s.subs.Add(eventbus.On(h, EvDeleteLastChar, func(struct{}) { s.DeleteLastChar() }))
	s.subs.Add(eventbus.On(h, EvFocus, func(force bool) { s.Focus(force) }))
	s.subs.Add(eventbus.On(h, EvSetLoading, func(active bool) { s.SetLoading(active) }))
	s.subs.Add(eventbus.On(h, EvSetViewMode, func(m ViewMode) { s.SetViewMode(m) }))

	s.subs.Add(eventbus.On(h, TagSelectShow, func(string) { s.setFlag(&s.tagVisible, true) }))
	s.subs.Add(eventbus.On(h, TagSelectHidden, func(struct{}) { s.setFlag(&s.tagVisible, false) }))
	s.subs.Add(eventbus.On(h, AIWriteShow, func(struct{}) { s.setFlag(&s.aiVisible, true) }))
	s.subs.Add(eventbus.On(h, AIWriteHidden, func(struct{}) { s.setFlag(&s.aiVisible, false) }))
}

// Unmount drops every subscription and pending hide signal.
func (s *Session) Unmount() {
	s.subs.Close()
	s.mu.Lock()
	for name, t := range s.hideTimers {
		t.Stop()
		s.hideGen[name]++
		delete(s.hideTimers, name)
	}
	s.mu.Unlock()
}

func (s *Session) setFlag(flag *bool, v bool) {
	s.mu.Lock()
	*flag = v
	s.mu.Unlock()
}

// PopoverVisible reports whether the tag or AI popover is showing.
func (s *Session) PopoverVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tagVisible || s.aiVisible
}

// TagPopoverVisible reports whether the tag popover is showing.
func (s *Session) TagPopoverVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tagVisible
}

// Text returns the buffer contents.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Text()
}

// State returns a copy of the visible editor state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Lines:   s.doc.Lines(),
		Caret:   s.doc.Caret(),
		Mode:    s.mode,
		Loading: s.loading,
		Focused: s.focused,
	}
}

// Snapshot returns the last cursor snapshot.
func (s *Session) Snapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Last()
}

// Edit runs fn against the document. When the text changed, the change is
// propagated and triggers are re-detected.
func (s *Session) Edit(fn func(d *Document)) {
	s.mu.Lock()
	before := s.doc.Text()
	fn(s.doc)
	after := s.doc.Text()
	s.mu.Unlock()

	if before == after {
		return
	}
	s.onChange(after)
	s.HandleChange()
}

// HandleChange captures the cursor and runs trigger detection. It schedules
// hide signals for popovers whose trigger no longer holds.
func (s *Session) HandleChange() {
	s.mu.Lock()
	snap := s.tracker.Capture(s.doc, s.tagVisible || s.aiVisible)
	preceding := s.doc.Preceding()
	if !(s.tagVisible || s.aiVisible) {
		preceding = snap.Text
	}
	s.mu.Unlock()

	ai := s.aiEnabled()
	trig := Detect(preceding, ai)

	if trig.Kind == TriggerTag {
		s.show(TagSelectHidden, func() { eventbus.Emit(s.hub, TagSelectShow, trig.Query) })
	} else {
		s.scheduleHide(TagSelectHidden)
	}

	if !ai {
		return
	}
	if trig.Kind == TriggerAI {
		s.show(AIWriteHidden, func() { eventbus.Emit(s.hub, AIWriteShow, struct{}{}) })
	} else {
		s.scheduleHide(AIWriteHidden)
	}
}

// scheduleHide emits k after the hide delay unless a show or a newer hide
// for the same popover comes first.
func (s *Session) scheduleHide(k eventbus.Key[struct{}]) {
	name := k.Name()
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.hideTimers[name]; ok {
		t.Stop()
	}
	s.hideGen[name]++
	gen := s.hideGen[name]
	s.hideTimers[name] = time.AfterFunc(s.hideDelay, func() { s.fireHide(k, gen) })
}

// fireHide emits a deferred hide if it is still the latest request for k.
// signalMu orders it against show, so a timer that fired before being
// cancelled can never emit after the show that cancelled it.
func (s *Session) fireHide(k eventbus.Key[struct{}], gen uint64) {
	s.signalMu.Lock()
	defer s.signalMu.Unlock()

	s.mu.Lock()
	current := s.hideGen[k.Name()] == gen
	if current {
		delete(s.hideTimers, k.Name())
	}
	s.mu.Unlock()
	if current {
		eventbus.Emit(s.hub, k, struct{}{})
	}
}

// show invalidates any pending hide of the popover closed by hidden, then
// runs emit.
func (s *Session) show(hidden eventbus.Key[struct{}], emit func()) {
	s.signalMu.Lock()
	defer s.signalMu.Unlock()
	s.cancelHide(hidden.Name())
	emit()
}

func (s *Session) cancelHide(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideGen[name]++
	if t, ok := s.hideTimers[name]; ok {
		t.Stop()
		delete(s.hideTimers, name)
	}
}

// ReplaceToken swaps the trailing tag of the last snapshot for "#text" plus
// a non-breaking space on the snapshot's line. Nothing changes when that line
// no longer starts with the snapshot text.
func (s *Session) ReplaceToken(text string, forceFocus bool) {
	s.mu.Lock()
	snap, ok := s.tracker.Last()
	if !ok {
		s.mu.Unlock()
		return
	}
	next, changed := ReplaceTrailingTag(snap, s.doc.Text(), text)
	if !changed {
		s.mu.Unlock()
		log.Debug("editor: snapshot %q at line %d no longer in buffer", snap.Text, snap.Range.Line)
		return
	}
	s.doc.SetText(next)
	s.focusLocked(forceFocus)
	s.mu.Unlock()

	s.onChange(next)
}

// Insert appends text at the end of the buffer and focuses the end.
func (s *Session) Insert(text string) {
	s.mu.Lock()
	s.doc.MoveToEnd()
	s.doc.InsertText(text)
	s.focused = true
	out := s.doc.Text()
	s.mu.Unlock()

	s.onChange(out)
}

// InsertAtCursor inserts text at the caret.
func (s *Session) InsertAtCursor(text string) {
	s.mu.Lock()
	s.doc.InsertText(text)
	s.focused = true
	out := s.doc.Text()
	s.mu.Unlock()

	s.onChange(out)
}

// InsertHash inserts " #" at the caret and opens tag detection.
func (s *Session) InsertHash() {
	s.InsertAtCursor(" #")
	s.HandleChange()
}

// DeleteLastChar removes exactly one trailing character of the buffer.
func (s *Session) DeleteLastChar() {
	s.mu.Lock()
	s.doc.TrimLastRune()
	out := s.doc.Text()
	s.mu.Unlock()

	s.onChange(out)
}

// SetLoading appends or removes the loading marker. Deactivation removes
// every occurrence of the marker.
func (s *Session) SetLoading(active bool) {
	s.mu.Lock()
	s.loading = active
	if active {
		s.doc.MoveToEnd()
		s.doc.InsertText(LoadingMarker)
	} else if text := s.doc.Text(); strings.Contains(text, LoadingMarker) {
		s.doc.SetText(strings.ReplaceAll(text, LoadingMarker, ""))
	}
	s.focusLocked(false)
	out := s.doc.Text()
	s.mu.Unlock()

	s.onChange(out)
}

// Clear empties the buffer and focuses it.
func (s *Session) Clear() {
	s.mu.Lock()
	s.doc.SetText("")
	s.tracker.Reset()
	s.focusLocked(false)
	s.mu.Unlock()

	s.onChange("")
}

// Focus restores the caret. With force and a snapshot present, the caret
// goes to the end of the last non-empty line; otherwise to document end.
func (s *Session) Focus(force bool) {
	s.mu.Lock()
	s.focusLocked(force)
	out := s.doc.Text()
	s.mu.Unlock()

	s.onChange(out)
}

func (s *Session) focusLocked(force bool) {
	s.focused = true
	if _, ok := s.tracker.Last(); force && ok {
		s.doc.MoveToLastText()
		return
	}
	s.doc.MoveToEnd()
}

// Blur marks the editor unfocused.
func (s *Session) Blur() {
	s.setFlag(&s.focused, false)
}

// SetViewMode switches between rich-text and source presentation.
func (s *Session) SetViewMode(m ViewMode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// ViewMode returns the current presentation mode.
func (s *Session) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Undo reverts the last edit.
func (s *Session) Undo() {
	s.mu.Lock()
	ok := s.doc.Undo()
	out := s.doc.Text()
	s.mu.Unlock()

	if ok {
		s.onChange(out)
	}
}
