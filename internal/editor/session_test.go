// ABOUTME: Tests for the editor session: mutations, trigger signals and event wiring
// ABOUTME: Each test uses its own event hub so parallel tests never share subscribers

package editor

import (
	"sync"
	"testing"
	"time"

	"github.com/mauromedda/blinko-go/internal/eventbus"
)

type signals struct {
	tagShow   chan string
	tagHidden chan struct{}
	aiShow    chan struct{}
	aiHidden  chan struct{}
}

func listen(t *testing.T, h *eventbus.Hub) *signals {
	t.Helper()
	s := &signals{
		tagShow:   make(chan string, 16),
		tagHidden: make(chan struct{}, 16),
		aiShow:    make(chan struct{}, 16),
		aiHidden:  make(chan struct{}, 16),
	}
	var g eventbus.Group
	g.Add(eventbus.On(h, TagSelectShow, func(q string) { s.tagShow <- q }))
	g.Add(eventbus.On(h, TagSelectHidden, func(struct{}) { s.tagHidden <- struct{}{} }))
	g.Add(eventbus.On(h, AIWriteShow, func(struct{}) { s.aiShow <- struct{}{} }))
	g.Add(eventbus.On(h, AIWriteHidden, func(struct{}) { s.aiHidden <- struct{}{} }))
	t.Cleanup(g.Close)
	return s
}

func newTestSession(t *testing.T, text string, ai bool) (*Session, *eventbus.Hub) {
	t.Helper()
	h := eventbus.NewHub()
	s := NewSession(text, Options{
		Hub:       h,
		HideDelay: 5 * time.Millisecond,
		AIEnabled: func() bool { return ai },
	})
	s.Mount()
	t.Cleanup(s.Unmount)
	return s, h
}

func typeAt(s *Session, caret Pos, text string) {
	s.Edit(func(d *Document) {
		d.SetCaret(caret)
		d.InsertText(text)
	})
}

func TestSession_ReplaceToken(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "see #h and more", false)

	typeAt(s, Pos{0, 6}, "e")
	snap, ok := s.Snapshot()
	if !ok || snap.Text != "see #he" {
		t.Fatalf("snapshot = %+v (ok=%v)", snap, ok)
	}

	s.ReplaceToken("hello", false)
	if got := s.Text(); got != "see #hello\u00a0and more" {
		t.Errorf("Text() = %q", got)
	}
}

func TestSession_ReplaceTokenTargetsSnapshotLine(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "#hello world\n", false)

	typeAt(s, Pos{1, 0}, "#he")
	s.ReplaceToken("help", false)
	if got := s.Text(); got != "#hello world\n#help\u00a0" {
		t.Errorf("Text() = %q", got)
	}
}

func TestSession_ReplaceTokenWithoutSnapshot(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "see #he", false)
	s.ReplaceToken("hello", true)
	if got := s.Text(); got != "see #he" {
		t.Errorf("Text() = %q, want unchanged", got)
	}
}

func TestSession_ReplaceTokenForceFocus(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "#a\n\n", false)
	typeAt(s, Pos{0, 2}, "b")

	s.ReplaceToken("abc", true)
	st := s.State()
	if st.Lines[0] != "#abc\u00a0" {
		t.Fatalf("line 0 = %q", st.Lines[0])
	}
	if st.Caret != (Pos{0, 5}) {
		t.Errorf("caret = %+v, want end of last text line", st.Caret)
	}
}

func TestSession_DeleteLastChar(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "hello", false)
	s.DeleteLastChar()
	if got := s.Text(); got != "hell" {
		t.Errorf("Text() = %q, want hell", got)
	}
}

func TestSession_LoadingRoundTrip(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "", false)
	s.SetLoading(true)
	if got := s.Text(); got != LoadingMarker {
		t.Fatalf("Text() while loading = %q", got)
	}
	if !s.State().Loading {
		t.Error("State().Loading = false while loading")
	}
	s.SetLoading(false)
	if got := s.Text(); got != "" {
		t.Errorf("Text() after loading = %q, want empty", got)
	}
}

func TestSession_LoadingAppendsAtEnd(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "hello world", false)
	s.Edit(func(d *Document) { d.SetCaret(Pos{0, 5}) })

	s.SetLoading(true)
	if got := s.Text(); got != "hello world"+LoadingMarker {
		t.Fatalf("Text() while loading = %q", got)
	}
	s.SetLoading(false)
	if got := s.Text(); got != "hello world" {
		t.Errorf("Text() after loading = %q", got)
	}
}

func TestSession_LoadingRemovesEveryMarker(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "a Thinking... b Thinking...", false)
	s.SetLoading(false)
	if got := s.Text(); got != "a  b " {
		t.Errorf("Text() = %q", got)
	}
}

func TestSession_InsertAppendsAtEnd(t *testing.T) {
	t.Parallel()
	var changes []string
	h := eventbus.NewHub()
	s := NewSession("ab", Options{Hub: h, OnChange: func(t string) { changes = append(changes, t) }})
	s.Edit(func(d *Document) { d.SetCaret(Pos{0, 0}) })

	s.Insert("cd")
	if got := s.Text(); got != "abcd" {
		t.Errorf("Text() = %q", got)
	}
	if len(changes) != 1 || changes[0] != "abcd" {
		t.Errorf("changes = %q", changes)
	}
}

func TestSession_TagSignals(t *testing.T) {
	t.Parallel()
	s, h := newTestSession(t, "", false)
	sig := listen(t, h)

	typeAt(s, Pos{}, "note #Wo")
	select {
	case q := <-sig.tagShow:
		if q != "wo" {
			t.Errorf("query = %q, want wo", q)
		}
	case <-time.After(time.Second):
		t.Fatal("no tagselect:show")
	}
	if !s.TagPopoverVisible() {
		t.Error("session did not observe its own show signal")
	}

	typeAt(s, s.State().Caret, " ")
	select {
	case <-sig.tagHidden:
	case <-time.After(time.Second):
		t.Fatal("no deferred tagselect:hidden")
	}
	deadline := time.Now().Add(time.Second)
	for s.TagPopoverVisible() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if s.TagPopoverVisible() {
		t.Error("tag popover still visible after hide")
	}
}

func TestSession_ShowCancelsPendingHide(t *testing.T) {
	t.Parallel()
	h := eventbus.NewHub()
	s := NewSession("", Options{Hub: h, HideDelay: 30 * time.Millisecond})
	s.Mount()
	t.Cleanup(s.Unmount)
	sig := listen(t, h)

	typeAt(s, Pos{}, "x")
	typeAt(s, Pos{0, 1}, " #")
	<-sig.tagShow

	select {
	case <-sig.tagHidden:
		t.Error("stale hide fired after show")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestSession_HideOutrunByShowIsDropped(t *testing.T) {
	t.Parallel()
	h := eventbus.NewHub()
	s := NewSession("", Options{Hub: h, HideDelay: time.Hour})
	t.Cleanup(s.Unmount)
	sig := listen(t, h)

	hideGen := func() uint64 {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.hideGen[TagSelectHidden.Name()]
	}

	// A timer whose callback already started when show cancelled it.
	s.scheduleHide(TagSelectHidden)
	stale := hideGen()
	s.show(TagSelectHidden, func() {})
	s.fireHide(TagSelectHidden, stale)
	select {
	case <-sig.tagHidden:
		t.Fatal("hide emitted after the show that cancelled it")
	default:
	}

	s.scheduleHide(TagSelectHidden)
	s.fireHide(TagSelectHidden, hideGen())
	select {
	case <-sig.tagHidden:
	default:
		t.Error("current hide was not emitted")
	}
}

func TestSession_TagWinsOverAICommand(t *testing.T) {
	t.Parallel()
	s, h := newTestSession(t, "", true)
	sig := listen(t, h)

	typeAt(s, Pos{}, "#a/")
	select {
	case q := <-sig.tagShow:
		if q != "a/" {
			t.Errorf("query = %q", q)
		}
	case <-time.After(time.Second):
		t.Fatal("no tagselect:show")
	}
	select {
	case <-sig.aiShow:
		t.Error("ai popover shown alongside the tag popover")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestSession_AISignals(t *testing.T) {
	t.Parallel()

	t.Run("enabled", func(t *testing.T) {
		t.Parallel()
		s, h := newTestSession(t, "", true)
		sig := listen(t, h)
		typeAt(s, Pos{}, "go/")
		select {
		case <-sig.aiShow:
		case <-time.After(time.Second):
			t.Fatal("no aiwrite:show")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		s, h := newTestSession(t, "", false)
		sig := listen(t, h)
		typeAt(s, Pos{}, "go/")
		select {
		case <-sig.aiShow:
			t.Fatal("aiwrite:show with AI disabled")
		case <-time.After(30 * time.Millisecond):
		}
	})
}

func TestSession_InsertHashOpensTagPopover(t *testing.T) {
	t.Parallel()
	s, h := newTestSession(t, "idea", false)
	sig := listen(t, h)

	s.InsertHash()
	if got := s.Text(); got != "idea #" {
		t.Errorf("Text() = %q", got)
	}
	select {
	case q := <-sig.tagShow:
		if q != "" {
			t.Errorf("query = %q, want empty", q)
		}
	case <-time.After(time.Second):
		t.Fatal("no tagselect:show")
	}
}

func TestSession_EventsDriveMutations(t *testing.T) {
	t.Parallel()
	s, h := newTestSession(t, "", false)

	eventbus.Emit(h, EvInsert, "hello")
	eventbus.Emit(h, EvDeleteLastChar, struct{}{})
	if got := s.Text(); got != "hell" {
		t.Errorf("after insert+delete = %q", got)
	}

	eventbus.Emit(h, EvSetViewMode, ModeSource)
	if s.ViewMode() != ModeSource {
		t.Errorf("ViewMode() = %q", s.ViewMode())
	}

	eventbus.Emit(h, EvSetLoading, true)
	eventbus.Emit(h, EvSetLoading, false)
	if got := s.Text(); got != "hell" {
		t.Errorf("after loading = %q", got)
	}

	eventbus.Emit(h, EvClear, struct{}{})
	if got := s.Text(); got != "" {
		t.Errorf("after clear = %q", got)
	}
}

func TestSession_UnmountStopsEvents(t *testing.T) {
	t.Parallel()
	h := eventbus.NewHub()
	s := NewSession("", Options{Hub: h})
	s.Mount()
	s.Unmount()

	eventbus.Emit(h, EvInsert, "ignored")
	if got := s.Text(); got != "" {
		t.Errorf("Text() = %q after unmount", got)
	}
	if n := eventbus.Listeners(h, EvInsert); n != 0 {
		t.Errorf("Listeners = %d, want 0", n)
	}
}

func TestSession_ConcurrentInserts(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "", false)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Insert("x")
		}()
	}
	wg.Wait()
	if got := len(s.Text()); got != 20 {
		t.Errorf("len(Text()) = %d, want 20", got)
	}
}
