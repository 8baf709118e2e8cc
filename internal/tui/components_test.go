// ABOUTME: Tests for the popovers, action menu, sign-in form, settings page and note list
// ABOUTME: Feeds key messages and inspects the messages returned by commands

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/i18n"
	"github.com/mauromedda/blinko-go/internal/notes"
)

var (
	_ tea.Model = TagPopoverModel{}
	_ tea.Model = AIPopoverModel{}
	_ tea.Model = MenuModel{}
	_ tea.Model = SignInModel{}
	_ tea.Model = SettingsModel{}
	_ tea.Model = NoteListModel{}
)

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

// step applies msg to a leaf model and returns the model and the message
// its command produced, if any.
func step[M tea.Model](t *testing.T, m M, msg tea.Msg) (M, tea.Msg) {
	t.Helper()
	updated, cmd := m.Update(msg)
	var out tea.Msg
	if cmd != nil {
		out = cmd()
	}
	return updated.(M), out
}

func TestTagPopoverModel_Navigation(t *testing.T) {
	t.Parallel()
	m := NewTagPopoverModel("wo", []string{"work", "world", "wood"}, "none")

	tests := []struct {
		name string
		key  tea.KeyType
		want string
	}{
		{"down", tea.KeyDown, "world"},
		{"down again", tea.KeyDown, "wood"},
		{"wraps down", tea.KeyDown, "work"},
		{"wraps up", tea.KeyUp, "wood"},
	}
	for _, tt := range tests {
		m, _ = step(t, m, key(tt.key))
		if got := m.Selected(); got != tt.want {
			t.Fatalf("%s: Selected() = %q, want %q", tt.name, got, tt.want)
		}
	}

	_, out := step(t, m, key(tea.KeyTab))
	if sel, ok := out.(TagSelectMsg); !ok || sel.Tag != "wood" {
		t.Errorf("tab = %#v, want TagSelectMsg{wood}", out)
	}
}

func TestTagPopoverModel_EmptyAndEscape(t *testing.T) {
	t.Parallel()
	m := NewTagPopoverModel("zz", nil, "No tags")

	if v := m.View(); !strings.Contains(v, "No tags") || !strings.Contains(v, "#zz") {
		t.Errorf("View() = %q", v)
	}
	if _, out := step(t, m, key(tea.KeyEnter)); out != (TagDismissMsg{}) {
		t.Errorf("enter with no items = %#v, want dismiss", out)
	}
	if _, out := step(t, m, key(tea.KeyEsc)); out != (TagDismissMsg{}) {
		t.Errorf("esc = %#v, want dismiss", out)
	}
	if m.Handles(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}) {
		t.Error("popover should not own rune keys")
	}
}

func TestAIPopoverModel_Select(t *testing.T) {
	t.Parallel()
	m := NewAIPopoverModel(i18n.MustNew("en"))

	m, _ = step(t, m, key(tea.KeyDown))
	_, out := step(t, m, key(tea.KeyEnter))
	if sel, ok := out.(AISelectMsg); !ok || sel.Kind != api.WritePolish {
		t.Errorf("enter = %#v, want polish", out)
	}
	if _, out := step(t, m, key(tea.KeyEsc)); out != (AIDismissMsg{}) {
		t.Errorf("esc = %#v", out)
	}
}

func TestAIPopoverModel_CustomPrompt(t *testing.T) {
	t.Parallel()
	m := NewAIPopoverModel(i18n.MustNew("en"))

	m, _ = step(t, m, key(tea.KeyUp))
	if m.Selected() != api.WriteCustom {
		t.Fatalf("Selected() = %q, want custom", m.Selected())
	}
	m, _ = step(t, m, key(tea.KeyEnter))
	if !m.Prompting() {
		t.Fatal("enter on custom should open the prompt")
	}
	if !m.Handles(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}) {
		t.Error("prompt should own every key")
	}

	if _, out := step(t, m, key(tea.KeyEnter)); out != nil {
		t.Errorf("empty prompt submitted %#v", out)
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("make it rhyme")})
	_, out := step(t, m, key(tea.KeyEnter))
	sel, ok := out.(AISelectMsg)
	if !ok || sel.Kind != api.WriteCustom || sel.Prompt != "make it rhyme" {
		t.Errorf("submit = %#v", out)
	}
}

func TestMenuModel(t *testing.T) {
	t.Parallel()
	tr := i18n.MustNew("en")
	items := notes.Menu(api.Note{ID: 1}, false, false)
	m := NewMenuModel(items, tr)

	m, _ = step(t, m, key(tea.KeyUp))
	if got := m.Selected().Kind; got != notes.ActDelete {
		t.Fatalf("up from first = %v, want delete", got)
	}
	_, out := step(t, m, key(tea.KeyEnter))
	if sel, ok := out.(MenuSelectMsg); !ok || sel.Kind != notes.ActDelete {
		t.Errorf("enter = %#v", out)
	}
	if _, out := step(t, m, key(tea.KeyEsc)); out != (MenuDismissMsg{}) {
		t.Errorf("esc = %#v", out)
	}
	if v := m.View(); !strings.Contains(v, "Edit") || !strings.Contains(v, "Delete") {
		t.Errorf("View() = %q", v)
	}
}

func TestSignInModel_Submit(t *testing.T) {
	t.Parallel()
	m := NewSignInModel(i18n.MustNew("en"), "ada", "")

	m, out := step(t, m, key(tea.KeyEnter))
	if out != nil {
		if _, ok := out.(SignInSubmitMsg); ok {
			t.Fatal("enter on username should move focus, not submit")
		}
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pw")})
	m, out = step(t, m, key(tea.KeyEnter))
	sub, ok := out.(SignInSubmitMsg)
	if !ok || sub.Username != "ada" || sub.Password != "pw" {
		t.Fatalf("submit = %#v", out)
	}
	if _, out := step(t, m, key(tea.KeyEnter)); out != nil {
		t.Errorf("second enter while busy = %#v", out)
	}
	if v := m.Done().SetCanRegister(true).View(); !strings.Contains(v, "Need to create an account?") {
		t.Errorf("View() missing sign-up hint")
	}
}

func TestSettingsModel_Cycle(t *testing.T) {
	t.Parallel()
	m := NewSettingsModel(i18n.MustNew("en"), "en", ThemeDark)

	_, out := step(t, m, key(tea.KeyRight))
	if lc, ok := out.(LocaleChangeMsg); !ok || lc.Value != "zh" {
		t.Errorf("right on language = %#v, want zh", out)
	}
	_, out = step(t, m, key(tea.KeyLeft))
	if lc, ok := out.(LocaleChangeMsg); !ok || lc.Value != "ja" {
		t.Errorf("left on language = %#v, want ja", out)
	}

	m, _ = step(t, m, key(tea.KeyDown))
	_, out = step(t, m, key(tea.KeyEnter))
	if _, ok := out.(ThemeChangeMsg); !ok {
		t.Errorf("enter on theme = %#v", out)
	}
}

func TestSettingsModel_Import(t *testing.T) {
	t.Parallel()
	m := NewSettingsModel(i18n.MustNew("en"), "en", ThemeDark)

	m, _ = step(t, m, key(tea.KeyDown))
	m, _ = step(t, m, key(tea.KeyDown))
	m, _ = step(t, m, key(tea.KeyEnter))
	if !m.Editing() {
		t.Fatal("enter on import row should ask for a path")
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/tmp/backup.bko")})
	m, out := step(t, m, key(tea.KeyEnter))
	req, ok := out.(ImportRequestMsg)
	if !ok || req.Kind != api.ImportBlinko || req.Path != "/tmp/backup.bko" {
		t.Fatalf("submit = %#v", out)
	}
	if !m.Running() || m.Editing() {
		t.Errorf("running = %v, editing = %v", m.Running(), m.Editing())
	}

	for i := range maxProgressLines + 2 {
		m = m.AddProgress(api.ImportProgress{Type: "info", Content: "row", Current: i + 1, Total: 10})
	}
	if len(m.progress) != maxProgressLines {
		t.Errorf("progress lines = %d, want %d", len(m.progress), maxProgressLines)
	}
	if v := m.Finish().View(); strings.Contains(v, "Importing...") {
		t.Error("finished import still shows the running label")
	}
}

func TestNoteListModel_KeepsSelectionByID(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	m := NewNoteListModel(i18n.MustNew("en")).SetNotes([]api.Note{
		{ID: 1, Content: "one", CreatedAt: now},
		{ID: 2, Content: "two", CreatedAt: now},
		{ID: 3, Content: "three", CreatedAt: now},
	})

	m, _ = step(t, m, key(tea.KeyDown))
	m = m.SetNotes([]api.Note{
		{ID: 4, Content: "four", CreatedAt: now},
		{ID: 1, Content: "one", CreatedAt: now},
		{ID: 2, Content: "two", CreatedAt: now},
	})
	if n, _ := m.Selected(); n.ID != 2 {
		t.Errorf("selected id = %d, want 2", n.ID)
	}

	m = m.SetNotes(nil)
	if _, ok := m.Selected(); ok {
		t.Error("empty list should have no selection")
	}
	if v := m.View(); !strings.Contains(v, "Nothing here yet") {
		t.Errorf("View() = %q", v)
	}
}

func TestNoteListModel_Links(t *testing.T) {
	t.Parallel()
	m := NewNoteListModel(i18n.MustNew("en")).SetNotes([]api.Note{
		{ID: 1, Content: "see https://a.example and https://b.example"},
		{ID: 2, Content: "again https://a.example"},
	})
	if got := m.Links(); len(got) != 2 {
		t.Fatalf("Links() = %v", got)
	}
	m = m.SetPreviews(map[string]api.LinkPreview{"https://a.example": {Title: "A"}})
	got := m.Links()
	if len(got) != 1 || got[0] != "https://b.example" {
		t.Errorf("Links() after preview = %v", got)
	}
	if v := m.SetSize(60, 40).View(); !strings.Contains(v, "↗ A") {
		t.Errorf("View() missing preview title")
	}
}
