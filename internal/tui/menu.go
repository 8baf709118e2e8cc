// ABOUTME: MenuModel is the per-note action overlay
// ABOUTME: Entries come from notes.Menu; the root runs the chosen action

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/blinko-go/internal/notes"
)

// MenuSelectMsg is returned when the user runs an entry.
type MenuSelectMsg struct{ Kind notes.ActionKind }

// MenuDismissMsg is returned when the user closes the menu.
type MenuDismissMsg struct{}

// MenuModel lists note actions.
type MenuModel struct {
	items    []notes.Action
	labels   []string
	selected int
}

// NewMenuModel builds the menu with translated labels.
func NewMenuModel(items []notes.Action, tr Translator) MenuModel {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label(tr)
	}
	return MenuModel{items: items, labels: labels}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		m.selected = (m.selected - 1 + len(m.items)) % len(m.items)
	case "down", "j", "tab":
		m.selected = (m.selected + 1) % len(m.items)
	case "enter":
		kind := m.items[m.selected].Kind
		return m, func() tea.Msg { return MenuSelectMsg{Kind: kind} }
	case "esc", "q":
		return m, func() tea.Msg { return MenuDismissMsg{} }
	}
	return m, nil
}

// Selected returns the highlighted action.
func (m MenuModel) Selected() notes.Action {
	return m.items[m.selected]
}

func (m MenuModel) View() string {
	s := Styles()
	w := 0
	for _, l := range m.labels {
		w = max(w, visibleWidth(l))
	}
	lines := make([]string, len(m.items))
	for i, it := range m.items {
		line := padRight(" "+m.labels[i]+" ", w+2)
		switch {
		case i == m.selected:
			line = s.Bold.Render(s.Selection.Render(line))
		case it.Danger:
			line = s.Error.Render(line)
		}
		lines[i] = line
	}
	return s.Popover.Render(strings.Join(lines, "\n"))
}
