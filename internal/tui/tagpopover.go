// ABOUTME: TagPopoverModel lists tag completions for the "#query" under the caret
// ABOUTME: Items arrive pre-ranked from the tag catalog; the model only navigates and picks

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const maxTagPopoverVisible = 8

// TagSelectMsg is returned when the user picks a tag.
type TagSelectMsg struct{ Tag string }

// TagDismissMsg is returned when the user closes the popover.
type TagDismissMsg struct{}

// TagPopoverModel is a small list anchored under the compose box.
type TagPopoverModel struct {
	query     string
	items     []string
	selected  int
	scrollOff int
	maxHeight int
	width     int
	empty     string
}

// NewTagPopoverModel shows items for query. empty is shown when nothing matches.
func NewTagPopoverModel(query string, items []string, empty string) TagPopoverModel {
	return TagPopoverModel{
		query:     query,
		items:     items,
		maxHeight: maxTagPopoverVisible,
		width:     32,
		empty:     empty,
	}
}

func (m TagPopoverModel) Init() tea.Cmd { return nil }

// Update handles navigation keys. Other keys are the caller's business.
func (m TagPopoverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyUp:
		m.move(-1)
	case tea.KeyDown:
		m.move(1)
	case tea.KeyEnter, tea.KeyTab:
		if tag := m.Selected(); tag != "" {
			return m, func() tea.Msg { return TagSelectMsg{Tag: tag} }
		}
		return m, func() tea.Msg { return TagDismissMsg{} }
	case tea.KeyEsc:
		return m, func() tea.Msg { return TagDismissMsg{} }
	}
	return m, nil
}

// Handles reports whether key belongs to the popover.
func (m TagPopoverModel) Handles(key tea.KeyMsg) bool {
	switch key.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyEnter, tea.KeyTab, tea.KeyEsc:
		return true
	}
	return false
}

// View renders the header and the visible window of items.
func (m TagPopoverModel) View() string {
	s := Styles()
	lines := []string{s.Tag.Render("#" + m.query)}
	if len(m.items) == 0 {
		lines = append(lines, s.Dim.Render(m.empty))
	}
	end := min(m.scrollOff+m.maxHeight, len(m.items))
	for i := m.scrollOff; i < end; i++ {
		line := truncateWidth("#"+m.items[i], m.width)
		if i == m.selected {
			line = s.Bold.Render(s.Selection.Render(padRight(line, m.width)))
		}
		lines = append(lines, line)
	}
	return s.Popover.Render(strings.Join(lines, "\n"))
}

// Query returns the text after '#' the items were matched against.
func (m TagPopoverModel) Query() string { return m.query }

// Items returns the candidates in display order.
func (m TagPopoverModel) Items() []string { return m.items }

// Selected returns the highlighted tag, or "" with no items.
func (m TagPopoverModel) Selected() string {
	if len(m.items) == 0 {
		return ""
	}
	return m.items[m.selected]
}

func (m *TagPopoverModel) move(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.selected = (m.selected + delta + len(m.items)) % len(m.items)
	if m.selected < m.scrollOff {
		m.scrollOff = m.selected
	}
	if m.selected >= m.scrollOff+m.maxHeight {
		m.scrollOff = m.selected - m.maxHeight + 1
	}
}
