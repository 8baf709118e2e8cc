// ABOUTME: AIPopoverModel offers the AI writing modes after a "/" at line start
// ABOUTME: Custom switches to a prompt input; the caller runs the request

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/blinko-go/internal/api"
)

// AIEntry is one writing mode.
type AIEntry struct {
	Kind  api.WriteKind
	Label string
}

// AISelectMsg is returned when the user picks a mode. Prompt is set for
// custom requests.
type AISelectMsg struct {
	Kind   api.WriteKind
	Prompt string
}

// AIDismissMsg is returned when the user presses escape.
type AIDismissMsg struct{}

// AIPopoverModel lists AI writing modes with wrapping navigation.
type AIPopoverModel struct {
	entries   []AIEntry
	selected  int
	prompting bool
	input     textinput.Model
}

// NewAIPopoverModel builds the popover from translated labels.
func NewAIPopoverModel(tr Translator) AIPopoverModel {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = tr.T("ai-custom-prompt")
	in.CharLimit = 500
	in.Width = 40
	return AIPopoverModel{
		entries: []AIEntry{
			{Kind: api.WriteExpand, Label: tr.T("ai-expand")},
			{Kind: api.WritePolish, Label: tr.T("ai-polish")},
			{Kind: api.WriteSummary, Label: tr.T("ai-summary")},
			{Kind: api.WriteCustom, Label: tr.T("ai-custom")},
		},
		input: in,
	}
}

func (m AIPopoverModel) Init() tea.Cmd { return nil }

// Update navigates the list, or edits the custom prompt once chosen.
func (m AIPopoverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.prompting {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.prompting {
		switch key.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return AIDismissMsg{} }
		case tea.KeyEnter:
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" {
				return m, nil
			}
			return m, func() tea.Msg { return AISelectMsg{Kind: api.WriteCustom, Prompt: prompt} }
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyUp:
		m.selected = (m.selected - 1 + len(m.entries)) % len(m.entries)
	case tea.KeyDown, tea.KeyTab:
		m.selected = (m.selected + 1) % len(m.entries)
	case tea.KeyEnter:
		kind := m.entries[m.selected].Kind
		if kind == api.WriteCustom {
			m.prompting = true
			return m, m.input.Focus()
		}
		return m, func() tea.Msg { return AISelectMsg{Kind: kind} }
	case tea.KeyEsc:
		return m, func() tea.Msg { return AIDismissMsg{} }
	}
	return m, nil
}

// Handles reports whether key belongs to the popover. While the custom
// prompt is open every key does.
func (m AIPopoverModel) Handles(key tea.KeyMsg) bool {
	if m.prompting {
		return true
	}
	switch key.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyTab, tea.KeyEnter, tea.KeyEsc:
		return true
	}
	return false
}

// Prompting reports whether the custom prompt input is open.
func (m AIPopoverModel) Prompting() bool { return m.prompting }

// Selected returns the highlighted mode.
func (m AIPopoverModel) Selected() api.WriteKind { return m.entries[m.selected].Kind }

func (m AIPopoverModel) View() string {
	s := Styles()
	if m.prompting {
		return s.Popover.Render(m.input.View())
	}
	lines := make([]string, len(m.entries))
	for i, e := range m.entries {
		line := padRight(" "+e.Label, 18)
		if i == m.selected {
			line = s.Bold.Render(s.Selection.Render(line))
		} else {
			line = s.Dim.Render(line)
		}
		lines[i] = line
	}
	return s.Popover.Render(strings.Join(lines, "\n"))
}
