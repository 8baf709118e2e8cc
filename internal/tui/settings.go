// ABOUTME: SettingsModel is the settings page: language, theme and data import
// ABOUTME: Import rows prompt for a file path; progress lines stream in from the root

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/importer"
	"github.com/mauromedda/blinko-go/internal/nav"
)

const maxProgressLines = 6

// LocaleChangeMsg asks the root to switch the UI language.
type LocaleChangeMsg struct{ Value string }

// ThemeChangeMsg asks the root to switch the palette.
type ThemeChangeMsg struct{ Name string }

// ImportRequestMsg asks the root to import a file.
type ImportRequestMsg struct {
	Kind api.ImportKind
	Path string
}

type settingsRow int

const (
	rowLanguage settingsRow = iota
	rowTheme
	rowImportBlinko
	rowImportMemos
	rowCount
)

// SettingsModel lists the editable preferences.
type SettingsModel struct {
	tr       Translator
	row      settingsRow
	locale   int
	theme    string
	input    textinput.Model
	asking   api.ImportKind
	running  bool
	progress []string
}

// NewSettingsModel starts with the given locale value and theme.
func NewSettingsModel(tr Translator, locale, theme string) SettingsModel {
	in := textinput.New()
	in.Prompt = "› "
	in.Width = 48
	m := SettingsModel{tr: tr, theme: theme, input: in}
	for i, l := range nav.Locales {
		if l.Value == locale {
			m.locale = i
		}
	}
	return m
}

func (m SettingsModel) Init() tea.Cmd { return nil }

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.asking != "" {
		return m.updateInput(key)
	}
	switch key.String() {
	case "up", "k":
		m.row = (m.row - 1 + rowCount) % rowCount
	case "down", "j", "tab":
		m.row = (m.row + 1) % rowCount
	case "left", "h":
		return m.cycle(-1)
	case "right", "l":
		return m.cycle(1)
	case "enter", " ":
		switch m.row {
		case rowLanguage, rowTheme:
			return m.cycle(1)
		case rowImportBlinko:
			return m.ask(api.ImportBlinko)
		case rowImportMemos:
			return m.ask(api.ImportMemos)
		}
	}
	return m, nil
}

func (m SettingsModel) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.asking = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		path := strings.Trim(strings.TrimSpace(m.input.Value()), `"'`)
		if path == "" {
			return m, nil
		}
		kind := m.asking
		m.asking = ""
		m.input.Blur()
		m.running = true
		m.progress = nil
		return m, func() tea.Msg { return ImportRequestMsg{Kind: kind, Path: path} }
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m SettingsModel) ask(kind api.ImportKind) (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	m.asking = kind
	m.input.SetValue("")
	m.input.Placeholder = "*" + importer.Extension(kind)
	return m, m.input.Focus()
}

func (m SettingsModel) cycle(delta int) (tea.Model, tea.Cmd) {
	switch m.row {
	case rowLanguage:
		n := len(nav.Locales)
		m.locale = (m.locale + delta + n) % n
		value := nav.Locales[m.locale].Value
		return m, func() tea.Msg { return LocaleChangeMsg{Value: value} }
	case rowTheme:
		m.theme = ThemeLight
		if CurrentTheme() == ThemeLight {
			m.theme = ThemeDark
		}
		name := m.theme
		return m, func() tea.Msg { return ThemeChangeMsg{Name: name} }
	}
	return m, nil
}

// Editing reports whether the path input has the keyboard.
func (m SettingsModel) Editing() bool { return m.asking != "" }

// SetTranslator swaps the catalogue after a language change.
func (m SettingsModel) SetTranslator(tr Translator) SettingsModel {
	m.tr = tr
	return m
}

// AddProgress appends one import progress line.
func (m SettingsModel) AddProgress(p api.ImportProgress) SettingsModel {
	line := p.Content
	if p.Total > 0 {
		line = fmt.Sprintf("[%d/%d] %s", p.Current, p.Total, p.Content)
	}
	if p.Type == "error" {
		line = Styles().Error.Render(line)
	}
	m.progress = append(m.progress, line)
	if len(m.progress) > maxProgressLines {
		m.progress = m.progress[len(m.progress)-maxProgressLines:]
	}
	return m
}

// Finish marks the running import as ended.
func (m SettingsModel) Finish() SettingsModel {
	m.running = false
	return m
}

// Running reports whether an import is in flight.
func (m SettingsModel) Running() bool { return m.running }

func (m SettingsModel) View() string {
	s := Styles()
	row := func(r settingsRow, label, value string) string {
		line := padRight(" "+label, 36) + value
		if r == m.row {
			return s.Bold.Render(s.Selection.Render(line + " "))
		}
		return line
	}
	theme := m.tr.T("dark")
	if CurrentTheme() == ThemeLight {
		theme = m.tr.T("light")
	}
	lines := []string{
		s.Title.Render(m.tr.T("settings")),
		"",
		row(rowLanguage, m.tr.T("language"), "‹ "+nav.Locales[m.locale].Label+" ›"),
		row(rowTheme, m.tr.T("theme"), "‹ "+theme+" ›"),
		"",
		s.Muted.Render(" " + m.tr.T("import")),
		row(rowImportBlinko, m.tr.T("import-from-bko"), ""),
		row(rowImportMemos, m.tr.T("import-from-memos-memos_prod-db"), ""),
		s.Dim.Render(" " + m.tr.T("when-exporting-memos_prod-db-please-close-the-memos-container-to-avoid-partial-loss-of-data")),
	}
	if m.asking != "" {
		lines = append(lines, "", s.Muted.Render(" "+m.tr.T("file-path")), m.input.View())
	}
	if m.running {
		lines = append(lines, "", s.Accent.Render(" "+m.tr.T("importing")))
	}
	for _, p := range m.progress {
		lines = append(lines, " "+p)
	}
	return strings.Join(lines, "\n")
}
