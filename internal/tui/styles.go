// ABOUTME: Lipgloss palette for the dark and light themes
// ABOUTME: Styles() returns the cached style set for the active theme

package tui

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted by SetTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// palette lists the colors a theme defines.
type palette struct {
	Primary   string
	Muted     string
	Accent    string
	Success   string
	Warning   string
	Error     string
	Border    string
	Selection string
	Tag       string
}

var palettes = map[string]palette{
	ThemeDark: {
		Primary: "252", Muted: "244", Accent: "141", Success: "114",
		Warning: "221", Error: "203", Border: "240", Selection: "237", Tag: "117",
	},
	ThemeLight: {
		Primary: "235", Muted: "245", Accent: "91", Success: "28",
		Warning: "136", Error: "160", Border: "250", Selection: "254", Tag: "25",
	},
}

// ThemeStyles holds the prebuilt styles views render with.
type ThemeStyles struct {
	Primary lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Tag     lipgloss.Style

	Selection lipgloss.Style
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Dim       lipgloss.Style

	Box       lipgloss.Style
	FocusBox  lipgloss.Style
	SourceBox lipgloss.Style
	Popover   lipgloss.Style
}

type stylesEntry struct {
	theme  string
	styles ThemeStyles
}

var (
	activeTheme  atomic.Value // string
	cachedStyles atomic.Pointer[stylesEntry]
)

func init() {
	activeTheme.Store(ThemeDark)
}

// SetTheme switches the palette. Unknown names fall back to dark.
func SetTheme(name string) {
	if _, ok := palettes[name]; !ok {
		name = ThemeDark
	}
	activeTheme.Store(name)
}

// CurrentTheme returns the active theme name.
func CurrentTheme() string {
	return activeTheme.Load().(string)
}

// Styles returns the style set for the active theme, rebuilding it only
// after a theme switch.
func Styles() ThemeStyles {
	name := CurrentTheme()
	if e := cachedStyles.Load(); e != nil && e.theme == name {
		return e.styles
	}
	s := buildStyles(palettes[name])
	cachedStyles.Store(&stylesEntry{theme: name, styles: s})
	return s
}

func buildStyles(p palette) ThemeStyles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Border)).
		Padding(0, 1)

	return ThemeStyles{
		Primary: fg(p.Primary),
		Muted:   fg(p.Muted),
		Accent:  fg(p.Accent),
		Success: fg(p.Success),
		Warning: fg(p.Warning),
		Error:   fg(p.Error),
		Tag:     fg(p.Tag),

		Selection: lipgloss.NewStyle().Background(lipgloss.Color(p.Selection)),
		Title:     fg(p.Accent).Bold(true),
		Bold:      lipgloss.NewStyle().Bold(true),
		Dim:       fg(p.Muted).Faint(true),

		Box:       box,
		FocusBox:  box.BorderForeground(lipgloss.Color(p.Accent)),
		SourceBox: box.BorderForeground(lipgloss.Color(p.Error)),
		Popover:   box.BorderForeground(lipgloss.Color(p.Accent)).Padding(0, 0),
	}
}
