// ABOUTME: NoteListModel shows the filtered notes as rendered markdown cards
// ABOUTME: Tracks the highlighted note, multi-select marks and link previews

package tui

import (
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/linkpreview"
)

// NoteListModel is a scrolling list of note cards.
type NoteListModel struct {
	notes    []api.Note
	selected int
	top      int
	width    int
	height   int
	focused  bool

	multi  bool
	picked map[int]bool

	previews map[string]api.LinkPreview
	md       *MarkdownRenderer
	tr       Translator
}

// NewNoteListModel creates an empty list.
func NewNoteListModel(tr Translator) NoteListModel {
	return NoteListModel{
		width:    80,
		height:   20,
		picked:   map[int]bool{},
		previews: map[string]api.LinkPreview{},
		md:       NewMarkdownRenderer(),
		tr:       tr,
	}
}

func (m NoteListModel) Init() tea.Cmd { return nil }

// Update moves the highlight.
func (m NoteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.selected = max(m.selected-1, 0)
	case "down", "j":
		m.selected = min(m.selected+1, max(len(m.notes)-1, 0))
	case "pgup":
		m.selected = max(m.selected-5, 0)
	case "pgdown":
		m.selected = min(m.selected+5, max(len(m.notes)-1, 0))
	case "home", "g":
		m.selected = 0
	case "end", "G":
		m.selected = max(len(m.notes)-1, 0)
	}
	if m.selected < m.top {
		m.top = m.selected
	}
	return m, nil
}

// SetNotes replaces the list, keeping the highlight on the same note id
// when it is still present.
func (m NoteListModel) SetNotes(notes []api.Note) NoteListModel {
	var keep int
	hadSel := false
	if n, ok := m.Selected(); ok {
		keep, hadSel = n.ID, true
	}
	m.notes = notes
	m.selected = 0
	if hadSel {
		for i, n := range notes {
			if n.ID == keep {
				m.selected = i
				break
			}
		}
	}
	m.top = min(m.top, m.selected)
	return m
}

// SetMulti mirrors the store's multi-select state.
func (m NoteListModel) SetMulti(on bool, ids []int) NoteListModel {
	m.multi = on
	m.picked = make(map[int]bool, len(ids))
	for _, id := range ids {
		m.picked[id] = true
	}
	return m
}

// SetPreviews merges fetched link previews.
func (m NoteListModel) SetPreviews(p map[string]api.LinkPreview) NoteListModel {
	for k, v := range p {
		m.previews[k] = v
	}
	return m
}

// SetSize sets the area the list may draw in.
func (m NoteListModel) SetSize(w, h int) NoteListModel {
	m.width, m.height = w, max(h, 3)
	return m
}

// SetFocused toggles the highlight border.
func (m NoteListModel) SetFocused(f bool) NoteListModel {
	m.focused = f
	return m
}

// Selected returns the highlighted note.
func (m NoteListModel) Selected() (api.Note, bool) {
	if m.selected < 0 || m.selected >= len(m.notes) {
		return api.Note{}, false
	}
	return m.notes[m.selected], true
}

// Links lists every URL across the loaded notes without a preview yet.
func (m NoteListModel) Links() []string {
	var out []string
	seen := map[string]bool{}
	for _, n := range m.notes {
		for _, u := range linkpreview.ExtractLinks(n.Content) {
			if _, done := m.previews[u]; done || seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

func (m NoteListModel) View() string {
	if len(m.notes) == 0 {
		return Styles().Dim.Render("  " + m.tr.T("no-notes"))
	}
	// Advance the first visible card until the highlighted one fits.
	top := min(m.top, m.selected)
	var lines []string
	for top <= m.selected {
		lines = lines[:0]
		fits := false
		for i := top; i < len(m.notes) && len(lines) < m.height; i++ {
			lines = append(lines, strings.Split(m.card(i), "\n")...)
			if i == m.selected {
				fits = len(lines) <= m.height
			}
		}
		if fits || top == m.selected {
			break
		}
		top++
	}
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

func (m NoteListModel) card(i int) string {
	s := Styles()
	n := m.notes[i]
	inner := max(m.width-4, 10)

	var head []string
	if m.multi {
		if m.picked[n.ID] {
			head = append(head, s.Accent.Render("[x]"))
		} else {
			head = append(head, s.Dim.Render("[ ]"))
		}
	}
	icon := "⚡"
	if n.Type == api.TypeNote {
		icon = "✎"
	}
	head = append(head, icon, s.Dim.Render(n.CreatedAt.Local().Format("2006-01-02 15:04")))
	if n.IsTop {
		head = append(head, s.Warning.Render("▲"))
	}
	if n.IsShare {
		head = append(head, s.Success.Render("⇪"))
	}
	if n.IsArchived {
		head = append(head, s.Dim.Render("▣"))
	}

	body := []string{strings.Join(head, " ")}
	if out := m.md.Render(n.Content, inner); out != "" {
		body = append(body, out)
	}
	for _, a := range n.Attachments {
		body = append(body, s.Muted.Render(truncateWidth("⎘ "+a.Name, inner)))
	}
	for _, u := range linkpreview.ExtractLinks(n.Content) {
		if p, ok := m.previews[u]; ok && p.Title != "" {
			body = append(body, previewLine(u, p, inner))
		}
	}

	box := s.Box
	if i == m.selected && m.focused {
		box = s.FocusBox
	}
	return box.Width(max(m.width-2, 4)).Render(strings.Join(body, "\n"))
}

func previewLine(raw string, p api.LinkPreview, width int) string {
	s := Styles()
	line := "↗ " + p.Title
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		line += s.Dim.Render(" · " + u.Host)
	}
	return s.Accent.Render(truncateWidth(line, width))
}
