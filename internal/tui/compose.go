// ABOUTME: ComposeModel renders the note editor session and its attachment queue
// ABOUTME: Keys edit the session document; pasted file paths become uploads

package tui

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/blinko-go/internal/editor"
	"github.com/mauromedda/blinko-go/internal/eventbus"
	"github.com/mauromedda/blinko-go/internal/log"
	"github.com/mauromedda/blinko-go/internal/upload"
)

const maxComposeRows = 10

// clipboardRead is swapped in tests.
var clipboardRead = clipboard.ReadAll

// ComposeModel is the compose box. Session and queue are shared pointers,
// so copies of the model address the same buffer.
type ComposeModel struct {
	session *editor.Session
	queue   *upload.Queue
	hub     *eventbus.Hub
	tr      Translator

	spin    spinner.Model
	focused bool
	width   int
}

// NewComposeModel wraps session and queue.
func NewComposeModel(session *editor.Session, queue *upload.Queue, hub *eventbus.Hub, tr Translator) ComposeModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return ComposeModel{
		session: session,
		queue:   queue,
		hub:     hub,
		tr:      tr,
		spin:    sp,
		width:   80,
	}
}

func (m ComposeModel) Init() tea.Cmd { return nil }

// Update edits the document for key presses and animates the upload spinner.
func (m ComposeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case spinner.TickMsg:
		if !m.uploading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ComposeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		return m, m.paste(string(msg.Runes))
	}

	s := m.session
	switch msg.String() {
	case "ctrl+v":
		text, err := clipboardRead()
		if err != nil {
			log.Warn("clipboard: %v", err)
			return m, nil
		}
		return m, m.paste(text)
	case "ctrl+z":
		s.Undo()
	case "alt+t":
		s.InsertHash()
	case "ctrl+t":
		next := editor.ModeSource
		if s.ViewMode() == editor.ModeSource {
			next = editor.ModeRichText
		}
		eventbus.Emit(m.hub, editor.EvSetViewMode, next)
	case "alt+x":
		if files := m.queue.Files(); len(files) > 0 {
			_ = m.queue.Remove(files[len(files)-1].ID)
		}
	case "enter":
		s.Edit(func(d *editor.Document) { d.Newline() })
	case "tab":
		s.Edit(func(d *editor.Document) { d.InsertText("  ") })
	case "backspace":
		s.Edit(func(d *editor.Document) { d.Backspace() })
	case "delete", "ctrl+d":
		s.Edit(func(d *editor.Document) { d.Delete() })
	case "ctrl+k":
		s.Edit(func(d *editor.Document) { d.KillToEnd() })
	case "ctrl+y":
		s.Edit(func(d *editor.Document) { d.Yank() })
	case "left", "ctrl+b":
		s.Edit(func(d *editor.Document) { d.Left() })
	case "right", "ctrl+f":
		s.Edit(func(d *editor.Document) { d.Right() })
	case "up":
		s.Edit(func(d *editor.Document) { d.Up() })
	case "down":
		s.Edit(func(d *editor.Document) { d.Down() })
	case "home", "ctrl+a":
		s.Edit(func(d *editor.Document) { d.Home() })
	case "end", "ctrl+e":
		s.Edit(func(d *editor.Document) { d.End() })
	default:
		switch msg.Type {
		case tea.KeyRunes:
			text := string(msg.Runes)
			s.Edit(func(d *editor.Document) { d.InsertText(text) })
		case tea.KeySpace:
			s.Edit(func(d *editor.Document) { d.InsertRune(' ') })
		}
	}
	return m, nil
}

// paste enqueues text as uploads when every line names a regular file,
// and inserts it at the caret otherwise.
func (m ComposeModel) paste(text string) tea.Cmd {
	if srcs, ok := pastedFiles(text); ok {
		m.queue.Enqueue(srcs...)
		return m.spin.Tick
	}
	m.session.InsertAtCursor(text)
	m.session.HandleChange()
	return nil
}

func pastedFiles(text string) ([]upload.Source, bool) {
	var srcs []upload.Source
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		p := strings.Trim(strings.TrimSpace(line), `"'`)
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		src, err := upload.FromPath(p)
		if err != nil {
			return nil, false
		}
		srcs = append(srcs, src)
	}
	return srcs, len(srcs) > 0
}

// SetFocused toggles caret display and session focus.
func (m ComposeModel) SetFocused(f bool) ComposeModel {
	m.focused = f
	if f {
		m.session.Focus(false)
	} else {
		m.session.Blur()
	}
	return m
}

// Focused reports whether keys go to the compose box.
func (m ComposeModel) Focused() bool { return m.focused }

// SetWidth sets the outer width.
func (m ComposeModel) SetWidth(w int) ComposeModel {
	m.width = w
	return m
}

// Sendable reports whether the current buffer and attachments may be sent.
func (m ComposeModel) Sendable() bool {
	return m.queue.Sendable(m.session.Text())
}

// Tick restarts the spinner when uploads are in flight.
func (m ComposeModel) Tick() tea.Cmd {
	if !m.uploading() {
		return nil
	}
	return m.spin.Tick
}

func (m ComposeModel) uploading() bool {
	for _, f := range m.queue.Files() {
		if f.Status == upload.StatusPending {
			return true
		}
	}
	return false
}

func (m ComposeModel) View() string {
	s := Styles()
	st := m.session.State()
	inner := max(m.width-4, 8)

	var rows []string
	caretRow := 0
	empty := len(st.Lines) == 1 && st.Lines[0] == ""
	if empty && !m.focused {
		rows = []string{s.Dim.Render(truncateWidth(m.tr.T("i-have-a-new-idea"), inner))}
	} else {
		for i, line := range st.Lines {
			caret := -1
			if m.focused && i == st.Caret.Line {
				caret = st.Caret.Col
			}
			segs, at := renderEditorLine([]rune(line), caret, inner, st.Mode == editor.ModeRichText)
			if at >= 0 {
				caretRow = len(rows) + at
			}
			rows = append(rows, segs...)
		}
	}
	if len(rows) > maxComposeRows {
		start := min(max(caretRow-maxComposeRows+1, 0), len(rows)-maxComposeRows)
		rows = rows[start : start+maxComposeRows]
	}

	box := s.Box
	switch {
	case st.Mode == editor.ModeSource:
		box = s.SourceBox
	case m.focused:
		box = s.FocusBox
	}
	parts := []string{box.Width(max(m.width-2, 4)).Render(strings.Join(rows, "\n"))}
	if strip := m.attachmentStrip(); strip != "" {
		parts = append(parts, strip)
	}
	parts = append(parts, m.statusLine(st))
	return strings.Join(parts, "\n")
}

func (m ComposeModel) attachmentStrip() string {
	files := m.queue.Files()
	if len(files) == 0 {
		return ""
	}
	s := Styles()
	chips := make([]string, 0, len(files))
	for _, f := range files {
		var mark string
		switch f.Status {
		case upload.StatusPending:
			mark = m.spin.View()
		case upload.StatusFailed:
			mark = s.Error.Render("✗")
		default:
			mark = s.Success.Render("✓")
		}
		label := f.Name
		if size := f.HumanSize(); size != "" {
			label += " " + s.Dim.Render(size)
		}
		chips = append(chips, mark+" "+label)
	}
	return truncateWidth(" "+strings.Join(chips, "  "), m.width)
}

func (m ComposeModel) statusLine(st editor.State) string {
	s := Styles()
	mode := m.tr.T("rich-text-mode")
	if st.Mode == editor.ModeSource {
		mode = m.tr.T("source-mode")
	}
	left := s.Dim.Render(" " + mode)
	if st.Loading {
		left += "  " + s.Accent.Render(m.tr.T("thinking"))
	}
	send := s.Dim.Render(fmt.Sprintf("%s ctrl+s", m.tr.T("send")))
	if m.Sendable() {
		send = s.Success.Render(fmt.Sprintf("%s ctrl+s", m.tr.T("send")))
	}
	gap := max(m.width-visibleWidth(left)-visibleWidth(send)-1, 1)
	return left + strings.Repeat(" ", gap) + send
}

// renderEditorLine wraps line into rows of at most width cells, drawing the
// caret at rune column caret (-1 for none) and colouring "#tag" runs when
// highlight is set. It returns the rows and the row holding the caret.
func renderEditorLine(line []rune, caret, width int, highlight bool) ([]string, int) {
	s := Styles()
	inTag := tagMask(line, highlight)

	var (
		rows     []string
		b        strings.Builder
		cells    int
		caretRow = -1
	)
	flush := func() {
		rows = append(rows, b.String())
		b.Reset()
		cells = 0
	}
	for i, r := range line {
		w := runewidth.RuneWidth(r)
		if cells+w > width && cells > 0 {
			flush()
		}
		ch := string(r)
		switch {
		case i == caret:
			caretRow = len(rows)
			ch = s.Selection.Reverse(true).Render(ch)
		case inTag[i]:
			ch = s.Tag.Render(ch)
		}
		b.WriteString(ch)
		cells += w
	}
	if caret >= len(line) {
		if cells+1 > width && cells > 0 {
			flush()
		}
		caretRow = len(rows)
		b.WriteString(s.Selection.Reverse(true).Render(" "))
	}
	flush()
	return rows, caretRow
}

// tagMask marks runes belonging to a "#tag" token that starts a line or
// follows whitespace.
func tagMask(line []rune, enabled bool) []bool {
	mask := make([]bool, len(line))
	if !enabled {
		return mask
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '#' || (i > 0 && !unicode.IsSpace(line[i-1])) {
			continue
		}
		j := i + 1
		for j < len(line) && !unicode.IsSpace(line[j]) {
			j++
		}
		if j == i+1 {
			continue
		}
		for k := i; k < j; k++ {
			mask[k] = true
		}
		i = j - 1
	}
	return mask
}
