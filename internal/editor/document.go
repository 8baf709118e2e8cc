// ABOUTME: Document is the rune-line text buffer behind the note editor
// ABOUTME: Caret movement, insertion, deletion, kill ring and bounded undo; not goroutine-safe

package editor

import "strings"

const (
	killRingSize = 32
	undoDepth    = 200
)

// Pos is a caret position: zero-based line and rune column.
type Pos struct {
	Line int
	Col  int
}

type docState struct {
	lines [][]rune
	caret Pos
}

// Document holds lines of runes and a caret. Callers synchronise access.
type Document struct {
	lines [][]rune
	caret Pos
	kills []string
	undo  []docState
}

// NewDocument returns a document holding text with the caret at its end.
func NewDocument(text string) *Document {
	d := &Document{}
	d.setText(text)
	return d
}

// Text joins all lines with '\n'.
func (d *Document) Text() string {
	parts := make([]string, len(d.lines))
	for i, l := range d.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Lines returns a copy of the lines as strings.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = string(l)
	}
	return out
}

// Caret returns the caret position.
func (d *Document) Caret() Pos { return d.caret }

// IsEmpty reports whether the document has no text.
func (d *Document) IsEmpty() bool {
	return len(d.lines) == 1 && len(d.lines[0]) == 0
}

// Preceding returns the text of the caret line before the caret.
func (d *Document) Preceding() string {
	return string(d.lines[d.caret.Line][:d.caret.Col])
}

// SetText replaces the content, records undo, and moves the caret to the end.
func (d *Document) SetText(text string) {
	d.saveUndo()
	d.setText(text)
}

func (d *Document) setText(text string) {
	raw := strings.Split(text, "\n")
	d.lines = make([][]rune, len(raw))
	for i, l := range raw {
		d.lines[i] = []rune(l)
	}
	d.MoveToEnd()
}

// SetCaret moves the caret, clamping to valid positions.
func (d *Document) SetCaret(p Pos) {
	p.Line = min(max(p.Line, 0), len(d.lines)-1)
	p.Col = min(max(p.Col, 0), len(d.lines[p.Line]))
	d.caret = p
}

// MoveToEnd puts the caret after the last rune of the document.
func (d *Document) MoveToEnd() {
	last := len(d.lines) - 1
	d.caret = Pos{Line: last, Col: len(d.lines[last])}
}

// MoveToLastText puts the caret at the end of the last non-empty line,
// or the document start when every line is empty.
func (d *Document) MoveToLastText() {
	for i := len(d.lines) - 1; i >= 0; i-- {
		if len(d.lines[i]) > 0 {
			d.caret = Pos{Line: i, Col: len(d.lines[i])}
			return
		}
	}
	d.caret = Pos{}
}

// InsertText inserts text at the caret; embedded newlines split lines.
func (d *Document) InsertText(text string) {
	if text == "" {
		return
	}
	d.saveUndo()
	d.insert(text)
}

func (d *Document) insert(text string) {
	segs := strings.Split(text, "\n")
	line := d.lines[d.caret.Line]
	tail := append([]rune(nil), line[d.caret.Col:]...)
	head := append([]rune(nil), line[:d.caret.Col]...)

	if len(segs) == 1 {
		runes := []rune(segs[0])
		d.lines[d.caret.Line] = append(append(head, runes...), tail...)
		d.caret.Col += len(runes)
		return
	}

	inserted := make([][]rune, len(segs))
	inserted[0] = append(head, []rune(segs[0])...)
	for i := 1; i < len(segs)-1; i++ {
		inserted[i] = []rune(segs[i])
	}
	lastSeg := []rune(segs[len(segs)-1])
	inserted[len(segs)-1] = append(lastSeg, tail...)

	lines := make([][]rune, 0, len(d.lines)+len(segs)-1)
	lines = append(lines, d.lines[:d.caret.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, d.lines[d.caret.Line+1:]...)
	d.lines = lines
	d.caret = Pos{Line: d.caret.Line + len(segs) - 1, Col: len(lastSeg)}
}

// InsertRune inserts one rune at the caret.
func (d *Document) InsertRune(r rune) {
	d.InsertText(string(r))
}

// Newline splits the caret line.
func (d *Document) Newline() {
	d.InsertText("\n")
}

// Backspace removes the rune before the caret, joining lines at column 0.
func (d *Document) Backspace() {
	if d.caret.Col > 0 {
		d.saveUndo()
		line := d.lines[d.caret.Line]
		d.lines[d.caret.Line] = append(line[:d.caret.Col-1:d.caret.Col-1], line[d.caret.Col:]...)
		d.caret.Col--
		return
	}
	if d.caret.Line == 0 {
		return
	}
	d.saveUndo()
	prev := d.lines[d.caret.Line-1]
	col := len(prev)
	d.lines[d.caret.Line-1] = append(prev[:col:col], d.lines[d.caret.Line]...)
	d.lines = append(d.lines[:d.caret.Line], d.lines[d.caret.Line+1:]...)
	d.caret = Pos{Line: d.caret.Line - 1, Col: col}
}

// Delete removes the rune under the caret, joining with the next line at EOL.
func (d *Document) Delete() {
	line := d.lines[d.caret.Line]
	if d.caret.Col < len(line) {
		d.saveUndo()
		d.lines[d.caret.Line] = append(line[:d.caret.Col:d.caret.Col], line[d.caret.Col+1:]...)
		return
	}
	if d.caret.Line >= len(d.lines)-1 {
		return
	}
	d.saveUndo()
	d.lines[d.caret.Line] = append(line[:len(line):len(line)], d.lines[d.caret.Line+1]...)
	d.lines = append(d.lines[:d.caret.Line+1], d.lines[d.caret.Line+2:]...)
}

// TrimLastRune removes the final rune of the document regardless of caret,
// then clamps the caret.
func (d *Document) TrimLastRune() {
	if d.IsEmpty() {
		return
	}
	d.saveUndo()
	last := len(d.lines) - 1
	if n := len(d.lines[last]); n > 0 {
		d.lines[last] = d.lines[last][:n-1]
	} else {
		d.lines = d.lines[:last]
	}
	d.SetCaret(d.caret)
}

// Left moves the caret one rune back, wrapping to the previous line.
func (d *Document) Left() {
	switch {
	case d.caret.Col > 0:
		d.caret.Col--
	case d.caret.Line > 0:
		d.caret.Line--
		d.caret.Col = len(d.lines[d.caret.Line])
	}
}

// Right moves the caret one rune forward, wrapping to the next line.
func (d *Document) Right() {
	switch {
	case d.caret.Col < len(d.lines[d.caret.Line]):
		d.caret.Col++
	case d.caret.Line < len(d.lines)-1:
		d.caret.Line++
		d.caret.Col = 0
	}
}

// Up moves the caret to the previous line, clamping the column.
func (d *Document) Up() {
	if d.caret.Line > 0 {
		d.SetCaret(Pos{Line: d.caret.Line - 1, Col: d.caret.Col})
	}
}

// Down moves the caret to the next line, clamping the column.
func (d *Document) Down() {
	if d.caret.Line < len(d.lines)-1 {
		d.SetCaret(Pos{Line: d.caret.Line + 1, Col: d.caret.Col})
	}
}

// Home moves the caret to column 0.
func (d *Document) Home() { d.caret.Col = 0 }

// End moves the caret to the end of its line.
func (d *Document) End() { d.caret.Col = len(d.lines[d.caret.Line]) }

// KillToEnd cuts from the caret to end of line into the kill ring.
func (d *Document) KillToEnd() {
	line := d.lines[d.caret.Line]
	if d.caret.Col >= len(line) {
		return
	}
	d.saveUndo()
	d.pushKill(string(line[d.caret.Col:]))
	d.lines[d.caret.Line] = line[:d.caret.Col]
}

// Yank inserts the most recent kill.
func (d *Document) Yank() {
	if len(d.kills) == 0 {
		return
	}
	d.InsertText(d.kills[len(d.kills)-1])
}

func (d *Document) pushKill(s string) {
	if len(d.kills) == killRingSize {
		d.kills = d.kills[1:]
	}
	d.kills = append(d.kills, s)
}

// Undo restores the previous state. Returns false when nothing to undo.
func (d *Document) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	st := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.lines = st.lines
	d.caret = st.caret
	return true
}

func (d *Document) saveUndo() {
	if d.lines == nil {
		return
	}
	lines := make([][]rune, len(d.lines))
	for i, l := range d.lines {
		lines[i] = append([]rune(nil), l...)
	}
	if len(d.undo) == undoDepth {
		d.undo = d.undo[1:]
	}
	d.undo = append(d.undo, docState{lines: lines, caret: d.caret})
}
