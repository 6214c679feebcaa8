// internal/browser/dom/editor.go
package dom

import "math"

// TextEditor is the text editing collaborator owned by each text control.
// Points are in the control's content box, already multiplied by the
// viewport scale factor.
type TextEditor interface {
	Text() string
	SetText(text string)
	// Selection returns the anchor and focus caret indexes (in runes).
	Selection() (anchor, focus int)
	// MoveToPoint places the caret at the point, collapsing any selection.
	MoveToPoint(x, y float64)
	// ExtendSelectionToPoint moves the focus end of the selection to the point.
	ExtendSelectionToPoint(x, y float64)
	InsertText(text string)
	DeleteBackward()
	DeleteForward()
	MoveLeft(extend bool)
	MoveRight(extend bool)
	SelectAll()
}

// DefaultGlyphAdvance is the per-character advance PlainEditor assumes, in device pixels.
const DefaultGlyphAdvance = 8.0

// PlainEditor is a single line editor laid out with a fixed glyph advance.
// It stands in for a shaping editor when no text engine is wired.
type PlainEditor struct {
	text    []rune
	anchor  int
	focus   int
	advance float64
}

// NewPlainEditor creates an editor holding text with the caret at its end.
func NewPlainEditor(text string, advance float64) *PlainEditor {
	if advance <= 0 {
		advance = DefaultGlyphAdvance
	}
	r := []rune(text)
	return &PlainEditor{text: r, anchor: len(r), focus: len(r), advance: advance}
}

func (e *PlainEditor) Text() string { return string(e.text) }

func (e *PlainEditor) SetText(text string) {
	e.text = []rune(text)
	e.anchor = len(e.text)
	e.focus = len(e.text)
}

func (e *PlainEditor) Selection() (int, int) { return e.anchor, e.focus }

// indexAt maps a horizontal offset to the nearest caret position. The editor
// is a single line, so y does not participate.
func (e *PlainEditor) indexAt(x float64) int {
	i := int(math.Round(x / e.advance))
	if i < 0 {
		return 0
	}
	if i > len(e.text) {
		return len(e.text)
	}
	return i
}

func (e *PlainEditor) MoveToPoint(x, _ float64) {
	i := e.indexAt(x)
	e.anchor, e.focus = i, i
}

func (e *PlainEditor) ExtendSelectionToPoint(x, _ float64) {
	e.focus = e.indexAt(x)
}

func (e *PlainEditor) selectionRange() (int, int) {
	if e.anchor <= e.focus {
		return e.anchor, e.focus
	}
	return e.focus, e.anchor
}

// deleteSelection removes the selected runes and reports whether anything was selected.
func (e *PlainEditor) deleteSelection() bool {
	start, end := e.selectionRange()
	if start == end {
		return false
	}
	e.text = append(e.text[:start], e.text[end:]...)
	e.anchor, e.focus = start, start
	return true
}

func (e *PlainEditor) InsertText(text string) {
	e.deleteSelection()
	ins := []rune(text)
	out := make([]rune, 0, len(e.text)+len(ins))
	out = append(out, e.text[:e.focus]...)
	out = append(out, ins...)
	out = append(out, e.text[e.focus:]...)
	e.text = out
	e.focus += len(ins)
	e.anchor = e.focus
}

func (e *PlainEditor) DeleteBackward() {
	if e.deleteSelection() || e.focus == 0 {
		return
	}
	e.text = append(e.text[:e.focus-1], e.text[e.focus:]...)
	e.focus--
	e.anchor = e.focus
}

func (e *PlainEditor) DeleteForward() {
	if e.deleteSelection() || e.focus == len(e.text) {
		return
	}
	e.text = append(e.text[:e.focus], e.text[e.focus+1:]...)
	e.anchor = e.focus
}

func (e *PlainEditor) MoveLeft(extend bool) {
	if !extend {
		if start, end := e.selectionRange(); start != end {
			e.anchor, e.focus = start, start
			return
		}
	}
	if e.focus > 0 {
		e.focus--
	}
	if !extend {
		e.anchor = e.focus
	}
}

func (e *PlainEditor) MoveRight(extend bool) {
	if !extend {
		if start, end := e.selectionRange(); start != end {
			e.anchor, e.focus = end, end
			return
		}
	}
	if e.focus < len(e.text) {
		e.focus++
	}
	if !extend {
		e.anchor = e.focus
	}
}

func (e *PlainEditor) SelectAll() {
	e.anchor = 0
	e.focus = len(e.text)
}
