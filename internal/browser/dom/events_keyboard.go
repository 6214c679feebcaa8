// internal/browser/dom/events_keyboard.go
package dom

import (
	"strings"

	"go.uber.org/zap"
)

// focusedTextInput returns the focused node when it is an enabled text control.
func (d *Document) focusedTextInput() (*Node, *TextInputData, bool) {
	if !d.hasFocus {
		return nil, nil, false
	}
	n, ok := d.nodes[d.focus]
	if !ok {
		return nil, nil, false
	}
	el := n.Element()
	if el == nil || el.IsDisabled() {
		return nil, nil, false
	}
	ti, ok := el.TextInput()
	if !ok {
		return nil, nil, false
	}
	return n, ti, true
}

// HandleKeyPress applies the default editing behavior of a key press to the
// focused text control. It reports whether the control handled the key.
func (d *Document) HandleKeyPress(key KeyEventData) bool {
	if !key.State.IsPressed() {
		return false
	}
	n, ti, ok := d.focusedTextInput()
	if !ok {
		return false
	}
	editor := ti.Editor
	shortcut := key.Mods.Has(ModCtrl) || key.Mods.Has(ModMeta)
	extend := key.Mods.Has(ModShift)

	switch key.Key {
	case "Backspace":
		editor.DeleteBackward()
	case "Delete":
		editor.DeleteForward()
	case "ArrowLeft":
		editor.MoveLeft(extend)
	case "ArrowRight":
		editor.MoveRight(extend)
	case "Enter":
		if n.IsElement("textarea") {
			editor.InsertText("\n")
			return true
		}
		d.implicitSubmission(n.ID)
	default:
		switch {
		case shortcut && strings.EqualFold(key.Key, "a"):
			editor.SelectAll()
		case shortcut:
			return false
		case key.HasText():
			editor.InsertText(key.Text)
		default:
			return false
		}
	}
	return true
}

// implicitSubmission submits the control's form as if its default button
// had been activated. Forms without a submit button submit themselves; a
// disabled default button blocks submission.
func (d *Document) implicitSubmission(control NodeID) {
	form, ok := d.controlsToForm[control]
	if !ok {
		return
	}
	button, ok := d.defaultButton(form)
	if !ok {
		d.SubmitForm(form, form)
		return
	}
	if el := d.nodes[button].Element(); el.IsDisabled() {
		d.logger.Debug("Implicit submission blocked by disabled default button.", zap.Int("form", int(form)))
		return
	}
	d.SubmitForm(form, button)
}

// HandleIme inserts committed composition text into the focused text control.
func (d *Document) HandleIme(ime ImeEventData) bool {
	if ime.Kind != ImeCommit || ime.Text == "" {
		return false
	}
	_, ti, ok := d.focusedTextInput()
	if !ok {
		return false
	}
	ti.Editor.InsertText(ime.Text)
	return true
}
