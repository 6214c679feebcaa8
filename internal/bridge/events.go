// internal/bridge/events.go
package bridge

import (
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
	"github.com/xkilldash9x/lattice/internal/vdom"
)

// ClickData is the payload of framework pointer events.
type ClickData struct {
	X, Y    float64
	Button  dom.MouseEventButton
	Buttons dom.MouseEventButtons
	Mods    dom.Modifiers
}

// KeyboardData is the payload of framework keyboard events.
type KeyboardData struct {
	Key     string
	Code    string
	Text    string
	Mods    dom.Modifiers
	Pressed bool
	Repeat  bool
}

func clickData(m dom.MouseEventData) ClickData {
	return ClickData{X: m.X, Y: m.Y, Button: m.Button, Buttons: m.Buttons, Mods: m.Mods}
}

func keyboardData(k dom.KeyEventData) KeyboardData {
	return KeyboardData{
		Key:     k.Key,
		Code:    k.Code,
		Text:    k.Text,
		Mods:    k.Mods,
		Pressed: k.State.IsPressed(),
		Repeat:  k.Repeat,
	}
}

// dispatch tracks one event's trip through the framework handlers.
type dispatch struct {
	d  *Document
	ev *dom.DomEvent

	preventDefault  bool
	stopPropagation bool
	defaultApplied  bool
}

func (p *dispatch) fire(name string, data any, id vdom.ElementID) *vdom.Event {
	e := vdom.NewEvent(data, true)
	p.d.vdom.Runtime().HandleEvent(name, e, id)
	p.preventDefault = p.preventDefault || !e.DefaultActionEnabled()
	p.stopPropagation = p.stopPropagation || !e.Propagates()
	return e
}

// applyDefault runs the document's default action for the event at target.
// It runs at most once per event.
func (p *dispatch) applyDefault(target dom.NodeID) {
	if p.defaultApplied {
		return
	}
	p.d.inner.HandleEvent(&dom.DomEvent{
		Target:     target,
		Bubbles:    p.ev.Bubbles,
		Cancelable: p.ev.Cancelable,
		Data:       p.ev.Data,
	})
	p.defaultApplied = true
	p.preventDefault = true
}

func (p *dispatch) halted() bool {
	return !p.ev.Bubbles || p.stopPropagation
}

// input fires an input event at id carrying the form snapshot of node.
func (p *dispatch) input(chain []dom.NodeID, el *dom.ElementData, id vdom.ElementID) {
	fd := p.d.InputEventFormData(chain, el)
	p.d.vdom.Runtime().HandleEvent("input", vdom.NewEvent(fd, true), id)
}

func clickTriggersInput(el *dom.ElementData) bool {
	return el.IsInputOfType("checkbox") || el.IsInputOfType("radio")
}

func keyTriggersInput(el *dom.ElementData) bool {
	if el.Name != "input" {
		return false
	}
	typ, ok := el.Attr("type")
	if !ok {
		return true
	}
	switch strings.ToLower(typ) {
	case "text", "password", "email", "search":
		return true
	}
	return false
}

// HandleEvent walks the event from its target to the root, running the
// framework handlers of every element that has a framework id. Unless a
// handler prevents it, the document's default action runs exactly once.
func (d *Document) HandleEvent(ev *dom.DomEvent) {
	chain := d.inner.NodeChain(ev.Target)
	p := &dispatch{d: d, ev: ev}

	switch data := ev.Data.(type) {
	case dom.MouseMove, dom.MouseDown, dom.MouseUp:
		m, _ := ev.MouseData()
		d.pointer(p, chain, ev.Name(), clickData(m))
	case dom.Click:
		d.click(p, chain, clickData(dom.MouseEventData(data)))
	case dom.KeyPress:
		d.key(p, chain, dom.KeyEventData(data))
	case dom.Ime, dom.Hover:
	}

	if (!ev.Cancelable || !p.preventDefault) && !p.defaultApplied {
		d.inner.HandleEvent(ev)
	}
}

func (d *Document) element(id dom.NodeID) (*dom.ElementData, vdom.ElementID, bool) {
	n, ok := d.inner.Node(id)
	if !ok {
		return nil, 0, false
	}
	el := n.Element()
	fid, ok := frameworkID(el)
	return el, fid, ok
}

func (d *Document) pointer(p *dispatch, chain []dom.NodeID, name string, data ClickData) {
	for _, nid := range chain {
		if _, id, ok := d.element(nid); ok {
			p.fire(name, data, id)
		}
		if p.halted() {
			return
		}
	}
}

func (d *Document) click(p *dispatch, chain []dom.NodeID, data ClickData) {
	for _, nid := range chain {
		el, id, ok := d.element(nid)
		triggerLabel := false
		if ok {
			p.fire("click", data, id)
			if !p.preventDefault {
				p.applyDefault(nid)
				triggerLabel = el.Name == "label"
				if clickTriggersInput(el) {
					p.input(chain, el, id)
				}
			}
		}

		if triggerLabel {
			d.forwardLabelClick(p, nid, data)
		}
		if p.halted() {
			return
		}
	}
}

// forwardLabelClick delivers a label's click to its bound control. The
// label's default action has already toggled the control.
func (d *Document) forwardLabelClick(p *dispatch, label dom.NodeID, data ClickData) {
	inputID, inputNode, ok := d.LabelBoundInputElement(label)
	if !ok {
		return
	}
	e := vdom.NewEvent(data, true)
	d.vdom.Runtime().HandleEvent("click", e, inputID)
	if !e.DefaultActionEnabled() {
		return
	}
	n, ok := d.inner.Node(inputNode)
	if !ok {
		return
	}
	if el := n.Element(); clickTriggersInput(el) {
		p.input(d.inner.NodeChain(inputNode), el, inputID)
	}
	d.logger.Debug("Forwarded label click.", zap.Int("label", int(label)), zap.Uint64("element_id", uint64(inputID)))
}

func (d *Document) key(p *dispatch, chain []dom.NodeID, k dom.KeyEventData) {
	data := keyboardData(k)
	for _, nid := range chain {
		if el, id, ok := d.element(nid); ok {
			if !k.State.IsPressed() {
				p.fire("keyup", data, id)
			} else {
				p.fire("keydown", data, id)
				if !p.preventDefault && k.HasText() {
					p.fire("keypress", data, id)
					if !p.preventDefault {
						p.applyDefault(nid)
						if keyTriggersInput(el) {
							p.input(chain, el, id)
						}
					}
				}
			}
		}
		if p.halted() {
			return
		}
	}
}
