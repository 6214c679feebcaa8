// internal/replay/events.go
package replay

import (
	"fmt"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
)

var buttonBits = map[string]dom.MouseEventButtons{
	"primary":   dom.MouseButtonsPrimary,
	"secondary": dom.MouseButtonsSecondary,
	"auxiliary": dom.MouseButtonsAuxiliary,
	"fourth":    dom.MouseButtonsFourth,
	"fifth":     dom.MouseButtonsFifth,
}

var modBits = map[string]dom.Modifiers{
	"shift": dom.ModShift,
	"ctrl":  dom.ModCtrl,
	"alt":   dom.ModAlt,
	"meta":  dom.ModMeta,
}

var imeKinds = map[string]dom.ImeEventKind{
	"enabled":  dom.ImeEnabled,
	"preedit":  dom.ImePreedit,
	"commit":   dom.ImeCommit,
	"disabled": dom.ImeDisabled,
}

func (s *session) mouseData(step Step) dom.MouseEventData {
	m := dom.MouseEventData{X: step.X, Y: step.Y}
	for _, b := range step.Buttons {
		m.Buttons |= buttonBits[b]
	}
	for _, mod := range step.Mods {
		m.Mods |= modBits[mod]
	}
	return m
}

// pointerTarget is the selector's node, or the node under the point. A miss
// targets the document node.
func (s *session) pointerTarget(step Step) (dom.NodeID, error) {
	if step.Selector != "" {
		return s.selectOne(step.Selector)
	}
	if hit, ok := s.inner.Hit(step.X, step.Y); ok {
		return hit.NodeID, nil
	}
	return dom.RootNodeID, nil
}

// pointerPoint returns the step's viewport point.
func (s *session) pointerPoint(step Step) (float64, float64, error) {
	if step.At == "" {
		return step.X, step.Y, nil
	}
	id, err := s.selectOne(step.At)
	if err != nil {
		return 0, 0, err
	}
	origin, _ := s.inner.AbsolutePosition(id)
	n, _ := s.inner.Node(id)
	size := n.Layout.Size
	return origin.X + size.Width/2 + step.X, origin.Y + size.Height/2 + step.Y, nil
}

// focusTarget is the selector's node, or the focused node.
func (s *session) focusTarget(step Step) (dom.NodeID, error) {
	if step.Selector != "" {
		return s.selectOne(step.Selector)
	}
	if id, ok := s.inner.FocusedNode(); ok {
		return id, nil
	}
	return dom.RootNodeID, nil
}

func (s *session) selectOne(selector string) (dom.NodeID, error) {
	ids, err := s.inner.QueryXPath(selector)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%q: %w", selector, ErrSelectorNoMatch)
	}
	return ids[0], nil
}

func (s *session) buildEvent(step Step) (*dom.DomEvent, error) {
	var (
		target dom.NodeID
		data   dom.DomEventData
		err    error
	)
	switch step.Type {
	case "mousemove", "mousedown", "mouseup", "click", "hover":
		if step.X, step.Y, err = s.pointerPoint(step); err != nil {
			return nil, err
		}
		target, err = s.pointerTarget(step)
		m := s.mouseData(step)
		switch step.Type {
		case "mousemove":
			data = dom.MouseMove(m)
		case "mousedown":
			data = dom.MouseDown(m)
		case "mouseup":
			data = dom.MouseUp(m)
		case "click":
			data = dom.Click(m)
		default:
			data = dom.Hover{}
		}
	case "keydown", "keyup":
		target, err = s.focusTarget(step)
		k := dom.KeyEventData{Key: step.Key, Code: step.Code, Text: step.Text, State: dom.KeyPressed}
		if step.Type == "keyup" {
			k.State = dom.KeyReleased
		}
		for _, mod := range step.Mods {
			k.Mods |= modBits[mod]
		}
		data = dom.KeyPress(k)
	case "ime":
		target, err = s.focusTarget(step)
		kind := dom.ImeCommit
		if step.Ime != "" {
			kind = imeKinds[step.Ime]
		}
		data = dom.Ime{Kind: kind, Text: step.Text}
	default:
		return nil, fmt.Errorf("unknown event type %q", step.Type)
	}
	if err != nil {
		return nil, err
	}
	return dom.NewDomEvent(target, data), nil
}
