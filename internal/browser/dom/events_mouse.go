// internal/browser/dom/events_mouse.go
package dom

import (
	"net/url"

	"go.uber.org/zap"
)

// contentPoint converts a hit into the coordinate space the text editor
// works in: relative to the content box and scaled to device pixels.
func (d *Document) contentPoint(n *Node, hit HitResult) Point {
	off := n.Layout.ContentBoxOffset()
	scale := d.viewport.ScaleFactor()
	return Point{
		X: (hit.X - off.X) * scale,
		Y: (hit.Y - off.Y) * scale,
	}
}

// targetElement re-runs the hit test and returns the target's node and
// element data when the hit still lands on target and the element is
// enabled. A mismatch means the pointer moved off the target since it was
// chosen.
func (d *Document) targetElement(target NodeID, x, y float64) (*Node, *ElementData, HitResult, bool) {
	hit, ok := d.Hit(x, y)
	if !ok || hit.NodeID != target {
		return nil, nil, HitResult{}, false
	}
	n, ok := d.nodes[hit.NodeID]
	if !ok {
		return nil, nil, HitResult{}, false
	}
	el := n.Element()
	if el == nil || el.IsDisabled() {
		return nil, nil, HitResult{}, false
	}
	return n, el, hit, true
}

// HandleMouseMove extends a text selection while a button is held over a
// text control. It reports whether the move was consumed that way.
func (d *Document) HandleMouseMove(target NodeID, x, y float64, buttons MouseEventButtons) bool {
	n, el, hit, ok := d.targetElement(target, x, y)
	if !ok {
		return false
	}
	ti, ok := el.TextInput()
	if !ok || !buttons.Any() {
		return false
	}
	p := d.contentPoint(n, hit)
	ti.Editor.ExtendSelectionToPoint(p.X, p.Y)
	return true
}

// HandleMouseDown places the caret in a text control and focuses it.
func (d *Document) HandleMouseDown(target NodeID, x, y float64) {
	n, el, hit, ok := d.targetElement(target, x, y)
	if !ok {
		return
	}
	ti, ok := el.TextInput()
	if !ok {
		return
	}
	p := d.contentPoint(n, hit)
	ti.Editor.MoveToPoint(p.X, p.Y)
	d.SetFocusTo(hit.NodeID)
}

// -- Click --

type clickKind int

const (
	clickClimb clickKind = iota
	clickAbort
	clickCheckbox
	clickRadio
	clickLabel
	clickNavigate
	clickBadHref
	clickMissingHref
	clickSubmit
)

// clickAction is the default action a single node performs for a click. It
// is computed without touching document state and applied afterwards.
type clickAction struct {
	kind clickKind
	node NodeID
	// bound is the label's first bound input, or the submitter's form.
	bound NodeID
	group string
	href  string
	url   *url.URL
}

// terminal reports whether the click is finished once the action is applied.
// The remaining kinds keep climbing towards the root.
func (a clickAction) terminal() bool {
	switch a.kind {
	case clickClimb, clickMissingHref, clickSubmit:
		return false
	}
	return true
}

// planClick decides what a click on n does. First match wins.
func (d *Document) planClick(n *Node) clickAction {
	el := n.Element()
	if el == nil {
		return clickAction{kind: clickClimb, node: n.ID}
	}
	if el.IsDisabled() {
		return clickAction{kind: clickAbort, node: n.ID}
	}
	if _, ok := el.TextInput(); ok {
		return clickAction{kind: clickAbort, node: n.ID}
	}
	if el.IsInputOfType("checkbox") {
		return clickAction{kind: clickCheckbox, node: n.ID}
	}
	if el.IsInputOfType("radio") {
		name, _ := el.Attr("name")
		return clickAction{kind: clickRadio, node: n.ID, group: name}
	}
	if el.Name == "label" {
		if bound := d.LabelBoundInputElements(n.ID); len(bound) > 0 {
			return clickAction{kind: clickLabel, node: n.ID, bound: bound[0]}
		}
	}
	if el.Name == "a" {
		href, ok := el.Attr("href")
		if !ok {
			return clickAction{kind: clickMissingHref, node: n.ID}
		}
		u, ok := ResolveURL(d.baseURL, href)
		if !ok {
			return clickAction{kind: clickBadHref, node: n.ID, href: href}
		}
		return clickAction{kind: clickNavigate, node: n.ID, url: u}
	}
	if el.IsInputOfType("submit") || el.Name == "button" {
		if form, ok := d.controlsToForm[n.ID]; ok {
			return clickAction{kind: clickSubmit, node: n.ID, bound: form}
		}
	}
	return clickAction{kind: clickClimb, node: n.ID}
}

func (d *Document) applyClick(a clickAction) {
	switch a.kind {
	case clickCheckbox:
		if n, ok := d.nodes[a.node]; ok {
			ToggleCheckbox(n.Element())
		}
		d.SetFocusTo(a.node)
	case clickRadio:
		d.toggleRadioChecked(a.node, a.group)
		d.SetFocusTo(a.node)
	case clickLabel:
		if input, ok := d.nodes[a.bound]; ok {
			if el := input.Element(); el != nil {
				switch {
				case el.IsInputOfType("checkbox"):
					ToggleCheckbox(el)
				case el.IsInputOfType("radio"):
					name, _ := el.Attr("name")
					d.toggleRadioChecked(a.bound, name)
				}
			}
		}
		d.SetFocusTo(a.node)
	case clickNavigate:
		d.logger.Debug("Link activated.", zap.Int("node_id", int(a.node)), zap.Stringer("url", a.url))
		d.navigation.NavigateTo(NewNavigationOptions(a.url, "text/plain", d.id))
	case clickBadHref:
		d.logger.Warn("Link href could not be resolved.",
			zap.Int("node_id", int(a.node)),
			zap.String("href", a.href),
			zap.Stringer("base_url", d.baseURL))
	case clickMissingHref:
		d.logger.Warn("Link has no href.", zap.Int("node_id", int(a.node)))
	case clickSubmit:
		d.SubmitForm(a.bound, a.node)
	}
}

// toggleRadioChecked selects a radio within its group. A radio without a
// name forms a group of its own.
func (d *Document) toggleRadioChecked(id NodeID, group string) {
	if group == "" {
		d.logger.Warn("Radio input has no name; treating it as a group of one.", zap.Int("node_id", int(id)))
	}
	d.ToggleRadio(group, id)
}

// HandleClick runs the default click behavior for the node under the point.
// Nodes without a matching behavior pass the click to their layout parent;
// a click nothing handles clears focus.
func (d *Document) HandleClick(_ NodeID, x, y float64) {
	hit, ok := d.Hit(x, y)
	for ok {
		n, exists := d.nodes[hit.NodeID]
		if !exists {
			break
		}
		action := d.planClick(n)
		d.applyClick(action)
		if action.terminal() {
			return
		}
		hit, ok = parentHit(n, hit.X, hit.Y)
	}
	d.ClearFocus()
}
