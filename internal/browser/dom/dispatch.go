// internal/browser/dom/dispatch.go
package dom

// HandleEvent applies the default behavior of an event. It knows nothing
// about application handlers; callers that run them decide whether the
// default should happen at all.
func (d *Document) HandleEvent(ev *DomEvent) {
	switch data := ev.Data.(type) {
	case MouseMove:
		d.HandleMouseMove(ev.Target, data.X, data.Y, data.Buttons)
	case MouseDown:
		d.HandleMouseDown(ev.Target, data.X, data.Y)
	case MouseUp:
	case Click:
		d.HandleClick(ev.Target, data.X, data.Y)
	case KeyPress:
		d.HandleKeyPress(KeyEventData(data))
	case Ime:
		d.HandleIme(ImeEventData(data))
	case Hover:
		d.SetHover(ev.Target)
	}
}
