// internal/browser/dom/events.go
package dom

// MouseEventButton is the button whose state changed.
type MouseEventButton int

const (
	MouseButtonMain MouseEventButton = iota
	MouseButtonAuxiliary
	MouseButtonSecondary
	MouseButtonFourth
	MouseButtonFifth
)

// MouseEventButtons is the set of buttons held while an event fired.
type MouseEventButtons uint8

const (
	MouseButtonsNone      MouseEventButtons = 0
	MouseButtonsPrimary   MouseEventButtons = 1 << 0
	MouseButtonsSecondary MouseEventButtons = 1 << 1
	MouseButtonsAuxiliary MouseEventButtons = 1 << 2
	MouseButtonsFourth    MouseEventButtons = 1 << 3
	MouseButtonsFifth     MouseEventButtons = 1 << 4
)

// Any reports whether at least one button is held.
func (b MouseEventButtons) Any() bool { return b != MouseButtonsNone }

// Modifiers is the set of keyboard modifiers active during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether every modifier in m is set.
func (m Modifiers) Has(mod Modifiers) bool { return m&mod == mod }

// MouseEventData is the pointer state carried by mouse events. X and Y are
// in viewport coordinates.
type MouseEventData struct {
	X, Y    float64
	Button  MouseEventButton
	Buttons MouseEventButtons
	Mods    Modifiers
}

// KeyState distinguishes press from release.
type KeyState int

const (
	KeyPressed KeyState = iota
	KeyReleased
)

func (s KeyState) IsPressed() bool { return s == KeyPressed }

// KeyEventData describes a keyboard event. Key uses the logical key names
// of the platform ("a", "Enter", "Backspace"); Text is what the key typed,
// if anything.
type KeyEventData struct {
	Key    string
	Code   string
	Mods   Modifiers
	State  KeyState
	Text   string
	Repeat bool
}

// HasText reports whether the key produced text.
func (k KeyEventData) HasText() bool { return k.Text != "" }

// ImeEventKind is the phase of an input method composition.
type ImeEventKind int

const (
	ImeEnabled ImeEventKind = iota
	ImePreedit
	ImeCommit
	ImeDisabled
)

// ImeEventData carries composition text.
type ImeEventData struct {
	Kind ImeEventKind
	Text string
}

// DomEventData is the closed set of event payloads: MouseMove, MouseDown,
// MouseUp, Click, KeyPress, Ime and Hover.
type DomEventData interface {
	isDomEventData()
}

type (
	MouseMove MouseEventData
	MouseDown MouseEventData
	MouseUp   MouseEventData
	Click     MouseEventData
	KeyPress  KeyEventData
	Ime       ImeEventData
	Hover     struct{}
)

func (MouseMove) isDomEventData() {}
func (MouseDown) isDomEventData() {}
func (MouseUp) isDomEventData()   {}
func (Click) isDomEventData()     {}
func (KeyPress) isDomEventData()  {}
func (Ime) isDomEventData()       {}
func (Hover) isDomEventData()     {}

// DomEvent is an input event addressed to a node.
type DomEvent struct {
	Target     NodeID
	Bubbles    bool
	Cancelable bool
	Data       DomEventData
}

// NewDomEvent builds an event with the bubbling and cancelation flags its
// kind carries by default.
func NewDomEvent(target NodeID, data DomEventData) *DomEvent {
	ev := &DomEvent{Target: target, Bubbles: true, Cancelable: true, Data: data}
	if _, ok := data.(Hover); ok {
		ev.Bubbles, ev.Cancelable = false, false
	}
	return ev
}

// Name returns the event's type name as handlers see it.
func (e *DomEvent) Name() string {
	switch data := e.Data.(type) {
	case MouseMove:
		return "mousemove"
	case MouseDown:
		return "mousedown"
	case MouseUp:
		return "mouseup"
	case Click:
		return "click"
	case KeyPress:
		if data.State.IsPressed() {
			return "keydown"
		}
		return "keyup"
	case Ime:
		return "ime"
	case Hover:
		return "mouseover"
	}
	return ""
}

// MouseData returns the pointer payload of mouse events.
func (e *DomEvent) MouseData() (MouseEventData, bool) {
	switch data := e.Data.(type) {
	case MouseMove:
		return MouseEventData(data), true
	case MouseDown:
		return MouseEventData(data), true
	case MouseUp:
		return MouseEventData(data), true
	case Click:
		return MouseEventData(data), true
	}
	return MouseEventData{}, false
}
