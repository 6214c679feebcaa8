// internal/vdom/event.go
package vdom

// ElementID identifies a node of the framework tree. Ids are assigned when a
// node is first written and never reused.
type ElementID uint64

// RootID is the implicit mount point every top-level node hangs from.
const RootID ElementID = 0

// Event is what application handlers receive. Data holds the payload type of
// the event kind (click data, keyboard data, form data...).
type Event struct {
	Data any

	bubbles            bool
	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent wraps a payload.
func NewEvent(data any, bubbles bool) *Event {
	return &Event{Data: data, bubbles: bubbles}
}

// PreventDefault suppresses the default action of the event.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// DefaultActionEnabled reports whether no handler prevented the default.
func (e *Event) DefaultActionEnabled() bool { return !e.defaultPrevented }

// Propagates reports whether the event may continue to ancestors.
func (e *Event) Propagates() bool { return e.bubbles && !e.propagationStopped }

func (e *Event) Bubbles() bool { return e.bubbles }

// Handler is an application callback bound to an element and event name.
type Handler func(*Event)
