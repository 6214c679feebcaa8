// internal/vdom/runtime.go
package vdom

import (
	"sync"

	"go.uber.org/zap"
)

// Observer sees every event handed to the runtime, whether or not a handler
// is bound to the target.
type Observer func(name string, ev *Event, id ElementID)

type registration struct {
	seq uint64
	fn  Handler
}

// Runtime owns the handler table of a framework tree and runs handlers when
// the host dispatches events to element ids.
type Runtime struct {
	logger *zap.Logger

	mu        sync.RWMutex
	seq       uint64
	handlers  map[ElementID]map[string][]registration
	observers []Observer
}

// Registration is returned by On and removes the handler it represents.
type Registration struct {
	rt   *Runtime
	id   ElementID
	name string
	seq  uint64
}

// Remove unbinds the handler. Removing twice is harmless.
func (r Registration) Remove() {
	if r.rt == nil {
		return
	}
	r.rt.mu.Lock()
	defer r.rt.mu.Unlock()
	regs := r.rt.handlers[r.id][r.name]
	for i, reg := range regs {
		if reg.seq == r.seq {
			r.rt.handlers[r.id][r.name] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// NewRuntime creates an empty runtime.
func NewRuntime(logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runtime{
		logger:   logger.Named("runtime"),
		handlers: make(map[ElementID]map[string][]registration),
	}
}

// On binds h to events called name on element id. Handlers for the same pair
// run in registration order.
func (r *Runtime) On(id ElementID, name string, h Handler) Registration {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	byName, ok := r.handlers[id]
	if !ok {
		byName = make(map[string][]registration)
		r.handlers[id] = byName
	}
	byName[name] = append(byName[name], registration{seq: r.seq, fn: h})
	return Registration{rt: r, id: id, name: name, seq: r.seq}
}

// Off drops every handler bound to id.
func (r *Runtime) Off(id ElementID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, id)
}

// Observe registers fn to see every dispatched event.
func (r *Runtime) Observe(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// HasHandler reports whether anything listens for name on id.
func (r *Runtime) HasHandler(id ElementID, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[id][name]) > 0
}

// HandleEvent runs the handlers bound to (id, name). Handlers may register or
// remove handlers while running; the set that runs is fixed on entry.
func (r *Runtime) HandleEvent(name string, ev *Event, id ElementID) {
	r.mu.RLock()
	observers := append([]Observer(nil), r.observers...)
	regs := append([]registration(nil), r.handlers[id][name]...)
	r.mu.RUnlock()

	for _, obs := range observers {
		obs(name, ev, id)
	}
	if len(regs) == 0 {
		return
	}
	r.logger.Debug("Dispatching event.", zap.String("event", name), zap.Uint64("element_id", uint64(id)), zap.Int("handlers", len(regs)))
	for _, reg := range regs {
		reg.fn(ev)
	}
}
