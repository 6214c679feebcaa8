// internal/vdom/runtime_test.go
package vdom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/lattice/internal/vdom"
)

func TestRuntime_HandleEvent(t *testing.T) {
	rt := vdom.NewRuntime(zaptest.NewLogger(t))
	var calls []string
	rt.On(1, "click", func(*vdom.Event) { calls = append(calls, "first") })
	second := rt.On(1, "click", func(ev *vdom.Event) {
		calls = append(calls, "second")
		ev.PreventDefault()
	})
	rt.On(2, "click", func(*vdom.Event) { calls = append(calls, "other") })

	var seen []vdom.ElementID
	rt.Observe(func(name string, _ *vdom.Event, id vdom.ElementID) { seen = append(seen, id) })

	ev := vdom.NewEvent("payload", true)
	rt.HandleEvent("click", ev, 1)
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.False(t, ev.DefaultActionEnabled())
	assert.True(t, ev.Propagates())

	second.Remove()
	second.Remove()
	calls = nil
	rt.HandleEvent("click", vdom.NewEvent(nil, true), 1)
	assert.Equal(t, []string{"first"}, calls)

	rt.HandleEvent("input", vdom.NewEvent(nil, true), 3)
	assert.Equal(t, []vdom.ElementID{1, 1, 3}, seen, "observers see events without handlers")

	rt.Off(1)
	assert.False(t, rt.HasHandler(1, "click"))
	assert.True(t, rt.HasHandler(2, "click"))
}

func TestEvent_Flags(t *testing.T) {
	ev := vdom.NewEvent(nil, false)
	assert.False(t, ev.Propagates(), "non-bubbling events never propagate")
	assert.True(t, ev.DefaultActionEnabled())

	ev = vdom.NewEvent(nil, true)
	ev.StopPropagation()
	assert.False(t, ev.Propagates())
	assert.True(t, ev.Bubbles())
}

func TestElementBindingsRegisterOnMount(t *testing.T) {
	clicked := 0
	button := vdom.El("button", nil).On("click", func(*vdom.Event) { clicked++ })
	tree := vdom.NewTree(nil, button)
	assert.NoError(t, tree.Rebuild(&recorder{}))

	tree.Runtime().HandleEvent("click", vdom.NewEvent(nil, true), button.ID())
	assert.Equal(t, 1, clicked)
}
