// internal/bridge/helpers_test.go
package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/lattice/internal/bridge"
	"github.com/xkilldash9x/lattice/internal/browser/dom"
	"github.com/xkilldash9x/lattice/internal/config"
	"github.com/xkilldash9x/lattice/internal/vdom"
)

type record struct {
	Name string
	ID   vdom.ElementID
	Data any
}

type harness struct {
	t    *testing.T
	tree *vdom.Tree
	doc  *bridge.Document
	seen []record
}

func testDocumentConfig() config.DocumentConfig {
	return config.DocumentConfig{ViewportWidth: 800, ViewportHeight: 600, Scale: 1, ColorScheme: "light", BaseURL: "https://example.com/"}
}

func newHarness(t *testing.T, roots ...vdom.Node) *harness {
	t.Helper()
	h := &harness{t: t, tree: vdom.NewTree(zaptest.NewLogger(t), roots...)}
	h.tree.Runtime().Observe(func(name string, ev *vdom.Event, id vdom.ElementID) {
		h.seen = append(h.seen, record{Name: name, ID: id, Data: ev.Data})
	})
	doc, err := bridge.New(h.tree, testDocumentConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	h.doc = doc

	// The synthetic html element covers the viewport.
	html, ok := doc.NodeFor(vdom.RootID)
	require.True(t, ok)
	h.setBoxNode(html, 0, 0, 800, 600)
	return h
}

func (h *harness) node(el vdom.Node) dom.NodeID {
	h.t.Helper()
	id, ok := h.doc.NodeFor(el.ID())
	require.True(h.t, ok, "element %d is not mounted", el.ID())
	return id
}

func (h *harness) setBoxNode(id dom.NodeID, x, y, w, ht float64) {
	n, ok := h.doc.Inner().Node(id)
	require.True(h.t, ok)
	n.Layout = dom.Layout{Location: dom.Point{X: x, Y: y}, Size: dom.Size{Width: w, Height: ht}}
}

func (h *harness) setBox(el vdom.Node, x, y, w, ht float64) {
	h.setBoxNode(h.node(el), x, y, w, ht)
}

func (h *harness) dispatch(x, y float64, data dom.DomEventData) {
	h.t.Helper()
	hit, ok := h.doc.Inner().Hit(x, y)
	require.True(h.t, ok, "nothing at (%v, %v)", x, y)
	h.doc.HandleEvent(dom.NewDomEvent(hit.NodeID, data))
}

func (h *harness) click(x, y float64) {
	h.dispatch(x, y, dom.Click{X: x, Y: y, Button: dom.MouseButtonMain})
}

func (h *harness) key(target vdom.Node, k dom.KeyEventData) {
	h.doc.HandleEvent(dom.NewDomEvent(h.node(target), dom.KeyPress(k)))
}

func (h *harness) eventsFor(id vdom.ElementID) []string {
	var names []string
	for _, r := range h.seen {
		if r.ID == id {
			names = append(names, r.Name)
		}
	}
	return names
}

func (h *harness) last(name string, id vdom.ElementID) (record, bool) {
	for i := len(h.seen) - 1; i >= 0; i-- {
		if h.seen[i].Name == name && h.seen[i].ID == id {
			return h.seen[i], true
		}
	}
	return record{}, false
}

func (h *harness) checked(el vdom.Node) bool {
	h.t.Helper()
	n, ok := h.doc.Inner().Node(h.node(el))
	require.True(h.t, ok)
	c, ok := n.Element().CheckboxChecked()
	require.True(h.t, ok)
	return c
}

func (h *harness) focused() (dom.NodeID, bool) { return h.doc.Inner().FocusedNode() }
