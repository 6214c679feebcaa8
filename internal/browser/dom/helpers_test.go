// internal/browser/dom/helpers_test.go
package dom_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
)

// box is a border box relative to the parent's origin.
type box struct {
	X, Y, W, H float64
}

func (b box) layout() dom.Layout {
	return dom.Layout{
		Location: dom.Point{X: b.X, Y: b.Y},
		Size:     dom.Size{Width: b.W, Height: b.H},
	}
}

// builder assembles small laid out trees for tests.
type builder struct {
	t   *testing.T
	doc *dom.Document
}

func newBuilder(t *testing.T, opts ...dom.Option) *builder {
	t.Helper()
	return &builder{t: t, doc: dom.NewDocument(dom.NewViewport(800, 600, 1, dom.ColorSchemeLight), opts...)}
}

// el appends an element under parent with the given box and attributes,
// passed as name/value pairs.
func (b *builder) el(parent dom.NodeID, tag string, bx box, kv ...string) dom.NodeID {
	b.t.Helper()
	require.Zero(b.t, len(kv)%2, "attributes come in name/value pairs")
	attrs := make([]dom.Attribute, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		attrs = append(attrs, dom.Attribute{Name: kv[i], Value: kv[i+1]})
	}
	id := b.doc.CreateElement(tag, attrs)
	require.NoError(b.t, b.doc.AppendChild(parent, id))
	b.setBox(id, bx)
	return id
}

// text appends a text node with the given box.
func (b *builder) text(parent dom.NodeID, content string, bx box) dom.NodeID {
	b.t.Helper()
	id := b.doc.CreateTextNode(content)
	require.NoError(b.t, b.doc.AppendChild(parent, id))
	b.setBox(id, bx)
	return id
}

func (b *builder) setBox(id dom.NodeID, bx box) {
	n, ok := b.doc.Node(id)
	require.True(b.t, ok)
	n.Layout = bx.layout()
}

// html adds the usual html element covering the viewport.
func (b *builder) html() dom.NodeID {
	return b.el(dom.RootNodeID, "html", box{0, 0, 800, 600})
}

func checked(t *testing.T, d *dom.Document, id dom.NodeID) bool {
	t.Helper()
	n, ok := d.Node(id)
	require.True(t, ok)
	c, ok := n.Element().CheckboxChecked()
	require.True(t, ok, "node %d has no checkbox state", id)
	return c
}

func focused(d *dom.Document) (dom.NodeID, bool) {
	return d.FocusedNode()
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
