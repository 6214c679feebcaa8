// internal/browser/dom/html_test.go
package dom_test

import (
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
)

const formHTML = `<!DOCTYPE html>
<html><body>
<form id="f" action="/go">
  <label for="cb">Accept</label>
  <input id="cb" type="checkbox" name="agree" checked>
  <input id="name" name="name" value="ada">
  <textarea id="bio" name="bio">hello there</textarea>
  <!-- note -->
</form>
</body></html>`

func importForm(t *testing.T) (*dom.Document, *dom.HTMLImport) {
	t.Helper()
	d := dom.NewDocument(dom.Viewport{})
	imp, err := d.ImportHTML(dom.RootNodeID, strings.NewReader(formHTML))
	require.NoError(t, err)
	return d, imp
}

func TestImportHTML(t *testing.T) {
	d, imp := importForm(t)

	cb, ok := d.GetElementByID("cb")
	require.True(t, ok)
	c, ok := cb.Element().CheckboxChecked()
	require.True(t, ok)
	assert.True(t, c, "checked attribute seeds the control state")

	name, ok := d.GetElementByID("name")
	require.True(t, ok)
	ti, ok := name.Element().TextInput()
	require.True(t, ok)
	assert.Equal(t, "ada", ti.Editor.Text())

	bio, ok := d.GetElementByID("bio")
	require.True(t, ok)
	ti, ok = bio.Element().TextInput()
	require.True(t, ok)
	assert.Equal(t, "hello there", ti.Editor.Text(), "textarea content becomes its value")

	form, ok := d.GetElementByID("f")
	require.True(t, ok)
	owner, ok := d.FormOwner(cb.ID)
	require.True(t, ok)
	assert.Equal(t, form.ID, owner)

	// The parser's nodes map back onto the document.
	parsed := htmlquery.FindOne(imp.Root, "//input[@id='cb']")
	require.NotNil(t, parsed)
	id, ok := imp.NodeFor(parsed)
	require.True(t, ok)
	assert.Equal(t, cb.ID, id)

	// Doctype is dropped; html is the document's only child.
	root := d.RootNode()
	require.Len(t, root.Children, 1)
	htmlNode, _ := d.Node(root.Children[0])
	assert.True(t, htmlNode.IsElement("html"))

	var comments int
	d.Walk(dom.RootNodeID, func(n *dom.Node) bool {
		if _, ok := n.Data.(dom.CommentData); ok {
			comments++
		}
		return true
	})
	assert.Equal(t, 1, comments)
}

func TestImportHTML_UnknownParent(t *testing.T) {
	d := dom.NewDocument(dom.Viewport{})
	_, err := d.ImportHTML(dom.NodeID(77), strings.NewReader("<p>x</p>"))
	assert.ErrorIs(t, err, dom.ErrNodeNotFound)
}

func TestSnapshot_ReflectsLiveState(t *testing.T) {
	d, _ := importForm(t)
	cb, _ := d.GetElementByID("cb")
	dom.ToggleCheckbox(cb.Element())
	name, _ := d.GetElementByID("name")
	ti, _ := name.Element().TextInput()
	ti.Editor.SetText("grace")

	root, back := d.Snapshot(dom.RootNodeID)

	assert.Nil(t, htmlquery.FindOne(root, "//input[@id='cb'][@checked]"), "unchecked control drops the attribute")
	input := htmlquery.FindOne(root, "//input[@id='name']")
	require.NotNil(t, input)
	assert.Equal(t, "grace", htmlquery.SelectAttr(input, "value"))
	assert.Equal(t, name.ID, back[input])
}
