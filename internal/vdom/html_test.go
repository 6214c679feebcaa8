// internal/vdom/html_test.go
package vdom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/lattice/internal/vdom"
)

func TestFromHTML(t *testing.T) {
	nodes, err := vdom.FromHTML(strings.NewReader(`<!doctype html>
<html><head><title>T</title></head>
<body>
  <!-- note -->
  <form action="/go"><input type="checkbox" name="a" checked><svg><rect width="1"></rect></svg></form>
</body></html>`))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	head := nodes[0].(*vdom.Element)
	body := nodes[1].(*vdom.Element)
	assert.Equal(t, "head", head.Tag)
	assert.Equal(t, "body", body.Tag)
	require.Len(t, body.Children, 1, "comments and whitespace are dropped")

	form := body.Children[0].(*vdom.Element)
	action, ok := form.Attr("action")
	require.True(t, ok)
	assert.Equal(t, "/go", action)

	input := form.Children[0].(*vdom.Element)
	_, ok = input.Attr("checked")
	assert.True(t, ok)

	svg := form.Children[1].(*vdom.Element)
	assert.Equal(t, "svg", svg.Namespace)

	var count int
	vdom.Walk(body, func(vdom.Node) bool { count++; return true })
	assert.Equal(t, 5, count)
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, []vdom.Attr{{Name: "a", Value: "1"}, {Name: "b"}}, vdom.Attrs("a", "1", "b"))
}
