// internal/browser/dom/html.go
package dom

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// HTMLImport records which document node each parsed markup node became.
type HTMLImport struct {
	Root  *html.Node
	nodes map[*html.Node]NodeID
}

// NodeFor returns the document node created for a parsed node.
func (imp *HTMLImport) NodeFor(n *html.Node) (NodeID, bool) {
	id, ok := imp.nodes[n]
	return id, ok
}

// ImportHTML parses markup and appends the resulting tree under parent.
// Doctype nodes are dropped; everything else keeps its tree position.
func (d *Document) ImportHTML(parent NodeID, r io.Reader) (*HTMLImport, error) {
	if _, ok := d.nodes[parent]; !ok {
		return nil, fmt.Errorf("import html into %d: %w", parent, ErrNodeNotFound)
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	imp := &HTMLImport{Root: root, nodes: map[*html.Node]NodeID{root: parent}}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := d.importNode(imp, parent, c); err != nil {
			return nil, err
		}
	}
	d.logger.Debug("Imported html.", zap.Int("parent", int(parent)), zap.Int("nodes", len(imp.nodes)))
	return imp, nil
}

func (d *Document) importNode(imp *HTMLImport, parent NodeID, n *html.Node) error {
	var id NodeID
	switch n.Type {
	case html.ElementNode:
		attrs := make([]Attribute, 0, len(n.Attr))
		for _, a := range n.Attr {
			attrs = append(attrs, Attribute{Name: a.Key, Value: a.Val})
		}
		id = d.CreateElement(n.Data, attrs)
	case html.TextNode:
		id = d.CreateTextNode(n.Data)
	case html.CommentNode:
		id = d.CreateComment(n.Data)
	default:
		return nil
	}
	if err := d.AppendChild(parent, id); err != nil {
		return err
	}
	imp.nodes[n] = id
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := d.importNode(imp, id, c); err != nil {
			return err
		}
	}
	if n.Type == html.ElementNode && n.Data == "textarea" {
		// The textarea's initial value is its text content.
		if ti, ok := d.nodes[id].Element().TextInput(); ok {
			ti.Editor.SetText(d.TextContent(id))
		}
	}
	return nil
}

// Snapshot renders the subtree under id as a parsed markup tree, returning
// the mapping from markup nodes back to document nodes. Checkedness and
// editor text are reflected into checked and value attributes.
func (d *Document) Snapshot(id NodeID) (*html.Node, map[*html.Node]NodeID) {
	back := make(map[*html.Node]NodeID)
	root := &html.Node{Type: html.DocumentNode}
	back[root] = id
	n, ok := d.nodes[id]
	if !ok {
		return root, back
	}
	if _, isDoc := n.Data.(DocumentData); isDoc {
		for _, c := range n.Children {
			d.snapshotNode(root, c, back)
		}
	} else {
		d.snapshotNode(root, id, back)
	}
	return root, back
}

func (d *Document) snapshotNode(parent *html.Node, id NodeID, back map[*html.Node]NodeID) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	var out *html.Node
	switch data := n.Data.(type) {
	case TextData:
		out = &html.Node{Type: html.TextNode, Data: data.Content}
	case CommentData:
		out = &html.Node{Type: html.CommentNode, Data: data.Content}
	case *ElementData:
		out = &html.Node{Type: html.ElementNode, Data: data.Name}
		for _, a := range data.Attrs {
			if a.Name == "checked" || (a.Name == "value" && data.Name == "input") {
				continue
			}
			out.Attr = append(out.Attr, html.Attribute{Key: a.Name, Val: a.Value})
		}
		if checked, ok := data.CheckboxChecked(); ok && checked {
			out.Attr = append(out.Attr, html.Attribute{Key: "checked"})
		}
		if data.Name == "input" {
			value, _ := data.Attr("value")
			if ti, ok := data.TextInput(); ok {
				value = ti.Editor.Text()
			}
			if value != "" || data.HasAttr("value") {
				out.Attr = append(out.Attr, html.Attribute{Key: "value", Val: value})
			}
		}
	default:
		return
	}
	parent.AppendChild(out)
	back[out] = id
	for _, c := range n.Children {
		d.snapshotNode(out, c, back)
	}
}
