// internal/vdom/html.go
package vdom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML parses a document and returns the children of its <html> element
// (normally head and body) as framework nodes. Comments, doctypes and
// whitespace-only text are dropped.
func FromHTML(r io.Reader) ([]Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("vdom: parsing html: %w", err)
	}
	root := findAtom(doc, atom.Html)
	if root == nil {
		return nil, fmt.Errorf("vdom: document has no <html> element")
	}
	return convertChildren(root), nil
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAtom(c, a); found != nil {
			return found
		}
	}
	return nil
}

func convertChildren(n *html.Node) []Node {
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			attrs := make([]Attr, 0, len(c.Attr))
			for _, a := range c.Attr {
				attrs = append(attrs, Attr{Name: a.Key, Namespace: a.Namespace, Value: a.Val})
			}
			el := El(c.Data, attrs, convertChildren(c)...)
			if c.Namespace != "" && c.Namespace != "html" {
				el.Namespace = c.Namespace
			}
			out = append(out, el)
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			out = append(out, NewText(c.Data))
		}
	}
	return out
}
