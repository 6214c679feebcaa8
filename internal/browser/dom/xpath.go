// internal/browser/dom/xpath.go
package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
)

// GenerateUniqueXPath generates a robust XPath expression for a node.
// It prioritizes using IDs as anchors for stability and brevity.
func (d *Document) GenerateUniqueXPath(id NodeID) string {
	n, ok := d.nodes[id]
	if !ok {
		return ""
	}

	var path []string
	// Traverse up the tree from the node to the root.
	for ok {
		if el := n.Element(); el != nil {
			// If an element has an ID, use it as the base and stop traversal.
			if v, has := el.Attr("id"); has && v != "" {
				path = append(path, fmt.Sprintf(`//*[@id='%s']`, v))
				break
			}
			path = append(path, fmt.Sprintf("%s[%d]", el.Name, d.sameTagIndex(n)))
		}
		p, has := n.Parent()
		if !has {
			break
		}
		n, ok = d.nodes[p]
	}

	if len(path) == 0 {
		return "/"
	}

	// Reverse the path to go from root (or ID base) to the node.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	xpath := strings.Join(path, "/")
	if !strings.HasPrefix(xpath, "//*[@id=") {
		xpath = "/" + xpath
	}
	return xpath
}

// sameTagIndex is the 1-based position of n among siblings sharing its tag.
func (d *Document) sameTagIndex(n *Node) int {
	p, ok := n.Parent()
	if !ok {
		return 1
	}
	index := 1
	for _, sib := range d.nodes[p].Children {
		if sib == n.ID {
			break
		}
		if s, ok := d.nodes[sib]; ok && s.IsElement(n.Element().Name) {
			index++
		}
	}
	return index
}

// QueryXPath evaluates an XPath expression against the current tree and
// returns matching nodes in document order.
func (d *Document) QueryXPath(expr string) ([]NodeID, error) {
	root, back := d.Snapshot(RootNodeID)
	matches, err := htmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	ids := make([]NodeID, 0, len(matches))
	for _, m := range matches {
		if id, ok := back[m]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// QueryXPathOne returns the first node matching expr.
func (d *Document) QueryXPathOne(expr string) (NodeID, error) {
	ids, err := d.QueryXPath(expr)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("xpath %q: %w", expr, ErrNodeNotFound)
	}
	return ids[0], nil
}
