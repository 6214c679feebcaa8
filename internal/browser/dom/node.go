// internal/browser/dom/node.go
package dom

import "strings"

// NodeID identifies a node for the lifetime of its document.
type NodeID int

// RootNodeID is the id of the document node every tree hangs from.
const RootNodeID NodeID = 0

// -- Geometry --

// Point is a position in some node's local coordinate space.
type Point struct {
	X, Y float64
}

// Size is the extent of a layout box.
type Size struct {
	Width, Height float64
}

// Edges holds per-side widths for padding and border.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Layout is the geometry produced by the layout collaborator. Location is
// relative to the node's layout parent; Size covers the border box and
// ContentSize the overflowing content.
type Layout struct {
	Location    Point
	Size        Size
	ContentSize Size
	Padding     Edges
	Border      Edges
}

// ContentBoxOffset returns the offset of the content box from the border box origin.
func (l Layout) ContentBoxOffset() Point {
	return Point{
		X: l.Padding.Left + l.Border.Left,
		Y: l.Padding.Top + l.Border.Top,
	}
}

// Contains reports whether a local point falls inside the border box.
// Zero sized boxes contain nothing.
func (l Layout) Contains(x, y float64) bool {
	if l.Size.Width == 0 && l.Size.Height == 0 {
		return false
	}
	return within(l.Size, x, y)
}

// HasBox reports whether layout assigned the node any extent at all.
func (l Layout) HasBox() bool {
	return l.Size != (Size{}) || l.ContentSize != (Size{})
}

func within(s Size, x, y float64) bool {
	return x >= 0 && x <= s.Width && y >= 0 && y <= s.Height
}

// -- Node payloads --

// NodeData is the closed set of node kinds: DocumentData, *ElementData,
// TextData and CommentData.
type NodeData interface {
	isNodeData()
}

// DocumentData marks the document node.
type DocumentData struct{}

// TextData is a run of character data.
type TextData struct {
	Content string
}

// CommentData is a markup comment.
type CommentData struct {
	Content string
}

func (DocumentData) isNodeData() {}
func (TextData) isNodeData()     {}
func (CommentData) isNodeData()  {}

// -- Node --

// Node is one entry in the document tree.
type Node struct {
	ID       NodeID
	Children []NodeID
	Layout   Layout
	Data     NodeData

	parent          NodeID
	hasParent       bool
	layoutParent    NodeID
	hasLayoutParent bool
}

// Parent returns the DOM parent, if any.
func (n *Node) Parent() (NodeID, bool) {
	return n.parent, n.hasParent
}

// LayoutParent returns the parent whose coordinate space Layout.Location is
// expressed in. Without anonymous boxes this is the DOM parent.
func (n *Node) LayoutParent() (NodeID, bool) {
	return n.layoutParent, n.hasLayoutParent
}

// Element returns the element payload, or nil when the node is not an element.
func (n *Node) Element() *ElementData {
	el, _ := n.Data.(*ElementData)
	return el
}

// IsElement reports whether the node is an element with the given tag name.
func (n *Node) IsElement(tag string) bool {
	el := n.Element()
	return el != nil && el.Name == strings.ToLower(tag)
}

// Attr is a shortcut for Element().Attr on element nodes.
func (n *Node) Attr(name string) (string, bool) {
	if el := n.Element(); el != nil {
		return el.Attr(name)
	}
	return "", false
}

// TextContent concatenates the text of the node and its descendants.
func (d *Document) TextContent(id NodeID) string {
	var sb strings.Builder
	d.walk(id, func(n *Node) bool {
		if t, ok := n.Data.(TextData); ok {
			sb.WriteString(t.Content)
		}
		return true
	})
	return sb.String()
}
