// internal/browser/dom/document.go
package dom

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNodeNotFound is returned when an operation names a node that does not exist.
var ErrNodeNotFound = errors.New("node not found")

// ColorScheme is the preferred color scheme reported to styling.
type ColorScheme int

const (
	ColorSchemeLight ColorScheme = iota
	ColorSchemeDark
)

// ParseColorScheme maps "light"/"dark" to a ColorScheme, defaulting to light.
func ParseColorScheme(s string) ColorScheme {
	if strings.EqualFold(s, "dark") {
		return ColorSchemeDark
	}
	return ColorSchemeLight
}

// Viewport describes the surface the document is presented on.
type Viewport struct {
	Width       int
	Height      int
	Scale       float64
	ColorScheme ColorScheme
}

// NewViewport creates a viewport.
func NewViewport(width, height int, scale float64, scheme ColorScheme) Viewport {
	return Viewport{Width: width, Height: height, Scale: scale, ColorScheme: scheme}
}

// ScaleFactor returns the device pixel ratio, treating unset values as 1.
func (v Viewport) ScaleFactor() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// Document owns a node tree plus the interaction state (focus, hover, form
// ownership) that input handling reads and mutates. A Document is not safe
// for concurrent use; one event is processed to completion before the next.
type Document struct {
	id       uuid.UUID
	nodes    map[NodeID]*Node
	nextID   NodeID
	viewport Viewport
	baseURL  *url.URL

	focus    NodeID
	hasFocus bool
	hover    NodeID
	hasHover bool

	// controlsToForm maps a form-associated control to its form owner.
	controlsToForm map[NodeID]NodeID

	navigation NavigationProvider
	newEditor  func(value string) TextEditor
	logger     *zap.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger.Named("dom")
		}
	}
}

// WithNavigationProvider sets the receiver of navigation requests.
func WithNavigationProvider(p NavigationProvider) Option {
	return func(d *Document) {
		if p != nil {
			d.navigation = p
		}
	}
}

// WithBaseURL sets the URL relative links are resolved against.
func WithBaseURL(u *url.URL) Option {
	return func(d *Document) { d.baseURL = u }
}

// WithEditorFactory overrides how text controls obtain their editor.
func WithEditorFactory(fn func(value string) TextEditor) Option {
	return func(d *Document) {
		if fn != nil {
			d.newEditor = fn
		}
	}
}

// NewDocument creates a document holding only the document node.
func NewDocument(viewport Viewport, opts ...Option) *Document {
	d := &Document{
		id:             uuid.New(),
		nodes:          make(map[NodeID]*Node),
		viewport:       viewport,
		controlsToForm: make(map[NodeID]NodeID),
		navigation:     NopNavigationProvider{},
		logger:         zap.NewNop(),
	}
	d.newEditor = func(value string) TextEditor {
		return NewPlainEditor(value, DefaultGlyphAdvance)
	}
	for _, opt := range opts {
		opt(d)
	}
	d.nodes[RootNodeID] = &Node{ID: RootNodeID, Data: DocumentData{}}
	d.nextID = RootNodeID + 1
	return d
}

// ID is the document's identity, reported as the source of navigations.
func (d *Document) ID() uuid.UUID { return d.id }

func (d *Document) Viewport() Viewport { return d.viewport }

func (d *Document) SetViewport(v Viewport) { d.viewport = v }

func (d *Document) BaseURL() *url.URL { return d.baseURL }

// SetBaseURL parses and installs the base URL. An empty string clears it.
func (d *Document) SetBaseURL(raw string) error {
	if raw == "" {
		d.baseURL = nil
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", raw, err)
	}
	d.baseURL = u
	return nil
}

func (d *Document) Logger() *zap.Logger { return d.logger }

// -- Node access --

// Node returns the node with the given id.
func (d *Document) Node(id NodeID) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// RootNode returns the document node.
func (d *Document) RootNode() *Node { return d.nodes[RootNodeID] }

// Len returns the number of live nodes, including the document node.
func (d *Document) Len() int { return len(d.nodes) }

func (d *Document) createNode(data NodeData) NodeID {
	id := d.nextID
	d.nextID++
	d.nodes[id] = &Node{ID: id, Data: data}
	return id
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(name string, attrs []Attribute) NodeID {
	el := NewElementData(name, attrs)
	d.deriveSpecificData(el)
	return d.createNode(el)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) NodeID {
	return d.createNode(TextData{Content: text})
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(text string) NodeID {
	return d.createNode(CommentData{Content: text})
}

// AppendChild attaches child as the last child of parent. A child that is
// already attached elsewhere is moved.
func (d *Document) AppendChild(parent, child NodeID) error {
	p, ok := d.nodes[parent]
	if !ok {
		return fmt.Errorf("append to %d: %w", parent, ErrNodeNotFound)
	}
	c, ok := d.nodes[child]
	if !ok {
		return fmt.Errorf("append %d: %w", child, ErrNodeNotFound)
	}
	if parent == child || d.isAncestor(child, parent) {
		return fmt.Errorf("append %d to %d: would create a cycle", child, parent)
	}
	d.detach(c)
	p.Children = append(p.Children, child)
	c.parent, c.hasParent = parent, true
	c.layoutParent, c.hasLayoutParent = parent, true
	d.walk(child, func(n *Node) bool {
		d.resetFormOwner(n.ID)
		// A form inserted after controls that name it adopts them.
		if id, ok := n.Attr("id"); ok {
			d.resetFormReferences(id)
		}
		return true
	})
	return nil
}

// isAncestor reports whether anc is a strict ancestor of id.
func (d *Document) isAncestor(anc, id NodeID) bool {
	n, ok := d.nodes[id]
	for ok {
		p, has := n.Parent()
		if !has {
			return false
		}
		if p == anc {
			return true
		}
		n, ok = d.nodes[p]
	}
	return false
}

func (d *Document) detach(n *Node) {
	p, ok := n.Parent()
	if !ok {
		return
	}
	if parent, ok := d.nodes[p]; ok {
		for i, c := range parent.Children {
			if c == n.ID {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
	}
	n.hasParent = false
	n.hasLayoutParent = false
}

// RemoveNode detaches a node and drops it together with its descendants.
func (d *Document) RemoveNode(id NodeID) error {
	if id == RootNodeID {
		return fmt.Errorf("cannot remove the document node")
	}
	n, ok := d.nodes[id]
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrNodeNotFound)
	}
	d.detach(n)
	var doomed []NodeID
	d.walk(id, func(n *Node) bool {
		doomed = append(doomed, n.ID)
		return true
	})
	for _, nid := range doomed {
		delete(d.nodes, nid)
		delete(d.controlsToForm, nid)
		if d.hasFocus && d.focus == nid {
			d.ClearFocus()
		}
		if d.hasHover && d.hover == nid {
			d.hasHover = false
		}
	}
	for ctl, form := range d.controlsToForm {
		if _, ok := d.nodes[form]; !ok {
			delete(d.controlsToForm, ctl)
		}
	}
	return nil
}

// SetAttribute sets an attribute and refreshes any state derived from it.
func (d *Document) SetAttribute(id NodeID, name, value string) error {
	n, ok := d.nodes[id]
	if !ok {
		return fmt.Errorf("set attribute on %d: %w", id, ErrNodeNotFound)
	}
	el := n.Element()
	if el == nil {
		return fmt.Errorf("set attribute on %d: not an element", id)
	}
	name = strings.ToLower(name)
	el.SetAttr(name, value)
	d.attributeChanged(n, el, name, true)
	return nil
}

// RemoveAttribute removes an attribute and refreshes any state derived from it.
func (d *Document) RemoveAttribute(id NodeID, name string) error {
	n, ok := d.nodes[id]
	if !ok {
		return fmt.Errorf("remove attribute on %d: %w", id, ErrNodeNotFound)
	}
	el := n.Element()
	if el == nil {
		return fmt.Errorf("remove attribute on %d: not an element", id)
	}
	name = strings.ToLower(name)
	if el.RemoveAttr(name) {
		d.attributeChanged(n, el, name, false)
	}
	return nil
}

func (d *Document) attributeChanged(n *Node, el *ElementData, name string, present bool) {
	switch name {
	case "type":
		d.deriveSpecificData(el)
	case "checked":
		if cb, ok := el.Specific.(*CheckboxInputData); ok {
			cb.Checked = present
		}
	case "value":
		if ti, ok := el.Specific.(*TextInputData); ok && el.Name == "input" {
			v, _ := el.Attr("value")
			ti.Editor.SetText(v)
		}
	case "form":
		d.resetFormOwner(n.ID)
	case "id":
		// Controls elsewhere may reference this element through form="...".
		if el.Name == "form" {
			d.walk(RootNodeID, func(c *Node) bool {
				if c.Element() != nil && c.Element().HasAttr("form") {
					d.resetFormOwner(c.ID)
				}
				return true
			})
		}
	}
}

// SetTextContent replaces the content of a text node.
func (d *Document) SetTextContent(id NodeID, text string) error {
	n, ok := d.nodes[id]
	if !ok {
		return fmt.Errorf("set text on %d: %w", id, ErrNodeNotFound)
	}
	if _, ok := n.Data.(TextData); !ok {
		return fmt.Errorf("set text on %d: not a text node", id)
	}
	n.Data = TextData{Content: text}
	return nil
}

// -- Traversal --

// walk visits the subtree rooted at id in tree order. Returning false from
// fn skips the node's descendants.
func (d *Document) walk(id NodeID, fn func(*Node) bool) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		d.walk(c, fn)
	}
}

// Walk visits every node under id in tree order.
func (d *Document) Walk(id NodeID, fn func(*Node) bool) { d.walk(id, fn) }

// NodeChain returns id followed by its ancestors up to the document node.
func (d *Document) NodeChain(id NodeID) []NodeID {
	var chain []NodeID
	n, ok := d.nodes[id]
	for ok {
		chain = append(chain, n.ID)
		p, has := n.Parent()
		if !has {
			break
		}
		n, ok = d.nodes[p]
	}
	return chain
}

// GetElementByID returns the first element in tree order whose id attribute matches.
func (d *Document) GetElementByID(elementID string) (*Node, bool) {
	var found *Node
	d.walk(RootNodeID, func(n *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := n.Attr("id"); ok && v == elementID {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// -- Focus and hover --

// SetFocusTo moves focus to the node.
func (d *Document) SetFocusTo(id NodeID) {
	if _, ok := d.nodes[id]; !ok {
		return
	}
	if d.hasFocus && d.focus == id {
		return
	}
	d.focus, d.hasFocus = id, true
	d.logger.Debug("Focus changed.", zap.Int("node_id", int(id)))
}

// ClearFocus leaves no node focused.
func (d *Document) ClearFocus() {
	d.hasFocus = false
}

// FocusedNode returns the focused node id, if any.
func (d *Document) FocusedNode() (NodeID, bool) {
	return d.focus, d.hasFocus
}

// SetHover records the node currently under the pointer.
func (d *Document) SetHover(id NodeID) {
	if _, ok := d.nodes[id]; !ok {
		d.hasHover = false
		return
	}
	d.hover, d.hasHover = id, true
}

// HoverNode returns the hovered node id, if any.
func (d *Document) HoverNode() (NodeID, bool) {
	return d.hover, d.hasHover
}

// -- Debugging --

// PrintTree writes the tree to the debug log, one entry per node.
func (d *Document) PrintTree() {
	if ce := d.logger.Check(zap.DebugLevel, "Document tree."); ce == nil {
		return
	}
	var printNode func(id NodeID, depth int)
	printNode = func(id NodeID, depth int) {
		n, ok := d.nodes[id]
		if !ok {
			return
		}
		d.logger.Debug(strings.Repeat("  ", depth)+d.Describe(id), zap.Int("node_id", int(id)))
		for _, c := range n.Children {
			printNode(c, depth+1)
		}
	}
	printNode(RootNodeID, 0)
}

// Describe renders a short label for a node, e.g. input#agree or #text.
func (d *Document) Describe(id NodeID) string {
	n, ok := d.nodes[id]
	if !ok {
		return fmt.Sprintf("<missing %d>", id)
	}
	switch data := n.Data.(type) {
	case DocumentData:
		return "#document"
	case TextData:
		return fmt.Sprintf("#text %q", data.Content)
	case CommentData:
		return "#comment"
	case *ElementData:
		var sb strings.Builder
		sb.WriteString(data.Name)
		if v, ok := data.Attr("id"); ok && v != "" {
			sb.WriteString("#" + v)
		}
		if v, ok := data.Attr("type"); ok && data.Name == "input" {
			sb.WriteString("[type=" + v + "]")
		}
		if v, ok := data.Attr("name"); ok {
			sb.WriteString("[name=" + v + "]")
		}
		return sb.String()
	}
	return "?"
}
