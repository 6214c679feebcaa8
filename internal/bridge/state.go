// internal/bridge/state.go
package bridge

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
	"github.com/xkilldash9x/lattice/internal/vdom"
)

// FrameworkIDAttr is the attribute that carries an element's framework id
// in the document, in decimal.
const FrameworkIDAttr = "data-vdom-id"

// ErrUnknownElement is returned for mutations naming an id that was never
// created or has been removed.
var ErrUnknownElement = errors.New("bridge: unknown framework element")

// State maps framework ids to document nodes.
type State struct {
	nodes map[vdom.ElementID]dom.NodeID
}

// NewState maps the framework root to mount.
func NewState(mount dom.NodeID) *State {
	return &State{nodes: map[vdom.ElementID]dom.NodeID{vdom.RootID: mount}}
}

// NodeFor returns the document node of a framework id.
func (s *State) NodeFor(id vdom.ElementID) (dom.NodeID, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

func (s *State) Len() int { return len(s.nodes) }

func (s *State) lookup(id vdom.ElementID) (dom.NodeID, error) {
	n, ok := s.nodes[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownElement, id)
	}
	return n, nil
}

// MutationWriter applies framework mutations to a document.
type MutationWriter struct {
	doc    *dom.Document
	state  *State
	logger *zap.Logger
}

var _ vdom.Writer = (*MutationWriter)(nil)

// NewMutationWriter creates a writer over doc.
func NewMutationWriter(doc *dom.Document, state *State, logger *zap.Logger) *MutationWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MutationWriter{doc: doc, state: state, logger: logger}
}

func qualifiedName(name, namespace string) string {
	if namespace == "" {
		return name
	}
	return namespace + ":" + name
}

func (w *MutationWriter) CreateElement(id vdom.ElementID, tag, _ string) error {
	attrs := []dom.Attribute{{Name: FrameworkIDAttr, Value: strconv.FormatUint(uint64(id), 10)}}
	w.state.nodes[id] = w.doc.CreateElement(tag, attrs)
	return nil
}

func (w *MutationWriter) CreateText(id vdom.ElementID, content string) error {
	w.state.nodes[id] = w.doc.CreateTextNode(content)
	return nil
}

func (w *MutationWriter) SetAttribute(id vdom.ElementID, name, namespace, value string) error {
	n, err := w.state.lookup(id)
	if err != nil {
		return err
	}
	return w.doc.SetAttribute(n, qualifiedName(name, namespace), value)
}

func (w *MutationWriter) RemoveAttribute(id vdom.ElementID, name, namespace string) error {
	n, err := w.state.lookup(id)
	if err != nil {
		return err
	}
	return w.doc.RemoveAttribute(n, qualifiedName(name, namespace))
}

func (w *MutationWriter) SetText(id vdom.ElementID, content string) error {
	n, err := w.state.lookup(id)
	if err != nil {
		return err
	}
	return w.doc.SetTextContent(n, content)
}

// AppendChildren appends in order. A <textarea> takes its initial value from
// the text appended to it.
func (w *MutationWriter) AppendChildren(parent vdom.ElementID, children []vdom.ElementID) error {
	p, err := w.state.lookup(parent)
	if err != nil {
		return err
	}
	for _, c := range children {
		cn, err := w.state.lookup(c)
		if err != nil {
			return err
		}
		if err := w.doc.AppendChild(p, cn); err != nil {
			return fmt.Errorf("bridge: appending %d to %d: %w", c, parent, err)
		}
	}
	if pn, ok := w.doc.Node(p); ok && pn.IsElement("textarea") {
		if ti, ok := pn.Element().TextInput(); ok {
			ti.Editor.SetText(w.doc.TextContent(p))
		}
	}
	return nil
}

// Remove drops the node and forgets every framework id in its subtree.
func (w *MutationWriter) Remove(id vdom.ElementID) error {
	n, err := w.state.lookup(id)
	if err != nil {
		return err
	}
	var gone []vdom.ElementID
	w.doc.Walk(n, func(node *dom.Node) bool {
		if fid, ok := frameworkID(node.Element()); ok {
			gone = append(gone, fid)
		}
		return true
	})
	if err := w.doc.RemoveNode(n); err != nil {
		return err
	}
	delete(w.state.nodes, id)
	for _, fid := range gone {
		delete(w.state.nodes, fid)
	}
	w.logger.Debug("Removed framework subtree.", zap.Uint64("element_id", uint64(id)), zap.Int("forgotten", len(gone)))
	return nil
}

// frameworkID reads the framework id of an element. Text nodes have none.
func frameworkID(el *dom.ElementData) (vdom.ElementID, bool) {
	if el == nil {
		return 0, false
	}
	raw, ok := el.Attr(FrameworkIDAttr)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return vdom.ElementID(id), true
}
