// internal/vdom/node.go
package vdom

// Node is an element or a text node of the framework tree.
type Node interface {
	ID() ElementID
	isNode()
}

// Attr is a single attribute. Namespace is empty for plain HTML attributes.
type Attr struct {
	Name      string
	Namespace string
	Value     string
}

// Attrs builds attributes from name/value pairs. A trailing name without a
// value gets an empty value.
func Attrs(kv ...string) []Attr {
	out := make([]Attr, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		a := Attr{Name: kv[i]}
		if i+1 < len(kv) {
			a.Value = kv[i+1]
		}
		out = append(out, a)
	}
	return out
}

type binding struct {
	name string
	fn   Handler
}

// Element is a framework element. Handlers attached with On are registered
// with the runtime when the element is first written.
type Element struct {
	Tag       string
	Namespace string
	Attrs     []Attr
	Children  []Node

	bindings []binding
	id       ElementID
}

// El builds an element.
func El(tag string, attrs []Attr, children ...Node) *Element {
	return &Element{Tag: tag, Attrs: attrs, Children: children}
}

// On attaches a handler. Once the element is mounted, bind handlers through
// Runtime.On with the element's ID instead.
func (e *Element) On(name string, h Handler) *Element {
	e.bindings = append(e.bindings, binding{name: name, fn: h})
	return e
}

// ID returns the element's id, or RootID before it is mounted.
func (e *Element) ID() ElementID { return e.id }

// Attr returns the value of a plain attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name && a.Namespace == "" {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) setAttr(name, ns, value string) {
	for i, a := range e.Attrs {
		if a.Name == name && a.Namespace == ns {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Namespace: ns, Value: value})
}

func (e *Element) removeAttr(name, ns string) bool {
	for i, a := range e.Attrs {
		if a.Name == name && a.Namespace == ns {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

func (*Element) isNode() {}

// Text is a text node.
type Text struct {
	Content string

	id ElementID
}

// NewText builds a text node.
func NewText(content string) *Text { return &Text{Content: content} }

func (t *Text) ID() ElementID { return t.id }

func (*Text) isNode() {}

// Walk visits n and its descendants depth first until fn returns false.
func Walk(n Node, fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	if el, ok := n.(*Element); ok {
		for _, c := range el.Children {
			if !Walk(c, fn) {
				return false
			}
		}
	}
	return true
}
