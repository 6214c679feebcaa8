// internal/browser/dom/element.go
package dom

import "strings"

// Attribute is a single name/value pair on an element. Names are stored lower-case.
type Attribute struct {
	Name  string
	Value string
}

// ElementData is the payload of an element node.
type ElementData struct {
	// Name is the lower-case local tag name.
	Name  string
	Attrs []Attribute
	// Specific carries state owned by particular form controls. It is nil for
	// elements without such state.
	Specific NodeSpecificData
}

func (*ElementData) isNodeData() {}

// NewElementData creates element data with normalized names.
func NewElementData(name string, attrs []Attribute) *ElementData {
	el := &ElementData{Name: strings.ToLower(name)}
	for _, a := range attrs {
		el.SetAttr(a.Name, a.Value)
	}
	return el
}

// Attr returns the value of the named attribute.
func (e *ElementData) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, whatever its value.
func (e *ElementData) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets or replaces an attribute, keeping insertion order.
func (e *ElementData) SetAttr(name, value string) {
	name = strings.ToLower(name)
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attribute{Name: name, Value: value})
}

// RemoveAttr deletes an attribute and reports whether it existed.
func (e *ElementData) RemoveAttr(name string) bool {
	name = strings.ToLower(name)
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// IsDisabled reports whether the element carries a disabled attribute.
func (e *ElementData) IsDisabled() bool {
	return e.HasAttr("disabled")
}

// IsInputOfType reports whether the element is an <input> whose type attribute equals typ.
func (e *ElementData) IsInputOfType(typ string) bool {
	if e.Name != "input" {
		return false
	}
	t, ok := e.Attr("type")
	return ok && strings.EqualFold(t, typ)
}

// TextInput returns the text editing state of text-like controls.
func (e *ElementData) TextInput() (*TextInputData, bool) {
	ti, ok := e.Specific.(*TextInputData)
	return ti, ok
}

// CheckboxChecked returns the checkedness of checkbox and radio controls.
func (e *ElementData) CheckboxChecked() (checked bool, ok bool) {
	cb, ok := e.Specific.(*CheckboxInputData)
	if !ok {
		return false, false
	}
	return cb.Checked, true
}

// -- Node specific data --

// NodeSpecificData is the closed set of control states: *TextInputData and
// *CheckboxInputData. A nil value means the element owns no such state.
type NodeSpecificData interface {
	isNodeSpecificData()
}

// TextInputData is owned by text-like inputs and textareas.
type TextInputData struct {
	Editor TextEditor
}

// CheckboxInputData is owned by checkbox and radio inputs.
type CheckboxInputData struct {
	Checked bool
}

func (*TextInputData) isNodeSpecificData()     {}
func (*CheckboxInputData) isNodeSpecificData() {}

// textInputTypes are the <input> types edited through a TextEditor.
var textInputTypes = map[string]bool{
	"":         true,
	"text":     true,
	"password": true,
	"email":    true,
	"search":   true,
	"tel":      true,
	"url":      true,
	"number":   true,
}

// IsTextInputType reports whether an <input> with the given type attribute is edited as text.
func IsTextInputType(typ string) bool {
	return textInputTypes[strings.ToLower(typ)]
}

// deriveSpecificData computes the control state an element should own given
// its current tag and attributes. Existing state of the right kind is kept.
func (d *Document) deriveSpecificData(el *ElementData) {
	switch el.Name {
	case "input":
		typ, _ := el.Attr("type")
		typ = strings.ToLower(typ)
		switch {
		case typ == "checkbox" || typ == "radio":
			if _, ok := el.Specific.(*CheckboxInputData); !ok {
				el.Specific = &CheckboxInputData{Checked: el.HasAttr("checked")}
			}
		case IsTextInputType(typ):
			if _, ok := el.Specific.(*TextInputData); !ok {
				value, _ := el.Attr("value")
				el.Specific = &TextInputData{Editor: d.newEditor(value)}
			}
		default:
			el.Specific = nil
		}
	case "textarea":
		if _, ok := el.Specific.(*TextInputData); !ok {
			el.Specific = &TextInputData{Editor: d.newEditor("")}
		}
	default:
		el.Specific = nil
	}
}
