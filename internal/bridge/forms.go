// internal/bridge/forms.go
package bridge

import (
	"strconv"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
)

// FormData is the payload of input events.
type FormData struct {
	// Value is the control's own value: "true"/"false" for checkboxes and
	// radios, the edited text for text controls, the value attribute
	// otherwise.
	Value string
	// Values holds the checked, named checkboxes of the enclosing form.
	Values map[string][]string
}

// InputEventFormData builds the input event payload for el. The enclosing
// form is the first <form> in chain.
func (d *Document) InputEventFormData(chain []dom.NodeID, el *dom.ElementData) FormData {
	fd := FormData{Values: map[string][]string{}}

	for _, id := range chain {
		n, ok := d.inner.Node(id)
		if !ok || !n.IsElement("form") {
			continue
		}
		for _, input := range d.inputDescendants(id) {
			ie := input.Element()
			name, ok := ie.Attr("name")
			if !ok || !ie.IsInputOfType("checkbox") {
				continue
			}
			if checked, _ := ie.CheckboxChecked(); !checked {
				continue
			}
			value, ok := ie.Attr("value")
			if !ok {
				value = "on"
			}
			fd.Values[name] = append(fd.Values[name], value)
		}
		break
	}

	switch s := el.Specific.(type) {
	case *dom.CheckboxInputData:
		fd.Value = strconv.FormatBool(s.Checked)
	case *dom.TextInputData:
		fd.Value = s.Editor.Text()
	default:
		fd.Value, _ = el.Attr("value")
	}
	return fd
}

func (d *Document) inputDescendants(root dom.NodeID) []*dom.Node {
	var out []*dom.Node
	d.inner.Walk(root, func(n *dom.Node) bool {
		if n.ID != root && n.IsElement("input") {
			out = append(out, n)
		}
		return true
	})
	return out
}
