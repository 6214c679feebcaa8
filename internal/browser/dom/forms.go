// internal/browser/dom/forms.go
package dom

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// formAssociated lists the tags that take part in form ownership.
var formAssociated = map[string]bool{
	"input":    true,
	"button":   true,
	"select":   true,
	"textarea": true,
	"fieldset": true,
	"output":   true,
	"object":   true,
}

// ToggleCheckbox flips the checkedness of a checkbox-like element. Elements
// without checkbox state are left untouched.
func ToggleCheckbox(el *ElementData) {
	if cb, ok := el.Specific.(*CheckboxInputData); ok {
		cb.Checked = !cb.Checked
	}
}

// ToggleRadio checks the radio with the given id and unchecks every other
// radio sharing its group name. An empty group holds only the target.
func (d *Document) ToggleRadio(group string, target NodeID) {
	d.walk(RootNodeID, func(n *Node) bool {
		el := n.Element()
		if el == nil || !el.IsInputOfType("radio") {
			return true
		}
		cb, ok := el.Specific.(*CheckboxInputData)
		if !ok {
			return true
		}
		switch {
		case n.ID == target:
			cb.Checked = true
		case group == "":
			// Unnamed radios never share a group.
		default:
			if name, ok := el.Attr("name"); ok && name == group {
				cb.Checked = false
			}
		}
		return true
	})
}

// LabelBoundInputElements returns the inputs a label controls: the input
// whose id matches the label's for attribute, or else the inputs nested
// inside the label.
func (d *Document) LabelBoundInputElements(label NodeID) []NodeID {
	n, ok := d.nodes[label]
	if !ok || n.Element() == nil {
		return nil
	}
	var bound []NodeID
	if target, ok := n.Element().Attr("for"); ok {
		d.walk(RootNodeID, func(c *Node) bool {
			if el := c.Element(); el != nil && el.Name == "input" {
				if id, ok := el.Attr("id"); ok && id == target {
					bound = append(bound, c.ID)
				}
			}
			return true
		})
		return bound
	}
	d.walk(label, func(c *Node) bool {
		if el := c.Element(); el != nil && el.Name == "input" {
			bound = append(bound, c.ID)
		}
		return true
	})
	return bound
}

// FormOwner returns the form a control submits with.
func (d *Document) FormOwner(control NodeID) (NodeID, bool) {
	f, ok := d.controlsToForm[control]
	return f, ok
}

// resetFormReferences recomputes the owner of every control whose form
// attribute is formID.
func (d *Document) resetFormReferences(formID string) {
	d.walk(RootNodeID, func(c *Node) bool {
		if v, ok := c.Attr("form"); ok && v == formID {
			d.resetFormOwner(c.ID)
		}
		return true
	})
}

// resetFormOwner recomputes a control's owner: the form named by its form
// attribute, or else its nearest <form> ancestor.
func (d *Document) resetFormOwner(id NodeID) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	el := n.Element()
	if el == nil || !formAssociated[el.Name] {
		return
	}
	delete(d.controlsToForm, id)

	if formID, ok := el.Attr("form"); ok {
		if f, ok := d.GetElementByID(formID); ok && f.IsElement("form") {
			d.controlsToForm[id] = f.ID
		}
		return
	}
	for _, anc := range d.NodeChain(id)[1:] {
		if a := d.nodes[anc]; a.IsElement("form") {
			d.controlsToForm[id] = anc
			return
		}
	}
}

// isSubmitButton reports whether the element submits its form when activated.
func isSubmitButton(el *ElementData) bool {
	if el.Name == "button" {
		t, ok := el.Attr("type")
		return !ok || strings.EqualFold(t, "submit")
	}
	return el.IsInputOfType("submit")
}

// defaultButton returns the first submit button owned by the form.
func (d *Document) defaultButton(form NodeID) (NodeID, bool) {
	var found NodeID
	ok := false
	d.walk(RootNodeID, func(n *Node) bool {
		if ok {
			return false
		}
		if el := n.Element(); el != nil && isSubmitButton(el) {
			if owner, has := d.controlsToForm[n.ID]; has && owner == form {
				found, ok = n.ID, true
			}
		}
		return true
	})
	return found, ok
}

// FormDataSet builds the name/value entries a form submits, in tree order.
// The submitter contributes an entry only when it is a submit button.
func (d *Document) FormDataSet(form, submitter NodeID) url.Values {
	values := url.Values{}
	d.walk(RootNodeID, func(n *Node) bool {
		owner, ok := d.controlsToForm[n.ID]
		if !ok || owner != form {
			return true
		}
		el := n.Element()
		name, ok := el.Attr("name")
		if !ok || name == "" || el.IsDisabled() {
			return true
		}
		switch {
		case isSubmitButton(el):
			if n.ID == submitter {
				v, _ := el.Attr("value")
				values.Add(name, v)
			}
		case el.IsInputOfType("checkbox") || el.IsInputOfType("radio"):
			if checked, _ := el.CheckboxChecked(); checked {
				v, ok := el.Attr("value")
				if !ok {
					v = "on"
				}
				values.Add(name, v)
			}
		case el.Name == "input" || el.Name == "textarea":
			if ti, ok := el.TextInput(); ok {
				values.Add(name, ti.Editor.Text())
			} else if el.Name == "input" && !el.IsInputOfType("button") && !el.IsInputOfType("reset") {
				v, _ := el.Attr("value")
				values.Add(name, v)
			}
		}
		return true
	})
	return values
}

// SubmitForm submits the form, navigating to its action with the form data
// set. GET submissions carry the data in the query; POST submissions as an
// urlencoded body. The submitter's formaction and formmethod take precedence.
func (d *Document) SubmitForm(form, submitter NodeID) {
	fn, ok := d.nodes[form]
	if !ok || !fn.IsElement("form") {
		return
	}
	formEl := fn.Element()

	action, _ := formEl.Attr("action")
	method, _ := formEl.Attr("method")
	if sn, ok := d.nodes[submitter]; ok && submitter != form {
		if sel := sn.Element(); sel != nil {
			if v, ok := sel.Attr("formaction"); ok {
				action = v
			}
			if v, ok := sel.Attr("formmethod"); ok {
				method = v
			}
		}
	}
	method = strings.ToUpper(method)
	if method != "POST" {
		method = "GET"
	}

	target, ok := ResolveURL(d.baseURL, action)
	if !ok {
		d.logger.Warn("Form action is not a resolvable URL.",
			zap.String("action", action),
			zap.Stringer("base_url", d.baseURL))
		return
	}

	data := d.FormDataSet(form, submitter)
	opts := NewNavigationOptions(target, "text/plain", d.id)
	if method == "POST" {
		opts.Method = "POST"
		opts.ContentType = "application/x-www-form-urlencoded"
		opts.Body = []byte(data.Encode())
	} else {
		u := *target
		u.RawQuery = data.Encode()
		opts.URL = &u
	}
	d.logger.Debug("Submitting form.",
		zap.Int("form", int(form)),
		zap.Int("submitter", int(submitter)),
		zap.String("method", opts.Method),
		zap.Stringer("url", opts.URL))
	d.navigation.NavigateTo(opts)
}
