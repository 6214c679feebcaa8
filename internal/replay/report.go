// internal/replay/report.go
package replay

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	json "github.com/json-iterator/go"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
)

// Report is the state of a document after a scenario ran. Nodes are named
// by their unique XPath.
type Report struct {
	Name        string            `json:"name"`
	Source      string            `json:"source,omitempty"`
	Mode        string            `json:"mode"`
	Focus       string            `json:"focus,omitempty"`
	Hover       string            `json:"hover,omitempty"`
	Checked     map[string]bool   `json:"checked,omitempty"`
	Values      map[string]string `json:"values,omitempty"`
	Navigations []Navigation      `json:"navigations,omitempty"`
	Events      []FrameworkEvent  `json:"events,omitempty"`
	Failures    []string          `json:"failures,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// Navigation is a recorded navigation request.
type Navigation struct {
	URL         string `json:"url"`
	Method      string `json:"method"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body,omitempty"`
}

// FrameworkEvent is an event delivered to the framework runtime.
type FrameworkEvent struct {
	Name    string `json:"name"`
	Element uint64 `json:"element"`
	Target  string `json:"target,omitempty"`

	node dom.NodeID
}

func (e FrameworkEvent) String() string { return e.Name + "@" + e.Target }

// Passed reports whether the scenario ran and met its expectations.
func (r *Report) Passed() bool { return r.Error == "" && len(r.Failures) == 0 }

func (s *session) report() *Report {
	r := &Report{
		Name:    s.sc.Name,
		Source:  s.sc.Source,
		Mode:    s.sc.mode(),
		Checked: map[string]bool{},
		Values:  map[string]string{},
		Events:  s.events,
	}
	if id, ok := s.inner.FocusedNode(); ok {
		r.Focus = s.inner.GenerateUniqueXPath(id)
	}
	if id, ok := s.inner.HoverNode(); ok {
		r.Hover = s.inner.GenerateUniqueXPath(id)
	}
	s.inner.Walk(dom.RootNodeID, func(n *dom.Node) bool {
		el := n.Element()
		if el == nil {
			return true
		}
		if c, ok := el.CheckboxChecked(); ok {
			r.Checked[s.inner.GenerateUniqueXPath(n.ID)] = c
		}
		if ti, ok := el.TextInput(); ok {
			r.Values[s.inner.GenerateUniqueXPath(n.ID)] = ti.Editor.Text()
		}
		return true
	})

	s.nav.mu.Lock()
	defer s.nav.mu.Unlock()
	for _, req := range s.nav.requests {
		r.Navigations = append(r.Navigations, Navigation{
			URL:         req.URL.String(),
			Method:      req.Method,
			ContentType: req.ContentType,
			Body:        string(req.Body),
		})
	}
	return r
}

// element returns the element data of id, or nil for text, comment and
// document nodes.
func (s *session) element(id dom.NodeID) *dom.ElementData {
	n, ok := s.inner.Node(id)
	if !ok {
		return nil
	}
	return n.Element()
}

func (s *session) check(want *Expect, r *Report) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	switch want.Focus {
	case "":
	case "none":
		if r.Focus != "" {
			fail("focus: want none, got %s", r.Focus)
		}
	default:
		id, err := s.selectOne(want.Focus)
		if err != nil {
			fail("focus: %v", err)
		} else if got, ok := s.inner.FocusedNode(); !ok || got != id {
			fail("focus: want %s, got %q", want.Focus, r.Focus)
		}
	}

	for _, c := range want.Checked {
		id, err := s.selectOne(c.Selector)
		if err != nil {
			fail("checked: %v", err)
			continue
		}
		el := s.element(id)
		if el == nil {
			fail("checked: %s is not an element", c.Selector)
			continue
		}
		got, ok := el.CheckboxChecked()
		if !ok {
			fail("checked: %s is not a checkbox or radio", c.Selector)
		} else if got != c.Checked {
			fail("checked: %s want %t, got %t", c.Selector, c.Checked, got)
		}
	}

	for _, v := range want.Values {
		id, err := s.selectOne(v.Selector)
		if err != nil {
			fail("value: %v", err)
			continue
		}
		el := s.element(id)
		if el == nil {
			fail("value: %s is not an element", v.Selector)
			continue
		}
		ti, ok := el.TextInput()
		if !ok {
			fail("value: %s is not a text control", v.Selector)
		} else if got := ti.Editor.Text(); got != v.Value {
			fail("value: %s want %q, got %q", v.Selector, v.Value, got)
		}
	}

	if want.Navigations != nil {
		got := make([]string, 0, len(r.Navigations))
		for _, nav := range r.Navigations {
			got = append(got, nav.URL)
		}
		if diff := cmp.Diff(want.Navigations, got); diff != "" {
			fail("navigations (-want +got):\n%s", diff)
		}
	}

	failures = append(failures, s.checkEvents(want.Events)...)
	return failures
}

// checkEvents matches "name@selector" expectations, in order, against the
// recorded framework events. Unlisted events in between are allowed.
func (s *session) checkEvents(want []string) []string {
	next := 0
	for _, w := range want {
		name, selector, ok := strings.Cut(w, "@")
		if !ok {
			return []string{fmt.Sprintf("events: %q is not name@selector", w)}
		}
		id, err := s.selectOne(selector)
		if err != nil {
			return []string{fmt.Sprintf("events: %v", err)}
		}
		found := false
		for next < len(s.events) {
			e := s.events[next]
			next++
			if e.Name == name && e.node == id {
				found = true
				break
			}
		}
		if !found {
			return []string{fmt.Sprintf("events: %s not dispatched in order", w)}
		}
	}
	return nil
}

// WriteJSON writes the reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []*Report) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reports: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteText writes a human readable summary.
func WriteText(w io.Writer, reports []*Report, colorize bool) error {
	pass := color.New(color.FgGreen, color.Bold)
	failed := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{pass, failed, dim} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	passed := 0
	for _, r := range reports {
		status := pass.Sprint("PASS")
		if r.Passed() {
			passed++
		} else {
			status = failed.Sprint("FAIL")
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", status, r.Name, dim.Sprintf("(%s)", r.Mode)); err != nil {
			return err
		}
		if r.Error != "" {
			fmt.Fprintf(w, "    error: %s\n", r.Error)
			continue
		}
		if r.Focus != "" {
			fmt.Fprintf(w, "    focus: %s\n", r.Focus)
		}
		for _, key := range sortedKeys(r.Checked) {
			fmt.Fprintf(w, "    checked %s = %t\n", key, r.Checked[key])
		}
		for _, key := range sortedKeys(r.Values) {
			fmt.Fprintf(w, "    value %s = %q\n", key, r.Values[key])
		}
		for _, nav := range r.Navigations {
			fmt.Fprintf(w, "    navigate %s %s\n", nav.Method, nav.URL)
		}
		if len(r.Events) > 0 {
			names := make([]string, len(r.Events))
			for i, e := range r.Events {
				names[i] = e.String()
			}
			fmt.Fprintf(w, "    events: %s\n", strings.Join(names, ", "))
		}
		for _, f := range r.Failures {
			fmt.Fprintf(w, "    %s %s\n", failed.Sprint("✗"), f)
		}
	}
	_, err := fmt.Fprintf(w, "%d/%d scenarios passed\n", passed, len(reports))
	return err
}

// Write dispatches on format ("text" or "json").
func Write(w io.Writer, format string, reports []*Report, colorize bool) error {
	switch format {
	case "json":
		return WriteJSON(w, reports)
	case "text", "":
		return WriteText(w, reports, colorize)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
