// internal/browser/dom/forms_test.go
package dom_test

import (
	"math/rand"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
	"github.com/xkilldash9x/lattice/internal/mocks"
)

func TestRadioGroupExclusivity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 6; n++ {
		b := newBuilder(t)
		html := b.html()
		radios := make([]dom.NodeID, n)
		for i := range radios {
			radios[i] = b.el(html, "input", box{0, float64(i * 30), 20, 20}, "type", "radio", "name", "group")
		}
		// A radio in another group must never be touched.
		bystander := b.el(html, "input", box{100, 0, 20, 20}, "type", "radio", "name", "other", "checked", "")

		for step := 0; step < 25; step++ {
			i := rng.Intn(n)
			b.doc.HandleClick(radios[i], 10, float64(i*30)+10)

			count := 0
			for j, r := range radios {
				if checked(t, b.doc, r) {
					count++
					assert.Equal(t, i, j, "the clicked radio is the checked one")
				}
			}
			require.Equal(t, 1, count, "group of %d after step %d", n, step)
			require.True(t, checked(t, b.doc, bystander))
		}
	}
}

func TestToggleRadio_Unnamed(t *testing.T) {
	b := newBuilder(t)
	html := b.html()
	a := b.el(html, "input", box{0, 0, 20, 20}, "type", "radio")
	c := b.el(html, "input", box{0, 30, 20, 20}, "type", "radio", "checked", "")

	b.doc.HandleClick(a, 10, 10)

	assert.True(t, checked(t, b.doc, a))
	assert.True(t, checked(t, b.doc, c), "an unnamed radio forms a group of one")
	f, _ := focused(b.doc)
	assert.Equal(t, a, f)
}

func TestLabelBoundInputElements(t *testing.T) {
	b := newBuilder(t)
	html := b.html()
	byFor := b.el(html, "label", box{}, "for", "target")
	nesting := b.el(html, "label", box{})
	nestedA := b.el(nesting, "input", box{}, "type", "checkbox")
	span := b.el(nesting, "span", box{})
	nestedB := b.el(span, "input", box{}, "type", "text")
	target := b.el(html, "input", box{}, "id", "target", "type", "checkbox")
	empty := b.el(html, "label", box{})
	div := b.el(html, "div", box{})

	assert.Equal(t, []dom.NodeID{target}, b.doc.LabelBoundInputElements(byFor))
	assert.Equal(t, []dom.NodeID{nestedA, nestedB}, b.doc.LabelBoundInputElements(nesting))
	assert.Empty(t, b.doc.LabelBoundInputElements(empty))
	assert.Empty(t, b.doc.LabelBoundInputElements(div))
	assert.Empty(t, b.doc.LabelBoundInputElements(dom.NodeID(404)))
}

func TestFormOwner(t *testing.T) {
	b := newBuilder(t)
	html := b.html()
	form := b.el(html, "form", box{}, "id", "f")
	nested := b.el(form, "input", box{})
	outside := b.el(html, "input", box{}, "form", "f")
	orphan := b.el(html, "button", box{})
	div := b.el(form, "div", box{})

	owner, ok := b.doc.FormOwner(nested)
	require.True(t, ok)
	assert.Equal(t, form, owner)

	owner, ok = b.doc.FormOwner(outside)
	require.True(t, ok, "the form attribute associates controls outside the form")
	assert.Equal(t, form, owner)

	_, ok = b.doc.FormOwner(orphan)
	assert.False(t, ok)
	_, ok = b.doc.FormOwner(div)
	assert.False(t, ok, "only form-associated elements have owners")

	t.Run("Renaming the form drops attribute owners", func(t *testing.T) {
		require.NoError(t, b.doc.SetAttribute(form, "id", "renamed"))
		_, ok := b.doc.FormOwner(outside)
		assert.False(t, ok)

		require.NoError(t, b.doc.SetAttribute(outside, "form", "renamed"))
		owner, ok := b.doc.FormOwner(outside)
		require.True(t, ok)
		assert.Equal(t, form, owner)
	})

	t.Run("Removing the form clears ownership", func(t *testing.T) {
		require.NoError(t, b.doc.RemoveNode(form))
		_, ok := b.doc.FormOwner(outside)
		assert.False(t, ok)
	})
}

func TestFormDataSet(t *testing.T) {
	b := newBuilder(t)
	html := b.html()
	form := b.el(html, "form", box{})
	b.el(form, "input", box{}, "name", "q", "value", "go")
	b.el(form, "input", box{}, "type", "checkbox", "name", "opt", "checked", "")
	b.el(form, "input", box{}, "type", "checkbox", "name", "opt", "value", "b")
	b.el(form, "input", box{}, "type", "checkbox", "name", "flag", "value", "yes", "checked", "")
	b.el(form, "input", box{}, "type", "radio", "name", "r", "value", "1")
	b.el(form, "input", box{}, "type", "radio", "name", "r", "value", "2", "checked", "")
	b.el(form, "input", box{}, "type", "hidden", "name", "token", "value", "abc")
	b.el(form, "input", box{}, "name", "off", "value", "x", "disabled", "")
	b.el(form, "input", box{}, "value", "unnamed")
	ta := b.el(form, "textarea", box{}, "name", "notes")
	submit := b.el(form, "input", box{}, "type", "submit", "name", "action", "value", "save")
	b.el(form, "button", box{}, "name", "action", "value", "delete")

	n, _ := b.doc.Node(ta)
	ti, _ := n.Element().TextInput()
	ti.Editor.SetText("hi")

	got := b.doc.FormDataSet(form, submit)
	want := url.Values{
		"q":      {"go"},
		"opt":    {"on"},
		"flag":   {"yes"},
		"r":      {"2"},
		"token":  {"abc"},
		"notes":  {"hi"},
		"action": {"save"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormDataSet mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitForm(t *testing.T) {
	setup := func(t *testing.T, formAttrs ...string) (*builder, *mocks.MockNavigationProvider, dom.NodeID) {
		nav := new(mocks.MockNavigationProvider)
		nav.On("NavigateTo", mock.Anything).Return()
		b := newBuilder(t, dom.WithNavigationProvider(nav), dom.WithBaseURL(mustURL(t, "https://example.com/app/")))
		html := b.html()
		form := b.el(html, "form", box{}, formAttrs...)
		b.el(form, "input", box{}, "name", "q", "value", "a b")
		return b, nav, form
	}

	t.Run("GET puts the data in the query", func(t *testing.T) {
		b, nav, form := setup(t, "action", "search?old=1")
		b.doc.SubmitForm(form, form)

		reqs := nav.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "https://example.com/app/search?q=a+b", reqs[0].URL.String())
		assert.Equal(t, "GET", reqs[0].Method)
		assert.Nil(t, reqs[0].Body)
	})

	t.Run("POST sends an urlencoded body", func(t *testing.T) {
		b, nav, form := setup(t, "action", "/post", "method", "post")
		b.doc.SubmitForm(form, form)

		reqs := nav.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "https://example.com/post", reqs[0].URL.String())
		assert.Equal(t, "POST", reqs[0].Method)
		assert.Equal(t, "application/x-www-form-urlencoded", reqs[0].ContentType)
		assert.Equal(t, "q=a+b", string(reqs[0].Body))
		assert.Equal(t, b.doc.ID(), reqs[0].SourceDocument)
	})

	t.Run("Submitter overrides action and method", func(t *testing.T) {
		b, nav, form := setup(t, "action", "/get", "method", "get")
		button := b.el(form, "button", box{}, "formaction", "/override", "formmethod", "POST")
		b.doc.SubmitForm(form, button)

		reqs := nav.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "https://example.com/override", reqs[0].URL.String())
		assert.Equal(t, "POST", reqs[0].Method)
	})

	t.Run("Missing action submits to the base URL", func(t *testing.T) {
		b, nav, form := setup(t)
		b.doc.SubmitForm(form, form)

		reqs := nav.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "https://example.com/app/?q=a+b", reqs[0].URL.String())
	})

	t.Run("Non form nodes are ignored", func(t *testing.T) {
		b, nav, _ := setup(t)
		b.doc.SubmitForm(dom.RootNodeID, dom.RootNodeID)
		assert.Empty(t, nav.Requests())
	})
}

func TestToggleCheckbox(t *testing.T) {
	el := dom.NewElementData("input", []dom.Attribute{{Name: "type", Value: "checkbox"}})
	el.Specific = &dom.CheckboxInputData{}

	dom.ToggleCheckbox(el)
	c, ok := el.CheckboxChecked()
	require.True(t, ok)
	assert.True(t, c)

	plain := dom.NewElementData("div", nil)
	dom.ToggleCheckbox(plain)
	_, ok = plain.CheckboxChecked()
	assert.False(t, ok, "elements without checkbox state are untouched")
}

func TestFormOwner_FormAfterControl(t *testing.T) {
	nav := new(mocks.MockNavigationProvider)
	nav.On("NavigateTo", mock.Anything).Return()
	d := dom.NewDocument(dom.NewViewport(800, 600, 1, dom.ColorSchemeLight),
		dom.WithNavigationProvider(nav),
		dom.WithBaseURL(mustURL(t, "https://example.com/")))
	_, err := d.ImportHTML(dom.RootNodeID, strings.NewReader(
		`<body><input type="submit" id="s" form="f"><form id="f" action="/go"></form></body>`))
	require.NoError(t, err)

	submit, ok := d.GetElementByID("s")
	require.True(t, ok)
	form, ok := d.GetElementByID("f")
	require.True(t, ok)
	owner, ok := d.FormOwner(submit.ID)
	require.True(t, ok, "a later form still owns controls that name it")
	assert.Equal(t, form.ID, owner)

	for _, expr := range []string{"//html", "//body"} {
		id, err := d.QueryXPathOne(expr)
		require.NoError(t, err)
		n, _ := d.Node(id)
		n.Layout = box{0, 0, 800, 600}.layout()
	}
	submit.Layout = box{0, 0, 60, 20}.layout()

	d.HandleClick(dom.RootNodeID, 5, 5)

	reqs := nav.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "https://example.com/go", reqs[0].URL.String())
	assert.Equal(t, "GET", reqs[0].Method)
}
