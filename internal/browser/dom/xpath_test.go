package dom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
)

const testHTML = `
	<html>
	<body>
		<div id="header">
			<h1>Welcome</h1>
		</div>
		<div class="content">
			<p>P1</p><p>P2</p>
			<ul>
				<li>Item 1</li>
				<!-- a comment between items -->
				<li>Item 2</li>
				<li id="special">Item 3</li>
			</ul>
		</div>
		<div class="content"><p>P3</p></div>
	</body>
	</html>
	`

func TestGenerateUniqueXPath(t *testing.T) {
	d := dom.NewDocument(dom.Viewport{})
	_, err := d.ImportHTML(dom.RootNodeID, strings.NewReader(testHTML))
	require.NoError(t, err)

	tests := []struct {
		name          string
		targetXPath   string
		expectedXPath string
	}{
		{"Body", "//body", "/html[1]/body[1]"},
		{"Element with ID", "//div[@id='header']", `//*[@id='header']`},
		{"Child of ID element", "//h1", `//*[@id='header']/h1[1]`},
		{"Specific index", "(//p)[2]", "/html[1]/body[1]/div[2]/p[2]"},
		{"Ambiguous classes", "(//div[@class='content'])[2]/p", "/html[1]/body[1]/div[3]/p[1]"},
		{"List item skipping comments", "//ul/li[2]", "/html[1]/body[1]/div[2]/ul[1]/li[2]"},
		{"List item with ID", "//li[@id='special']", `//*[@id='special']`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := d.QueryXPathOne(tt.targetXPath)
			require.NoError(t, err, "Test setup error: target node not found with %s", tt.targetXPath)

			generated := d.GenerateUniqueXPath(target)
			assert.Equal(t, tt.expectedXPath, generated)

			// The generated XPath must select the original node again.
			roundTrip, err := d.QueryXPathOne(generated)
			require.NoError(t, err)
			assert.Equal(t, target, roundTrip, "Generated XPath did not select the original node")
		})
	}
}

func TestGenerateUniqueXPath_NonElements(t *testing.T) {
	d := dom.NewDocument(dom.Viewport{})
	assert.Equal(t, "/", d.GenerateUniqueXPath(dom.RootNodeID))
	assert.Empty(t, d.GenerateUniqueXPath(dom.NodeID(12)))
}

func TestQueryXPath(t *testing.T) {
	d := dom.NewDocument(dom.Viewport{})
	_, err := d.ImportHTML(dom.RootNodeID, strings.NewReader(testHTML))
	require.NoError(t, err)

	items, err := d.QueryXPath("//li")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = d.QueryXPath("//li[")
	assert.Error(t, err)

	_, err = d.QueryXPathOne("//table")
	assert.ErrorIs(t, err, dom.ErrNodeNotFound)
}
