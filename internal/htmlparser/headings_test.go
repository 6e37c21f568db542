package htmlparser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeadings(t *testing.T) {
	hs := ExtractHeadings("<h1>A</h1><h1>B</h1>")
	assert.Equal(t, Headings{"A", "B"}, hs.H1)

	hs = ExtractHeadings("<h2>x</h2>")
	assert.False(t, hs.H1.Found())
	assert.Equal(t, Headings{"x"}, hs.H2)
}

func TestExtractHeadings_Cleaning(t *testing.T) {
	html := `<H1 class="title">
  Hello <em>big</em> &amp; bold
  <script>document.write("<b>x</b>")</script>
</H1>
<h2><style>.a{}</style></h2>
<h2>  </h2>
<h3><a href="/x">Linked</a></h3>
<h6 id=last>Six</h6>`

	hs := ExtractHeadings(html)
	assert.Equal(t, Headings{"Hello big & bold"}, hs.H1)
	assert.Nil(t, hs.H2, "headings empty after cleaning are dropped")
	assert.Equal(t, Headings{"Linked"}, hs.H3)
	assert.Nil(t, hs.H4)
	assert.Nil(t, hs.H5)
	assert.Equal(t, Headings{"Six"}, hs.H6)
	assert.Equal(t, Headings{"Six"}, hs.Level(6))
	assert.Nil(t, hs.Level(7))
}

func TestExtractHeadings_DoesNotConfuseHeader(t *testing.T) {
	hs := ExtractHeadings(`<header>Site</header><h1>Real</h1>`)
	assert.Equal(t, Headings{"Real"}, hs.H1)
}

func TestHeadingSet_JSONNotFoundMarker(t *testing.T) {
	data, err := json.Marshal(ExtractHeadings("<h1>Only</h1>"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{"Only"}, decoded["h1"])
	assert.Equal(t, HeadingNotFound, decoded["h2"])
	assert.Equal(t, HeadingNotFound, decoded["h6"])
}
