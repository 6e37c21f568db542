package htmlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetaTags(t *testing.T) {
	html := `<!DOCTYPE html>
<html><head>
<META CHARSET="utf-8">
<title>
  Tom &amp; Jerry | Cartoons
</title>
<meta content='Classic cartoon duo' name='description'>
<meta name="robots" content="index, follow">
<meta name="viewport"
      content="width=device-width, initial-scale=1">
<meta name="google-site-verification" content="abc123">
<meta name="facebook-domain-verification" content="fb456">
</head><body></body></html>`

	rep := ExtractMetaTags(html)

	require.NotNil(t, rep.Title.Content)
	assert.Equal(t, "Tom & Jerry | Cartoons", *rep.Title.Content)
	assert.Equal(t, len("Tom & Jerry | Cartoons"), rep.Title.Length)

	require.NotNil(t, rep.Description.Content)
	assert.Equal(t, "Classic cartoon duo", *rep.Description.Content)
	assert.Equal(t, 19, rep.Description.Length)

	require.NotNil(t, rep.Charset.Content)
	assert.Equal(t, "utf-8", *rep.Charset.Content)
	assert.Equal(t, "index, follow", *rep.Robots.Content)
	assert.Equal(t, "width=device-width, initial-scale=1", *rep.Viewport.Content)
	assert.Equal(t, "abc123", *rep.GoogleSiteVerification.Content)
	assert.Equal(t, "fb456", *rep.FacebookDomainVerification.Content)
}

func TestExtractMetaTags_EmptyDescriptionIsAbsent(t *testing.T) {
	rep := ExtractMetaTags(`<meta name="description" content="">`)
	assert.Nil(t, rep.Description.Content)
	assert.Equal(t, 0, rep.Description.Length)

	rep = ExtractMetaTags(`<meta name="description" content="   ">`)
	assert.Nil(t, rep.Description.Content)
}

func TestExtractMetaTags_FirstTagWins(t *testing.T) {
	rep := ExtractMetaTags(`<title>First</title><title>Second</title>
<meta name="description" content="one"><meta name="description" content="two">`)
	assert.Equal(t, "First", *rep.Title.Content)
	assert.Equal(t, "one", *rep.Description.Content)
}

func TestExtractMetaTags_HTTPEquivCharset(t *testing.T) {
	rep := ExtractMetaTags(`<meta http-equiv="Content-Type" content="text/html; charset=windows-1251">`)
	require.NotNil(t, rep.Charset.Content)
	assert.Equal(t, "windows-1251", *rep.Charset.Content)
}

func TestExtractMetaTags_GarbageInput(t *testing.T) {
	for _, input := range []string{"", "not html at all", "<title>", "<meta", "<<<>>>"} {
		rep := ExtractMetaTags(input)
		assert.Equal(t, MetaTags{}, rep, "input %q", input)
	}
}

func TestExtractMetaTags_UnicodeLength(t *testing.T) {
	rep := ExtractMetaTags(`<title>Привет</title>`)
	assert.Equal(t, 6, rep.Title.Length)
}

func TestExtractOpenGraph(t *testing.T) {
	html := `<meta property="og:title" content="OG Title">
<meta property="og:description" content="OG &quot;desc&quot;">
<meta content="https://example.com/img.png" property="og:image">
<meta property="og:url" content="https://example.com/">
<meta property="og:type" content="website">
<meta property='og:site_name' content='Example'>`

	og := ExtractOpenGraph(html)
	assert.Equal(t, "OG Title", *og.Title)
	assert.Equal(t, `OG "desc"`, *og.Description)
	assert.Equal(t, "https://example.com/img.png", *og.Image)
	assert.Equal(t, "https://example.com/", *og.URL)
	assert.Equal(t, "website", *og.Type)
	assert.Equal(t, "Example", *og.SiteName)
	assert.Nil(t, og.Locale)
	assert.Equal(t, 6, og.Present())
}

func TestExtractTwitterCard(t *testing.T) {
	html := `<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:site" content="@example">
<meta name="twitter:title" content="">`

	tc := ExtractTwitterCard(html)
	assert.Equal(t, "summary_large_image", *tc.Card)
	assert.Equal(t, "@example", *tc.Site)
	assert.Nil(t, tc.Title)
	assert.Nil(t, tc.Description)
	assert.Nil(t, tc.Image)
	assert.Equal(t, 2, tc.Present())
}
