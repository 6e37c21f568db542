package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seoscope/internal/config"
	"seoscope/internal/helpers"
	"seoscope/internal/htmlparser"
	"seoscope/internal/report"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const pageHTML = `<html><head>
<title>Test Shop</title>
<meta name="description" content="Everything for tests">
<meta name="viewport" content="width=device-width">
<meta name="robots" content="index, follow">
<link rel="canonical" href="/">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Organization"}</script>
</head><body>
<h1>Welcome</h1>
<a href="/about">About</a>
<a href="https://external.org/" target="_blank">Partner</a>
<a href="https://www.facebook.com/testshop">Facebook</a>
<a href="mailto:hi@example.com">Mail</a>
</body></html>`

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "<h1>Oops! Page not found</h1>")
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fmt.Fprint(w, pageHTML)
	})
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"><url><loc>%s/</loc></url></urlset>`, srv.URL)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAnalyzer(opts ...Option) *Analyzer {
	cfg := config.Default()
	cfg.Fetch.Timeout = 5 * time.Second
	return New(cfg, zap.NewNop(), opts...)
}

func TestHasSchemeAndNormalize(t *testing.T) {
	assert.True(t, HasScheme("https://example.com"))
	assert.True(t, HasScheme("HTTP://example.com"))
	assert.False(t, HasScheme("example.com"))
	assert.Equal(t, "https://example.com", NormalizeURL(" example.com "))
	assert.Equal(t, "http://example.com", NormalizeURL("http://example.com"))
}

func TestFetchPage(t *testing.T) {
	srv := newSite(t)
	a := newTestAnalyzer()

	page, resp, err := a.FetchPage(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page.HTML, "<title>Test Shop</title>")
	assert.Contains(t, page.RobotsTxt, "Disallow: /private")
	assert.Contains(t, page.SitemapXML, "<urlset")
	assert.True(t, page.HasProbe404)
	assert.Contains(t, page.Probe404, "Page not found")
}

func TestFetchPage_AncillarySentinels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, "<title>Only page</title>")
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	page, _, err := newTestAnalyzer().FetchPage(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, htmlparser.NoRobotsTxt, page.RobotsTxt)
	assert.Equal(t, htmlparser.NoSitemapXML, page.SitemapXML)
	assert.True(t, page.HasProbe404)
}

func TestFetchPage_Errors(t *testing.T) {
	a := newTestAnalyzer()

	_, _, err := a.FetchPage(context.Background(), "not a url")
	assert.Error(t, err)

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, resp, err := a.FetchPage(context.Background(), srv.URL+"/")
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestAnalyzeURL(t *testing.T) {
	srv := newSite(t)
	a := newTestAnalyzer(WithSchemaTypes(map[string]bool{"WebSite": true}))

	rep := a.AnalyzeURL(context.Background(), srv.URL+"/")

	_, err := uuid.Parse(rep.AuditID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rep.StatusCode)
	assert.Empty(t, rep.Errors)
	assert.Empty(t, rep.Diagnostics)
	assert.Len(t, rep.Results, 14)

	require.NotNil(t, rep.MetaTags.Title.Content)
	assert.Equal(t, "Test Shop", *rep.MetaTags.Title.Content)
	assert.Equal(t, []string{"Welcome"}, []string(rep.Headings.H1))

	counts := htmlparser.CountLinks(rep.Links)
	assert.Equal(t, 1, counts[htmlparser.LinkInternal])
	assert.Equal(t, 2, counts[htmlparser.LinkExternal])
	assert.Equal(t, 1, counts[htmlparser.LinkEmail])
	assert.Equal(t, []string{srv.URL + "/about"}, rep.InternalLinks())

	require.Len(t, rep.SocialLinks, 1)
	assert.Equal(t, "Facebook", rep.SocialLinks[0].Platform)
	require.Len(t, rep.Security.Findings, 1)
	assert.Equal(t, "https://external.org/", rep.Security.Findings[0].Href)

	assert.Equal(t, htmlparser.Custom404Yes, rep.Custom404.Custom404)
	require.NotNil(t, rep.Custom404.AdditionalConditions.IsInSitemap)
	assert.True(t, *rep.Custom404.AdditionalConditions.IsInSitemap)

	assert.True(t, rep.Indexation.HasRobotsTxt)
	assert.True(t, rep.Indexation.HasSitemap)
	assert.True(t, rep.Indexation.Indexable())

	require.Len(t, rep.SchemaBlocks, 1)
	assert.Contains(t, rep.SchemaBlocks[0].Errors, "Неизвестный тип Schema.org: Organization")

	assert.Contains(t, rep.MissingSecurityHeaders, "Content-Security-Policy")
	assert.NotContains(t, rep.MissingSecurityHeaders, "X-Content-Type-Options")
	assert.NotContains(t, rep.MissingSecurityHeaders, "Strict-Transport-Security")
	assert.Contains(t, rep.Warnings, "Сайт не использует HTTPS")
}

func TestAnalyzeURL_MainFetchFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	rep := newTestAnalyzer().AnalyzeURL(context.Background(), srv.URL+"/")
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "Не удалось загрузить страницу")
	assert.NotEmpty(t, rep.AuditID)
	assert.Equal(t, 0, rep.StatusCode)
}

func TestAnalyze_NonOKStatus(t *testing.T) {
	a := newTestAnalyzer()
	page := htmlparser.Page{URL: "https://example.com/gone", HTML: "<title>Gone</title>", HasProbe404: false}
	resp := &helpers.Response{StatusCode: http.StatusGone, Header: http.Header{}}

	rep := a.Analyze(page, resp)
	assert.Contains(t, rep.Warnings, "HTTP статус: 410")
	assert.Equal(t, htmlparser.Custom404Unknown, rep.Custom404.Custom404)
	assert.Contains(t, rep.MissingSecurityHeaders, "Strict-Transport-Security")
}

func TestAnalyze_InvalidPageURLIsDiagnostic(t *testing.T) {
	rep := newTestAnalyzer().Analyze(htmlparser.Page{URL: "not-a-url", HTML: `<a href="/x">x</a>`}, nil)
	require.Len(t, rep.Diagnostics, 1)
	assert.Contains(t, rep.Diagnostics[0], "not-a-url")
	assert.Empty(t, rep.Links)
	assert.Equal(t, htmlparser.DomainFailed, rep.Domain.Status)
}

func TestAnalyze_ConfiguredPlatforms(t *testing.T) {
	cfg := config.Default()
	cfg.Social.Platforms = []config.SocialPlatform{{Domain: "mastodon.social", Name: "Mastodon"}}
	a := New(cfg, zap.NewNop())

	html := `<a href="https://mastodon.social/@shop">M</a><a href="https://facebook.com/shop">F</a>`
	rep := a.Analyze(htmlparser.Page{URL: "https://example.com/", HTML: html}, nil)

	require.Len(t, rep.SocialLinks, 1)
	assert.Equal(t, "Mastodon", rep.SocialLinks[0].Platform)
	assert.Len(t, rep.URLChecks, 1)
}

func TestNewFetcher_Proxy(t *testing.T) {
	var seen string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query().Get("url")
		fmt.Fprint(w, "<title>proxied</title>")
	}))
	defer proxy.Close()

	cfg := config.Default().Fetch
	cfg.ProxyURL = proxy.URL + "/?url="
	f := NewFetcher(cfg)

	resp, err := f.Fetch(context.Background(), "https://example.com/a b")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a b", seen)
	assert.Contains(t, resp.Body, "proxied")
}

func TestChecksMapMatchesReport(t *testing.T) {
	rep := newTestAnalyzer().Analyze(htmlparser.Page{URL: "https://example.com/", HTML: pageHTML}, nil)
	assert.Equal(t, rep.Checks()[report.CheckSocialLinks], rep.Results[report.CheckSocialLinks])
}
