package htmlparser

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	Custom404Yes     = "YES"
	Custom404No      = "NO"
	Custom404Unknown = "UNKNOWN"
)

// DefaultNotFoundIndicators - фразы, по которым 404-ответ считается кастомной страницей
var DefaultNotFoundIndicators = []string{
	"page not found",
	"404 error",
	"error 404",
	"404 not found",
	"oops",
	"the page you are looking for",
	"page you requested",
	"page does not exist",
	"page doesn't exist",
	"could not be found",
	"can't be found",
	"no longer available",
	"nothing was found",
	"The requested URL was not found on this server",
}

var notFoundInSourcePattern = regexp.MustCompile(`(?i)404|not found`)

// AdditionalConditions - сопутствующие сигналы; nil - значение не определено
type AdditionalConditions struct {
	Is404InMainSourceCode *bool `json:"is404InMainSourceCode"`
	IsRobotsBlocked       *bool `json:"isRobotsBlocked"`
	IsInSitemap           *bool `json:"isInSitemap"`
}

// Custom404Result - результат эвристики кастомной 404
type Custom404Result struct {
	Custom404            string               `json:"custom404"`
	AdditionalConditions AdditionalConditions `json:"additionalConditions"`
}

// DetectCustom404 - функция определения кастомной 404-страницы по телу пробного запроса.
// nil indicators - используется DefaultNotFoundIndicators.
func DetectCustom404(page Page, indicators []string) Custom404Result {
	if !page.HasProbe404 {
		return Custom404Result{Custom404: Custom404Unknown}
	}
	if indicators == nil {
		indicators = DefaultNotFoundIndicators
	}

	verdict := Custom404No
	probe := strings.ToLower(page.Probe404)
	for _, phrase := range indicators {
		if phrase != "" && strings.Contains(probe, strings.ToLower(phrase)) {
			verdict = Custom404Yes
			break
		}
	}

	return Custom404Result{
		Custom404: verdict,
		AdditionalConditions: AdditionalConditions{
			Is404InMainSourceCode: boolPtr(notFoundInSourcePattern.MatchString(page.HTML)),
			IsRobotsBlocked:       boolPtr(isRobotsBlocked(page.RobotsTxt, page.URL)),
			IsInSitemap:           boolPtr(isInSitemap(page.SitemapXML, page.URL)),
		},
	}
}

// isRobotsBlocked - есть ли в robots.txt директива Disallow: с путем страницы.
// Путь сравнивается как литерал (без учета * и $).
func isRobotsBlocked(robotsTxt, pageURL string) bool {
	if robotsTxt == "" || robotsTxt == NoRobotsTxt {
		return false
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	pattern, err := regexp.Compile(`Disallow:\s*` + regexp.QuoteMeta(path))
	if err != nil {
		return false
	}
	return pattern.MatchString(robotsTxt)
}

func isInSitemap(sitemapXML, pageURL string) bool {
	if sitemapXML == "" || sitemapXML == NoSitemapXML || pageURL == "" {
		return false
	}
	return strings.Contains(sitemapXML, pageURL)
}
