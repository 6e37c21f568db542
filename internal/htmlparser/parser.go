// Package htmlparser - движок извлечения SEO-фактов из сырой HTML-разметки.
//
// Все функции пакета чистые и не имеют состояния: разметка разбирается
// регулярными выражениями (RE2, линейное время), без построения DOM.
// Некорректный вход никогда не приводит к панике: возвращается результат
// полной формы с пустыми значениями.
package htmlparser

import (
	"net/url"
	"regexp"
	"strings"

	"seoscope/internal/helpers"
)

const (
	// NoRobotsTxt - sentinel, подставляемый вместо недоступного robots.txt
	NoRobotsTxt = "No /robots.txt found"
	// NoSitemapXML - sentinel, подставляемый вместо недоступного sitemap.xml
	NoSitemapXML = "No /sitemap.xml found"
)

// Page - входные данные одного аудита
type Page struct {
	URL        string
	HTML       string
	RobotsTxt  string
	SitemapXML string
	Probe404   string
	// HasProbe404 - false, если тело 404-пробы получить не удалось
	HasProbe404 bool
}

var (
	anchorPattern = regexp.MustCompile(`(?is)(<a\b[^>]*>)(.*?)</a\s*>`)
	metaPattern   = regexp.MustCompile(`(?is)<meta\b[^>]*>`)
	linkPattern   = regexp.MustCompile(`(?is)<link\b[^>]*>`)
	imgPattern    = regexp.MustCompile(`(?is)<img\b[^>]*>`)
)

// anchor - одна ссылка <a ...>...</a> в порядке документа
type anchor struct {
	element string
	attrs   helpers.Attrs
	href    string
}

// findAnchors - все <a> с атрибутом href; href декодирован
func findAnchors(html string) []anchor {
	var anchors []anchor
	for _, m := range anchorPattern.FindAllStringSubmatch(html, -1) {
		attrs := helpers.ParseAttrs(m[1])
		href, ok := attrs.Lookup("href")
		if !ok {
			continue
		}
		anchors = append(anchors, anchor{
			element: m[0],
			attrs:   attrs,
			href:    strings.TrimSpace(helpers.DecodeEntities(href)),
		})
	}
	return anchors
}

// findTags - стартовые теги по шаблону вместе с разобранными атрибутами
func findTags(pattern *regexp.Regexp, html string) ([]string, []helpers.Attrs) {
	tags := pattern.FindAllString(html, -1)
	attrs := make([]helpers.Attrs, len(tags))
	for i, tag := range tags {
		attrs[i] = helpers.ParseAttrs(tag)
	}
	return tags, attrs
}

// stripWWW - убирает ведущий www. из имени хоста
func stripWWW(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// schemePattern - ссылка начинается со схемы вида scheme:
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// absoluteHost - хост ссылки после приведения к абсолютному виду (https:// по умолчанию).
// Пустая строка, если хост определить нельзя.
func absoluteHost(href string) string {
	switch {
	case href == "" || strings.HasPrefix(href, "#"):
		return ""
	case strings.HasPrefix(href, "//"):
		href = "https:" + href
	case !schemePattern.MatchString(href):
		href = "https://" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return stripWWW(u.Hostname())
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
