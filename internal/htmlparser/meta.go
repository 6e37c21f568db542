package htmlparser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"seoscope/internal/helpers"
)

var (
	titlePattern   = regexp.MustCompile(`(?is)<title\b[^>]*>(.*?)</title\s*>`)
	charsetPattern = regexp.MustCompile(`(?i)charset\s*=\s*["']?([^\s"';]+)`)
)

// TagValue - содержимое тега и его длина в символах
type TagValue struct {
	Content *string `json:"content"`
	Length  int     `json:"length"`
}

func newTagValue(content *string) TagValue {
	if content == nil {
		return TagValue{}
	}
	return TagValue{Content: content, Length: utf8.RuneCountInString(*content)}
}

// MetaTags - отчет по <title> и основным meta-тегам
type MetaTags struct {
	Title                      TagValue `json:"title"`
	Description                TagValue `json:"description"`
	Charset                    TagValue `json:"charset"`
	Robots                     TagValue `json:"robots"`
	Viewport                   TagValue `json:"viewport"`
	GoogleSiteVerification     TagValue `json:"google-site-verification"`
	FacebookDomainVerification TagValue `json:"facebook-domain-verification"`
}

// OpenGraph - поля og:*
type OpenGraph struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	URL         *string `json:"url"`
	Type        *string `json:"type"`
	SiteName    *string `json:"sitename"`
	Locale      *string `json:"locale"`
}

// TwitterCard - поля twitter:*
type TwitterCard struct {
	Card        *string `json:"card"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Site        *string `json:"site"`
}

// metaIndex - meta-теги документа в порядке появления
type metaIndex []helpers.Attrs

func newMetaIndex(html string) metaIndex {
	_, attrs := findTags(metaPattern, html)
	return attrs
}

// content - содержимое первого meta-тега с name/property == key.
// Пустое после обрезки содержимое считается отсутствующим.
func (idx metaIndex) content(key string) *string {
	for _, attrs := range idx {
		if !strings.EqualFold(strings.TrimSpace(attrs.Get("name")), key) &&
			!strings.EqualFold(strings.TrimSpace(attrs.Get("property")), key) {
			continue
		}
		return nonEmpty(attrs.Get("content"))
	}
	return nil
}

func (idx metaIndex) charset() *string {
	for _, attrs := range idx {
		if cs, ok := attrs.Lookup("charset"); ok {
			return nonEmpty(cs)
		}
	}
	for _, attrs := range idx {
		if strings.EqualFold(attrs.Get("http-equiv"), "content-type") {
			if m := charsetPattern.FindStringSubmatch(attrs.Get("content")); m != nil {
				return nonEmpty(m[1])
			}
		}
	}
	return nil
}

func nonEmpty(raw string) *string {
	text := helpers.CleanText(raw)
	if text == "" {
		return nil
	}
	return &text
}

// ExtractMetaTags - функция извлечения title, description, charset, robots, viewport
// и тегов подтверждения владения сайтом
func ExtractMetaTags(html string) MetaTags {
	idx := newMetaIndex(html)

	var title *string
	if m := titlePattern.FindStringSubmatch(html); m != nil {
		title = nonEmpty(m[1])
	}

	return MetaTags{
		Title:                      newTagValue(title),
		Description:                newTagValue(idx.content("description")),
		Charset:                    newTagValue(idx.charset()),
		Robots:                     newTagValue(idx.content("robots")),
		Viewport:                   newTagValue(idx.content("viewport")),
		GoogleSiteVerification:     newTagValue(idx.content("google-site-verification")),
		FacebookDomainVerification: newTagValue(idx.content("facebook-domain-verification")),
	}
}

// ExtractOpenGraph - функция извлечения Open Graph разметки
func ExtractOpenGraph(html string) OpenGraph {
	idx := newMetaIndex(html)
	return OpenGraph{
		Title:       idx.content("og:title"),
		Description: idx.content("og:description"),
		Image:       idx.content("og:image"),
		URL:         idx.content("og:url"),
		Type:        idx.content("og:type"),
		SiteName:    idx.content("og:site_name"),
		Locale:      idx.content("og:locale"),
	}
}

// ExtractTwitterCard - функция извлечения Twitter Card разметки
func ExtractTwitterCard(html string) TwitterCard {
	idx := newMetaIndex(html)
	return TwitterCard{
		Card:        idx.content("twitter:card"),
		Title:       idx.content("twitter:title"),
		Description: idx.content("twitter:description"),
		Image:       idx.content("twitter:image"),
		Site:        idx.content("twitter:site"),
	}
}

// Present - количество заполненных полей Open Graph
func (og OpenGraph) Present() int {
	return countSet(og.Title, og.Description, og.Image, og.URL, og.Type, og.SiteName, og.Locale)
}

// Present - количество заполненных полей Twitter Card
func (tc TwitterCard) Present() int {
	return countSet(tc.Card, tc.Title, tc.Description, tc.Image, tc.Site)
}

func countSet(values ...*string) int {
	n := 0
	for _, v := range values {
		if v != nil {
			n++
		}
	}
	return n
}
