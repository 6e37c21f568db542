package htmlparser

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// LinkType - класс ссылки
type LinkType string

const (
	LinkInternal  LinkType = "Internal"
	LinkExternal  LinkType = "External"
	LinkAnchor    LinkType = "Anchor"
	LinkTelephone LinkType = "Telephone"
	LinkEmail     LinkType = "Email"
	LinkInvalid   LinkType = "Invalid/Malformed URL"
)

var (
	knownSchemePattern = regexp.MustCompile(`(?i)^(https?|mailto|tel|ftp):`)
	hiddenWordPattern  = regexp.MustCompile(`\bhidden\b`)
)

// LinkRecord - одна ссылка страницы
type LinkRecord struct {
	SequenceNo int      `json:"sNo"`
	Link       string   `json:"link"`
	LinkType   LinkType `json:"linkType"`
	IsNoFollow bool     `json:"isNoFollow"`
	IsHidden   bool     `json:"isHidden"`
	RawElement string   `json:"rawElement"`
}

// ExtractLinks - функция извлечения и классификации ссылок страницы.
// Возвращает ссылки в порядке документа; SequenceNo - позиция в документе с 1.
// Если pageURL не абсолютный URL, возвращается пустой список и ошибка.
func ExtractLinks(html, pageURL string) ([]LinkRecord, error) {
	links := []LinkRecord{}

	base, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return links, fmt.Errorf("некорректный URL страницы %q: %w", pageURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return links, fmt.Errorf("URL страницы %q не является абсолютным", pageURL)
	}
	baseHost := stripWWW(base.Hostname())

	for i, a := range findAnchors(html) {
		link, linkType := classifyLink(a.href, base, baseHost)
		links = append(links, LinkRecord{
			SequenceNo: i + 1,
			Link:       link,
			LinkType:   linkType,
			IsNoFollow: strings.Contains(a.element, `rel="nofollow"`),
			IsHidden:   isHiddenElement(a.element),
			RawElement: a.element,
		})
	}
	return links, nil
}

func classifyLink(href string, base *url.URL, baseHost string) (string, LinkType) {
	if strings.HasPrefix(href, "#") {
		return href, LinkAnchor
	}

	resolved := href
	if strings.HasPrefix(href, "/") {
		ref, err := base.Parse(href)
		if err != nil {
			return href, LinkInvalid
		}
		resolved = ref.String()
	}

	lower := strings.ToLower(resolved)
	switch {
	case strings.HasPrefix(lower, "tel:"):
		return resolved, LinkTelephone
	case strings.HasPrefix(lower, "mailto:"):
		return resolved, LinkEmail
	}

	if !knownSchemePattern.MatchString(resolved) {
		resolved = base.Scheme + "://" + resolved
	}

	u, err := url.Parse(resolved)
	if err != nil || u.Host == "" {
		return href, LinkInvalid
	}
	if stripWWW(u.Hostname()) == baseHost {
		return u.String(), LinkInternal
	}
	return u.String(), LinkExternal
}

func isHiddenElement(element string) bool {
	return strings.Contains(element, "display:none") ||
		strings.Contains(element, "visibility:hidden") ||
		hiddenWordPattern.MatchString(element)
}

// Renumber - перенумеровывает отфильтрованный список ссылок с 1
func Renumber(links []LinkRecord) []LinkRecord {
	out := make([]LinkRecord, len(links))
	for i, l := range links {
		l.SequenceNo = i + 1
		out[i] = l
	}
	return out
}

// FilterLinks - ссылки заданных типов в исходном порядке
func FilterLinks(links []LinkRecord, types ...LinkType) []LinkRecord {
	want := make(map[LinkType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []LinkRecord
	for _, l := range links {
		if want[l.LinkType] {
			out = append(out, l)
		}
	}
	return out
}

// CountLinks - количество ссылок каждого типа
func CountLinks(links []LinkRecord) map[LinkType]int {
	counts := make(map[LinkType]int)
	for _, l := range links {
		counts[l.LinkType]++
	}
	return counts
}
