package htmlparser

import (
	"regexp"
	"strings"

	"seoscope/internal/helpers"
)

var (
	noopenerPattern   = regexp.MustCompile(`(?i)\bnoopener\b`)
	noreferrerPattern = regexp.MustCompile(`(?i)\bnoreferrer\b`)
	anchorTagPattern  = regexp.MustCompile(`(?is)<a\b[^>]*>`)
)

// SecurityFinding - ссылка target="_blank" и ее атрибуты rel
type SecurityFinding struct {
	Element       string `json:"element"`
	Href          string `json:"href"`
	Rel           string `json:"rel"`
	HasNoopener   bool   `json:"hasNoopener"`
	HasNoreferrer bool   `json:"hasNoreferrer"`
	IsVulnerable  bool   `json:"isVulnerable"`
}

// SecurityReport - уязвимые ссылки target="_blank" и общее число проверенных
type SecurityReport struct {
	Scanned  int               `json:"scanned"`
	Findings []SecurityFinding `json:"findings"`
}

// CheckTargetBlankSecurity - функция поиска ссылок target="_blank" без
// rel="noopener noreferrer". В Findings попадают только уязвимые ссылки.
func CheckTargetBlankSecurity(html string) SecurityReport {
	rep := SecurityReport{Findings: []SecurityFinding{}}

	tags, attrs := findTags(anchorTagPattern, html)
	for i, tag := range tags {
		if !strings.EqualFold(strings.TrimSpace(attrs[i].Get("target")), "_blank") {
			continue
		}
		rep.Scanned++

		rel := attrs[i].Get("rel")
		f := SecurityFinding{
			Element:       tag,
			Href:          helpers.DecodeEntities(attrs[i].Get("href")),
			Rel:           rel,
			HasNoopener:   noopenerPattern.MatchString(rel),
			HasNoreferrer: noreferrerPattern.MatchString(rel),
		}
		f.IsVulnerable = !(f.HasNoopener && f.HasNoreferrer)
		if f.IsVulnerable {
			rep.Findings = append(rep.Findings, f)
		}
	}
	return rep
}
