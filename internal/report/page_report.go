package report

import (
	"strings"

	"seoscope/internal/htmlparser"
)

// Названия проверок в сводной карте результатов
const (
	CheckMetaTags           = "metaTags"
	CheckOpenGraph          = "openGraph"
	CheckTwitterCard        = "twitterCard"
	CheckHeadings           = "headings"
	CheckImages             = "images"
	CheckLinks              = "links"
	CheckSearchOptimization = "searchOptimization"
	CheckSchemaValidation   = "schemaValidation"
	CheckURLVulnerability   = "urlVulnerability"
	CheckSocialLinks        = "socialLinks"
	CheckCustom404          = "custom404"
	CheckDomain             = "domain"
	CheckSecurity           = "security"
	CheckIndexation         = "indexation"
)

// SEOReport - структура отчета по странице
type SEOReport struct {
	URL     string `json:"url"`
	AuditID string `json:"auditId"`

	// Загрузка
	ResponseTimeMs         int64    `json:"responseTimeMs"`
	StatusCode             int      `json:"statusCode"`
	IsHTTPS                bool     `json:"isHttps"`
	Redirects              []string `json:"redirects"`
	MissingSecurityHeaders []string `json:"missingSecurityHeaders"`

	// Результаты проверок
	MetaTags           htmlparser.MetaTags         `json:"-"`
	OpenGraph          htmlparser.OpenGraph        `json:"-"`
	TwitterCard        htmlparser.TwitterCard      `json:"-"`
	Headings           htmlparser.HeadingSet       `json:"-"`
	Images             htmlparser.ImageReport      `json:"-"`
	Links              []htmlparser.LinkRecord     `json:"-"`
	SearchOptimization htmlparser.SchemaReport     `json:"-"`
	SchemaBlocks       []htmlparser.SchemaBlock    `json:"-"`
	URLChecks          []htmlparser.URLCheck       `json:"-"`
	SocialLinks        []htmlparser.SocialLink     `json:"-"`
	Custom404          htmlparser.Custom404Result  `json:"-"`
	Domain             htmlparser.DomainReport     `json:"-"`
	Security           htmlparser.SecurityReport   `json:"-"`
	Indexation         htmlparser.IndexationReport `json:"-"`
	Results            map[string]any              `json:"checks"`

	// Сообщения
	Diagnostics []string `json:"diagnostics"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Info        []string `json:"info"`
}

// New - возвращает новый отчет
func New(rawURL string) *SEOReport {
	return &SEOReport{
		URL:                    rawURL,
		IsHTTPS:                strings.HasPrefix(strings.ToLower(rawURL), "https://"),
		Redirects:              []string{},
		MissingSecurityHeaders: []string{},
		Links:                  []htmlparser.LinkRecord{},
		SchemaBlocks:           []htmlparser.SchemaBlock{},
		URLChecks:              []htmlparser.URLCheck{},
		SocialLinks:            []htmlparser.SocialLink{},
		Results:                map[string]any{},
		Diagnostics:            []string{},
		Errors:                 []string{},
		Warnings:               []string{},
		Info:                   []string{},
	}
}

// Checks - карта "название проверки -> результат" для передачи в слой отображения
func (r *SEOReport) Checks() map[string]any {
	return map[string]any{
		CheckMetaTags:           r.MetaTags,
		CheckOpenGraph:          r.OpenGraph,
		CheckTwitterCard:        r.TwitterCard,
		CheckHeadings:           r.Headings,
		CheckImages:             r.Images,
		CheckLinks:              r.Links,
		CheckSearchOptimization: r.SearchOptimization,
		CheckSchemaValidation:   r.SchemaBlocks,
		CheckURLVulnerability:   r.URLChecks,
		CheckSocialLinks:        r.SocialLinks,
		CheckCustom404:          r.Custom404,
		CheckDomain:             r.Domain,
		CheckSecurity:           r.Security,
		CheckIndexation:         r.Indexation,
	}
}

// Finalize - заполняет карту результатов и формирует предупреждения
func (r *SEOReport) Finalize() {
	r.Results = r.Checks()
	r.AddWarnings()
}

// InternalLinks - абсолютные адреса внутренних ссылок (для краулера)
func (r *SEOReport) InternalLinks() []string {
	var out []string
	for _, l := range htmlparser.FilterLinks(r.Links, htmlparser.LinkInternal) {
		out = append(out, l.Link)
	}
	return out
}
