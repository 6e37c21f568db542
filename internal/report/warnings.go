package report

import (
	"fmt"
	"strings"

	"seoscope/internal/htmlparser"
)

const (
	maxTitleLength       = 60
	maxDescriptionLength = 160
	slowResponseMs       = 3000
)

// AddWarnings - функция для добавления предупреждений в отчет
func (r *SEOReport) AddWarnings() {
	title := r.MetaTags.Title.Length
	if title == 0 {
		r.Warnings = append(r.Warnings, "Отсутствует <title>")
	} else if title > maxTitleLength {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Title слишком длинный (>%d символов)", maxTitleLength))
	}
	desc := r.MetaTags.Description.Length
	if desc == 0 {
		r.Warnings = append(r.Warnings, "Отсутствует meta description")
	} else if desc > maxDescriptionLength {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Description слишком длинный (>%d символов)", maxDescriptionLength))
	}
	if r.MetaTags.Viewport.Content == nil {
		r.Warnings = append(r.Warnings, "Отсутствует <meta name=\"viewport\">")
	}
	if r.MetaTags.Charset.Content == nil {
		r.Info = append(r.Info, "Не указана кодировка (meta charset)")
	}

	switch h1 := len(r.Headings.H1); {
	case h1 == 0:
		r.Warnings = append(r.Warnings, "Отсутствует <h1>")
	case h1 > 1:
		r.Warnings = append(r.Warnings, "Несколько <h1>")
	}

	if r.OpenGraph.Present() == 0 {
		r.Info = append(r.Info, "Отсутствует Open Graph разметка")
	} else {
		var missing []string
		if r.OpenGraph.Title == nil {
			missing = append(missing, "title")
		}
		if r.OpenGraph.Description == nil {
			missing = append(missing, "description")
		}
		if r.OpenGraph.Image == nil {
			missing = append(missing, "image")
		}
		if len(missing) > 0 {
			r.Info = append(r.Info, "Open Graph: отсутствуют поля "+strings.Join(missing, ", "))
		}
	}

	if r.TwitterCard.Present() == 0 {
		r.Info = append(r.Info, "Отсутствует Twitter Card разметка")
	} else if r.TwitterCard.Card == nil {
		r.Info = append(r.Info, "Twitter Card: отсутствует twitter:card")
	}

	so := r.SearchOptimization
	if len(so.CanonicalLinks) == 0 {
		r.Warnings = append(r.Warnings, "Отсутствует <link rel=\"canonical\">")
	} else if len(so.CanonicalLinks) > 1 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Несколько canonical-ссылок: %d", len(so.CanonicalLinks)))
	}
	if len(so.HeadSchema)+len(so.BodySchema) == 0 {
		r.Warnings = append(r.Warnings, "Отсутствуют структурированные данные (Schema.org)")
	}
	var schemaErrors []string
	for _, b := range r.SchemaBlocks {
		schemaErrors = append(schemaErrors, b.Errors...)
	}
	if len(schemaErrors) > 0 {
		r.Warnings = append(r.Warnings, "Ошибки Schema.org: "+strings.Join(schemaErrors, "; "))
	}

	if n := r.Images.MissingAlt(); n > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d изображений без alt-атрибута", n))
	}
	if len(r.Images.Favicons) == 0 {
		r.Info = append(r.Info, "Не найден favicon")
	}

	counts := htmlparser.CountLinks(r.Links)
	if n := counts[htmlparser.LinkInvalid]; n > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d некорректных ссылок", n))
	}
	if n := countBadURLs(r.URLChecks); n > 0 {
		r.Info = append(r.Info, fmt.Sprintf("%d ссылок не прошли проверку гигиены URL", n))
	}
	if n := len(r.Security.Findings); n > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d ссылок с target=\"_blank\" без rel=\"noopener noreferrer\"", n))
	}

	switch r.Custom404.Custom404 {
	case htmlparser.Custom404No:
		r.Warnings = append(r.Warnings, "Сайт не отдает кастомную 404-страницу")
	case htmlparser.Custom404Unknown:
		r.Info = append(r.Info, "Не удалось проверить 404-страницу")
	}

	if r.Domain.Status == htmlparser.DomainFailed {
		r.Info = append(r.Info, "Домен: "+r.Domain.Report)
	}

	if !r.Indexation.HasRobotsTxt {
		r.Info = append(r.Info, "Отсутствует robots.txt")
	}
	if !r.Indexation.HasSitemap {
		r.Info = append(r.Info, "Отсутствует sitemap.xml")
	}
	if !r.Indexation.Indexable() {
		r.Warnings = append(r.Warnings, "Страница закрыта от индексации")
	}

	if !r.IsHTTPS {
		r.Warnings = append(r.Warnings, "Сайт не использует HTTPS")
	}
	if r.ResponseTimeMs > slowResponseMs {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Медленная загрузка: %d мс", r.ResponseTimeMs))
	}
	if len(r.Redirects) > 0 {
		r.Info = append(r.Info, fmt.Sprintf("Цепочка редиректов: %d шагов", len(r.Redirects)))
	}
	if len(r.MissingSecurityHeaders) > 0 {
		r.Info = append(r.Info, "Отсутствуют заголовки безопасности: "+strings.Join(r.MissingSecurityHeaders, ", "))
	}
}

func countBadURLs(checks []htmlparser.URLCheck) int {
	n := 0
	for _, c := range checks {
		if !c.IsValid {
			n++
		}
	}
	return n
}
