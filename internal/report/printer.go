package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"seoscope/internal/htmlparser"

	"github.com/fatih/color"
)

const (
	glyphPass = "✓"
	glyphFail = "✗"

	maxListed = 5
)

// Print для SEOReport (одна страница)
func (r *SEOReport) Print() {
	r.Fprint(color.Output)
}

// Fprint - печатает отчет по странице в w
func (r *SEOReport) Fprint(w io.Writer) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	white := color.New(color.FgWhite).SprintFunc()

	fmt.Fprintln(w, cyan("\n🔍 РЕЗУЛЬТАТ АУДИТА"), r.URL)
	fmt.Fprintln(w, strings.Repeat("─", 65))

	fmt.Fprintf(w, "🌐 URL: %s\n", white(r.URL))
	if r.AuditID != "" {
		fmt.Fprintf(w, "🆔 Аудит: %s\n", grayf("%s", r.AuditID))
	}
	fmt.Fprintf(w, "📶 Статус: %s\n", white(strconv.Itoa(r.StatusCode)))
	fmt.Fprintf(w, "⏱️  Загрузка: %s мс", white(r.ResponseTimeMs))
	if r.ResponseTimeMs > slowResponseMs {
		fmt.Fprint(w, " "+red("(!)"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "🔒 HTTPS: %s\n", boolIcon(r.IsHTTPS))

	mt := r.MetaTags
	fmt.Fprintln(w, "\n"+cyan("📄 META"))
	fmt.Fprintf(w, "  Title: %s %s\n", white(strconvEllipsis(deref(mt.Title.Content), 50)), grayf("(%d)", mt.Title.Length))
	fmt.Fprintf(w, "  Desc:  %s %s\n", white(strconvEllipsis(deref(mt.Description.Content), 50)), grayf("(%d)", mt.Description.Length))
	fmt.Fprintf(w, "  Charset: %s | Viewport: %s | Robots: %s\n",
		boolIcon(mt.Charset.Content != nil), boolIcon(mt.Viewport.Content != nil), white(orDash(mt.Robots.Content)))
	fmt.Fprintf(w, "  Верификация Google: %s | Facebook: %s\n",
		boolIcon(mt.GoogleSiteVerification.Content != nil), boolIcon(mt.FacebookDomainVerification.Content != nil))

	if r.OpenGraph.Present() > 0 {
		fmt.Fprintln(w, "\n"+cyan("🖼️  OPEN GRAPH"))
		og := r.OpenGraph
		printFields(w, "og:%-12s: %s\n", []string{"title", "description", "image", "url", "type", "sitename", "locale"},
			[]*string{og.Title, og.Description, og.Image, og.URL, og.Type, og.SiteName, og.Locale})
	}

	if r.TwitterCard.Present() > 0 {
		fmt.Fprintln(w, "\n"+cyan("🐦 TWITTER CARDS"))
		tc := r.TwitterCard
		printFields(w, "twitter:%-12s: %s\n", []string{"card", "title", "description", "image", "site"},
			[]*string{tc.Card, tc.Title, tc.Description, tc.Image, tc.Site})
	}

	fmt.Fprintln(w, "\n"+cyan("📑 ЗАГОЛОВКИ"))
	counts := []string{}
	for level := 1; level <= 6; level++ {
		if cnt := len(r.Headings.Level(level)); cnt > 0 {
			counts = append(counts, fmt.Sprintf("h%d: %s", level, white(strconv.Itoa(cnt))))
		}
	}
	if len(counts) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(counts, ", "))
	} else {
		fmt.Fprintln(w, "  Нет заголовков h1–h6")
	}
	for level := 1; level <= 6; level++ {
		texts := r.Headings.Level(level)
		if len(texts) == 0 {
			continue
		}
		fmt.Fprintf(w, "    h%d: ", level)
		for i, text := range texts {
			if i >= 3 {
				fmt.Fprint(w, grayf("(+%d)", len(texts)-3))
				break
			}
			if i > 0 {
				fmt.Fprint(w, "; ")
			}
			fmt.Fprint(w, white(strconvEllipsis(text, 30)))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\n"+cyan("🖼️  ИЗОБРАЖЕНИЯ"))
	fmt.Fprintf(w, "  Изображений: %s | Без alt: %s | Favicon: %s\n",
		white(strconv.Itoa(len(r.Images.Images))), warnCount(r.Images.MissingAlt()), white(strconv.Itoa(len(r.Images.Favicons))))

	fmt.Fprintln(w, "\n"+cyan("🔗 ССЫЛКИ"))
	lc := htmlparser.CountLinks(r.Links)
	fmt.Fprintf(w, "  Внутренних: %s | Внешних: %s | Якорей: %s | Тел.: %s | Email: %s | Некорректных: %s\n",
		white(strconv.Itoa(lc[htmlparser.LinkInternal])), white(strconv.Itoa(lc[htmlparser.LinkExternal])),
		white(strconv.Itoa(lc[htmlparser.LinkAnchor])), white(strconv.Itoa(lc[htmlparser.LinkTelephone])),
		white(strconv.Itoa(lc[htmlparser.LinkEmail])), warnCount(lc[htmlparser.LinkInvalid]))
	nofollow, hidden := 0, 0
	for _, l := range r.Links {
		if l.IsNoFollow {
			nofollow++
		}
		if l.IsHidden {
			hidden++
		}
	}
	fmt.Fprintf(w, "  nofollow: %s | скрытых: %s\n", white(strconv.Itoa(nofollow)), white(strconv.Itoa(hidden)))

	if len(r.URLChecks) > 0 {
		fmt.Fprintln(w, "\n"+cyan("🧹 ГИГИЕНА URL"))
		fmt.Fprintf(w, "  %-4s %-3s %-3s %-3s %-3s %s\n", "№", "a-z", "_", "//", "OK", "Ссылка")
		for i, c := range r.URLChecks {
			if i >= maxListed && c.IsValid {
				continue
			}
			fmt.Fprintf(w, "  %-4d %-3s %-3s %-3s %-3s %s\n", c.SequenceNo,
				CheckGlyph(c.Lowercase), CheckGlyph(c.NoUnderscore), CheckGlyph(c.NoDoubleSlash), CheckGlyph(c.IsValid),
				strconvEllipsis(c.Link, 50))
		}
	}

	if len(r.SocialLinks) > 0 {
		fmt.Fprintln(w, "\n"+cyan("👥 СОЦСЕТИ"))
		for _, s := range r.SocialLinks {
			fmt.Fprintf(w, "  %s: %s\n", white(s.Platform), strconvEllipsis(s.Link, 50))
		}
	}

	fmt.Fprintln(w, "\n"+cyan("🧩 СТРУКТУРИРОВАННЫЕ ДАННЫЕ"))
	so := r.SearchOptimization
	fmt.Fprintf(w, "  Canonical: %s | Alternate: %s\n",
		white(strconv.Itoa(len(so.CanonicalLinks))), white(strconv.Itoa(len(so.AlternateLinks))))
	fmt.Fprintf(w, "  JSON-LD: <head> %s, <body> %s\n",
		white(strconv.Itoa(len(so.HeadSchema))), white(strconv.Itoa(len(so.BodySchema))))
	for _, b := range r.SchemaBlocks {
		fmt.Fprintf(w, "    [%s] %s", b.Location, boolIcon(b.Valid()))
		if len(b.Types) > 0 {
			fmt.Fprintf(w, " → %s", white(strings.Join(b.Types, ", ")))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\n"+cyan("🚫 404 И ИНДЕКСАЦИЯ"))
	fmt.Fprintf(w, "  Кастомная 404: %s\n", custom404Label(r.Custom404.Custom404))
	cond := r.Custom404.AdditionalConditions
	fmt.Fprintf(w, "  404 в исходном коде: %s | Закрыта robots.txt: %s | В sitemap: %s\n",
		optIcon(cond.Is404InMainSourceCode), optIcon(cond.IsRobotsBlocked), optIcon(cond.IsInSitemap))
	ix := r.Indexation
	fmt.Fprintf(w, "  robots.txt: %s | sitemap.xml: %s", boolIcon(ix.HasRobotsTxt), boolIcon(ix.HasSitemap))
	if ix.SitemapKind != "" {
		fmt.Fprintf(w, " %s", grayf("(%s, %d)", ix.SitemapKind, ix.SitemapURLs))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Разрешена robots.txt: %s | Индексируется: %s\n", optIcon(ix.RobotsAllowed), boolIcon(ix.Indexable()))

	fmt.Fprintln(w, "\n"+cyan("🏷️  ДОМЕН"))
	fmt.Fprintf(w, "  %s: %s\n", white(r.Domain.Domain), domainStatus(r.Domain.Status))
	fmt.Fprintf(w, "  %s\n", grayf("%s", r.Domain.Report))

	if len(r.Security.Findings) > 0 || len(r.MissingSecurityHeaders) > 0 {
		fmt.Fprintln(w, "\n"+cyan("🔐 БЕЗОПАСНОСТЬ"))
		if len(r.Security.Findings) > 0 {
			fmt.Fprintf(w, "  target=\"_blank\" без noopener/noreferrer: %s из %s\n",
				warnCount(len(r.Security.Findings)), white(strconv.Itoa(r.Security.Scanned)))
			for i, f := range r.Security.Findings {
				if i >= maxListed {
					fmt.Fprint(w, grayf("    (+%d)\n", len(r.Security.Findings)-maxListed))
					break
				}
				fmt.Fprintf(w, "    %s\n", strconvEllipsis(f.Href, 60))
			}
		}
		if len(r.MissingSecurityHeaders) > 0 {
			fmt.Fprintf(w, "  Отсутствующие заголовки: %s\n", white(strings.Join(r.MissingSecurityHeaders, ", ")))
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\n"+red("⚠️  ПРОБЛЕМЫ (требуют исправления):"))
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  • %s\n", msg)
		}
	}

	if len(r.Info) > 0 {
		fmt.Fprintln(w, "\n"+yellow("ℹ️  ЗАМЕЧАНИЯ:"))
		for _, msg := range r.Info {
			fmt.Fprintf(w, "  • %s\n", msg)
		}
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "\n"+red("❌ КРИТИЧЕСКИЕ ОШИБКИ:"))
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  • %s\n", e)
		}
	} else if len(r.Warnings) == 0 {
		fmt.Fprintln(w, "\n"+green("✅ ВСЁ В ПОРЯДКЕ!"))
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("─", 65))
}

// Print для SiteReport (сайт целиком)
func (sr *SiteReport) Print() {
	sr.Fprint(color.Output)
}

// Fprint - печатает отчет по сайту в w
func (sr *SiteReport) Fprint(w io.Writer) {
	if sr.MainReport != nil {
		sr.MainReport.Fprint(w)
	}

	if len(sr.SubReports) <= 1 {
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	white := color.New(color.FgWhite).SprintFunc()

	s := sr.Summary()

	fmt.Fprintln(w, "\n"+cyan("🕷️ СВОДКА ПО САЙТУ"))
	fmt.Fprintf(w, "Просканировано: %s страниц\n", white(strconv.Itoa(s.Pages)))
	fmt.Fprintf(w, "  Ошибок: %s, Предупреждений: %s\n",
		red(strconv.Itoa(s.Errors)),
		yellow(strconv.Itoa(s.Warnings)),
	)

	if s.MissingTitles > 0 {
		fmt.Fprintf(w, "  ❗ %d страниц без <title>\n", s.MissingTitles)
	}
	if s.MissingH1 > 0 {
		fmt.Fprintf(w, "  ❗ %d страниц без <h1>\n", s.MissingH1)
	}
	if s.BrokenPages > 0 {
		fmt.Fprintf(w, "  ❌ %d битых страниц (код ≥ 400)\n", s.BrokenPages)
	}
	if s.InsecureBlanks > 0 {
		fmt.Fprintf(w, "  🔐 %d небезопасных ссылок target=\"_blank\"\n", s.InsecureBlanks)
	}

	if len(s.SlowPages) > 0 {
		fmt.Fprint(w, "\n  🐌 Медленные страницы (самые долгие):\n")
		for i := 0; i < 3 && i < len(s.SlowPages); i++ {
			fmt.Fprintf(w, "    %s — %s мс\n",
				strconvEllipsis(s.SlowPages[i].URL, 40),
				white(strconv.FormatInt(s.SlowPages[i].Time, 10)),
			)
		}
	}

	if len(s.TopWarnings) > 0 {
		fmt.Fprintln(w, "\n  📉 Самые частые предупреждения:")
		for i := 0; i < maxListed && i < len(s.TopWarnings); i++ {
			fmt.Fprintf(w, "    • %s (%dx)\n", s.TopWarnings[i].Text, s.TopWarnings[i].Count)
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", 65))
}

// CheckGlyph - отображение результата проверки символом ✓/✗
func CheckGlyph(ok bool) string {
	if ok {
		return glyphPass
	}
	return glyphFail
}

func boolIcon(ok bool) string {
	if ok {
		return color.GreenString("✅")
	}
	return color.RedString("❌")
}

// optIcon - иконка для значения, которое может быть не определено
func optIcon(v *bool) string {
	if v == nil {
		return grayf("—")
	}
	return boolIcon(*v)
}

func custom404Label(v string) string {
	switch v {
	case htmlparser.Custom404Yes:
		return color.GreenString("да")
	case htmlparser.Custom404No:
		return color.RedString("нет")
	}
	return grayf("не определено")
}

func domainStatus(v string) string {
	if v == htmlparser.DomainSuccess {
		return color.GreenString(v)
	}
	return color.RedString(v)
}

func printFields(w io.Writer, format string, keys []string, values []*string) {
	for i, k := range keys {
		if values[i] != nil {
			fmt.Fprintf(w, "  "+format, k, color.New(color.FgWhite).Sprint(strconvEllipsis(*values[i], 40)))
		}
	}
}

func warnCount(n int) string {
	if n == 0 {
		return color.GreenString("0")
	}
	return color.RedString("%d", n)
}

func grayf(format string, args ...interface{}) string {
	return color.New(color.FgHiBlack).Sprintf(format, args...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s *string) string {
	if s == nil {
		return "—"
	}
	return *s
}

func strconvEllipsis(s string, maximum int) string {
	if utf8.RuneCountInString(s) <= maximum {
		return s
	}
	return string([]rune(s)[:maximum-3]) + "..."
}
