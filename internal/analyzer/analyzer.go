package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"seoscope/internal/config"
	"seoscope/internal/helpers"
	"seoscope/internal/htmlparser"
	"seoscope/internal/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HasScheme - проверяет наличие протокола
func HasScheme(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// NormalizeURL - добавляет https://, если протокол не указан
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if !HasScheme(u) {
		return "https://" + u
	}
	return u
}

// Analyzer - оркестратор аудита одной страницы
type Analyzer struct {
	cfg         *config.Config
	fetcher     *helpers.Fetcher
	logger      *zap.Logger
	schemaTypes map[string]bool
	platforms   []htmlparser.SocialPlatform
}

// Option - опция анализатора
type Option func(*Analyzer)

// WithFetcher - подменяет загрузчик
func WithFetcher(f *helpers.Fetcher) Option { return func(a *Analyzer) { a.fetcher = f } }

// WithSchemaTypes - задает словарь типов schema.org для проверки JSON-LD
func WithSchemaTypes(types map[string]bool) Option {
	return func(a *Analyzer) { a.schemaTypes = types }
}

// New - создает новый инстанс анализатора
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Analyzer{
		cfg:       cfg,
		logger:    logger,
		platforms: socialPlatforms(cfg.Social),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fetcher == nil {
		a.fetcher = NewFetcher(cfg.Fetch)
	}
	return a
}

// NewFetcher - загрузчик по настройкам fetch
func NewFetcher(cfg config.FetchConfig) *helpers.Fetcher {
	opts := []helpers.FetcherOption{helpers.WithUserAgent(cfg.UserAgent)}
	if cfg.ProxyURL != "" {
		opts = append(opts, helpers.WithProxy(cfg.ProxyURL))
	}
	if cfg.MaxBodyBytes > 0 {
		opts = append(opts, helpers.WithMaxBodyBytes(cfg.MaxBodyBytes))
	}
	return helpers.NewFetcher(cfg.Timeout, opts...)
}

func socialPlatforms(cfg config.SocialConfig) []htmlparser.SocialPlatform {
	if len(cfg.Platforms) == 0 {
		return nil
	}
	out := make([]htmlparser.SocialPlatform, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		out = append(out, htmlparser.SocialPlatform{Domain: p.Domain, Name: p.Name})
	}
	return out
}

// UserAgent - User-Agent, которым представляется анализатор
func (a *Analyzer) UserAgent() string {
	return a.cfg.Fetch.UserAgent
}

// FetchPage - параллельно загружает страницу, robots.txt, sitemap.xml и 404-пробу.
// Ошибкой завершается только сбой загрузки самой страницы.
func (a *Analyzer) FetchPage(ctx context.Context, rawURL string) (htmlparser.Page, *helpers.Response, error) {
	page := htmlparser.Page{URL: rawURL}

	base, err := url.Parse(rawURL)
	if err != nil || base.Host == "" {
		return page, nil, fmt.Errorf("некорректный URL %q", rawURL)
	}
	origin := base.Scheme + "://" + base.Host

	var resp *helpers.Response
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := a.fetcher.Fetch(gctx, rawURL)
		if err != nil {
			return err
		}
		resp = r
		page.HTML = r.Body
		return nil
	})
	g.Go(func() error {
		page.RobotsTxt = a.fetcher.FetchText(gctx, origin+"/robots.txt", htmlparser.NoRobotsTxt)
		return nil
	})
	g.Go(func() error {
		page.SitemapXML = a.fetcher.FetchText(gctx, origin+"/sitemap.xml", htmlparser.NoSitemapXML)
		return nil
	})
	g.Go(func() error {
		probe, err := a.fetcher.Fetch(gctx, origin+a.cfg.Fetch.ProbePath)
		if err != nil {
			a.logger.Debug("404 probe failed", zap.String("url", rawURL), zap.Error(err))
			return nil
		}
		page.Probe404 = probe.Body
		page.HasProbe404 = true
		return nil
	})

	if err := g.Wait(); err != nil {
		return page, nil, err
	}
	return page, resp, nil
}

// Analyze - запускает все проверки над загруженной страницей
func (a *Analyzer) Analyze(page htmlparser.Page, resp *helpers.Response) *report.SEOReport {
	rep := report.New(page.URL)
	rep.AuditID = uuid.NewString()
	logger := a.logger.With(zap.String("audit_id", rep.AuditID), zap.String("url", page.URL))

	if resp != nil {
		rep.StatusCode = resp.StatusCode
		rep.ResponseTimeMs = resp.Elapsed.Milliseconds()
		if resp.Redirects != nil {
			rep.Redirects = resp.Redirects
		}
		rep.MissingSecurityHeaders = checkSecurityHeaders(resp.Header, rep.IsHTTPS)
		if resp.StatusCode != http.StatusOK {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("HTTP статус: %d", resp.StatusCode))
		}
	}

	html := page.HTML
	var g errgroup.Group

	g.Go(func() error {
		rep.MetaTags = htmlparser.ExtractMetaTags(html)
		rep.Indexation = htmlparser.CheckIndexation(page, rep.MetaTags.Robots.Content, a.cfg.Fetch.UserAgent)
		return nil
	})
	g.Go(func() error {
		rep.OpenGraph = htmlparser.ExtractOpenGraph(html)
		rep.TwitterCard = htmlparser.ExtractTwitterCard(html)
		return nil
	})
	g.Go(func() error {
		rep.Headings = htmlparser.ExtractHeadings(html)
		return nil
	})
	g.Go(func() error {
		rep.Images = htmlparser.ExtractImages(html)
		return nil
	})
	g.Go(func() error {
		links, err := htmlparser.ExtractLinks(html, page.URL)
		rep.Links = links
		return err
	})
	g.Go(func() error {
		rep.SearchOptimization = htmlparser.ExtractSearchOptimization(html)
		rep.SchemaBlocks = htmlparser.ValidateSchemaBlocks(rep.SearchOptimization, a.schemaTypes)
		return nil
	})
	g.Go(func() error {
		rep.SocialLinks = htmlparser.DetectSocialLinks(html, a.platforms)
		rep.URLChecks = htmlparser.CheckURLVulnerability(html, a.platforms)
		return nil
	})
	g.Go(func() error {
		rep.Custom404 = htmlparser.DetectCustom404(page, a.cfg.Custom404.Indicators)
		return nil
	})
	g.Go(func() error {
		rep.Domain = htmlparser.AnalyzeDomain(page.URL, a.cfg.Domain.TLDs)
		return nil
	})
	g.Go(func() error {
		rep.Security = htmlparser.CheckTargetBlankSecurity(html)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Warn("extractor reported a problem", zap.Error(err))
		rep.Diagnostics = append(rep.Diagnostics, err.Error())
	}

	rep.Finalize()
	return rep
}

// AnalyzeURL - функция анализа ресурса по ссылке
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) *report.SEOReport {
	start := time.Now()

	page, resp, err := a.FetchPage(ctx, rawURL)
	if err != nil {
		rep := report.New(rawURL)
		rep.AuditID = uuid.NewString()
		rep.Errors = append(rep.Errors, "Не удалось загрузить страницу: "+err.Error())
		a.logger.Error("page fetch failed",
			zap.String("audit_id", rep.AuditID), zap.String("url", rawURL), zap.Error(err))
		return rep
	}

	rep := a.Analyze(page, resp)
	a.logger.Info("audit finished",
		zap.String("audit_id", rep.AuditID),
		zap.String("url", rawURL),
		zap.Int("status", rep.StatusCode),
		zap.Int("links", len(rep.Links)),
		zap.Int("warnings", len(rep.Warnings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return rep
}

func checkSecurityHeaders(headers http.Header, isHTTPS bool) []string {
	missing := []string{}
	if headers.Get("Content-Security-Policy") == "" {
		missing = append(missing, "Content-Security-Policy")
	}
	if headers.Get("X-Frame-Options") == "" {
		missing = append(missing, "X-Frame-Options")
	}
	if headers.Get("X-Content-Type-Options") != "nosniff" {
		missing = append(missing, "X-Content-Type-Options")
	}
	if isHTTPS && headers.Get("Strict-Transport-Security") == "" {
		missing = append(missing, "Strict-Transport-Security")
	}
	return missing
}
