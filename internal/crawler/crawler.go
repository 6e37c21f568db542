package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"seoscope/internal/helpers"
	"seoscope/internal/report"

	"github.com/cheggaaa/pb/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrDisallowed - страница закрыта robots.txt
var ErrDisallowed = errors.New("запрещено robots.txt")

// Auditor - анализирует одну страницу
type Auditor interface {
	AnalyzeURL(ctx context.Context, rawURL string) *report.SEOReport
}

// Crawler - структура краулера
type Crawler struct {
	auditor     Auditor
	robots      *RobotsClient
	logger      *zap.Logger
	maxDepth    int
	maxPages    int
	concurrency int
	delay       time.Duration
	userAgent   string
	progress    bool
}

// NewCrawler - создает новый инстанс краулера
func NewCrawler(auditor Auditor, opts ...Option) *Crawler {
	c := &Crawler{
		auditor:     auditor,
		logger:      zap.NewNop(),
		maxDepth:    2,
		maxPages:    50,
		concurrency: 5,
		userAgent:   "Mozilla/5.0 (compatible; Seoscope/1.0)",
		progress:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.robots == nil {
		c.robots = NewRobotsClient(nil)
	}
	if c.concurrency < 1 {
		c.concurrency = 1
	}
	return c
}

// Option - структура опции краулера
type Option func(*Crawler)

// WithMaxDepth - задает максимальную глубину сканирования
func WithMaxDepth(d int) Option { return func(c *Crawler) { c.maxDepth = d } }

// WithMaxPages - задает максимальное количество страниц для сканирования
func WithMaxPages(n int) Option { return func(c *Crawler) { c.maxPages = n } }

// WithConcurrency - задает максимальное количество горутин
func WithConcurrency(n int) Option { return func(c *Crawler) { c.concurrency = n } }

// WithDelay - пауза воркера после каждой страницы
func WithDelay(d time.Duration) Option { return func(c *Crawler) { c.delay = d } }

// WithUserAgent - User-Agent для проверки robots.txt
func WithUserAgent(ua string) Option { return func(c *Crawler) { c.userAgent = ua } }

// WithRobotsFetcher - загрузчик robots.txt
func WithRobotsFetcher(f *helpers.Fetcher) Option {
	return func(c *Crawler) { c.robots = NewRobotsClient(f) }
}

// WithLogger - логгер краулера
func WithLogger(l *zap.Logger) Option { return func(c *Crawler) { c.logger = l } }

// WithProgressBar - включает или выключает прогресс-бар
func WithProgressBar(on bool) Option { return func(c *Crawler) { c.progress = on } }

// Crawl - сканирует ресурс в ширину, уровень за уровнем
func (c *Crawler) Crawl(ctx context.Context, startURL string) ([]report.CrawlResult, error) {
	base, err := url.Parse(startURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("некорректный стартовый URL %q", startURL)
	}
	allowedHost := stripWWW(base.Hostname())

	bar := pb.Simple.New(c.maxPages)
	if !c.progress {
		bar.SetWriter(io.Discard)
	}
	bar.Start()
	defer bar.Finish()

	var mu sync.Mutex
	seen := make(map[string]bool)
	results := make([]report.CrawlResult, 0, c.maxPages)
	level := []string{normalizeLink(startURL)}

	for depth := 0; depth <= c.maxDepth && len(level) > 0; depth++ {
		var next []string
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency)

		for _, pageURL := range level {
			if seen[pageURL] || len(seen) >= c.maxPages {
				continue
			}
			seen[pageURL] = true
			pageURL := pageURL

			g.Go(func() error {
				res := c.visit(gctx, pageURL, depth)

				mu.Lock()
				results = append(results, res)
				if depth < c.maxDepth && res.Report != nil && res.Report.StatusCode == 200 {
					next = append(next, c.extractInternalLinks(res.Report, allowedHost)...)
				}
				mu.Unlock()

				bar.Increment()
				return nil
			})
		}

		_ = g.Wait()
		if err := ctx.Err(); err != nil {
			return results, err
		}
		level = next
	}

	c.logger.Info("crawl finished",
		zap.String("start_url", startURL),
		zap.Int("pages", len(results)),
	)
	return results, nil
}

func (c *Crawler) visit(ctx context.Context, pageURL string, depth int) report.CrawlResult {
	if !c.robots.Allowed(ctx, c.userAgent, pageURL) {
		c.logger.Debug("skipping page disallowed by robots.txt", zap.String("url", pageURL))
		return report.CrawlResult{URL: pageURL, Depth: depth, Error: ErrDisallowed}
	}

	rep := c.auditor.AnalyzeURL(ctx, pageURL)

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
	return report.CrawlResult{URL: pageURL, Depth: depth, Report: rep}
}

// CrawlSite - формирует отчет о просканированном ресурсе
func (c *Crawler) CrawlSite(ctx context.Context, startURL string) (*report.SiteReport, error) {
	results, err := c.Crawl(ctx, startURL)
	if err != nil {
		return nil, err
	}

	start := normalizeLink(startURL)
	var mainRep *report.SEOReport
	for _, res := range results {
		if res.Report != nil && res.URL == start {
			mainRep = res.Report
			break
		}
	}

	if mainRep == nil {
		mainRep = c.auditor.AnalyzeURL(ctx, startURL)
	}

	return &report.SiteReport{
		MainURL:    startURL,
		MainReport: mainRep,
		SubReports: results,
	}, nil
}

func (c *Crawler) extractInternalLinks(rep *report.SEOReport, host string) []string {
	var internal []string
	for _, link := range rep.InternalLinks() {
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			continue
		}
		if stripWWW(u.Hostname()) == host {
			internal = append(internal, normalizeLink(link))
		}
	}
	return internal
}

// normalizeLink - убирает фрагмент, чтобы #якоря не считались разными страницами
func normalizeLink(link string) string {
	if i := strings.IndexByte(link, '#'); i != -1 {
		return link[:i]
	}
	return link
}

func stripWWW(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
