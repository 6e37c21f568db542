package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"seoscope/internal/analyzer"
	"seoscope/internal/config"
	"seoscope/internal/crawler"
	"seoscope/internal/logger"
	"seoscope/internal/report"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var errAuditFailed = errors.New("аудит завершился с ошибками")

var (
	configPath  string
	jsonOutput  bool
	crawlSite   bool
	maxDepth    int
	maxPages    int
	concurrency int
	verbose     bool
)

func main() {
	// .env необязателен
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		color.Red("Ошибка: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seoscope [flags] <URL>",
		Short: "SEO-аудит страницы или сайта",
		Long: `seoscope загружает страницу вместе с robots.txt, sitemap.xml и 404-пробой
и проверяет meta-теги, Open Graph, заголовки, изображения, ссылки, JSON-LD,
гигиену URL, соцсети, кастомную 404, домен и безопасность target="_blank".

Корень сайта по умолчанию сканируется целиком (см. --crawl).

Пример:
  seoscope example.com
  seoscope --json --crawl=false https://example.com/blog/post`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("SEOSCOPE_CONFIG"), "Path to YAML config")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print report as JSON")
	rootCmd.Flags().BoolVar(&crawlSite, "crawl", false, "Crawl the whole site (default: only when the URL is a site root)")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Crawl depth (overrides config)")
	rootCmd.Flags().IntVar(&maxPages, "max-pages", 0, "Crawl page limit (overrides config)")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Crawl workers (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	targetURL := analyzer.NormalizeURL(args[0])
	a := analyzer.New(cfg, log, analyzer.WithSchemaTypes(analyzer.LoadSchemaTypes(ctx, log)))

	crawl := isSiteRoot(targetURL)
	if cmd.Flags().Changed("crawl") {
		crawl = crawlSite
	}

	out := cmd.OutOrStdout()

	if crawl {
		c := crawler.NewCrawler(a,
			crawler.WithMaxDepth(cfg.Crawl.MaxDepth),
			crawler.WithMaxPages(cfg.Crawl.MaxPages),
			crawler.WithConcurrency(cfg.Crawl.Concurrency),
			crawler.WithDelay(cfg.Crawl.Delay),
			crawler.WithUserAgent(cfg.Fetch.UserAgent),
			crawler.WithRobotsFetcher(analyzer.NewFetcher(cfg.Fetch)),
			crawler.WithLogger(log),
			crawler.WithProgressBar(!jsonOutput),
		)
		siteRep, err := c.CrawlSite(ctx, targetURL)
		if err != nil {
			return fmt.Errorf("ошибка сканирования сайта: %w", err)
		}
		if jsonOutput {
			return report.WriteJSON(out, siteRep)
		}
		siteRep.Print()
		return nil
	}

	rep := a.AnalyzeURL(ctx, targetURL)
	if jsonOutput {
		if err := report.WriteJSON(out, rep); err != nil {
			return err
		}
	} else {
		rep.Print()
	}
	if len(rep.Errors) > 0 {
		return errAuditFailed
	}
	return nil
}

// applyFlags - переопределяет конфигурацию явно заданными флагами и окружением
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.Crawl.MaxDepth = maxDepth
	}
	if flags.Changed("max-pages") {
		cfg.Crawl.MaxPages = maxPages
	}
	if flags.Changed("concurrency") {
		cfg.Crawl.Concurrency = concurrency
	}
	if verbose {
		cfg.Log.Level = config.LogLevelDebug
	}
	if proxy := os.Getenv("SEOSCOPE_PROXY_URL"); proxy != "" && cfg.Fetch.ProxyURL == "" {
		cfg.Fetch.ProxyURL = proxy
	}
}

func isSiteRoot(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.TrimRight(u.Path, "/")
	return path == "" || path == "/index.html" || path == "/index.htm"
}
