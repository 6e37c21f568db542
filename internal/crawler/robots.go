package crawler

import (
	"context"
	"net/url"
	"sync"
	"time"

	"seoscope/internal/helpers"

	"github.com/temoto/robotstxt"
)

// RobotsClient - управляет загрузкой и кэшированием robots.txt
type RobotsClient struct {
	fetcher *helpers.Fetcher
	mu      sync.Mutex
	cache   map[string]*robotstxt.RobotsData
}

// NewRobotsClient - создает новый инстанс клиента для работы с robots.txt
func NewRobotsClient(fetcher *helpers.Fetcher) *RobotsClient {
	if fetcher == nil {
		fetcher = helpers.NewFetcher(10 * time.Second)
	}
	return &RobotsClient{
		fetcher: fetcher,
		cache:   make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed - метод определения доступности.
// Недоступный robots.txt ничего не запрещает.
func (rc *RobotsClient) Allowed(ctx context.Context, userAgent, targetURL string) bool {
	parsed, err := url.Parse(targetURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	robots := rc.rules(ctx, parsed.Scheme+"://"+parsed.Host)
	if robots == nil {
		return true
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return robots.TestAgent(path, userAgent)
}

func (rc *RobotsClient) rules(ctx context.Context, origin string) *robotstxt.RobotsData {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if robots, ok := rc.cache[origin]; ok {
		return robots
	}

	var robots *robotstxt.RobotsData
	if resp, err := rc.fetcher.Fetch(ctx, origin+"/robots.txt"); err == nil {
		if parsed, err := robotstxt.FromStatusAndString(resp.StatusCode, resp.Body); err == nil {
			robots = parsed
		}
	}
	rc.cache[origin] = robots
	return robots
}
