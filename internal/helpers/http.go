package helpers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Response - результат загрузки ресурса
type Response struct {
	StatusCode int
	Body       string
	FinalURL   string
	Elapsed    time.Duration
	Header     http.Header
	Redirects  []string
}

// Fetcher - загружает ресурсы напрямую или через прокси-эндпоинт
type Fetcher struct {
	client       *http.Client
	userAgent    string
	proxyURL     string
	maxBodyBytes int64
}

// FetcherOption - опция загрузчика
type FetcherOption func(*Fetcher)

// WithUserAgent - задает User-Agent
func WithUserAgent(ua string) FetcherOption { return func(f *Fetcher) { f.userAgent = ua } }

// WithProxy - задает прокси-эндпоинт; целевой URL дописывается в конец в экранированном виде
func WithProxy(proxyURL string) FetcherOption { return func(f *Fetcher) { f.proxyURL = proxyURL } }

// WithMaxBodyBytes - ограничивает размер читаемого тела ответа
func WithMaxBodyBytes(n int64) FetcherOption { return func(f *Fetcher) { f.maxBodyBytes = n } }

// WithHTTPClient - подменяет http-клиент (используется в тестах)
func WithHTTPClient(c *http.Client) FetcherOption { return func(f *Fetcher) { f.client = c } }

// NewFetcher - создает новый инстанс загрузчика
func NewFetcher(timeout time.Duration, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:       &http.Client{Timeout: timeout},
		userAgent:    "Mozilla/5.0 (compatible; Seoscope/1.0)",
		maxBodyBytes: 8 << 20,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RequestURL - адрес, по которому реально уходит запрос (с учетом прокси)
func (f *Fetcher) RequestURL(target string) string {
	if f.proxyURL == "" {
		return target
	}
	return f.proxyURL + url.QueryEscape(target)
}

// Fetch - загружает ресурс. Ошибкой считается только сетевой сбой,
// ответ с любым HTTP-статусом возвращается вызывающему.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.RequestURL(target), nil)
	if err != nil {
		return nil, fmt.Errorf("некорректный запрос к %s: %w", target, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	res := &Response{}
	client := *f.client
	client.CheckRedirect = func(r *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return fmt.Errorf("слишком много редиректов")
		}
		res.Redirects = append(res.Redirects, r.URL.String())
		return nil
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения тела %s: %w", target, err)
	}

	res.StatusCode = resp.StatusCode
	res.Body = string(body)
	res.FinalURL = resp.Request.URL.String()
	res.Elapsed = time.Since(start)
	res.Header = resp.Header
	return res, nil
}

// FetchText - загружает текстовый ресурс; при сбое или статусе не 200 возвращает sentinel
func (f *Fetcher) FetchText(ctx context.Context, target, sentinel string) string {
	resp, err := f.Fetch(ctx, target)
	if err != nil || resp.StatusCode != http.StatusOK {
		return sentinel
	}
	return resp.Body
}
