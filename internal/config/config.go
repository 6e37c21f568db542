package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// LogLevelDebug - уровни логирования
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	// LogFormatConsole - форматы логов
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
	LogFormatText    = "text"
)

// Config - корневая конфигурация аудита
type Config struct {
	Fetch     FetchConfig     `yaml:"fetch"`
	Custom404 Custom404Config `yaml:"custom404"`
	Social    SocialConfig    `yaml:"social"`
	Domain    DomainConfig    `yaml:"domain"`
	Crawl     CrawlConfig     `yaml:"crawl"`
	Log       LogConfig       `yaml:"log"`
}

// FetchConfig - параметры загрузки страницы и вспомогательных ресурсов
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	ProxyURL     string        `yaml:"proxy_url"`
	ProbePath    string        `yaml:"probe_path"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// Custom404Config - фразы, по которым определяется кастомная 404
type Custom404Config struct {
	Indicators []string `yaml:"indicators"`
}

// SocialPlatform - запись таблицы соцсетей: домен -> название
type SocialPlatform struct {
	Domain string `yaml:"domain"`
	Name   string `yaml:"name"`
}

// SocialConfig - таблица соцсетей
type SocialConfig struct {
	Platforms []SocialPlatform `yaml:"platforms"`
}

// DomainConfig - список TLD, отбрасываемых при анализе домена
type DomainConfig struct {
	TLDs []string `yaml:"tlds"`
}

// CrawlConfig - параметры обхода сайта
type CrawlConfig struct {
	MaxDepth    int           `yaml:"max_depth"`
	MaxPages    int           `yaml:"max_pages"`
	Concurrency int           `yaml:"concurrency"`
	Delay       time.Duration `yaml:"delay"`
}

// LogConfig - настройки логгера
type LogConfig struct {
	Level  string        `yaml:"level"`
	Format string        `yaml:"format"`
	File   FileLogConfig `yaml:"file"`
}

// FileLogConfig - вывод логов в файл с ротацией
type FileLogConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// Default - возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Mozilla/5.0 (compatible; Seoscope/1.0)",
			ProbePath:    "/this-page-should-not-exist-404-check",
			MaxBodyBytes: 8 << 20,
		},
		Crawl: CrawlConfig{
			MaxDepth:    3,
			MaxPages:    30,
			Concurrency: 5,
			Delay:       500 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  LogLevelWarn,
			Format: LogFormatConsole,
		},
	}
}

// Load - читает YAML-файл поверх значений по умолчанию.
// Пустой путь возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфигурацию %s: %w", path, err)
	}
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate - проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive, got %s", c.Fetch.Timeout)
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetch.max_body_bytes must be positive, got %d", c.Fetch.MaxBodyBytes)
	}
	if c.Fetch.ProbePath != "" && !strings.HasPrefix(c.Fetch.ProbePath, "/") {
		return fmt.Errorf("fetch.probe_path must start with '/', got %q", c.Fetch.ProbePath)
	}
	if c.Crawl.MaxDepth < 0 {
		return fmt.Errorf("crawl.max_depth must be >= 0, got %d", c.Crawl.MaxDepth)
	}
	if c.Crawl.MaxPages <= 0 {
		return fmt.Errorf("crawl.max_pages must be positive, got %d", c.Crawl.MaxPages)
	}
	if c.Crawl.Concurrency <= 0 {
		return fmt.Errorf("crawl.concurrency must be positive, got %d", c.Crawl.Concurrency)
	}
	for i, p := range c.Social.Platforms {
		if p.Domain == "" || p.Name == "" {
			return fmt.Errorf("social.platforms[%d]: domain and name are required", i)
		}
	}
	switch c.Log.Level {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", LogFormatConsole, LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("log.format must be one of console, json, text, got %q", c.Log.Format)
	}
	return nil
}

// unmarshalStrict - YAML с запретом неизвестных полей, чтобы ловить опечатки
func unmarshalStrict(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		errStr := err.Error()
		if strings.Contains(errStr, "field") && strings.Contains(errStr, "not found") {
			return fmt.Errorf("unknown configuration field (check for typos): %w", err)
		}
		return err
	}
	return nil
}
