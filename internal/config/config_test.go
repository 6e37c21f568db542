package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seoscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
fetch:
  timeout: 5s
  proxy_url: "https://proxy.local/fetch?url="
custom404:
  indicators:
    - "nothing here"
social:
  platforms:
    - domain: mastodon.social
      name: Mastodon
crawl:
  max_pages: 10
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "https://proxy.local/fetch?url=", cfg.Fetch.ProxyURL)
	assert.Equal(t, Default().Fetch.UserAgent, cfg.Fetch.UserAgent)
	assert.Equal(t, []string{"nothing here"}, cfg.Custom404.Indicators)
	assert.Equal(t, []SocialPlatform{{Domain: "mastodon.social", Name: "Mastodon"}}, cfg.Social.Platforms)
	assert.Equal(t, 10, cfg.Crawl.MaxPages)
	assert.Equal(t, 5, cfg.Crawl.Concurrency)
	assert.Equal(t, LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "fetch:\n  timeuot: 5s\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration field")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero timeout", func(c *Config) { c.Fetch.Timeout = 0 }, "fetch.timeout"},
		{"zero body cap", func(c *Config) { c.Fetch.MaxBodyBytes = 0 }, "fetch.max_body_bytes"},
		{"relative probe path", func(c *Config) { c.Fetch.ProbePath = "missing" }, "fetch.probe_path"},
		{"negative depth", func(c *Config) { c.Crawl.MaxDepth = -1 }, "crawl.max_depth"},
		{"zero pages", func(c *Config) { c.Crawl.MaxPages = 0 }, "crawl.max_pages"},
		{"zero concurrency", func(c *Config) { c.Crawl.Concurrency = 0 }, "crawl.concurrency"},
		{"platform without name", func(c *Config) {
			c.Social.Platforms = []SocialPlatform{{Domain: "x.com"}}
		}, "social.platforms[0]"},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
