package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "geo-alchemy/1.0", cfg.HTTP.UserAgent)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout())
	require.Equal(t, 3, cfg.HTTP.MaxRetries)
	require.Equal(t, 500*time.Millisecond, cfg.BackoffInitial())
	require.Equal(t, 8*time.Second, cfg.BackoffMax())
	require.Equal(t, 500, cfg.HTTP.PageSize)
	require.Equal(t, 4, cfg.Crawl.Workers)
	require.True(t, cfg.Crawl.ParseSamples)
	require.Empty(t, cfg.Metrics.Addr)
	require.True(t, cfg.Logging.Development)
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
http:
  user_agent: custom-agent
  timeout_seconds: 45
  max_retries: 5
  backoff_initial_ms: 100
  backoff_max_ms: 2000
  page_size: 100
crawl:
  workers: 8
  parse_samples: false
metrics:
  addr: ":9102"
logging:
  development: false
`
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "custom-agent", cfg.HTTP.UserAgent)
	require.Equal(t, 45*time.Second, cfg.HTTPTimeout())
	require.Equal(t, 100, cfg.HTTP.PageSize)
	require.Equal(t, 8, cfg.Crawl.Workers)
	require.False(t, cfg.Crawl.ParseSamples)
	require.Equal(t, ":9102", cfg.Metrics.Addr)
	require.False(t, cfg.Logging.Development)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEOALCHEMY_CRAWL_WORKERS", "16")
	t.Setenv("GEOALCHEMY_HTTP_USER_AGENT", "env-agent")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Crawl.Workers)
	require.Equal(t, "env-agent", cfg.HTTP.UserAgent)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigValidateErrors(t *testing.T) {
	base := Config{
		HTTP:  HTTPConfig{TimeoutSeconds: 10, PageSize: 500},
		Crawl: CrawlConfig{Workers: 2},
	}

	tests := []struct {
		name string
		mod  func(*Config)
		want string
	}{
		{
			name: "invalid timeout",
			mod:  func(c *Config) { c.HTTP.TimeoutSeconds = 0 },
			want: "http.timeout_seconds",
		},
		{
			name: "negative retries",
			mod:  func(c *Config) { c.HTTP.MaxRetries = -1 },
			want: "http.max_retries",
		},
		{
			name: "invalid page size",
			mod:  func(c *Config) { c.HTTP.PageSize = 0 },
			want: "http.page_size",
		},
		{
			name: "invalid workers",
			mod:  func(c *Config) { c.Crawl.Workers = 0 },
			want: "crawl.workers",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mod(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.want))
		})
	}

	require.NoError(t, base.Validate())
}
