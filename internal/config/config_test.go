package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "portfolio.yaml", `
site:
  url: https://ragibsmajic.com
  keywords: [go, backend]
layout:
  technologies: grouped
build:
  output: public
  exclude: ["**/*.psd"]
server:
  port: 9000
  rate_limit:
    window: 30s
verbose: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ragibsmajic.com", cfg.Site.URL)
	assert.Equal(t, []string{"go", "backend"}, cfg.Site.Keywords)
	assert.Equal(t, "grouped", cfg.Layout.Technologies)
	assert.Equal(t, "about", cfg.Layout.About, "unset keys keep defaults")
	assert.Equal(t, "public", cfg.Build.Output)
	assert.Equal(t, []string{"**/*.psd"}, cfg.Build.Exclude)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RateLimit.Window)
	assert.Equal(t, 600, cfg.Server.RateLimit.Limit)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "portfolio.json", `{"site": {"name": "Ragib"}, "server": {"watch": true}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Ragib", cfg.Site.Name)
	assert.True(t, cfg.Server.Watch)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "portfolio.yaml", "server:\n  port: 9000\n")
	t.Setenv("PORTFOLIO_SITE_URL", "https://env.example.com")
	t.Setenv("PORTFOLIO_BUILD_CONCURRENCY", "2")
	t.Setenv("PORTFOLIO_SERVER_RATE_LIMIT_ENABLED", "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Site.URL)
	assert.Equal(t, 2, cfg.Build.Concurrency)
	assert.False(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadConfig_PortEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	cfg, err := LoadConfig(writeConfig(t, "portfolio.yaml", "verbose: false\n"))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("PORT", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	d := Default()
	assert.Equal(t, d.Layout, cfg.Layout)
	assert.Equal(t, d.Server.Port, cfg.Server.Port)
	assert.Equal(t, d.Server.RateLimit.Window, cfg.Server.RateLimit.Window)
	assert.Equal(t, d.Build.Output, cfg.Build.Output)
	assert.Equal(t, d.Snapshot, cfg.Snapshot)
	assert.Empty(t, cfg.Site.Keywords)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "portfolio.yaml", "site: [unclosed\n"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/portfolio.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"content dir", func(c *Config) { c.Content.Dir = dir }, ""},
		{"bad about variant", func(c *Config) { c.Layout.About = "banner" }, "'layout.about' failed 'oneof'"},
		{"bad technologies variant", func(c *Config) { c.Layout.Technologies = "cloud" }, "layout.technologies"},
		{"bad url", func(c *Config) { c.Site.URL = "not a url" }, "'site.url' failed 'url'"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"negative concurrency", func(c *Config) { c.Build.Concurrency = -1 }, "build.concurrency"},
		{"bad allowlist ip", func(c *Config) { c.Server.RateLimit.Allowlist = []string{"localhost"} }, "allowlist"},
		{"missing content dir", func(c *Config) { c.Content.Dir = filepath.Join(dir, "missing") }, "content directory"},
		{"static dir is a file", func(c *Config) { c.Content.StaticDir = file }, "is not a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Default()
	defaults.Site.URL = "https://default.example.com"
	defaults.Build.Exclude = []string{"drafts"}

	partial := Config{
		Site:   SiteConfig{Name: "Custom"},
		Build:  BuildConfig{Output: "public"},
		Server: ServerConfig{Port: 9999},
	}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "Custom", merged.Site.Name)
	assert.Equal(t, "public", merged.Build.Output)
	assert.Equal(t, 9999, merged.Server.Port)

	assert.Equal(t, "https://default.example.com", merged.Site.URL)
	assert.Equal(t, []string{"drafts"}, merged.Build.Exclude)
	assert.Equal(t, 8, merged.Build.Concurrency)
	assert.Equal(t, "about", merged.Layout.About)
	assert.Equal(t, time.Minute, merged.Server.RateLimit.Window)
	assert.False(t, merged.Server.RateLimit.Enabled, "bools are not merged")
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Site: SiteConfig{Name: "Test"}}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, "Test", merged.Site.Name)
	assert.Empty(t, merged.Build.Output)
}
