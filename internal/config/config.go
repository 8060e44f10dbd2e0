// Package config loads portfolio settings from a config file, PORTFOLIO_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_SITE_URL.
const EnvPrefix = "PORTFOLIO"

// DefaultConfigName is searched for in the working directory when no
// config path is given (portfolio.yaml, portfolio.json, ...).
const DefaultConfigName = "portfolio"

// Config represents the portfolio configuration.
type Config struct {
	Site     SiteConfig     `mapstructure:"site"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Content  ContentConfig  `mapstructure:"content"`
	Build    BuildConfig    `mapstructure:"build"`
	Server   ServerConfig   `mapstructure:"server"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Verbose  bool           `mapstructure:"verbose"`
}

// SiteConfig feeds the SEO metadata and structured data.
type SiteConfig struct {
	URL         string   `mapstructure:"url" validate:"omitempty,url"`
	Name        string   `mapstructure:"name"`
	Title       string   `mapstructure:"title"`
	Description string   `mapstructure:"description"`
	Keywords    []string `mapstructure:"keywords"`
	Locale      string   `mapstructure:"locale"`
	Lang        string   `mapstructure:"lang"`
	Image       string   `mapstructure:"image"`
	Twitter     string   `mapstructure:"twitter"`
	NoIndex     bool     `mapstructure:"noindex"`
}

// LayoutConfig selects section variants.
type LayoutConfig struct {
	About        string `mapstructure:"about" validate:"omitempty,oneof=about hero"`
	Technologies string `mapstructure:"technologies" validate:"omitempty,oneof=grid grouped"`
	Avatar       string `mapstructure:"avatar"`
}

// ContentConfig locates the content records. An empty Dir uses the
// embedded defaults.
type ContentConfig struct {
	Dir       string `mapstructure:"dir"`
	StaticDir string `mapstructure:"static_dir"`
}

// BuildConfig controls the static export.
type BuildConfig struct {
	Output      string   `mapstructure:"output"`
	Exclude     []string `mapstructure:"exclude"`
	Concurrency int      `mapstructure:"concurrency" validate:"min=0,max=256"`
}

// ServerConfig controls `serve`.
type ServerConfig struct {
	Host      string          `mapstructure:"host"`
	Port      int             `mapstructure:"port" validate:"min=0,max=65535"`
	Watch     bool            `mapstructure:"watch"`
	Debounce  time.Duration   `mapstructure:"debounce" validate:"min=0"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures per-client throttling.
type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Limit     int           `mapstructure:"limit" validate:"min=0"`
	Window    time.Duration `mapstructure:"window" validate:"min=0"`
	Allowlist []string      `mapstructure:"allowlist" validate:"dive,ip"`
	Blocklist []string      `mapstructure:"blocklist" validate:"dive,ip"`
}

// SnapshotConfig controls `og-image`.
type SnapshotConfig struct {
	Output     string        `mapstructure:"output"`
	Selector   string        `mapstructure:"selector"`
	ChromePath string        `mapstructure:"chrome_path"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Site: SiteConfig{Locale: "en_US", Lang: "en"},
		Layout: LayoutConfig{
			About:        "about",
			Technologies: "grid",
		},
		Build: BuildConfig{Output: "dist", Concurrency: 8},
		Server: ServerConfig{
			Port:     8080,
			Debounce: 500 * time.Millisecond,
			RateLimit: RateLimitConfig{
				Enabled: true,
				Limit:   600,
				Window:  time.Minute,
			},
		},
		Snapshot: SnapshotConfig{
			Output:   "og-image.png",
			Selector: "#about",
			Timeout:  30 * time.Second,
		},
	}
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("site.url", d.Site.URL)
	v.SetDefault("site.name", d.Site.Name)
	v.SetDefault("site.title", d.Site.Title)
	v.SetDefault("site.description", d.Site.Description)
	v.SetDefault("site.keywords", d.Site.Keywords)
	v.SetDefault("site.locale", d.Site.Locale)
	v.SetDefault("site.lang", d.Site.Lang)
	v.SetDefault("site.image", d.Site.Image)
	v.SetDefault("site.twitter", d.Site.Twitter)
	v.SetDefault("site.noindex", d.Site.NoIndex)
	v.SetDefault("layout.about", d.Layout.About)
	v.SetDefault("layout.technologies", d.Layout.Technologies)
	v.SetDefault("layout.avatar", d.Layout.Avatar)
	v.SetDefault("content.dir", d.Content.Dir)
	v.SetDefault("content.static_dir", d.Content.StaticDir)
	v.SetDefault("build.output", d.Build.Output)
	v.SetDefault("build.exclude", d.Build.Exclude)
	v.SetDefault("build.concurrency", d.Build.Concurrency)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.watch", d.Server.Watch)
	v.SetDefault("server.debounce", d.Server.Debounce)
	v.SetDefault("server.rate_limit.enabled", d.Server.RateLimit.Enabled)
	v.SetDefault("server.rate_limit.limit", d.Server.RateLimit.Limit)
	v.SetDefault("server.rate_limit.window", d.Server.RateLimit.Window)
	v.SetDefault("server.rate_limit.allowlist", d.Server.RateLimit.Allowlist)
	v.SetDefault("server.rate_limit.blocklist", d.Server.RateLimit.Blocklist)
	v.SetDefault("snapshot.output", d.Snapshot.Output)
	v.SetDefault("snapshot.selector", d.Snapshot.Selector)
	v.SetDefault("snapshot.chrome_path", d.Snapshot.ChromePath)
	v.SetDefault("snapshot.timeout", d.Snapshot.Timeout)
	v.SetDefault("verbose", d.Verbose)
}

// LoadConfig loads configuration from path (YAML, JSON or TOML by
// extension), layered over the defaults and under PORTFOLIO_* variables.
// An empty path searches the working directory for portfolio.*; finding
// nothing is not an error. PORT also sets the server port.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PORT: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case os.IsNotExist(err) || errors.As(err, &notFound):
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' (value %v)", configKey(fe.Namespace()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Content.Dir != "" {
		if err := requireDir(c.Content.Dir); err != nil {
			return fmt.Errorf("config error: content directory: %w", err)
		}
	}
	if c.Content.StaticDir != "" {
		if err := requireDir(c.Content.StaticDir); err != nil {
			return fmt.Errorf("config error: static directory: %w", err)
		}
	}
	return nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// configKey maps a validator namespace such as Config.Server.RateLimit.Limit
// to the dotted config key server.ratelimit.limit.
func configKey(namespace string) string {
	namespace = strings.TrimPrefix(namespace, "Config.")
	return strings.ToLower(namespace)
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Bool fields cannot distinguish unset from false and are kept.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.Site.URL, defaults.Site.URL)
	mergeString(&result.Site.Name, defaults.Site.Name)
	mergeString(&result.Site.Title, defaults.Site.Title)
	mergeString(&result.Site.Description, defaults.Site.Description)
	mergeString(&result.Site.Locale, defaults.Site.Locale)
	mergeString(&result.Site.Lang, defaults.Site.Lang)
	mergeString(&result.Site.Image, defaults.Site.Image)
	mergeString(&result.Site.Twitter, defaults.Site.Twitter)
	if len(result.Site.Keywords) == 0 {
		result.Site.Keywords = defaults.Site.Keywords
	}

	mergeString(&result.Layout.About, defaults.Layout.About)
	mergeString(&result.Layout.Technologies, defaults.Layout.Technologies)
	mergeString(&result.Layout.Avatar, defaults.Layout.Avatar)

	mergeString(&result.Content.Dir, defaults.Content.Dir)
	mergeString(&result.Content.StaticDir, defaults.Content.StaticDir)

	mergeString(&result.Build.Output, defaults.Build.Output)
	if len(result.Build.Exclude) == 0 {
		result.Build.Exclude = defaults.Build.Exclude
	}
	if result.Build.Concurrency == 0 {
		result.Build.Concurrency = defaults.Build.Concurrency
	}

	mergeString(&result.Server.Host, defaults.Server.Host)
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.Debounce == 0 {
		result.Server.Debounce = defaults.Server.Debounce
	}
	if result.Server.RateLimit.Limit == 0 {
		result.Server.RateLimit.Limit = defaults.Server.RateLimit.Limit
	}
	if result.Server.RateLimit.Window == 0 {
		result.Server.RateLimit.Window = defaults.Server.RateLimit.Window
	}
	if len(result.Server.RateLimit.Allowlist) == 0 {
		result.Server.RateLimit.Allowlist = defaults.Server.RateLimit.Allowlist
	}
	if len(result.Server.RateLimit.Blocklist) == 0 {
		result.Server.RateLimit.Blocklist = defaults.Server.RateLimit.Blocklist
	}

	mergeString(&result.Snapshot.Output, defaults.Snapshot.Output)
	mergeString(&result.Snapshot.Selector, defaults.Snapshot.Selector)
	mergeString(&result.Snapshot.ChromePath, defaults.Snapshot.ChromePath)
	if result.Snapshot.Timeout == 0 {
		result.Snapshot.Timeout = defaults.Snapshot.Timeout
	}

	return result
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
