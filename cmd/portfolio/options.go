package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ragibsmajic/portfolio/internal/config"
	"github.com/ragibsmajic/portfolio/internal/content"
	"github.com/ragibsmajic/portfolio/internal/observability"
	"github.com/ragibsmajic/portfolio/internal/rendering"
	"github.com/ragibsmajic/portfolio/internal/seo"
	"github.com/ragibsmajic/portfolio/internal/server/ratelimit"
)

// newLogger writes text logs to stderr, at debug level when verbose.
func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// errInvalidContent is returned after the details were printed, so main
// does not repeat them.
var errInvalidContent = errors.New("validation failed: content is invalid")

// contentFailure prints a content load or validation error and returns
// errInvalidContent. Other errors are returned unchanged.
func contentFailure(p *observability.Printer, err error) error {
	var (
		loadErr  *content.LoadError
		validErr *content.ValidationError
	)
	if !errors.As(err, &loadErr) && !errors.As(err, &validErr) {
		return err
	}
	p.PrintValidationError(err)
	return errInvalidContent
}

// loadStore reads the configured content directory, or the built-in
// content when none is set.
func loadStore(cfg config.Config, logger *slog.Logger) (*content.Store, error) {
	loader := content.NewLoader(logger)
	if cfg.Content.Dir == "" {
		return loader.Load(content.DefaultFS())
	}
	return loader.LoadDir(cfg.Content.Dir)
}

func seoOptions(cfg config.Config) seo.Options {
	return seo.Options{
		SiteURL:     cfg.Site.URL,
		SiteName:    cfg.Site.Name,
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		Keywords:    cfg.Site.Keywords,
		Locale:      cfg.Site.Locale,
		ImagePath:   cfg.Site.Image,
		TwitterSite: cfg.Site.Twitter,
		NoIndex:     cfg.Site.NoIndex,
	}
}

func renderingOptions(cfg config.Config) rendering.Options {
	return rendering.Options{
		AboutVariant:        cfg.Layout.About,
		TechnologiesVariant: cfg.Layout.Technologies,
		SEO:                 seoOptions(cfg),
		DefaultAvatar:       cfg.Layout.Avatar,
		Lang:                cfg.Site.Lang,
		Now:                 time.Now,
	}
}

// loadSite loads content and binds it to the templates.
func loadSite(cfg config.Config, logger *slog.Logger) (*rendering.Site, error) {
	store, err := loadStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	site, err := rendering.NewSite(store, renderingOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare site: %w", err)
	}
	return site, nil
}

func rateLimitConfig(cfg config.Config) *ratelimit.Config {
	rl := ratelimit.DefaultConfig()
	rl.Enabled = cfg.Server.RateLimit.Enabled
	if cfg.Server.RateLimit.Limit > 0 {
		rl.DefaultLimit = cfg.Server.RateLimit.Limit
	}
	if cfg.Server.RateLimit.Window > 0 {
		rl.DefaultWindow = cfg.Server.RateLimit.Window
	}
	rl.Allowlist = ratelimit.IPSet(cfg.Server.RateLimit.Allowlist)
	rl.Blocklist = ratelimit.IPSet(cfg.Server.RateLimit.Blocklist)
	return rl
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
