package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ragibsmajic/portfolio/internal/config"
	"github.com/ragibsmajic/portfolio/internal/content"
	"github.com/ragibsmajic/portfolio/internal/rendering"
	"github.com/ragibsmajic/portfolio/internal/server"
	"github.com/ragibsmajic/portfolio/internal/watch"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	Long: `Start an HTTP server that renders the page per request. With --watch the
content directory is watched and the site reloads when records change; a
reload that fails validation keeps the previous site.`,
	RunE: runServe,
}

var (
	servePort  int
	serveHost  string
	serveWatch bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: server.port or $PORT)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to bind (default: all)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload when content files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("watch") {
		cfg.Server.Watch = serveWatch
	}
	logger := newLogger(cfg)

	site, err := loadSite(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Server.Port,
		Host:      cfg.Server.Host,
		StaticDir: cfg.Content.StaticDir,
		RateLimit: rateLimitConfig(cfg),
		Logger:    logger,
	}, site)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Watch {
		w, err := newContentWatcher(cfg, logger, srv)
		if err != nil {
			return err
		}
		if w != nil {
			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}
			defer w.Stop() //nolint:errcheck
		}
	}

	logger.Info("Serving portfolio", slog.String("addr", srv.Addr()))
	return srv.Run(ctx)
}

// newContentWatcher reloads srv whenever a content file changes. It
// returns nil when the built-in content is in use.
func newContentWatcher(cfg config.Config, logger *slog.Logger, srv *server.Server) (*watch.Watcher, error) {
	if cfg.Content.Dir == "" {
		logger.Warn("Built-in content cannot be watched, ignoring --watch")
		return nil, nil
	}
	reload := func() (*rendering.Site, error) {
		return loadSite(cfg, logger)
	}
	return watch.New(watch.Options{
		Dirs:       []string{cfg.Content.Dir},
		Extensions: content.Extensions,
		Debounce:   cfg.Server.Debounce,
		Logger:     logger,
	}, func(_ context.Context, changed []string) error {
		logger.Info("Content changed, reloading", slog.Int("files", len(changed)))
		return srv.Reload(reload)
	})
}
