package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ragibsmajic/portfolio/internal/server"
	"github.com/ragibsmajic/portfolio/internal/server/ratelimit"
	"github.com/ragibsmajic/portfolio/internal/snapshot"
	"github.com/spf13/cobra"
)

var ogImageCmd = &cobra.Command{
	Use:   "og-image",
	Short: "Capture the Open Graph preview image",
	Long: `Opens the page in headless Chrome at 1200x630 and saves a PNG screenshot
for the og:image tag. Without --url the page is served from memory on a
loopback port. Requires Chrome or Chromium.`,
	RunE: runOGImage,
}

var (
	ogImageURL        string
	ogImageOutput     string
	ogImageSelector   string
	ogImageChromePath string
	ogImageTimeout    time.Duration
)

func init() {
	ogImageCmd.Flags().StringVar(&ogImageURL, "url", "", "Capture a running site instead of serving from memory")
	ogImageCmd.Flags().StringVarP(&ogImageOutput, "out", "o", "", "Output PNG (default: snapshot.output)")
	ogImageCmd.Flags().StringVar(&ogImageSelector, "selector", "", "Element to wait for (default: snapshot.selector)")
	ogImageCmd.Flags().StringVar(&ogImageChromePath, "chrome-path", "", "Chrome executable (default: autodetect)")
	ogImageCmd.Flags().DurationVar(&ogImageTimeout, "timeout", 0, "Capture timeout (default: snapshot.timeout)")
	rootCmd.AddCommand(ogImageCmd)
}

func runOGImage(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if ogImageOutput != "" {
		cfg.Snapshot.Output = ogImageOutput
	}
	if ogImageSelector != "" {
		cfg.Snapshot.Selector = ogImageSelector
	}
	if ogImageChromePath != "" {
		cfg.Snapshot.ChromePath = ogImageChromePath
	}
	if ogImageTimeout > 0 {
		cfg.Snapshot.Timeout = ogImageTimeout
	}
	logger := newLogger(cfg)

	opts := snapshot.Options{
		URL:      ogImageURL,
		Selector: cfg.Snapshot.Selector,
		Timeout:  cfg.Snapshot.Timeout,
		ExecPath: cfg.Snapshot.ChromePath,
		Logger:   logger,
	}

	var png []byte
	if ogImageURL != "" {
		var err error
		if png, err = snapshot.Capture(cmd.Context(), opts); err != nil {
			return err
		}
	} else {
		site, err := loadSite(cfg, logger)
		if err != nil {
			return err
		}
		srv, err := server.New(server.Config{
			StaticDir: cfg.Content.StaticDir,
			RateLimit: &ratelimit.Config{},
			Logger:    logger,
		}, site)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}
		if png, err = snapshot.CaptureHandler(cmd.Context(), srv.Handler(), opts); err != nil {
			return err
		}
	}

	if err := writeOutput(cmd.OutOrStdout(), cfg.Snapshot.Output, png); err != nil {
		return err
	}
	logger.Info("Open Graph image written", slog.String("path", cfg.Snapshot.Output), slog.Int("bytes", len(png)))
	return nil
}
