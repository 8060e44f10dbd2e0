package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ragibsmajic/portfolio/internal/linkcheck"
	"github.com/ragibsmajic/portfolio/internal/observability"
	"github.com/ragibsmajic/portfolio/internal/site"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the portfolio as a static site",
	Long: `Renders the page, 404 page, structured data, robots.txt and sitemap.xml,
copies embedded assets and the static directory, and writes everything to
the output directory. The output directory is emptied first.`,
	RunE: runBuild,
}

var (
	buildOutput      string
	buildStaticDir   string
	buildExclude     []string
	buildConcurrency int
	buildCheck       bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "out", "o", "", "Output directory (default: build.output)")
	buildCmd.Flags().StringVar(&buildStaticDir, "static", "", "Static files directory (default: content.static_dir)")
	buildCmd.Flags().StringSliceVar(&buildExclude, "exclude", nil, "Glob patterns of static files to skip")
	buildCmd.Flags().IntVar(&buildConcurrency, "concurrency", 0, "Parallel file writes (default: build.concurrency)")
	buildCmd.Flags().BoolVar(&buildCheck, "check", false, "Check the written index.html for broken links")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if buildOutput != "" {
		cfg.Build.Output = buildOutput
	}
	if buildStaticDir != "" {
		cfg.Content.StaticDir = buildStaticDir
	}
	if len(buildExclude) > 0 {
		cfg.Build.Exclude = buildExclude
	}
	if buildConcurrency > 0 {
		cfg.Build.Concurrency = buildConcurrency
	}

	logger := newLogger(cfg)
	printer := observability.NewPrinter(cmd.OutOrStdout())

	s, err := loadSite(cfg, logger)
	if err != nil {
		return contentFailure(printer, err)
	}

	builder, err := site.NewBuilder(s, site.Options{
		OutputDir:   cfg.Build.Output,
		StaticDir:   cfg.Content.StaticDir,
		Exclude:     cfg.Build.Exclude,
		Concurrency: cfg.Build.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	report, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	printer.PrintBuildReport(report)

	if !buildCheck {
		return nil
	}
	f, err := os.Open(filepath.Join(report.OutputDir, site.IndexFile))
	if err != nil {
		return fmt.Errorf("failed to open built page: %w", err)
	}
	defer f.Close() //nolint:errcheck

	issues, err := linkcheck.Check(f)
	if err != nil {
		return err
	}
	printer.PrintIssues(issues)
	if len(issues) > 0 {
		return fmt.Errorf("check found %d issue(s)", len(issues))
	}
	return nil
}
