// Package main provides the portfolio command: build, serve, and check the
// single-page developer portfolio.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ragibsmajic/portfolio/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	contentDir string
	siteURL    string
	verbose    bool
	appConfig  config.Config
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Single-page developer portfolio generator",
	Long: `portfolio renders a developer portfolio from validated YAML content into a
single HTML page with SEO metadata and schema.org structured data. It can
export a static site, serve it with live reload, and check the result.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./portfolio.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&contentDir, "content", "c", "", "Content directory (default: built-in content)")
	rootCmd.PersistentFlags().StringVar(&siteURL, "site-url", "", "Canonical site URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed information")
}

func initializeConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	cfg := loaded.MergeWithDefaults(config.Default())
	if siteURL != "" {
		cfg.Site.URL = siteURL
	}
	if contentDir != "" {
		cfg.Content.Dir = contentDir
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	appConfig = cfg
	return appConfig.Validate()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
