package main

import (
	"github.com/ragibsmajic/portfolio/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the portfolio as a Markdown résumé",
	Long:  `Renders the page, reveals collapsed project details and converts the main content to GitHub flavored Markdown.`,
	RunE:  runExport,
}

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	site, err := loadSite(appConfig, newLogger(appConfig))
	if err != nil {
		return err
	}

	markdown, err := export.NewExporter().Export(site)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), exportOutput, []byte(markdown))
}
