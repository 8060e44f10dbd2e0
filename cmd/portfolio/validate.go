package main

import (
	"fmt"

	"github.com/ragibsmajic/portfolio/internal/observability"
	"github.com/ragibsmajic/portfolio/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate content records",
	Long: `Loads every content document, validates it against its JSON schema and the
record rules, and prints a summary. Exits with status 1 when content is
invalid. With --print-schema the named schema is printed instead.`,
	RunE: runValidate,
}

var validatePrintSchema string

func init() {
	validateCmd.Flags().StringVar(&validatePrintSchema, "print-schema", "", fmt.Sprintf("Print an embedded schema %v", schemas.Names()))
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validatePrintSchema != "" {
		data, err := schemas.Source(validatePrintSchema)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), "", data)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	store, err := loadStore(appConfig, newLogger(appConfig))
	if err != nil {
		return contentFailure(printer, err)
	}

	printer.PrintStats(store.Stats())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}
