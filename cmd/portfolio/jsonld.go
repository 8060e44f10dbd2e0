package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var jsonldCmd = &cobra.Command{
	Use:   "jsonld",
	Short: "Print the schema.org structured data",
	Long: `Generates the JSON-LD blocks embedded in the page. --part selects one of
person, profile-page, work-experience, credentials or all.`,
	RunE: runJSONLD,
}

var (
	jsonldPart   string
	jsonldOutput string
)

func init() {
	jsonldCmd.Flags().StringVar(&jsonldPart, "part", "all", "Block to print")
	jsonldCmd.Flags().StringVarP(&jsonldOutput, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(jsonldCmd)
}

func runJSONLD(cmd *cobra.Command, _ []string) error {
	site, err := loadSite(appConfig, newLogger(appConfig))
	if err != nil {
		return err
	}

	doc := site.StructuredData()
	var v any
	switch strings.ToLower(jsonldPart) {
	case "all", "":
		v = doc
	case "person":
		v = doc.Person
	case "profile-page":
		v = doc.ProfilePage
	case "work-experience":
		v = doc.WorkExperience
	case "credentials":
		v = doc.Credentials
	default:
		return fmt.Errorf("unknown part %q (want person, profile-page, work-experience, credentials or all)", jsonldPart)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal structured data: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), jsonldOutput, append(data, '\n'))
}
