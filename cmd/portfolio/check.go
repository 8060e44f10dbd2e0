package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ragibsmajic/portfolio/internal/linkcheck"
	"github.com/ragibsmajic/portfolio/internal/observability"
	"github.com/ragibsmajic/portfolio/internal/rendering"
	"github.com/ragibsmajic/portfolio/internal/site"
	"github.com/ragibsmajic/portfolio/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the page for broken anchors and accessibility issues",
	Long: `Renders the page in its initial state, with the menu open, with the contact
modal open and with each project expanded, and checks every render for
broken fragment links, missing navigation targets, duplicate ids, dangling
aria-controls, images without alt text and unsafe target=_blank links.
With --dir the index.html of a built site is checked instead.`,
	RunE: runCheck,
}

var checkDir string

func init() {
	checkCmd.Flags().StringVar(&checkDir, "dir", "", "Check a built site directory instead of rendering")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())

	var issues []linkcheck.Issue
	var err error
	if checkDir != "" {
		issues, err = checkBuilt(checkDir)
	} else {
		issues, err = checkRendered()
	}
	if err != nil {
		return err
	}

	printer.PrintIssues(issues)
	if len(issues) > 0 {
		return fmt.Errorf("check found %d issue(s)", len(issues))
	}
	return nil
}

func checkBuilt(dir string) ([]linkcheck.Issue, error) {
	f, err := os.Open(filepath.Join(dir, site.IndexFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open built page: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return linkcheck.Check(f)
}

// checkStates lists the page states worth checking for s.
func checkStates(s *rendering.Site) []ui.State {
	states := []ui.State{
		{},
		ui.State{}.ToggleMenu(),
		ui.State{}.OpenContact(),
	}
	for _, p := range s.Store().Projects() {
		states = append(states, ui.State{}.ToggleProject(p.ID))
	}
	return states
}

func checkRendered() ([]linkcheck.Issue, error) {
	s, err := loadSite(appConfig, newLogger(appConfig))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var issues []linkcheck.Issue
	for _, state := range checkStates(s) {
		var buf bytes.Buffer
		if err := s.Render(&buf, state); err != nil {
			return nil, err
		}
		found, err := linkcheck.Check(&buf)
		if err != nil {
			return nil, err
		}
		for _, issue := range found {
			if key := issue.String(); !seen[key] {
				seen[key] = true
				issues = append(issues, issue)
			}
		}
	}
	return issues, nil
}
