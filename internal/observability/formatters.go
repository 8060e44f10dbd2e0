// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ragibsmajic/portfolio/internal/content"
	"github.com/ragibsmajic/portfolio/internal/linkcheck"
	"github.com/ragibsmajic/portfolio/internal/schemas"
	"github.com/ragibsmajic/portfolio/internal/site"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintStats outputs the number of records loaded per collection.
func (p *Printer) PrintStats(stats content.Stats) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Companies:     %d (%d roles)\n", stats.Companies, stats.Roles)
	fmt.Fprintf(&sb, "Projects:      %d\n", stats.Projects)
	fmt.Fprintf(&sb, "Technologies:  %d\n", stats.Technologies)
	fmt.Fprintf(&sb, "Education:     %d\n", stats.Education)
	fmt.Fprintf(&sb, "Languages:     %d\n", stats.Languages)
	fmt.Fprintf(&sb, "Core values:   %d", stats.CoreValues)
	p.printBox("CONTENT", sb.String())
}

// PrintBuildReport outputs a summary of a static build.
func (p *Printer) PrintBuildReport(report *site.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Build:    %s\n", report.BuildID)
	fmt.Fprintf(&sb, "Output:   %s\n", report.OutputDir)
	fmt.Fprintf(&sb, "Files:    %d (%s)\n", len(report.Files), formatBytes(report.Bytes))
	fmt.Fprintf(&sb, "Duration: %s\n", report.Duration.Round(time.Millisecond))

	if len(report.Files) > 0 {
		sb.WriteString("\n")
		count := min(len(report.Files), maxItemsToShow)
		for _, f := range report.Files[:count] {
			fmt.Fprintf(&sb, "  • %s (%s)\n", f.Path, formatBytes(f.Bytes))
		}
		if len(report.Files) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(report.Files)-maxItemsToShow)
		}
	}

	if len(report.Excluded) > 0 {
		fmt.Fprintf(&sb, "\nExcluded: %s\n", strings.Join(report.Excluded, ", "))
	}

	p.printBox("BUILD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues outputs link check results.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(issues []linkcheck.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(p.out, "✓ No link or accessibility issues")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d issue(s):\n\n", len(issues))
	for i, issue := range issues {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, issue.Kind, issue.Ref)
		fmt.Fprintf(&sb, "   %s\n", issue.Message)
	}
	p.printBox("LINK CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationError explains a content load failure, listing the
// individual field errors when the cause carries them.
func (p *Printer) PrintValidationError(err error) {
	if err == nil {
		return
	}

	var sb strings.Builder
	var (
		loadErr   *content.LoadError
		validErr  *content.ValidationError
		schemaErr *schemas.ValidationError
		fieldErrs validator.ValidationErrors
	)
	switch {
	case errors.As(err, &validErr):
		if validErr.File != "" {
			fmt.Fprintf(&sb, "File: %s\n", validErr.File)
		}
		fmt.Fprintf(&sb, "%s\n", validErr.Message)
	case errors.As(err, &loadErr):
		if loadErr.File != "" {
			fmt.Fprintf(&sb, "File: %s\n", loadErr.File)
		}
		fmt.Fprintf(&sb, "%s\n", loadErr.Message)
		if loadErr.Cause != nil {
			fmt.Fprintf(&sb, "%v\n", loadErr.Cause)
		}
	default:
		fmt.Fprintf(&sb, "%v\n", err)
	}

	if errors.As(err, &schemaErr) {
		sb.WriteString("\n")
		for i, fe := range schemaErr.Errors {
			fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, fe.Field, fe.Message)
		}
	}
	if errors.As(err, &fieldErrs) {
		sb.WriteString("\n")
		for i, fe := range fieldErrs {
			fmt.Fprintf(&sb, "%d. %s: failed '%s'\n", i+1, fe.Namespace(), fe.Tag())
		}
	}

	p.printBox("CONTENT INVALID", strings.TrimSuffix(sb.String(), "\n"))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
