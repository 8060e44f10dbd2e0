package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ragibsmajic/portfolio/internal/content"
	"github.com/ragibsmajic/portfolio/internal/linkcheck"
	"github.com/ragibsmajic/portfolio/internal/schemas"
	"github.com/ragibsmajic/portfolio/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStats(content.Stats{Companies: 2, Roles: 3, Projects: 2, Technologies: 23, Education: 1, Languages: 3, CoreValues: 4})

	output := buf.String()
	assert.Contains(t, output, "CONTENT")
	assert.Contains(t, output, "Companies:     2 (3 roles)")
	assert.Contains(t, output, "Technologies:  23")
}

func TestPrintBuildReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	files := make([]site.File, 12)
	for i := range files {
		files[i] = site.File{Path: "f" + strings.Repeat("x", i), Bytes: 10}
	}
	p.PrintBuildReport(&site.Report{
		BuildID:   "b-1",
		OutputDir: "out",
		Files:     files,
		Excluded:  []string{"drafts"},
		Bytes:     2048,
	})

	output := buf.String()
	assert.Contains(t, output, "BUILD")
	assert.Contains(t, output, "Files:    12 (2.0 KiB)")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "Excluded: drafts")
}

func TestPrintBuildReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBuildReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIssues(nil)
	assert.Contains(t, buf.String(), "No link or accessibility issues")

	buf.Reset()
	p.PrintIssues([]linkcheck.Issue{
		{Kind: linkcheck.KindBrokenFragment, Element: "a", Ref: "#nowhere", Message: `no element with id "nowhere"`},
	})
	output := buf.String()
	assert.Contains(t, output, "LINK CHECK")
	assert.Contains(t, output, "1. [broken-fragment] #nowhere")
}

func TestPrintValidationError_Schema(t *testing.T) {
	var buf bytes.Buffer
	err := &content.ValidationError{
		File:    "languages.yaml",
		Message: "schema validation failed",
		Cause: &schemas.ValidationError{
			Schema: schemas.Languages,
			Errors: []schemas.FieldError{{Field: "0.proficiency", Message: "must be one of the following"}},
		},
	}
	NewPrinter(&buf).PrintValidationError(err)

	output := buf.String()
	assert.Contains(t, output, "CONTENT INVALID")
	assert.Contains(t, output, "File: languages.yaml")
	assert.Contains(t, output, "1. 0.proficiency: must be one of the following")
}

func TestPrintValidationError_Struct(t *testing.T) {
	fsys := fstest.MapFS{
		"profile.yaml": {Data: []byte(`
name: Ada
title: Engineer
tagline: Programs
email: not-an-email
social: {linkedin: "https://linkedin.com/in/ada", github: "https://github.com/ada"}
`)},
	}
	_, err := content.Load(fsys)
	require.Error(t, err)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintValidationError(err)
	assert.Contains(t, buf.String(), "File: profile.yaml")
}

func TestPrintValidationError_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintValidationError(nil)
	assert.Empty(t, buf.String())

	p.PrintValidationError(errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "3.0 MiB", formatBytes(3*1024*1024))
}
