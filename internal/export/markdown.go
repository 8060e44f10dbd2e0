// Package export converts the rendered portfolio page into a plain Markdown résumé.
package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/ragibsmajic/portfolio/internal/rendering"
	"github.com/ragibsmajic/portfolio/internal/ui"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{3,}`)

// dropTags are removed from the main element before conversion.
var dropTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "nav": true, "button": true, "img": true,
}

// dropAttrs mark interactive controls that have no meaning in a document.
var dropAttrs = []string{"data-project-toggle", "data-contact-open", "data-contact-close"}

// ExportError represents a failed export
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Exporter converts rendered HTML to GitHub flavored Markdown.
type Exporter struct {
	converter *md.Converter
}

// NewExporter creates a new HTML to markdown exporter.
func NewExporter() *Exporter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Exporter{converter: converter}
}

// Export renders site in its initial state and converts the main content.
func (e *Exporter) Export(site *rendering.Site) (string, error) {
	var buf bytes.Buffer
	if err := site.Render(&buf, ui.State{}); err != nil {
		return "", &ExportError{Message: "failed to render page", Cause: err}
	}
	return e.Convert(buf.Bytes())
}

// Convert extracts <main> from a document, drops interactive chrome, reveals
// collapsed details and converts the result to Markdown.
func (e *Exporter) Convert(content []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return "", &ExportError{Message: "failed to parse HTML", Cause: err}
	}

	root := findElement(doc, "main")
	if root == nil {
		root = findElement(doc, "body")
	}
	if root == nil {
		return "", &ExportError{Message: "document has no main or body element"}
	}

	prune(root)

	var rendered bytes.Buffer
	if err := html.Render(&rendered, root); err != nil {
		return "", &ExportError{Message: "failed to render main content", Cause: err}
	}

	markdown, err := e.converter.ConvertString(rendered.String())
	if err != nil {
		return "", &ExportError{Message: "failed to convert to markdown", Cause: err}
	}
	return cleanMarkdown(markdown), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// prune removes dropped elements and strips the hidden attribute in place.
func prune(n *html.Node) {
	var toRemove []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (dropTags[c.Data] || hasAnyAttr(c, dropAttrs)) {
			toRemove = append(toRemove, c)
			continue
		}
		prune(c)
	}
	for _, c := range toRemove {
		n.RemoveChild(c)
	}

	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != "hidden" {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

func hasAnyAttr(n *html.Node, keys []string) bool {
	for _, a := range n.Attr {
		for _, k := range keys {
			if a.Key == k {
				return true
			}
		}
	}
	return false
}

func cleanMarkdown(markdown string) string {
	markdown = excessiveLinesRe.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown) + "\n"
}
