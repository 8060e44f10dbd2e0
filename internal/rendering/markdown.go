package rendering

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md renders narrative fields. Raw HTML in content is dropped because the
// unsafe renderer option is never set.
var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))

// Markdown renders inline Markdown to sanitized HTML.
func Markdown(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", &RenderError{Message: "failed to render markdown", Cause: err}
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML without html.WithUnsafe
}
