package linkcheck

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ragibsmajic/portfolio/internal/ui"
)

// Kind classifies an Issue.
type Kind string

const (
	KindBrokenFragment   Kind = "broken-fragment"
	KindMissingNavTarget Kind = "missing-nav-target"
	KindMissingAlt       Kind = "missing-alt"
	KindDuplicateID      Kind = "duplicate-id"
	KindBrokenControls   Kind = "broken-aria-controls"
	KindUnsafeBlank      Kind = "unsafe-target-blank"
)

// Issue is one problem found on a page.
type Issue struct {
	Kind    Kind
	Element string
	Ref     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s %q: %s", i.Kind, i.Element, i.Ref, i.Message)
}

// Check parses a page and reports every issue in document order, grouped by kind.
func Check(r io.Reader) ([]Issue, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &CheckError{Message: "failed to parse HTML", Cause: err}
	}
	return CheckDocument(doc), nil
}

// CheckString is Check for an in-memory page.
func CheckString(htmlContent string) ([]Issue, error) {
	return Check(strings.NewReader(htmlContent))
}

// CheckDocument runs every check against an already parsed page.
func CheckDocument(doc *goquery.Document) []Issue {
	ids := make(map[string]int)
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		ids[s.AttrOr("id", "")]++
	})

	var issues []Issue
	issues = append(issues, duplicateIDs(ids)...)
	issues = append(issues, brokenFragments(doc, ids)...)
	issues = append(issues, missingNavTargets(ids)...)
	issues = append(issues, brokenControls(doc, ids)...)
	issues = append(issues, missingAlt(doc)...)
	issues = append(issues, unsafeBlank(doc)...)
	return issues
}

func duplicateIDs(ids map[string]int) []Issue {
	var dups []string
	for id, n := range ids {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)

	issues := make([]Issue, 0, len(dups))
	for _, id := range dups {
		issues = append(issues, Issue{
			Kind:    KindDuplicateID,
			Element: "#" + id,
			Ref:     id,
			Message: fmt.Sprintf("id is used %d times", ids[id]),
		})
	}
	return issues
}

// Fragment returns the fragment of href when it points into the current
// page: "#x", "/#x" or "/?query#x".
func Fragment(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Fragment == "" {
		return "", false
	}
	if u.Path != "" && u.Path != "/" {
		return "", false
	}
	return u.Fragment, true
}

func brokenFragments(doc *goquery.Document, ids map[string]int) []Issue {
	var issues []Issue
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		frag, ok := Fragment(href)
		if !ok || ids[frag] > 0 {
			return
		}
		issues = append(issues, Issue{
			Kind:    KindBrokenFragment,
			Element: "a",
			Ref:     href,
			Message: fmt.Sprintf("no element with id %q", frag),
		})
	})
	return issues
}

func missingNavTargets(ids map[string]int) []Issue {
	var issues []Issue
	for _, item := range ui.NavItems {
		if ids[item.Section] > 0 {
			continue
		}
		issues = append(issues, Issue{
			Kind:    KindMissingNavTarget,
			Element: "nav",
			Ref:     item.Section,
			Message: fmt.Sprintf("navigation item %q has no section", item.Label),
		})
	}
	return issues
}

func brokenControls(doc *goquery.Document, ids map[string]int) []Issue {
	var issues []Issue
	doc.Find("[aria-controls]").Each(func(_ int, s *goquery.Selection) {
		for _, id := range strings.Fields(s.AttrOr("aria-controls", "")) {
			if ids[id] > 0 {
				continue
			}
			issues = append(issues, Issue{
				Kind:    KindBrokenControls,
				Element: goquery.NodeName(s),
				Ref:     id,
				Message: "aria-controls references a missing element",
			})
		}
	})
	return issues
}

func missingAlt(doc *goquery.Document) []Issue {
	var issues []Issue
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("role", "") == "presentation" {
			return
		}
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			return
		}
		issues = append(issues, Issue{
			Kind:    KindMissingAlt,
			Element: "img",
			Ref:     s.AttrOr("src", ""),
			Message: "image has no alternative text",
		})
	})
	return issues
}

func unsafeBlank(doc *goquery.Document) []Issue {
	var issues []Issue
	doc.Find(`a[target="_blank"]`).Each(func(_ int, s *goquery.Selection) {
		rel := strings.Fields(s.AttrOr("rel", ""))
		if contains(rel, "noopener") && contains(rel, "noreferrer") {
			return
		}
		issues = append(issues, Issue{
			Kind:    KindUnsafeBlank,
			Element: "a",
			Ref:     s.AttrOr("href", ""),
			Message: `external link opened in a new tab without rel="noopener noreferrer"`,
		})
	})
	return issues
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
