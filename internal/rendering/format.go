package rendering

import (
	"strconv"
	"strings"

	"github.com/ragibsmajic/portfolio/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PresentLabel replaces the "present" sentinel in rendered ranges.
const PresentLabel = "Present"

var titleCaser = cases.Title(language.English)

// FormatMonthYear renders a date as "Jan 2022". Strings in no known layout
// are shown as authored.
func FormatMonthYear(d types.Date) string {
	if d.IsPresent() {
		return PresentLabel
	}
	if t, ok := d.Time(); ok {
		return t.Format("Jan 2006")
	}
	return d.Raw()
}

// FormatYear renders the year of a date.
func FormatYear(d types.Date) string {
	if d.IsPresent() {
		return PresentLabel
	}
	if t, ok := d.Time(); ok {
		return strconv.Itoa(t.Year())
	}
	return d.Raw()
}

// FormatRange renders a role range, e.g. "Jan 2022 - Present".
func FormatRange(start, end types.Date) string {
	return FormatMonthYear(start) + " - " + FormatMonthYear(end)
}

// FormatYearRange renders an education range, e.g. "2016 - 2018".
func FormatYearRange(start, end types.Date) string {
	return FormatYear(start) + " - " + FormatYear(end)
}

// ProficiencyLabel looks up the display label of a proficiency level.
func ProficiencyLabel(p types.Proficiency) (string, bool) {
	return p.Label()
}

// CategoryLabel returns the display label of a category, falling back to the
// title-cased key for categories outside the fixed table.
func CategoryLabel(c types.Category) string {
	if label, ok := c.Label(); ok {
		return label
	}
	return titleCase(string(c))
}

func titleCase(key string) string {
	key = strings.NewReplacer("-", " ", "_", " ").Replace(key)
	return titleCaser.String(key)
}
