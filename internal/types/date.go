// Package types provides type definitions for the portfolio content records.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PresentSentinel marks a role that has not ended yet.
const PresentSentinel = "present"

// dateLayouts are the string forms accepted when a date is normalized.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Date holds either a structured date or the string it was authored as.
// Strings are kept verbatim and only interpreted when rendered.
type Date struct {
	raw        string
	t          time.Time
	structured bool
}

// NewDate returns a structured date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), structured: true}
}

// DateOf wraps an existing time value as a structured date.
func DateOf(t time.Time) Date {
	return Date{t: t, structured: true}
}

// DateString returns a date that keeps s as authored.
func DateString(s string) Date {
	return Date{raw: s}
}

// Present returns the open-ended role sentinel.
func Present() Date {
	return Date{raw: PresentSentinel}
}

// IsPresent reports whether d is exactly the "present" sentinel.
func (d Date) IsPresent() bool {
	return !d.structured && d.raw == PresentSentinel
}

// IsZero reports whether no date was provided at all.
func (d Date) IsZero() bool {
	return !d.structured && strings.TrimSpace(d.raw) == ""
}

// IsStructured reports whether d was authored as a structured date.
func (d Date) IsStructured() bool {
	return d.structured
}

// Raw returns the authored string, or the ISO date for structured values.
func (d Date) Raw() string {
	if d.structured {
		return d.t.Format("2006-01-02")
	}
	return d.raw
}

// Time normalizes d to a point in time in the offset it was written with.
// The second result is false for the present sentinel, empty dates and
// strings in no known layout.
func (d Date) Time() (time.Time, bool) {
	if d.structured {
		return d.t, true
	}
	s := strings.TrimSpace(d.raw)
	if s == "" || d.IsPresent() {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ISO returns the timestamp form used in structured data. Strings are passed
// through unchanged; structured dates become RFC 3339 timestamps in their
// own offset.
func (d Date) ISO() string {
	if d.structured {
		return d.t.Format("2006-01-02T15:04:05.000Z07:00")
	}
	return d.raw
}

func (d Date) String() string {
	return d.Raw()
}

// dateObject is the JSON/YAML mapping form of a structured date.
type dateObject struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month,omitempty" yaml:"month,omitempty"`
	Day   int `json:"day,omitempty" yaml:"day,omitempty"`
}

func (o dateObject) date() (Date, error) {
	if o.Year <= 0 {
		return Date{}, fmt.Errorf("date object requires a positive year")
	}
	month, day := o.Month, o.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("date object month %d out of range", month)
	}
	d := NewDate(o.Year, time.Month(month), day)
	if d.t.Day() != day || d.t.Month() != time.Month(month) {
		return Date{}, fmt.Errorf("date object day %d out of range for %d-%02d", day, o.Year, month)
	}
	return d, nil
}

// MarshalJSON encodes structured dates as objects and strings as strings.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.structured {
		return json.Marshal(dateObject{Year: d.t.Year(), Month: int(d.t.Month()), Day: d.t.Day()})
	}
	return json.Marshal(d.raw)
}

// UnmarshalJSON accepts a string, a bare year number, or {year, month, day}.
func (d *Date) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*d = Date{}
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DateString(s)
		return nil
	case strings.HasPrefix(trimmed, "{"):
		var obj dateObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		parsed, err := obj.date()
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		if _, err := strconv.Atoi(trimmed); err != nil {
			return fmt.Errorf("invalid date value %s", trimmed)
		}
		*d = DateString(trimmed)
		return nil
	}
}

// MarshalYAML mirrors MarshalJSON.
func (d Date) MarshalYAML() (any, error) {
	if d.structured {
		return d.t, nil
	}
	return d.raw, nil
}

// UnmarshalYAML keeps YAML timestamps (unquoted 2022-01-01) as structured
// dates and every other scalar as the authored string.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!timestamp" {
			var t time.Time
			if err := node.Decode(&t); err != nil {
				return err
			}
			*d = DateOf(t)
			return nil
		}
		if node.ShortTag() == "!!null" {
			*d = Date{}
			return nil
		}
		*d = DateString(node.Value)
		return nil
	case yaml.MappingNode:
		var obj dateObject
		if err := node.Decode(&obj); err != nil {
			return err
		}
		parsed, err := obj.date()
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("line %d: date must be a scalar or a {year, month, day} mapping", node.Line)
	}
}
