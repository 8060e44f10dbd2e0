package rendering

import (
	"testing"
	"time"

	"github.com/ragibsmajic/portfolio/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestFormatRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end types.Date
		want       string
	}{
		{name: "present", start: types.DateString("2022-01-01"), end: types.Present(), want: "Jan 2022 - Present"},
		{name: "only exact sentinel is present", start: types.DateString("2022-01-01"), end: types.DateString("PRESENT"), want: "Jan 2022 - PRESENT"},
		{name: "offset kept", start: types.DateString("2022-01-01T00:00:00+05:00"), end: types.DateString("2022-03-31T23:30:00-08:00"), want: "Jan 2022 - Mar 2022"},
		{name: "structured with offset", start: types.DateOf(time.Date(2022, time.January, 1, 0, 30, 0, 0, time.FixedZone("", 2*60*60))), end: types.Present(), want: "Jan 2022 - Present"},
		{name: "two strings", start: types.DateString("2020-06-01"), end: types.DateString("2021-12-31"), want: "Jun 2020 - Dec 2021"},
		{name: "structured", start: types.NewDate(2017, time.January, 1), end: types.NewDate(2020, time.May, 31), want: "Jan 2017 - May 2020"},
		{name: "month layout", start: types.DateString("2019-03"), end: types.DateString("2019-11"), want: "Mar 2019 - Nov 2019"},
		{name: "unparseable kept", start: types.DateString("Spring 2019"), end: types.Present(), want: "Spring 2019 - Present"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRange(tt.start, tt.end))
		})
	}
}

func TestFormatMonthYear_PresentIsExactlyPresent(t *testing.T) {
	assert.Equal(t, "Present", FormatMonthYear(types.Present()))
	assert.Equal(t, "Dec 2021", FormatMonthYear(types.DateString("2021-12-31")))
	assert.Equal(t, "Jan 2022", FormatMonthYear(types.DateString("2022-01-01T00:00:00+05:00")))
}

func TestFormatYearRange(t *testing.T) {
	assert.Equal(t, "2016 - 2018", FormatYearRange(types.DateString("2016"), types.DateString("2018")))
	assert.Equal(t, "2013 - 2017", FormatYearRange(types.NewDate(2013, time.September, 1), types.DateString("2017-06-30")))
}

func TestProficiencyLabel(t *testing.T) {
	for _, p := range types.Proficiencies {
		label, ok := ProficiencyLabel(p)
		assert.True(t, ok, p)
		assert.NotEmpty(t, label, p)
	}

	_, ok := ProficiencyLabel(types.Proficiency("expert"))
	assert.False(t, ok)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Cloud & Infrastructure", CategoryLabel(types.CategoryCloud))
	assert.Equal(t, "Tools & DevOps", CategoryLabel(types.CategoryTool))
	assert.Equal(t, "Machine Learning", CategoryLabel(types.Category("machine-learning")))
}

func TestProjectMeta(t *testing.T) {
	assert.Equal(t, "6 months • 2023", ProjectMeta(types.Project{Timeframe: "6 months", Year: 2023}))
	assert.Equal(t, "6 months", ProjectMeta(types.Project{Timeframe: "6 months"}))
	assert.Equal(t, "", ProjectMeta(types.Project{Year: 2023}))
}

func TestMarkdown(t *testing.T) {
	html, err := Markdown("Cut latency by **40%**")
	assert.NoError(t, err)
	assert.Contains(t, string(html), "<strong>40%</strong>")

	html, err = Markdown("<script>alert(1)</script>")
	assert.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")

	html, err = Markdown("   ")
	assert.NoError(t, err)
	assert.Empty(t, html)
}
