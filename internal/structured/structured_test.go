package structured

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ragibsmajic/portfolio/internal/schemas"
	"github.com/ragibsmajic/portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testProfile() types.Profile {
	return types.Profile{
		Name:    "Ada Lovelace",
		Title:   "Engineer",
		Tagline: "Writes programs",
		Email:   "ada@example.com",
		Social: types.SocialLinks{
			LinkedIn: "https://linkedin.com/in/ada",
			GitHub:   "https://github.com/ada",
		},
	}
}

func TestPerson_KeyMapping(t *testing.T) {
	g := &Generator{SiteURL: "https://ada.dev", Now: fixedClock(time.Now())}

	data, err := Marshal(g.Person(testProfile()))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "https://schema.org", got["@context"])
	assert.Equal(t, "Person", got["@type"])
	assert.Equal(t, "Ada Lovelace", got["name"])
	assert.Equal(t, "Engineer", got["jobTitle"])
	assert.Equal(t, "Writes programs", got["description"])
	assert.Equal(t, "ada@example.com", got["email"])
	assert.Equal(t, "https://ada.dev", got["url"])
	assert.Equal(t, []any{"https://linkedin.com/in/ada", "https://github.com/ada"}, got["sameAs"])

	assert.NoError(t, schemas.ValidateJSONString(schemas.Person, string(data)))
}

func TestPerson_TwitterAppended(t *testing.T) {
	p := testProfile()
	p.Social.Twitter = "https://twitter.com/ada"

	person := NewGenerator("https://ada.dev").Person(p)
	assert.Equal(t, []string{p.Social.LinkedIn, p.Social.GitHub, p.Social.Twitter}, person.SameAs)
}

func TestProfilePage_DiffersOnlyInTimestamps(t *testing.T) {
	first := &Generator{SiteURL: "https://ada.dev", Now: fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}
	second := &Generator{SiteURL: "https://ada.dev", Now: fixedClock(time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC))}

	a := first.ProfilePage(testProfile())
	b := second.ProfilePage(testProfile())

	assert.Equal(t, "2024-01-01T00:00:00.000Z", a.DateCreated)
	assert.Equal(t, a.DateCreated, a.DateModified)
	assert.NotEqual(t, a.DateCreated, b.DateCreated)

	b.DateCreated, b.DateModified = a.DateCreated, a.DateModified
	assert.Equal(t, a, b)

	data, err := Marshal(a)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateJSONString(schemas.ProfilePage, string(data)))
}

func TestWorkExperience(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	g := &Generator{Now: fixedClock(now)}

	experiences := []types.Experience{
		{
			ID:         "acme",
			Company:    "Acme",
			CompanyURL: "https://acme.example",
			Roles: []types.Role{
				{
					ID:               "r1",
					Title:            "Lead",
					StartDate:        types.DateString("2022-01-01"),
					EndDate:          types.Present(),
					Responsibilities: []string{"Led team", "Shipped product"},
				},
				{
					ID:        "r2",
					Title:     "Dev",
					StartDate: types.NewDate(2020, time.June, 1),
					EndDate:   types.DateString("2021-12-31"),
				},
			},
		},
		{
			ID:      "other",
			Company: "Other",
			Roles:   []types.Role{{ID: "r3", Title: "Intern", StartDate: types.DateString("2019"), EndDate: types.DateString("2019")}},
		},
	}

	got := g.WorkExperience(experiences)
	require.Len(t, got, 3)

	assert.Equal(t, "Lead", got[0].Name)
	assert.Equal(t, "Led team. Shipped product", got[0].Description)
	assert.Equal(t, "2022-01-01", got[0].StartDate)
	assert.Equal(t, "2025-03-04T05:06:07.000Z", got[0].EndDate)
	assert.Equal(t, Organization{Type: "Organization", Name: "Acme", URL: "https://acme.example"}, got[0].Employer)

	assert.Equal(t, "2020-06-01T00:00:00.000Z", got[1].StartDate)
	assert.Equal(t, "2021-12-31", got[1].EndDate)

	data, err := Marshal(got[2])
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"url"`)
}

func TestWorkExperience_EmptyIsEmptyList(t *testing.T) {
	data, err := Marshal(NewGenerator("").WorkExperience(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCredentials(t *testing.T) {
	got := NewGenerator("").Credentials([]types.Education{{
		ID:             "edu",
		Institution:    "University",
		InstitutionURL: "https://uni.example",
		Degree:         "Bachelor of Science",
		FieldOfStudy:   "Computer Science",
	}})

	require.Len(t, got, 1)
	assert.Equal(t, "EducationalOccupationalCredential", got[0].Type)
	assert.Equal(t, "Bachelor of Science in Computer Science", got[0].Name)
	assert.Equal(t, "Bachelor of Science", got[0].CredentialCategory)
	assert.Equal(t, "Bachelor of Science", got[0].EducationalLevel)
	assert.Equal(t, "University", got[0].RecognizedBy.Name)
	assert.Equal(t, "https://uni.example", got[0].RecognizedBy.URL)
}

func TestScript_EscapesMarkup(t *testing.T) {
	p := testProfile()
	p.Tagline = "</script><script>alert(1)</script>"

	js, err := Script(NewGenerator("").Person(p))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(js), "</script>"))
	assert.Contains(t, string(js), `\u003c/script\u003e`)
}
