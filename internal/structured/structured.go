// Package structured generates schema.org JSON-LD documents from portfolio
// content. Upstream data is trusted as loaded; nothing here validates it.
package structured

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/ragibsmajic/portfolio/internal/types"
)

// Context is the JSON-LD @context of every document.
const Context = "https://schema.org"

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Person is a schema.org Person.
type Person struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	JobTitle    string   `json:"jobTitle"`
	Description string   `json:"description"`
	Email       string   `json:"email"`
	URL         string   `json:"url"`
	SameAs      []string `json:"sameAs"`
}

// ProfilePage is a schema.org ProfilePage whose main entity is the Person.
type ProfilePage struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
	MainEntity   Person `json:"mainEntity"`
}

// Organization is the employer or issuing institution.
type Organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// WorkExperience describes one role.
type WorkExperience struct {
	Context     string       `json:"@context"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Employer    Organization `json:"employer"`
}

// Credential is a schema.org EducationalOccupationalCredential.
type Credential struct {
	Context            string       `json:"@context"`
	Type               string       `json:"@type"`
	Name               string       `json:"name"`
	CredentialCategory string       `json:"credentialCategory"`
	EducationalLevel   string       `json:"educationalLevel"`
	RecognizedBy       Organization `json:"recognizedBy"`
}

// Document bundles every generated block, as written to structured-data.json.
type Document struct {
	Person         Person           `json:"person"`
	ProfilePage    ProfilePage      `json:"profilePage"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Credentials    []Credential     `json:"credentials"`
}

// Generator builds JSON-LD for a site. Now defaults to time.Now.
type Generator struct {
	SiteURL string
	Now     func() time.Time
}

// NewGenerator returns a generator using the wall clock.
func NewGenerator(siteURL string) *Generator {
	return &Generator{SiteURL: siteURL, Now: time.Now}
}

func (g *Generator) now() string {
	clock := g.Now
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Format(isoLayout)
}

func (g *Generator) Person(profile types.Profile) Person {
	return Person{
		Context:     Context,
		Type:        "Person",
		Name:        profile.Name,
		JobTitle:    profile.Title,
		Description: profile.Tagline,
		Email:       profile.Email,
		URL:         g.SiteURL,
		SameAs:      profile.Social.SameAs(),
	}
}

// ProfilePage wraps the Person. Only the two timestamps vary between calls.
func (g *Generator) ProfilePage(profile types.Profile) ProfilePage {
	now := g.now()
	return ProfilePage{
		Context:      Context,
		Type:         "ProfilePage",
		DateCreated:  now,
		DateModified: now,
		MainEntity:   g.Person(profile),
	}
}

// WorkExperience flattens every company's roles into one list, in order.
// A "present" end date becomes the current time.
func (g *Generator) WorkExperience(experiences []types.Experience) []WorkExperience {
	out := []WorkExperience{}
	for _, exp := range experiences {
		for _, role := range exp.Roles {
			end := role.EndDate.ISO()
			if role.IsCurrent() {
				end = g.now()
			}
			out = append(out, WorkExperience{
				Context:     Context,
				Type:        "WorkExperience",
				Name:        role.Title,
				Description: strings.Join(role.Responsibilities, ". "),
				StartDate:   role.StartDate.ISO(),
				EndDate:     end,
				Employer: Organization{
					Type: "Organization",
					Name: exp.Company,
					URL:  exp.CompanyURL,
				},
			})
		}
	}
	return out
}

func (g *Generator) Credentials(education []types.Education) []Credential {
	out := make([]Credential, 0, len(education))
	for _, edu := range education {
		out = append(out, Credential{
			Context:            Context,
			Type:               "EducationalOccupationalCredential",
			Name:               fmt.Sprintf("%s in %s", edu.Degree, edu.FieldOfStudy),
			CredentialCategory: edu.Degree,
			EducationalLevel:   edu.Degree,
			RecognizedBy: Organization{
				Type: "Organization",
				Name: edu.Institution,
				URL:  edu.InstitutionURL,
			},
		})
	}
	return out
}

// Document generates every block at once.
func (g *Generator) Document(profile types.Profile, experiences []types.Experience, education []types.Education) Document {
	return Document{
		Person:         g.Person(profile),
		ProfilePage:    g.ProfilePage(profile),
		WorkExperience: g.WorkExperience(experiences),
		Credentials:    g.Credentials(education),
	}
}

// Marshal encodes v as compact JSON. encoding/json escapes <, > and &, so the
// result is safe inside a script element.
func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal structured data: %w", err)
	}
	return data, nil
}

// Script returns v as a template value for a <script type="application/ld+json"> body.
func Script(v any) (template.JS, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil //nolint:gosec // json.Marshal output is HTML-escaped
}
