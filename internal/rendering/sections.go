package rendering

import (
	"fmt"
	"html/template"
	"maps"
	"slices"

	"github.com/ragibsmajic/portfolio/internal/types"
	"github.com/ragibsmajic/portfolio/internal/ui"
)

// Section variants.
const (
	VariantAbout   = "about"
	VariantHero    = "hero"
	VariantGrid    = "grid"
	VariantGrouped = "grouped"
)

// Section maps one content category to its element id, template and
// view-model builder.
type Section struct {
	ID       string
	Template string
	Build    func(s *Site, state ui.State) (any, error)
}

// Sections returns the page sections in display order for the configured variants.
func Sections(opts Options) []Section {
	identity := Section{ID: "about", Template: "section-about", Build: buildAbout}
	if opts.AboutVariant == VariantHero {
		identity.Template = "section-hero"
	}
	return []Section{
		identity,
		{ID: "experience", Template: "section-experience", Build: buildExperience},
		{ID: "skills", Template: "section-technologies", Build: buildTechnologies},
		{ID: "projects", Template: "section-projects", Build: buildProjects},
		{ID: "education", Template: "section-education", Build: buildEducation},
		{ID: "languages", Template: "section-languages", Build: buildLanguages},
	}
}

// SocialLink is a rendered profile link.
type SocialLink struct {
	Label string
	URL   string
}

// SocialLinks lists the profile links in a fixed order, then extras by key.
func SocialLinks(s types.SocialLinks) []SocialLink {
	links := []SocialLink{
		{Label: "LinkedIn", URL: s.LinkedIn},
		{Label: "GitHub", URL: s.GitHub},
	}
	optional := []SocialLink{
		{Label: "Twitter", URL: s.Twitter},
		{Label: "Medium", URL: s.Medium},
		{Label: "Stack Overflow", URL: s.StackOverflow},
		{Label: "DEV", URL: s.Dev},
	}
	for _, l := range optional {
		if l.URL != "" {
			links = append(links, l)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(s.Extra)) {
		links = append(links, SocialLink{Label: titleCase(key), URL: s.Extra[key]})
	}
	return links
}

// AboutView is the identity section.
type AboutView struct {
	Name        string
	Title       string
	Tagline     string
	Location    string
	Avatar      string
	Email       string
	Social      []SocialLink
	CoreValues  []types.CoreValue
	ContactHref string
}

func buildAbout(s *Site, state ui.State) (any, error) {
	p := s.store.Profile()
	avatar := p.Avatar
	if avatar == "" {
		avatar = s.opts.DefaultAvatar
	}
	return AboutView{
		Name:        p.Name,
		Title:       p.Title,
		Tagline:     p.Tagline,
		Location:    p.Location,
		Avatar:      avatar,
		Email:       p.Email,
		Social:      SocialLinks(p.Social),
		CoreValues:  p.CoreValues,
		ContactHref: state.OpenContact().Link("contact"),
	}, nil
}

// CompanyView is one employer with its roles.
type CompanyView struct {
	ID          string
	Company     string
	URL         string
	Location    string
	Logo        string
	Description string
	Roles       []RoleView
}

type RoleView struct {
	ID               string
	Title            string
	Range            string
	Duration         string
	Responsibilities []string
	Technologies     []string
	Highlights       []string
}

func buildExperience(s *Site, _ ui.State) (any, error) {
	var companies []CompanyView
	for _, exp := range s.store.Experiences() {
		c := CompanyView{
			ID:          exp.ID,
			Company:     exp.Company,
			URL:         exp.CompanyURL,
			Location:    exp.Location,
			Logo:        exp.Logo,
			Description: exp.Description,
		}
		for _, role := range exp.Roles {
			c.Roles = append(c.Roles, RoleView{
				ID:               role.ID,
				Title:            role.Title,
				Range:            FormatRange(role.StartDate, role.EndDate),
				Duration:         role.Duration,
				Responsibilities: role.Responsibilities,
				Technologies:     role.Technologies,
				Highlights:       role.Highlights,
			})
		}
		companies = append(companies, c)
	}
	return companies, nil
}

// TechnologiesView is the skills section in either variant.
type TechnologiesView struct {
	Grouped bool
	All     []types.Technology
	Groups  []CategoryGroup
}

func buildTechnologies(s *Site, _ ui.State) (any, error) {
	techs := s.store.Technologies()
	v := TechnologiesView{All: techs}
	if s.opts.TechnologiesVariant == VariantGrouped {
		v.Grouped = true
		v.Groups = GroupByCategory(techs)
	}
	return v, nil
}

// ProjectView is one project card.
type ProjectView struct {
	ID           string
	Anchor       string
	Name         string
	Description  string
	Technologies []string
	Meta         string
	Image        string
	URL          string
	GitHubURL    string
	Expanded     bool
	ToggleHref   string
	Challenge    template.HTML
	Solution     template.HTML
	Outcome      template.HTML
}

// ProjectMeta renders "timeframe • year"; it is empty without a timeframe.
func ProjectMeta(p types.Project) string {
	if p.Timeframe == "" {
		return ""
	}
	if p.Year == 0 {
		return p.Timeframe
	}
	return fmt.Sprintf("%s • %d", p.Timeframe, p.Year)
}

// ProjectAnchor is the element id of a project card.
func ProjectAnchor(id string) string {
	return "project-" + id
}

func projectView(p types.Project, state ui.State) (ProjectView, error) {
	v := ProjectView{
		ID:           p.ID,
		Anchor:       ProjectAnchor(p.ID),
		Name:         p.Name,
		Description:  p.Description,
		Technologies: p.Technologies,
		Meta:         ProjectMeta(p),
		Image:        p.Image,
		URL:          p.URL,
		GitHubURL:    p.GitHubURL,
		Expanded:     state.Expansion.IsExpanded(p.ID),
		ToggleHref:   state.ToggleProject(p.ID).Link(ProjectAnchor(p.ID)),
	}

	var err error
	if v.Challenge, err = Markdown(p.Challenge); err != nil {
		return v, err
	}
	if v.Solution, err = Markdown(p.Solution); err != nil {
		return v, err
	}
	if v.Outcome, err = Markdown(p.Outcome); err != nil {
		return v, err
	}
	return v, nil
}

func buildProjects(s *Site, state ui.State) (any, error) {
	var views []ProjectView
	for _, p := range s.store.Projects() {
		v, err := projectView(p, state)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// EducationView is one education entry.
type EducationView struct {
	ID          string
	Institution string
	URL         string
	Credential  string
	Range       string
	GPA         string
	Honors      []string
	Coursework  []string
	Logo        string
	Description template.HTML
}

func buildEducation(s *Site, _ ui.State) (any, error) {
	var views []EducationView
	for _, edu := range s.store.Education() {
		desc, err := Markdown(edu.Description)
		if err != nil {
			return nil, err
		}
		views = append(views, EducationView{
			ID:          edu.ID,
			Institution: edu.Institution,
			URL:         edu.InstitutionURL,
			Credential:  edu.Credential(),
			Range:       FormatYearRange(edu.StartDate, edu.EndDate),
			GPA:         edu.GPA,
			Honors:      edu.Honors,
			Coursework:  edu.RelevantCoursework,
			Logo:        edu.Logo,
			Description: desc,
		})
	}
	return views, nil
}

// LanguageView is one spoken language. Label is empty for levels outside
// the fixed table.
type LanguageView struct {
	ID         string
	Name       string
	NativeName string
	Flag       string
	Label      string
}

func buildLanguages(s *Site, _ ui.State) (any, error) {
	var views []LanguageView
	for _, lang := range s.store.Languages() {
		label, _ := ProficiencyLabel(lang.Proficiency)
		views = append(views, LanguageView{
			ID:         lang.ID,
			Name:       lang.Name,
			NativeName: lang.NativeName,
			Flag:       lang.Flag,
			Label:      label,
		})
	}
	return views, nil
}
