package content

import (
	"maps"
	"slices"

	"github.com/ragibsmajic/portfolio/internal/types"
)

// Store holds the loaded content. It is immutable after Load; every accessor
// returns a copy in stored order.
type Store struct {
	profile      types.Profile
	experiences  []types.Experience
	education    []types.Education
	languages    []types.Language
	technologies []types.Technology
	projects     []types.Project
}

// Stats counts the records in a store.
type Stats struct {
	Companies    int
	Roles        int
	Education    int
	Languages    int
	Technologies int
	Projects     int
	CoreValues   int
}

// Profile returns the profile singleton.
func (s *Store) Profile() types.Profile {
	p := s.profile
	p.CoreValues = slices.Clone(s.profile.CoreValues)
	p.Social.Extra = maps.Clone(s.profile.Social.Extra)
	return p
}

// Experiences returns the work history, companies then roles, as authored.
func (s *Store) Experiences() []types.Experience {
	out := make([]types.Experience, len(s.experiences))
	for i, exp := range s.experiences {
		exp.Roles = make([]types.Role, len(s.experiences[i].Roles))
		for j, role := range s.experiences[i].Roles {
			role.Responsibilities = slices.Clone(role.Responsibilities)
			role.Technologies = slices.Clone(role.Technologies)
			role.Highlights = slices.Clone(role.Highlights)
			exp.Roles[j] = role
		}
		out[i] = exp
	}
	return out
}

func (s *Store) Education() []types.Education {
	out := make([]types.Education, len(s.education))
	for i, edu := range s.education {
		edu.Honors = slices.Clone(edu.Honors)
		edu.RelevantCoursework = slices.Clone(edu.RelevantCoursework)
		out[i] = edu
	}
	return out
}

func (s *Store) Languages() []types.Language {
	return slices.Clone(s.languages)
}

func (s *Store) Technologies() []types.Technology {
	return slices.Clone(s.technologies)
}

func (s *Store) Projects() []types.Project {
	out := make([]types.Project, len(s.projects))
	for i, p := range s.projects {
		p.Technologies = slices.Clone(p.Technologies)
		out[i] = p
	}
	return out
}

// Stats returns record counts.
func (s *Store) Stats() Stats {
	roles := 0
	for _, exp := range s.experiences {
		roles += len(exp.Roles)
	}
	return Stats{
		Companies:    len(s.experiences),
		Roles:        roles,
		Education:    len(s.education),
		Languages:    len(s.languages),
		Technologies: len(s.technologies),
		Projects:     len(s.projects),
		CoreValues:   len(s.profile.CoreValues),
	}
}
