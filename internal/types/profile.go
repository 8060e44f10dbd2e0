package types

// Profile is the site owner's identity. There is exactly one per site.
type Profile struct {
	Name       string      `json:"name" yaml:"name" validate:"required"`
	Title      string      `json:"title" yaml:"title" validate:"required"`
	Tagline    string      `json:"tagline" yaml:"tagline" validate:"required"`
	Location   string      `json:"location,omitempty" yaml:"location,omitempty"`
	Email      string      `json:"email" yaml:"email" validate:"required,email"`
	Social     SocialLinks `json:"social" yaml:"social"`
	CoreValues []CoreValue `json:"core_values" yaml:"coreValues" validate:"dive"`
	Avatar     string      `json:"avatar,omitempty" yaml:"avatar,omitempty" validate:"omitempty,uri"`
}

// SocialLinks holds the profile's outbound links. LinkedIn and GitHub are
// always shown; the rest only when set.
type SocialLinks struct {
	LinkedIn      string            `json:"linkedin" yaml:"linkedin" validate:"required,url"`
	GitHub        string            `json:"github" yaml:"github" validate:"required,url"`
	Twitter       string            `json:"twitter,omitempty" yaml:"twitter,omitempty" validate:"omitempty,url"`
	Medium        string            `json:"medium,omitempty" yaml:"medium,omitempty" validate:"omitempty,url"`
	StackOverflow string            `json:"stackoverflow,omitempty" yaml:"stackoverflow,omitempty" validate:"omitempty,url"`
	Dev           string            `json:"dev,omitempty" yaml:"dev,omitempty" validate:"omitempty,url"`
	Extra         map[string]string `json:"extra,omitempty" yaml:"extra,omitempty" validate:"omitempty,dive,url"`
}

// SameAs lists the links that identify the same person elsewhere, in the
// order search engines receive them.
func (s SocialLinks) SameAs() []string {
	links := []string{s.LinkedIn, s.GitHub}
	if s.Twitter != "" {
		links = append(links, s.Twitter)
	}
	return links
}

// CoreValue is one card in the about section's values grid.
type CoreValue struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description" validate:"required"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}
