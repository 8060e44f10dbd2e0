package types

// Experience is one employer with the roles held there, newest first.
type Experience struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Company     string `json:"company" yaml:"company" validate:"required"`
	CompanyURL  string `json:"company_url,omitempty" yaml:"companyUrl,omitempty" validate:"omitempty,url"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Logo        string `json:"logo,omitempty" yaml:"logo,omitempty" validate:"omitempty,uri"`
	Roles       []Role `json:"roles" yaml:"roles" validate:"required,min=1,dive"`
}

// Role is a single position within an Experience. EndDate may be the
// present sentinel.
type Role struct {
	ID               string   `json:"id" yaml:"id" validate:"required"`
	Title            string   `json:"title" yaml:"title" validate:"required"`
	StartDate        Date     `json:"start_date" yaml:"startDate" validate:"required"`
	EndDate          Date     `json:"end_date" yaml:"endDate" validate:"required"`
	Duration         string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
	Technologies     []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Highlights       []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// IsCurrent reports whether the role is still held.
func (r Role) IsCurrent() bool {
	return r.EndDate.IsPresent()
}
