package types

// Education is one degree or program.
type Education struct {
	ID                 string   `json:"id" yaml:"id" validate:"required"`
	Institution        string   `json:"institution" yaml:"institution" validate:"required"`
	InstitutionURL     string   `json:"institution_url,omitempty" yaml:"institutionUrl,omitempty" validate:"omitempty,url"`
	Degree             string   `json:"degree" yaml:"degree" validate:"required"`
	FieldOfStudy       string   `json:"field_of_study" yaml:"fieldOfStudy" validate:"required"`
	StartDate          Date     `json:"start_date" yaml:"startDate" validate:"required"`
	EndDate            Date     `json:"end_date" yaml:"endDate" validate:"required"`
	GPA                string   `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	Honors             []string `json:"honors,omitempty" yaml:"honors,omitempty"`
	RelevantCoursework []string `json:"relevant_coursework,omitempty" yaml:"relevantCoursework,omitempty"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	Logo               string   `json:"logo,omitempty" yaml:"logo,omitempty" validate:"omitempty,uri"`
}

// Credential is the "<degree> in <field>" line shown under the institution.
func (e Education) Credential() string {
	if e.FieldOfStudy == "" {
		return e.Degree
	}
	return e.Degree + " in " + e.FieldOfStudy
}
