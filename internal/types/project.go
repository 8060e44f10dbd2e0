package types

// Project is a featured piece of work told as challenge, solution and outcome.
type Project struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Name         string   `json:"name" yaml:"name" validate:"required"`
	Description  string   `json:"description" yaml:"description" validate:"required"`
	Challenge    string   `json:"challenge" yaml:"challenge" validate:"required"`
	Solution     string   `json:"solution" yaml:"solution" validate:"required"`
	Outcome      string   `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Timeframe    string   `json:"timeframe,omitempty" yaml:"timeframe,omitempty"`
	Year         int      `json:"year,omitempty" yaml:"year,omitempty" validate:"omitempty,gte=1900"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty" validate:"omitempty,uri"`
	URL          string   `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	GitHubURL    string   `json:"github_url,omitempty" yaml:"githubUrl,omitempty" validate:"omitempty,url"`
}
