package types

// Category groups technologies in the skills section.
type Category string

// Supported technology categories.
const (
	CategoryLanguage  Category = "language"
	CategoryFramework Category = "framework"
	CategoryLibrary   Category = "library"
	CategoryDatabase  Category = "database"
	CategoryCloud     Category = "cloud"
	CategoryTool      Category = "tool"
	CategoryOther     Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryLanguage,
	CategoryFramework,
	CategoryLibrary,
	CategoryDatabase,
	CategoryCloud,
	CategoryTool,
	CategoryOther,
}

// CategoryLabels maps each category to its group heading.
var CategoryLabels = map[Category]string{
	CategoryLanguage:  "Languages",
	CategoryFramework: "Frameworks",
	CategoryLibrary:   "Libraries",
	CategoryDatabase:  "Databases",
	CategoryCloud:     "Cloud & Infrastructure",
	CategoryTool:      "Tools & DevOps",
	CategoryOther:     "Other",
}

// Label returns the group heading. ok is false for values outside the set.
func (c Category) Label() (label string, ok bool) {
	label, ok = CategoryLabels[c]
	return label, ok
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	_, ok := CategoryLabels[c]
	return ok
}

// Technology is one skill shown in the technologies section.
type Technology struct {
	ID                string   `json:"id" yaml:"id" validate:"required"`
	Name              string   `json:"name" yaml:"name" validate:"required"`
	Category          Category `json:"category,omitempty" yaml:"category,omitempty" validate:"omitempty,oneof=language framework library database cloud tool other"`
	Icon              string   `json:"icon,omitempty" yaml:"icon,omitempty" validate:"omitempty,uri"`
	URL               string   `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	YearsOfExperience int      `json:"years_of_experience,omitempty" yaml:"yearsOfExperience,omitempty" validate:"gte=0"`
}

// GroupKey is the category used for grouping; uncategorized technologies
// fall under CategoryOther.
func (t Technology) GroupKey() Category {
	if t.Category == "" {
		return CategoryOther
	}
	return t.Category
}
