package types

// Proficiency is a spoken-language level from a fixed set.
type Proficiency string

// Supported proficiency levels.
const (
	ProficiencyNative       Proficiency = "native"
	ProficiencyFluent       Proficiency = "fluent"
	ProficiencyProfessional Proficiency = "professional"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyBasic        Proficiency = "basic"
)

// Proficiencies lists every level, strongest first.
var Proficiencies = []Proficiency{
	ProficiencyNative,
	ProficiencyFluent,
	ProficiencyProfessional,
	ProficiencyIntermediate,
	ProficiencyBasic,
}

// ProficiencyLabels maps each level to its display label.
var ProficiencyLabels = map[Proficiency]string{
	ProficiencyNative:       "Native",
	ProficiencyFluent:       "Fluent",
	ProficiencyProfessional: "Full Professional Proficiency",
	ProficiencyIntermediate: "Intermediate",
	ProficiencyBasic:        "Basic",
}

// Label returns the display label. ok is false for values outside the set.
func (p Proficiency) Label() (label string, ok bool) {
	label, ok = ProficiencyLabels[p]
	return label, ok
}

// Valid reports whether p is one of the supported levels.
func (p Proficiency) Valid() bool {
	_, ok := ProficiencyLabels[p]
	return ok
}

// Language is a spoken language and how well it is spoken.
type Language struct {
	ID          string      `json:"id" yaml:"id" validate:"required"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	NativeName  string      `json:"native_name,omitempty" yaml:"nativeName,omitempty"`
	Proficiency Proficiency `json:"proficiency" yaml:"proficiency" validate:"required,oneof=native fluent professional intermediate basic"`
	Flag        string      `json:"flag,omitempty" yaml:"flag,omitempty"`
}
