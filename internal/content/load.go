package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ragibsmajic/portfolio/internal/schemas"
	"github.com/ragibsmajic/portfolio/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var defaultFiles embed.FS

// Extensions tried, in order, for every content document.
var Extensions = []string{".yaml", ".yml", ".json"}

// Document names, which are also the schema names.
const (
	DocProfile      = schemas.Profile
	DocExperience   = schemas.Experience
	DocEducation    = schemas.Education
	DocLanguages    = schemas.Languages
	DocTechnologies = schemas.Technologies
	DocProjects     = schemas.Projects
)

// Documents lists every content document. Only the profile is required; a
// missing collection loads as empty.
var Documents = []string{DocProfile, DocExperience, DocEducation, DocLanguages, DocTechnologies, DocProjects}

// Loader reads content documents from a file system.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new content loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads and validates every document in fsys.
func Load(fsys fs.FS) (*Store, error) {
	return NewLoader(nil).Load(fsys)
}

// LoadDir loads content from a directory on disk.
func LoadDir(dir string) (*Store, error) {
	return NewLoader(nil).LoadDir(dir)
}

// Default loads the embedded content.
func Default() (*Store, error) {
	return NewLoader(nil).Load(DefaultFS())
}

// DefaultFS exposes the embedded content files with the data/ prefix removed.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultFiles, "data")
	if err != nil {
		panic(fmt.Sprintf("embedded content missing: %v", err))
	}
	return sub
}

// LoadDir loads content from a directory on disk.
func (l *Loader) LoadDir(dir string) (*Store, error) {
	if dir == "" {
		return nil, &LoadError{Message: "content directory is empty"}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Message: "failed to stat content directory", Cause: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{File: dir, Message: "content path is not a directory"}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Message: "failed to resolve content directory", Cause: err}
	}
	l.logger.Debug("Loading content", slog.String("dir", abs))
	return l.Load(os.DirFS(abs))
}

// Load reads and validates every document in fsys.
func (l *Loader) Load(fsys fs.FS) (*Store, error) {
	s := &Store{}

	profileFile, err := l.decode(fsys, DocProfile, &s.profile)
	if err != nil {
		return nil, err
	}
	if profileFile == "" {
		return nil, &LoadError{File: DocProfile, Message: "profile document not found"}
	}
	if err := checkRecord(profileFile, "profile", s.profile); err != nil {
		return nil, err
	}
	if err := checkUniqueIDs(profileFile, "core value", s.profile.CoreValues, func(v types.CoreValue) string { return v.ID }); err != nil {
		return nil, err
	}

	file, err := l.decode(fsys, DocExperience, &s.experiences)
	if err != nil {
		return nil, err
	}
	if err := checkExperiences(file, s.experiences); err != nil {
		return nil, err
	}

	if file, err = l.decode(fsys, DocEducation, &s.education); err != nil {
		return nil, err
	}
	if err := checkCollection(file, "education", s.education, func(e types.Education) string { return e.ID }); err != nil {
		return nil, err
	}
	for i, edu := range s.education {
		if edu.StartDate.IsPresent() || edu.EndDate.IsPresent() {
			return nil, &ValidationError{File: file, Message: fmt.Sprintf("education %d (%s): %q is only allowed as a role end date", i, edu.ID, types.PresentSentinel)}
		}
	}

	if file, err = l.decode(fsys, DocLanguages, &s.languages); err != nil {
		return nil, err
	}
	if err := checkCollection(file, "language", s.languages, func(lang types.Language) string { return lang.ID }); err != nil {
		return nil, err
	}

	if file, err = l.decode(fsys, DocTechnologies, &s.technologies); err != nil {
		return nil, err
	}
	if err := checkCollection(file, "technology", s.technologies, func(t types.Technology) string { return t.ID }); err != nil {
		return nil, err
	}

	if file, err = l.decode(fsys, DocProjects, &s.projects); err != nil {
		return nil, err
	}
	if err := checkCollection(file, "project", s.projects, func(p types.Project) string { return p.ID }); err != nil {
		return nil, err
	}

	stats := s.Stats()
	l.logger.Debug("Loaded content",
		slog.Int("roles", stats.Roles),
		slog.Int("technologies", stats.Technologies),
		slog.Int("projects", stats.Projects))
	return s, nil
}

// decode locates a document, checks it against its schema and decodes it
// into out. It returns the file name used, or "" when the document is absent.
func (l *Loader) decode(fsys fs.FS, name string, out any) (string, error) {
	file, data, err := readDocument(fsys, name)
	if err != nil {
		return "", err
	}
	if file == "" {
		l.logger.Debug("Content document not found", slog.String("document", name))
		return "", nil
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return "", &LoadError{File: file, Message: "failed to parse YAML", Cause: err}
	}
	if err := schemas.ValidateDocument(name, generic); err != nil {
		return "", &ValidationError{File: file, Message: "schema check failed", Cause: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return "", &LoadError{File: file, Message: "failed to decode records", Cause: err}
	}
	return file, nil
}

func readDocument(fsys fs.FS, name string) (string, []byte, error) {
	for _, ext := range Extensions {
		file := name + ext
		data, err := fs.ReadFile(fsys, file)
		if err == nil {
			return file, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, &LoadError{File: file, Message: "failed to read file", Cause: err}
		}
	}
	return "", nil, nil
}

func checkRecord(file, kind string, record any) error {
	if err := types.Validate(record); err != nil {
		return &ValidationError{File: file, Message: fmt.Sprintf("invalid %s", kind), Cause: err}
	}
	return nil
}

func checkCollection[T any](file, kind string, records []T, id func(T) string) error {
	for i, r := range records {
		if err := types.Validate(r); err != nil {
			return &ValidationError{File: file, Message: fmt.Sprintf("invalid %s %d (%s)", kind, i, id(r)), Cause: err}
		}
	}
	return checkUniqueIDs(file, kind, records, id)
}

func checkUniqueIDs[T any](file, kind string, records []T, id func(T) string) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		key := id(r)
		if first, ok := seen[key]; ok {
			return &ValidationError{File: file, Message: fmt.Sprintf("duplicate %s id %q at %d and %d", kind, key, first, i)}
		}
		seen[key] = i
	}
	return nil
}

func checkExperiences(file string, experiences []types.Experience) error {
	if err := checkCollection(file, "experience", experiences, func(e types.Experience) string { return e.ID }); err != nil {
		return err
	}

	var roles []types.Role
	for _, exp := range experiences {
		roles = append(roles, exp.Roles...)
	}
	if err := checkUniqueIDs(file, "role", roles, func(r types.Role) string { return r.ID }); err != nil {
		return err
	}
	for _, role := range roles {
		if role.StartDate.IsPresent() {
			return &ValidationError{File: file, Message: fmt.Sprintf("role %s: start date cannot be %q", role.ID, types.PresentSentinel)}
		}
		if strings.TrimSpace(role.EndDate.Raw()) == "" {
			return &ValidationError{File: file, Message: fmt.Sprintf("role %s: end date is required", role.ID)}
		}
	}
	return nil
}
