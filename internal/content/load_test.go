package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/ragibsmajic/portfolio/internal/schemas"
	"github.com/ragibsmajic/portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalProfile = `
name: Ada Lovelace
title: Engineer
tagline: Writes programs
email: ada@example.com
social:
  linkedin: https://linkedin.com/in/ada
  github: https://github.com/ada
`

func TestDefault_LoadsEmbeddedContent(t *testing.T) {
	store, err := Default()
	require.NoError(t, err)

	profile := store.Profile()
	assert.Equal(t, "Ragib Smajic", profile.Name)
	assert.Len(t, profile.CoreValues, 4)

	stats := store.Stats()
	assert.Equal(t, 2, stats.Companies)
	assert.Equal(t, 3, stats.Roles)
	assert.Equal(t, 1, stats.Education)
	assert.Equal(t, 2, stats.Languages)
	assert.Equal(t, 23, stats.Technologies)
	assert.Equal(t, 3, stats.Projects)

	exps := store.Experiences()
	assert.True(t, exps[0].Roles[0].EndDate.IsPresent())
	assert.Equal(t, "role-2", exps[0].Roles[1].ID)

	edu := store.Education()
	assert.True(t, edu[0].StartDate.IsStructured(), "unquoted YAML dates decode as structured dates")

	langs := store.Languages()
	assert.Equal(t, types.ProficiencyNative, langs[0].Proficiency)
	assert.Equal(t, "Bosanski", langs[0].NativeName)
}

func TestStore_AccessorsReturnCopies(t *testing.T) {
	store, err := Default()
	require.NoError(t, err)

	exps := store.Experiences()
	exps[0].Company = "Changed"
	exps[0].Roles[0].Responsibilities[0] = "Changed"

	projects := store.Projects()
	projects[0].Technologies[0] = "Changed"

	profile := store.Profile()
	profile.CoreValues[0].Title = "Changed"

	assert.Equal(t, "Tech Company", store.Experiences()[0].Company)
	assert.NotEqual(t, "Changed", store.Experiences()[0].Roles[0].Responsibilities[0])
	assert.Equal(t, "React", store.Projects()[0].Technologies[0])
	assert.Equal(t, "Value-Focused", store.Profile().CoreValues[0].Title)
}

func TestLoad_MissingCollectionsAreEmpty(t *testing.T) {
	fsys := fstest.MapFS{"profile.yaml": {Data: []byte(minimalProfile)}}

	store, err := Load(fsys)
	require.NoError(t, err)
	assert.Empty(t, store.Experiences())
	assert.Empty(t, store.Projects())
	assert.Equal(t, "Ada Lovelace", store.Profile().Name)
}

func TestLoad_MissingProfile(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "profile document not found")
}

func TestLoad_JSONDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"profile.yaml":   {Data: []byte(minimalProfile)},
		"languages.json": {Data: []byte(`[{"id":"en","name":"English","proficiency":"fluent"}]`)},
	}

	store, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, store.Languages(), 1)
	assert.Equal(t, types.ProficiencyFluent, store.Languages()[0].Proficiency)
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantMsg string
		isLoad  bool
	}{
		{
			name:    "malformed yaml",
			file:    "projects.yaml",
			data:    "- id: [unclosed",
			wantMsg: "failed to parse YAML",
			isLoad:  true,
		},
		{
			name: "duplicate project id",
			file: "projects.yaml",
			data: `
- {id: p1, name: A, description: a, challenge: c, solution: s, technologies: []}
- {id: p1, name: B, description: b, challenge: c, solution: s, technologies: []}
`,
			wantMsg: `duplicate project id "p1"`,
		},
		{
			name:    "unknown proficiency",
			file:    "languages.yaml",
			data:    "- {id: en, name: English, proficiency: expert}",
			wantMsg: "schema check failed",
		},
		{
			name:    "unknown category",
			file:    "technologies.yaml",
			data:    "- {id: go, name: Go, category: quantum}",
			wantMsg: "schema check failed",
		},
		{
			name: "present start date",
			file: "experience.yaml",
			data: `
- id: acme
  company: Acme
  roles:
    - {id: r1, title: Dev, startDate: present, endDate: present, responsibilities: []}
`,
			wantMsg: "start date cannot be",
		},
		{
			name: "duplicate role id across companies",
			file: "experience.yaml",
			data: `
- id: a
  company: A
  roles: [{id: r1, title: Dev, startDate: "2020", endDate: "2021", responsibilities: []}]
- id: b
  company: B
  roles: [{id: r1, title: Dev, startDate: "2021", endDate: present, responsibilities: []}]
`,
			wantMsg: `duplicate role id "r1"`,
		},
		{
			name:    "present education date",
			file:    "education.yaml",
			data:    `- {id: e1, institution: U, degree: BSc, fieldOfStudy: CS, startDate: "2016", endDate: present}`,
			wantMsg: "only allowed as a role end date",
		},
		{
			name:    "invalid url",
			file:    "projects.yaml",
			data:    `- {id: p1, name: A, description: a, challenge: c, solution: s, technologies: [], url: "not a url"}`,
			wantMsg: "invalid project 0 (p1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"profile.yaml": {Data: []byte(minimalProfile)},
				tt.file:        {Data: []byte(tt.data)},
			}

			_, err := Load(fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), tt.file)

			if tt.isLoad {
				var loadErr *LoadError
				assert.True(t, errors.As(err, &loadErr))
			} else {
				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
			}
		})
	}
}

func TestLoad_SchemaErrorUnwraps(t *testing.T) {
	fsys := fstest.MapFS{
		"profile.yaml":   {Data: []byte(minimalProfile)},
		"languages.yaml": {Data: []byte("- {id: en, name: English, proficiency: expert}")},
	}

	_, err := Load(fsys)
	var schemaErr *schemas.ValidationError
	require.True(t, errors.As(err, &schemaErr))
	assert.NotEmpty(t, schemaErr.Errors)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.yml"), []byte(minimalProfile), 0644))

	store, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", store.Profile().Title)
}

func TestLoadDir_Errors(t *testing.T) {
	_, err := LoadDir("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content directory is empty")

	_, err = LoadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))

	file := filepath.Join(t.TempDir(), "file.yaml")
	require.NoError(t, os.WriteFile(file, []byte("x: 1"), 0644))
	_, err = LoadDir(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestLoadError_Error(t *testing.T) {
	err := &LoadError{File: "profile.yaml", Message: "failed to read file", Cause: os.ErrPermission}
	assert.Equal(t, "load error: profile.yaml: failed to read file: permission denied", err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)

	bare := &ValidationError{Message: "broken"}
	assert.Equal(t, "validation error: broken", bare.Error())
}
