package rendering

import (
	"testing"

	"github.com/ragibsmajic/portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTechnologies() []types.Technology {
	return []types.Technology{
		{ID: "react", Name: "React", Category: types.CategoryFramework},
		{ID: "go", Name: "Go", Category: types.CategoryLanguage},
		{ID: "misc", Name: "Misc"},
		{ID: "ts", Name: "TypeScript", Category: types.CategoryLanguage},
		{ID: "express", Name: "Express", Category: types.CategoryFramework},
		{ID: "git", Name: "Git", Category: types.CategoryOther},
	}
}

func TestGroupByCategory_FirstSeenOrder(t *testing.T) {
	groups := GroupByCategory(sampleTechnologies())
	require.Len(t, groups, 3)

	assert.Equal(t, types.CategoryFramework, groups[0].Category)
	assert.Equal(t, "Frameworks", groups[0].Label)
	assert.Equal(t, []string{"react", "express"}, ids(groups[0].Technologies))

	assert.Equal(t, types.CategoryLanguage, groups[1].Category)
	assert.Equal(t, []string{"go", "ts"}, ids(groups[1].Technologies))

	assert.Equal(t, types.CategoryOther, groups[2].Category)
	assert.Equal(t, []string{"misc", "git"}, ids(groups[2].Technologies))
}

func TestGroupByCategory_Idempotent(t *testing.T) {
	once := GroupByCategory(sampleTechnologies())
	twice := GroupByCategory(Flatten(once))
	assert.Equal(t, once, twice)
}

func TestGroupByCategory_Empty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
}

func ids(techs []types.Technology) []string {
	out := make([]string, 0, len(techs))
	for _, t := range techs {
		out = append(out, t.ID)
	}
	return out
}
