package rendering

import "github.com/ragibsmajic/portfolio/internal/types"

// CategoryGroup is one category of the grouped technologies view.
type CategoryGroup struct {
	Category     types.Category
	Label        string
	Technologies []types.Technology
}

// GroupByCategory groups technologies by category. Groups appear in
// first-seen order and members keep their stored order, so regrouping the
// flattened result yields the same groups.
func GroupByCategory(technologies []types.Technology) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[types.Category]int)

	for _, tech := range technologies {
		key := tech.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, CategoryGroup{Category: key, Label: CategoryLabel(key)})
		}
		groups[i].Technologies = append(groups[i].Technologies, tech)
	}

	return groups
}

// Flatten lists the members of every group in group order.
func Flatten(groups []CategoryGroup) []types.Technology {
	var out []types.Technology
	for _, g := range groups {
		out = append(out, g.Technologies...)
	}
	return out
}
