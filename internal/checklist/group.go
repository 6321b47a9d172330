package checklist

import (
	"sort"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

// Group is one category's rows, in the order they were given.
type Group struct {
	Category string
	Rows     []domain.ChecklistRow
}

// GroupByCategory splits rows into categories sorted alphabetically. Row
// order inside each group is preserved.
func GroupByCategory(rows []domain.ChecklistRow) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range rows {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, Group{Category: r.Category})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// Flatten concatenates groups back into a single display-ordered list.
func Flatten(groups []Group) []domain.ChecklistRow {
	var n int
	for _, g := range groups {
		n += len(g.Rows)
	}
	out := make([]domain.ChecklistRow, 0, n)
	for _, g := range groups {
		out = append(out, g.Rows...)
	}
	return out
}
