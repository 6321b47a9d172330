package checklist

import (
	"sort"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

// RelevancePriority returns a sort priority (lower = listed first).
// Unrecognized relevance values sort after defer.
func RelevancePriority(r domain.Relevance) int {
	switch r {
	case domain.RelevanceRequired:
		return 0
	case domain.RelevanceRecommended:
		return 1
	case domain.RelevanceDefer:
		return 2
	default:
		return 3
	}
}

// CanonicalSort orders rows by the deterministic checklist rules:
// 1. Relevance: required > recommended > defer
// 2. Category: lexical ascending
// 3. Deliverable: lexical ascending
func CanonicalSort(rows []domain.ChecklistRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		pa, pb := RelevancePriority(a.Relevance), RelevancePriority(b.Relevance)
		if pa != pb {
			return pa < pb
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Deliverable < b.Deliverable
	})
}
