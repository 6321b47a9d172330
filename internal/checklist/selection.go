package checklist

import (
	"slices"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

// Selection holds user-toggled row flags keyed by row identity. Rows without
// an entry keep their default. A nil Selection means no toggles.
type Selection map[string]bool

// Toggle flips the effective flag of row and records it.
func (s Selection) Toggle(row domain.ChecklistRow) {
	s[row.Key()] = !s.IsSelected(row)
}

// IsSelected returns the effective flag of row.
func (s Selection) IsSelected(row domain.ChecklistRow) bool {
	if v, ok := s[row.Key()]; ok {
		return v
	}
	return row.Selected
}

// Apply returns a copy of rows with Selected set to the effective flag.
func (s Selection) Apply(rows []domain.ChecklistRow) []domain.ChecklistRow {
	out := make([]domain.ChecklistRow, len(rows))
	for i, r := range rows {
		r.Selected = s.IsSelected(r)
		out[i] = r
	}
	return out
}

// UnknownKeys returns the selection keys that name none of rows, sorted.
func (s Selection) UnknownKeys(rows []domain.ChecklistRow) []string {
	known := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		known[r.Key()] = struct{}{}
	}
	var unknown []string
	for key := range s {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// FilterRequired keeps only required rows, preserving order.
func FilterRequired(rows []domain.ChecklistRow) []domain.ChecklistRow {
	out := make([]domain.ChecklistRow, 0, len(rows))
	for _, r := range rows {
		if r.Relevance == domain.RelevanceRequired {
			out = append(out, r)
		}
	}
	return out
}

// Visible returns the rows offered to the user for toggling.
func Visible(rows []domain.ChecklistRow, showOnlyRequired bool) []domain.ChecklistRow {
	if showOnlyRequired {
		return FilterRequired(rows)
	}
	out := make([]domain.ChecklistRow, len(rows))
	copy(out, rows)
	return out
}

// ExportSet returns the visible rows the user has selected. When nothing is
// selected it falls back to every visible row, so an export is never empty
// unless the visible list is.
func ExportSet(rows []domain.ChecklistRow, showOnlyRequired bool, sel Selection) []domain.ChecklistRow {
	visible := Visible(rows, showOnlyRequired)

	chosen := make([]domain.ChecklistRow, 0, len(visible))
	for _, r := range visible {
		if sel.IsSelected(r) {
			r.Selected = true
			chosen = append(chosen, r)
		}
	}
	if len(chosen) == 0 {
		return sel.Apply(visible)
	}
	return chosen
}

// Tally counts rows by relevance.
func Tally(rows []domain.ChecklistRow) domain.Counts {
	var c domain.Counts
	for _, r := range rows {
		switch r.Relevance {
		case domain.RelevanceRequired:
			c.Required++
		case domain.RelevanceRecommended:
			c.Recommended++
		case domain.RelevanceDefer:
			c.Defer++
		}
	}
	return c
}
