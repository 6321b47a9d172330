package export

import (
	"strings"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

// Markdown renders the checklist as a heading followed by one bullet per row.
// Details are included only when showDetails is set and the row has any.
// Lines are joined with "\n" and there is no trailing newline.
func Markdown(modality domain.Modality, stage domain.Stage, rows []domain.ChecklistRow, showDetails bool) []byte {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, "# CMC Milestone Checklist — "+string(modality)+" — "+string(stage), "")

	for _, r := range rows {
		var b strings.Builder
		b.WriteString("- **" + r.Category + "** — **" + r.Deliverable + "**")
		if showDetails && r.Details != "" {
			b.WriteString(": " + r.Details)
		}
		b.WriteString(" _(Relevance: " + string(r.Relevance) + ", Rigor: " + string(r.Rigor) + ")_")
		lines = append(lines, b.String())
	}

	return []byte(strings.Join(lines, "\n"))
}
