package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cmcplan/internal/checklist"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/domain"
)

// detailsWidth caps the DETAILS column of the checklist table.
const detailsWidth = 60

// FormatModalityList renders the loaded modalities inside a bordered box.
func FormatModalityList(mods []contract.ModalityInfo) string {
	headers := []string{"MODALITY", "KEY", "DELIVERABLES"}
	rows := make([][]string, 0, len(mods))
	for _, m := range mods {
		rows = append(rows, []string{
			Bold(string(m.Modality)),
			StylePurple.Render(m.Key),
			Dim(strconv.Itoa(m.Deliverables)),
		})
	}
	return RenderBox("Modalities", RenderTable(headers, rows))
}

// FormatStageList renders the development stages in display order.
func FormatStageList(stages []domain.Stage) string {
	headers := []string{"#", "STAGE", "SLUG"}
	rows := make([][]string, 0, len(stages))
	for i, s := range stages {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			Bold(string(s)),
			StyleBlue.Render(s.Slug()),
		})
	}
	return RenderBox("Stages", RenderTable(headers, rows))
}

// FormatChecklist renders checklist rows grouped by category, with the
// category shown once per group, followed by a counts caption.
func FormatChecklist(resp *contract.ChecklistResponse, showDetails bool) string {
	var b strings.Builder

	b.WriteString(Header("CMC Milestone Checklist"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("MODALITY"), Bold(string(resp.Modality)))
	fmt.Fprintf(&b, "  %s     %s\n\n", StyleDim.Render("STAGE"), StageBadge(resp.Stage))

	if len(resp.Rows) == 0 {
		b.WriteString(Dim("  No deliverables match the current filter.") + "\n")
		return b.String()
	}

	headers := []string{"", "CATEGORY", "DELIVERABLE", "RELEVANCE", "RIGOR"}
	if showDetails {
		headers = append(headers, "DETAILS")
	}
	rows := make([][]string, 0, len(resp.Rows))
	for _, g := range checklist.GroupByCategory(resp.Rows) {
		for i, r := range g.Rows {
			category := ""
			if i == 0 {
				category = StyleHeader.Render(g.Category)
			}
			row := []string{
				Checkbox(r.Selected),
				category,
				Bold(r.Deliverable),
				RelevancePill(r.Relevance),
				RigorBadge(r.Rigor),
			}
			if showDetails {
				row = append(row, Dim(Truncate(r.Details, detailsWidth)))
			}
			rows = append(rows, row)
		}
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(CountsCaption(resp.Counts))
	b.WriteString("\n")
	return b.String()
}

// FormatExportResult lists written artifact paths.
func FormatExportResult(resp *contract.ExportResponse, paths []string) string {
	var b strings.Builder
	noun := "deliverables"
	if len(resp.Rows) == 1 {
		noun = "deliverable"
	}
	fmt.Fprintf(&b, "%s %d %s for %s at %s\n",
		StyleGreen.Render("✔ Exported"), len(resp.Rows), noun,
		Bold(string(resp.Modality)), StyleBlue.Render(string(resp.Stage)))
	for _, p := range paths {
		fmt.Fprintf(&b, "  %s %s\n", Dim("→"), p)
	}
	return b.String()
}

// FormatValidation renders dataset validation results for one file.
func FormatValidation(path string, errs []error) string {
	if len(errs) == 0 {
		return fmt.Sprintf("%s %s\n", StyleGreen.Render("✔"), path)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", StyleRed.Render("✖"), path,
		Dim(fmt.Sprintf("(%d problems)", len(errs))))
	for _, err := range errs {
		fmt.Fprintf(&b, "    %s %s\n", StyleRed.Render("•"), err)
	}
	return b.String()
}
