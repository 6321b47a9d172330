package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Checkbox renders a selection marker.
func Checkbox(selected bool) string {
	if selected {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}

// CountsCaption renders the per-relevance tally shown under a checklist.
func CountsCaption(c domain.Counts) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		StyleRed.Render(fmt.Sprintf("Required: %d", c.Required)),
		StyleYellow.Render(fmt.Sprintf("Recommended: %d", c.Recommended)),
		StyleDim.Render(fmt.Sprintf("Defer: %d", c.Defer)),
		Dim(fmt.Sprintf("(%d shown)", c.Total())),
	)
}

// StageBadge renders a stage label with its slug.
func StageBadge(s domain.Stage) string {
	return StyleBlue.Render(string(s)) + " " + Dim("("+s.Slug()+")")
}

// ModalityBadge renders a modality label with its alias key.
func ModalityBadge(m domain.Modality, key string) string {
	if key == "" {
		return StylePurple.Render(string(m))
	}
	return StylePurple.Render(string(m)) + " " + Dim("("+key+")")
}
