package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RelevanceColor returns the lipgloss style for a relevance level.
func RelevanceColor(rel domain.Relevance) lipgloss.Style {
	switch rel {
	case domain.RelevanceRequired:
		return StyleRed
	case domain.RelevanceRecommended:
		return StyleYellow
	case domain.RelevanceDefer:
		return StyleDim
	default:
		return StyleFg
	}
}

// RelevancePill returns a colored relevance indicator such as "● required".
func RelevancePill(rel domain.Relevance) string {
	style := RelevanceColor(rel)
	switch rel {
	case domain.RelevanceRequired:
		return style.Render("● required")
	case domain.RelevanceRecommended:
		return style.Render("◐ recommended")
	case domain.RelevanceDefer:
		return style.Render("○ defer")
	default:
		return style.Render(string(rel))
	}
}

// RigorBadge renders the rigor label in a color that tracks maturity.
func RigorBadge(rigor domain.Rigor) string {
	switch rigor {
	case domain.RigorValidated:
		return StyleGreen.Render(string(rigor))
	case domain.RigorQualified:
		return StyleBlue.Render(string(rigor))
	case domain.RigorExploratory:
		return StylePurple.Render(string(rigor))
	default:
		return StyleFg.Render(string(rigor))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
