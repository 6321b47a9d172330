package cli

import (
	"github.com/alexanderramin/cmcplan/internal/cli/formatter"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// cmcHuhTheme returns a huh theme matching the Gruvbox formatter palette.
func cmcHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func modalityOptions(mods []contract.ModalityInfo) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(mods))
	for _, m := range mods {
		options = append(options, huh.NewOption(string(m.Modality), string(m.Modality)))
	}
	return options
}

func stageOptions() []huh.Option[string] {
	stages := domain.Stages()
	options := make([]huh.Option[string], 0, len(stages))
	for _, s := range stages {
		options = append(options, huh.NewOption(string(s), string(s)))
	}
	return options
}

// newPickerForm asks for whichever of modality and stage is still empty.
// It returns nil when both are already set.
func newPickerForm(mods []contract.ModalityInfo, modality, stage *string) *huh.Form {
	var fields []huh.Field
	if *modality == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Product modality").
			Description("Which product are you planning for?").
			Options(modalityOptions(mods)...).
			Value(modality))
	}
	if *stage == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Development stage").
			Description("Deliverables are scoped to this milestone.").
			Options(stageOptions()...).
			Value(stage))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(cmcHuhTheme())
}
