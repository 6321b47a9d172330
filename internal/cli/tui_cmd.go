package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	var modality, stage string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse, toggle and export a checklist interactively",
		Long: `Open the interactive checklist. Missing --modality or --stage values are
asked for first. Inside the checklist, space toggles a deliverable, r limits
the view to required deliverables, d shows details, m and s cycle modality
and stage, and e exports CSV and Markdown to the configured export directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecklistTUI(cmd, app, modality, stage)
		},
	}
	addTargetFlags(cmd, &modality, &stage)

	return cmd
}

// runChecklistTUI asks for missing inputs with a huh form, then runs the
// checklist program until the user quits.
func runChecklistTUI(cmd *cobra.Command, app *App, modality, stage string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if form := newPickerForm(app.Checklist.Modalities(ctx), &modality, &stage); form != nil {
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	model, err := newChecklistModel(ctx, app, modality, stage)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
