package cli

import (
	"fmt"

	"github.com/alexanderramin/cmcplan/internal/cli/formatter"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/spf13/cobra"
)

// addTargetFlags registers the -m/-s pair shared by checklist commands.
func addTargetFlags(cmd *cobra.Command, modality, stage *string) {
	cmd.Flags().StringVarP(modality, "modality", "m", "", "modality label or key (see 'cmcplan modalities')")
	cmd.Flags().StringVarP(stage, "stage", "s", "", "stage label or slug (see 'cmcplan stages')")
}

func newChecklistCmd(app *App) *cobra.Command {
	var (
		modality     string
		stage        string
		requiredOnly bool
		details      bool
	)

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Show the deliverable checklist for a modality and stage",
		Example: `  cmcplan checklist -m gene -s pre-ind
  cmcplan checklist -m "Monoclonal Antibody (mAb)" -s "Phase 1" --required-only --details`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewChecklistRequest(modality, stage)
			req.ShowOnlyRequired = requiredOnly

			resp, err := app.Checklist.Checklist(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChecklist(resp, details))
			return nil
		},
	}

	addTargetFlags(cmd, &modality, &stage)
	cmd.Flags().BoolVar(&requiredOnly, "required-only", false, "show only required deliverables")
	cmd.Flags().BoolVar(&details, "details", false, "include deliverable details")
	_ = cmd.MarkFlagRequired("modality")
	_ = cmd.MarkFlagRequired("stage")

	return cmd
}
