package cli

import (
	"fmt"

	"github.com/alexanderramin/cmcplan/internal/cli/formatter"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/spf13/cobra"
)

func newModalitiesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "modalities",
		Short: "List product modalities and their keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mods := app.Checklist.Modalities(cmd.Context())
			if len(mods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No modalities loaded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatModalityList(mods))
			return nil
		},
	}
}

func newStagesCmd(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List development stages and their slugs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStageList(domain.Stages()))
			return nil
		},
	}
}
