package cli

import (
	"fmt"

	"github.com/alexanderramin/cmcplan/internal/cli/formatter"
	"github.com/alexanderramin/cmcplan/internal/template"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Work with modality datasets",
	}

	cmd.AddCommand(
		newTemplateValidateCmd(app),
	)

	return cmd
}

func newTemplateValidateCmd(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check modality dataset files for missing stages and bad values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				var errs []error
				schema, err := template.LoadSchema(path)
				if err != nil {
					errs = []error{err}
				} else {
					errs = template.ValidateSchema(schema)
				}
				if len(errs) > 0 {
					invalid++
				}
				fmt.Fprint(out, formatter.FormatValidation(path, errs))
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d datasets invalid", invalid, len(args))
			}
			return nil
		},
	}
}
