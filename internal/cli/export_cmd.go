package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/cmcplan/internal/cli/formatter"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/export"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const formatAll = "all"

func newExportCmd(app *App) *cobra.Command {
	var (
		modality     string
		stage        string
		requiredOnly bool
		details      bool
		format       = formatFlag{raw: formatAll, formats: export.Formats()}
		outDir       string
		toStdout     bool
		sel          selectionFlags
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected deliverables as CSV and/or Markdown",
		Long: `Export writes the selected deliverables of a checklist to files named
CMC_Milestones_<modality>_<stage>_<date>.<ext>. Required deliverables are
selected by default; adjust with --select and --deselect using row keys of
the form "Category/Deliverable". When nothing visible is selected, every
visible deliverable is exported.`,
		Example: `  cmcplan export -m mab -s phase-1
  cmcplan export -m gene -s bla-maa --format md --stdout
  cmcplan export -m mab -s phase-1 --select "Manufacturing & Quality Systems/PPQ & APV strategy (phase-appropriate)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := format.formats
			if toStdout && len(formats) != 1 {
				return errors.New("--stdout needs a single --format (csv or md)")
			}

			selection, err := resolveSelection(cmd.Context(), app, modality, stage, sel)
			if err != nil {
				return err
			}

			req := contract.NewExportRequest(modality, stage)
			req.ShowOnlyRequired = requiredOnly
			req.ShowDetails = details
			req.Selection = selection
			req.Formats = formats

			resp, err := app.Checklist.Export(cmd.Context(), req)
			if err != nil {
				return err
			}

			if toStdout {
				_, err := cmd.OutOrStdout().Write(resp.Artifacts[0].Data)
				return err
			}

			if !cmd.Flags().Changed("out") {
				outDir = app.config().Export.Dir
			}
			paths, err := writeArtifacts(outDir, resp.Artifacts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExportResult(resp, paths))
			return nil
		},
	}

	addTargetFlags(cmd, &modality, &stage)
	cmd.Flags().BoolVar(&requiredOnly, "required-only", false, "limit the export to required deliverables")
	cmd.Flags().BoolVar(&details, "details", true, "include deliverable details in Markdown")
	cmd.Flags().VarP(&format, "format", "f", "export format: csv, md or all")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write files to (default from config)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print a single format to stdout instead of writing files")
	cmd.Flags().StringArrayVar(&sel.selectKeys, "select", nil, "select a deliverable by key (repeatable)")
	cmd.Flags().StringArrayVar(&sel.deselectKeys, "deselect", nil, "deselect a deliverable by key (repeatable)")
	cmd.Flags().BoolVar(&sel.deselectAll, "deselect-all", false, "start from an empty selection")
	_ = cmd.MarkFlagRequired("modality")
	_ = cmd.MarkFlagRequired("stage")

	return cmd
}

// parseFormatFlag maps --format to export formats; "all" means every format.
func parseFormatFlag(value string) ([]export.Format, error) {
	if strings.EqualFold(strings.TrimSpace(value), formatAll) {
		return export.Formats(), nil
	}
	f, err := export.ParseFormat(value)
	if err != nil {
		return nil, err
	}
	return []export.Format{f}, nil
}

// formatFlag is a pflag.Value that validates --format while flags are parsed.
type formatFlag struct {
	raw     string
	formats []export.Format
}

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return f.raw }

func (f *formatFlag) Set(value string) error {
	formats, err := parseFormatFlag(value)
	if err != nil {
		return err
	}
	f.raw, f.formats = value, formats
	return nil
}

func (f *formatFlag) Type() string { return "format" }

// writeArtifacts writes each artifact under dir with a filesystem-safe name
// and returns the written paths in order.
func writeArtifacts(dir string, artifacts []export.Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, export.SafeFileName(a.FileName))
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
