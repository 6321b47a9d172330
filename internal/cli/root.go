package cli

import (
	"log/slog"

	"github.com/alexanderramin/cmcplan/internal/config"
	"github.com/alexanderramin/cmcplan/internal/metrics"
	"github.com/alexanderramin/cmcplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Checklist service.ChecklistService
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *metrics.Metrics

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Wire fills the fields above once flags are parsed. serving is true for
	// the serve command, which always logs. Nil when the App is assembled by hand.
	Wire func(a *App, configPath string, serving bool) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		a.Config = config.Default()
	}
	return a.Config
}

// NewRootCmd creates the top-level "cmcplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "cmcplan",
		Short:         "CMC milestone checklist generator",
		Long:          "Build phase-appropriate CMC deliverable checklists by modality and development stage, and export them as CSV or Markdown.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.Wire == nil {
				return nil
			}
			return app.Wire(app, configPath, cmd.Name() == "serve")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.interactive() {
				return runChecklistTUI(cmd, app, "", "")
			}
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")

	root.AddCommand(
		newModalitiesCmd(app),
		newStagesCmd(app),
		newChecklistCmd(app),
		newExportCmd(app),
		newTUICmd(app),
		newTemplateCmd(app),
		newServeCmd(app),
	)

	return root
}
