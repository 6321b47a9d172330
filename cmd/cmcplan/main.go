package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/cmcplan/internal/cli"
	"github.com/alexanderramin/cmcplan/internal/config"
	"github.com/alexanderramin/cmcplan/internal/logging"
	"github.com/alexanderramin/cmcplan/internal/metrics"
	"github.com/alexanderramin/cmcplan/internal/service"
	"github.com/alexanderramin/cmcplan/internal/template"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{Wire: wire}

	// Detect interactive terminal for the bare "cmcplan" entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// wire loads configuration and builds the services once flags are parsed.
func wire(app *cli.App, configPath string, serving bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The TUI owns the terminal, so logs stay off unless asked for.
	logger := logging.Discard()
	if cfg.Log.Enabled || serving {
		logger = logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	}
	slog.SetDefault(logger)

	store, err := template.LoadStore(cfg.Templates.Dir)
	if err != nil {
		return fmt.Errorf("loading datasets: %w", err)
	}

	m := metrics.New(nil)

	app.Config = cfg
	app.Logger = logger
	app.Metrics = m
	app.Checklist = service.NewChecklistService(store, time.Now,
		service.NewLogUseCaseObserver(logger),
		m,
	)
	return nil
}
