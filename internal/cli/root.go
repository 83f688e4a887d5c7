package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/sprintburn/internal/cli/formatter"
	"github.com/alexanderramin/sprintburn/internal/config"
	"github.com/alexanderramin/sprintburn/internal/metrics"
	"github.com/alexanderramin/sprintburn/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Series  service.SeriesService
	Boards  service.BoardService
	Runs    service.RunService
	Metrics *metrics.Registry
	Logger  zerolog.Logger
	Config  config.Config
	// JiraErr explains why Series and Boards are missing, if they are.
	JiraErr error

	// Bootstrap wires the services from app.Config once flags are parsed.
	// Tests leave it nil and inject services directly.
	Bootstrap     func(app *App) (cleanup func(), err error)
	// IsInteractive reports whether pickers and spinners may be shown.
	IsInteractive func() bool
	Now           func() time.Time
}

type rootFlags struct {
	configPath string
	timezone   string
	workers    int
	dbPath     string
	logLevel   string
}

// apply copies explicitly set flags over the loaded configuration.
func (f *rootFlags) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("timezone") {
		cfg.Timezone = f.timezone
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("db") {
		cfg.DBPath = f.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
}

// NewRootCmd creates the top-level "sprintburn" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var (
		flags   rootFlags
		cleanup func()
	)

	root := &cobra.Command{
		Use:   "sprintburn",
		Short: "Daily sprint burndown series rebuilt from Jira changelogs",
		Long: `sprintburn rebuilds each sprint item's estimates as they stood when the
sprint started, then walks the sprint day by day with logged work and
re-estimates to produce the remaining-work series.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil {
				return nil
			}
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &cfg)
			app.Config = cfg
			cleanup, err = app.Bootstrap(app)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer func() {
				if cleanup != nil {
					cleanup()
				}
			}()
			return app.flushMetrics()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default ~/.sprintburn/config.toml)")
	pf.StringVar(&flags.timezone, "timezone", config.DefaultTimezone, "IANA timezone that defines calendar days")
	pf.IntVar(&flags.workers, "workers", 8, "Items read from Jira concurrently")
	pf.StringVar(&flags.dbPath, "db", "", "Run store path (default ~/.sprintburn/sprintburn.db)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	root.AddCommand(
		newSeriesCmd(app),
		newBoardsCmd(app),
		newSprintsCmd(app),
		newRunsCmd(app),
		newServeCmd(app),
		newWatchCmd(app),
	)

	return root
}

func (app *App) requireJira() error {
	if app.Series != nil && app.Boards != nil {
		return nil
	}
	if app.JiraErr != nil {
		return app.JiraErr
	}
	return errors.New("jira is not configured")
}

func (app *App) requireRuns() error {
	if app.Runs == nil {
		return errors.New("run store is not available")
	}
	return nil
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

// location is the reporting timezone used for display.
func (app *App) location() *time.Location {
	loc, err := time.LoadLocation(app.Config.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// spinner shows progress on stderr for interactive sessions only.
func (app *App) spinner(cmd *cobra.Command, message string) func() {
	if !app.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}

func (app *App) flushMetrics() error {
	if app.Metrics == nil || app.Config.Metrics.Textfile == "" {
		return nil
	}
	if err := app.Metrics.WriteTextfile(app.Config.Metrics.Textfile); err != nil {
		return fmt.Errorf("flushing metrics: %w", err)
	}
	return nil
}
