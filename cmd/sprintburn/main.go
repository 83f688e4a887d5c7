package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/sprintburn/internal/cli"
	"github.com/alexanderramin/sprintburn/internal/db"
	"github.com/alexanderramin/sprintburn/internal/jira"
	"github.com/alexanderramin/sprintburn/internal/logging"
	"github.com/alexanderramin/sprintburn/internal/metrics"
	"github.com/alexanderramin/sprintburn/internal/repository"
	"github.com/alexanderramin/sprintburn/internal/service"
	"github.com/alexanderramin/sprintburn/internal/timeparse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{Bootstrap: bootstrap}

	// Detect interactive terminal for pickers and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// bootstrap wires services from the loaded configuration. The run store is
// always available; Jira-backed services are only wired when the Jira
// settings validate, so stored runs stay readable offline.
func bootstrap(app *cli.App) (func(), error) {
	cfg := app.Config
	logger := logging.New(cfg.Log)
	app.Logger = logger
	app.Metrics = metrics.New()

	norm, err := timeparse.LoadNormalizer(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	cleanup := func() { database.Close() }

	// Wire repositories and unit of work for transactional saves
	runRepo := repository.NewSQLiteRunRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observers := []service.UseCaseObserver{
		service.NewLogUseCaseObserver(logger),
		app.Metrics,
	}
	app.Runs = service.NewRunService(runRepo, uow, observers...)

	if err := cfg.Validate(); err != nil {
		app.JiraErr = err
		return cleanup, nil
	}

	client, err := jira.NewClient(cfg.JiraClient(), jira.MultiObserver{jira.NewLogObserver(logger), app.Metrics})
	if err != nil {
		app.JiraErr = err
		return cleanup, nil
	}
	opts := service.SeriesOptions{Fields: cfg.FieldSet(), Workers: cfg.Workers}
	app.Series = service.NewSeriesService(client, client, norm, opts, observers...)
	app.Boards = service.NewBoardService(client)

	return cleanup, nil
}
