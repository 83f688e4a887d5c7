package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/sprintburn/internal/burndown"
	"github.com/alexanderramin/sprintburn/internal/cli/formatter"
)

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect series runs stored with --save or by watch",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Cobra only runs the closest PersistentPreRunE, so chain to root.
			if root := cmd.Root(); root.PersistentPreRunE != nil {
				if err := root.PersistentPreRunE(cmd, args); err != nil {
					return err
				}
			}
			return app.requireRuns()
		},
	}

	cmd.AddCommand(
		newRunsListCmd(app),
		newRunsShowCmd(app),
		newRunsExportCmd(app),
		newRunsDeleteCmd(app),
	)

	return cmd
}

func newRunsListCmd(app *App) *cobra.Command {
	var sprintID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *int64
			if cmd.Flags().Changed("sprint") {
				filter = &sprintID
			}
			runs, err := app.Runs.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRuns(runs, app.now()))
			return nil
		},
	}

	cmd.Flags().Int64Var(&sprintID, "sprint", 0, "Only runs of this sprint")

	return cmd
}

func newRunsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRunID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			run, err := app.Runs.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRun(run, app.location()))
			return nil
		},
	}
}

func newRunsExportCmd(app *App) *cobra.Command {
	var csvPath, htmlPath string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a stored run as CSV and/or an HTML chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" && htmlPath == "" {
				return fmt.Errorf("nothing to export: pass --csv and/or --html")
			}
			id, err := resolveRunID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			run, err := app.Runs.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			labels := chartLabels(run.SprintName, run.SpentBy, run.RemainingMode, run.Timezone)
			return exportSeries(cmd.OutOrStdout(), csvPath, htmlPath, run.Rows, burndown.IdealRemaining(run.Rows), labels)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV output path")
	cmd.Flags().StringVar(&htmlPath, "html", "", "HTML chart output path")

	return cmd
}

func newRunsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRunID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Runs.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", id)
			return nil
		},
	}
}
