package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/sprintburn/internal/cli/formatter"
	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/jobs"
)

func newWatchCmd(app *App) *cobra.Command {
	var (
		sf   seriesFlags
		spec string
		once bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute and store a sprint's series on a cron schedule",
		Long: `watch stores a run on every tick of the cron schedule. With --board the
board's active sprint is looked up on each tick, so the watch follows the
board from one sprint to the next.`,
		Example: `  sprintburn watch --board 7
  sprintburn watch --sprint 42 --cron "0 */2 * * *"
  sprintburn watch --board 7 --once`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireJira(); err != nil {
				return err
			}
			if err := app.requireRuns(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("cron") && app.Config.Watch.Cron != "" {
				spec = app.Config.Watch.Cron
			}
			spentBy, err := domain.ParseSpentBy(sf.spentBy)
			if err != nil {
				return err
			}
			mode, err := domain.ParseRemainingMode(sf.remainingMode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cfg := jobs.WatchConfig{
				Spec:          spec,
				Location:      app.location(),
				SprintID:      sf.sprintID,
				BoardID:       sf.boardID,
				SpentBy:       spentBy,
				RemainingMode: mode,
				Now:           app.now,
			}
			cfg.OnRefresh = func(run *domain.Run, err error) {
				if err == nil {
					fmt.Fprintf(out, "Stored run %s for %s (%s remaining)\n",
						run.ID, run.SprintName, formatter.Hours(lastRemaining(run)))
				}
				if ferr := app.flushMetrics(); ferr != nil {
					app.Logger.Warn().Err(ferr).Msg("watch: flushing metrics")
				}
			}
			w, err := jobs.NewWatcher(cfg, app.Series, app.Boards, app.Runs, app.Logger)
			if err != nil {
				return err
			}

			if _, err := w.RefreshOnce(cmd.Context()); err != nil {
				if once {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "First refresh failed: %v\n", err)
			}
			if once {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w.Start()
			fmt.Fprintf(out, "Watching on %q; next refresh %s\n", spec, formatter.WindowTime(w.Next(), app.location()))
			<-ctx.Done()
			w.Stop()
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVar(&spec, "cron", "0 * * * *", "Cron schedule (5 fields or a descriptor like @hourly)")
	cmd.Flags().BoolVar(&once, "once", false, "Refresh once and exit")

	return cmd
}

func lastRemaining(run *domain.Run) int64 {
	if len(run.Rows) == 0 {
		return 0
	}
	return run.Rows[len(run.Rows)-1].Remaining
}
