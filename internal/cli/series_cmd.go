package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/sprintburn/internal/cli/formatter"
	"github.com/alexanderramin/sprintburn/internal/contract"
	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/export"
	"github.com/alexanderramin/sprintburn/internal/timeparse"
)

type seriesFlags struct {
	sprintID      int64
	boardID       int64
	spentBy       string
	remainingMode string
	now           string
}

func (f *seriesFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.sprintID, "sprint", 0, "Sprint ID")
	cmd.Flags().Int64Var(&f.boardID, "board", 0, "Board ID; uses the board's active sprint")
	cmd.Flags().StringVar(&f.spentBy, "spent-by", string(domain.SpentByStarted), "Work-log instant that picks the day: started or created")
	cmd.Flags().StringVar(&f.remainingMode, "remaining-mode", string(domain.RemainingWithReestimate), "burn_only or with_reestimate")
}

// request builds a validated series request for sprintID.
func (f *seriesFlags) request(app *App, sprintID int64) (contract.SeriesRequest, error) {
	req := contract.NewSeriesRequest(sprintID)
	spentBy, err := domain.ParseSpentBy(f.spentBy)
	if err != nil {
		return req, err
	}
	mode, err := domain.ParseRemainingMode(f.remainingMode)
	if err != nil {
		return req, err
	}
	req.SpentBy = spentBy
	req.RemainingMode = mode

	now := app.now()
	if f.now != "" {
		if now, err = timeparse.Parse(f.now); err != nil {
			return req, fmt.Errorf("invalid --now: %w", err)
		}
	}
	req.Now = &now
	return req, nil
}

func newSeriesCmd(app *App) *cobra.Command {
	var (
		sf       seriesFlags
		csvPath  string
		htmlPath string
		save     bool
		items    bool
		details  bool
	)

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Compute a sprint's daily burndown series",
		Example: `  sprintburn series --sprint 42
  sprintburn series --board 7 --remaining-mode burn_only --csv burndown.csv
  sprintburn series --sprint 42 --html burndown.html --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireJira(); err != nil {
				return err
			}
			if save {
				if err := app.requireRuns(); err != nil {
					return err
				}
			}
			sprintID, err := resolveSprintID(cmd, app, sf.sprintID, sf.boardID)
			if err != nil {
				return err
			}
			req, err := sf.request(app, sprintID)
			if err != nil {
				return err
			}

			stop := app.spinner(cmd, fmt.Sprintf("Reading sprint %d from Jira", sprintID))
			resp, err := app.Series.ComputeDailySeries(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSeries(resp, formatter.SeriesOptions{
				Items:    items,
				Details:  details,
				Location: app.location(),
			}))

			if err := exportSeries(out, csvPath, htmlPath, resp.Rows, resp.Ideal, chartLabels(resp.Sprint.Name, resp.SpentBy, resp.RemainingMode, resp.Timezone)); err != nil {
				return err
			}
			if save {
				run, err := app.Runs.Save(cmd.Context(), resp)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved run %s\n", run.ID)
			}
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVar(&sf.now, "now", "", "Clock used to close an open sprint (ISO-8601)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the series as CSV to this path")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Also write an HTML chart to this path")
	cmd.Flags().BoolVar(&save, "save", false, "Store the run in the local run store")
	cmd.Flags().BoolVar(&items, "items", false, "Show per-item baselines")
	cmd.Flags().BoolVar(&details, "details", false, "List each day's spent time and re-estimates")

	return cmd
}

func chartLabels(sprint string, spentBy domain.SpentBy, mode domain.RemainingMode, tz string) export.ChartLabels {
	return export.ChartLabels{Sprint: sprint, SpentBy: spentBy, RemainingMode: mode, Timezone: tz}
}

// exportSeries writes the optional CSV and HTML files and reports them on out.
func exportSeries(out io.Writer, csvPath, htmlPath string, rows []domain.DailyRow, ideal []float64, labels export.ChartLabels) error {
	if csvPath != "" {
		if err := writeFile(csvPath, func(w io.Writer) error { return export.WriteCSV(w, rows) }); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", csvPath)
	}
	if htmlPath != "" {
		if err := writeFile(htmlPath, func(w io.Writer) error { return export.WriteChart(w, rows, ideal, labels) }); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", htmlPath)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return write(f)
}
