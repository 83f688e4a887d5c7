package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/sprintburn/internal/cli/formatter"
)

func newBoardsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List the Jira boards visible to the configured account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireJira(); err != nil {
				return err
			}
			boards, err := app.Boards.Boards(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoards(boards))
			return nil
		},
	}
}

func newSprintsCmd(app *App) *cobra.Command {
	var (
		boardID int64
		states  []string
	)

	cmd := &cobra.Command{
		Use:   "sprints",
		Short: "List a board's sprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireJira(); err != nil {
				return err
			}
			sprints, err := app.Boards.Sprints(cmd.Context(), boardID, states...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSprints(sprints, app.location()))
			return nil
		},
	}

	cmd.Flags().Int64Var(&boardID, "board", 0, "Board ID")
	cmd.Flags().StringSliceVar(&states, "state", nil, "Filter by state: active, closed, future (comma separated)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}
