package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/sprintburn/internal/repository"
)

// resolveRunID accepts a full run id or an unambiguous prefix of one.
func resolveRunID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("run ID is required")
	}

	// 1. Exact match
	if _, err := app.Runs.Get(ctx, input); err == nil {
		return input, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	// 2. Prefix match
	runs, err := app.Runs.List(ctx, nil)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, r := range runs {
		if strings.HasPrefix(r.ID, strings.ToLower(input)) {
			matches = append(matches, r.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("run not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("run ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveSprintID picks the sprint a command works on: an explicit --sprint,
// the active sprint of --board, or an interactive choice.
func resolveSprintID(cmd *cobra.Command, app *App, sprintID, boardID int64) (int64, error) {
	ctx := cmd.Context()
	switch {
	case sprintID > 0:
		return sprintID, nil
	case boardID > 0:
		sp, err := app.Boards.ActiveSprint(ctx, boardID)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Using active sprint %q (#%d)\n", sp.Name, sp.ID)
		return sp.ID, nil
	case app.interactive():
		return pickSprint(ctx, app)
	}
	return 0, errors.New("--sprint or --board is required when not running in a terminal")
}
