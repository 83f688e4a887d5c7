package cli

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/sprintburn/internal/cli/formatter"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

// sprintburnHuhTheme returns a huh theme matching the formatter palette.
func sprintburnHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// pickSprint asks for a board and then one of its active or closed sprints.
func pickSprint(ctx context.Context, app *App) (int64, error) {
	boards, err := app.Boards.Boards(ctx)
	if err != nil {
		return 0, err
	}
	if len(boards) == 0 {
		return 0, errors.New("no boards visible to this account")
	}

	var boardID int64
	if err := selectForm("Board", boardOptions(boards), &boardID).RunWithContext(ctx); err != nil {
		return 0, pickError(err)
	}

	sprints, err := app.Boards.Sprints(ctx, boardID, string(domain.SprintActive), string(domain.SprintClosed))
	if err != nil {
		return 0, err
	}
	if len(sprints) == 0 {
		return 0, fmt.Errorf("board %d has no active or closed sprints", boardID)
	}

	var sprintID int64
	if err := selectForm("Sprint", sprintOptions(sprints), &sprintID).RunWithContext(ctx); err != nil {
		return 0, pickError(err)
	}
	return sprintID, nil
}

func selectForm(title string, options []huh.Option[int64], value *int64) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title(title).
				Options(options...).
				Value(value),
		),
	).WithTheme(sprintburnHuhTheme()).WithShowHelp(false)
}

func boardOptions(boards []domain.Board) []huh.Option[int64] {
	opts := make([]huh.Option[int64], len(boards))
	for i, b := range boards {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (#%d)", b.Name, b.ID), b.ID)
	}
	return opts
}

// sprintOptions lists active sprints first, then the rest by latest start.
func sprintOptions(sprints []domain.Sprint) []huh.Option[int64] {
	sorted := slices.Clone(sprints)
	slices.SortStableFunc(sorted, func(a, b domain.Sprint) int {
		if (a.State == domain.SprintActive) != (b.State == domain.SprintActive) {
			if a.State == domain.SprintActive {
				return -1
			}
			return 1
		}
		return cmp.Compare(startUnix(b), startUnix(a))
	})
	opts := make([]huh.Option[int64], len(sorted))
	for i, s := range sorted {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (#%d, %s)", s.Name, s.ID, s.State), s.ID)
	}
	return opts
}

func startUnix(s domain.Sprint) int64 {
	if s.StartDate == nil {
		return 0
	}
	return s.StartDate.Unix()
}

func pickError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("selection cancelled")
	}
	return err
}
