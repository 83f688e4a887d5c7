package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/sprintburn/internal/app"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

var (
	// ErrNoActiveSprint is returned when a board has no sprint in progress.
	ErrNoActiveSprint = errors.New("board has no active sprint")

	ErrInvalidSprintState = errors.New("invalid sprint state")
)

type boardService struct {
	dir app.BoardDirectory
}

func NewBoardService(dir app.BoardDirectory) BoardService {
	return &boardService{dir: dir}
}

func (s *boardService) Boards(ctx context.Context) ([]domain.Board, error) {
	boards, err := s.dir.Boards(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	return boards, nil
}

func (s *boardService) Sprints(ctx context.Context, boardID int64, states ...string) ([]domain.Sprint, error) {
	for _, st := range states {
		switch domain.SprintState(st) {
		case domain.SprintActive, domain.SprintClosed, domain.SprintFuture:
		default:
			return nil, fmt.Errorf("%w %q (want active, closed or future)", ErrInvalidSprintState, st)
		}
	}
	sprints, err := s.dir.Sprints(ctx, boardID, states...)
	if err != nil {
		return nil, fmt.Errorf("listing sprints of board %d: %w", boardID, err)
	}
	return sprints, nil
}

// ActiveSprint picks the board's active sprint. When several are active
// (parallel sprints) the most recently started wins.
func (s *boardService) ActiveSprint(ctx context.Context, boardID int64) (domain.Sprint, error) {
	sprints, err := s.Sprints(ctx, boardID, string(domain.SprintActive))
	if err != nil {
		return domain.Sprint{}, err
	}
	var best *domain.Sprint
	for i := range sprints {
		sp := &sprints[i]
		if best == nil || startsAfter(sp, best) {
			best = sp
		}
	}
	if best == nil {
		return domain.Sprint{}, fmt.Errorf("board %d: %w", boardID, ErrNoActiveSprint)
	}
	return *best, nil
}

func startsAfter(a, b *domain.Sprint) bool {
	switch {
	case a.StartDate == nil:
		return false
	case b.StartDate == nil:
		return true
	}
	return a.StartDate.After(*b.StartDate)
}
