package app

import (
	"context"
	"iter"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

// Tracker is the read-only view of the issue tracker the series needs.
// ChangeHistory and WorkLog are lazy; an error ends the sequence.
type Tracker interface {
	CurrentEstimates(ctx context.Context, itemKey string) (domain.Estimates, error)
	ChangeHistory(ctx context.Context, itemKey string) iter.Seq2[domain.ChangeEvent, error]
	WorkLog(ctx context.Context, itemKey string) iter.Seq2[domain.WorkLogEntry, error]
	SprintWindow(ctx context.Context, sprintID int64) (domain.SprintWindow, error)
	SprintItemKeys(ctx context.Context, sprintID int64) ([]string, error)
}

type BoardDirectory interface {
	Boards(ctx context.Context) ([]domain.Board, error)
	Sprints(ctx context.Context, boardID int64, states ...string) ([]domain.Sprint, error)
	Sprint(ctx context.Context, sprintID int64) (domain.Sprint, error)
}

type SeriesUseCase interface {
	ComputeDailySeries(ctx context.Context, req SeriesRequest) (*SeriesResponse, error)
}

type RunUseCase interface {
	Save(ctx context.Context, resp *SeriesResponse) (*domain.Run, error)
	Get(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context, sprintID *int64) ([]*domain.Run, error)
	Delete(ctx context.Context, id string) error
}
