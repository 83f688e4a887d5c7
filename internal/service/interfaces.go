package service

import (
	"context"

	"github.com/alexanderramin/sprintburn/internal/contract"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

type SeriesService interface {
	ComputeDailySeries(ctx context.Context, req contract.SeriesRequest) (*contract.SeriesResponse, error)
}

type BoardService interface {
	Boards(ctx context.Context) ([]domain.Board, error)
	Sprints(ctx context.Context, boardID int64, states ...string) ([]domain.Sprint, error)
	// ActiveSprint resolves the board's current sprint.
	ActiveSprint(ctx context.Context, boardID int64) (domain.Sprint, error)
}

type RunService interface {
	Save(ctx context.Context, resp *contract.SeriesResponse) (*domain.Run, error)
	Get(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context, sprintID *int64) ([]*domain.Run, error)
	Delete(ctx context.Context, id string) error
}
