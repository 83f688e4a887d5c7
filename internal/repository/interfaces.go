package repository

import (
	"context"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

// RunRepo persists series runs together with their item baselines and
// daily rows.
type RunRepo interface {
	Create(ctx context.Context, run *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	// List returns run headers (no items or rows), newest first.
	List(ctx context.Context, sprintID *int64, limit int) ([]*domain.Run, error)
	Delete(ctx context.Context, id string) error
}
