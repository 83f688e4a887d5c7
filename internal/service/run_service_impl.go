package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/sprintburn/internal/app"
	"github.com/alexanderramin/sprintburn/internal/db"
	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/repository"
)

const runListLimit = 200

type runService struct {
	runs     repository.RunRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewRunService(runs repository.RunRepo, uow db.UnitOfWork, observers ...UseCaseObserver) RunService {
	return &runService{
		runs:     runs,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Save stores a computed series as a new run. The header, item baselines
// and rows are written in one transaction.
func (s *runService) Save(ctx context.Context, resp *app.SeriesResponse) (run *domain.Run, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "save-run",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if resp == nil {
		return nil, fmt.Errorf("nothing to save")
	}
	run = RunFromSeries(resp)
	run.ID = uuid.New().String()
	run.CreatedAt = startedAt
	fields["run_id"] = run.ID
	fields["sprint_id"] = run.SprintID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRunRepo(tx).Create(ctx, run)
	})
	if err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}
	return run, nil
}

func (s *runService) Get(ctx context.Context, id string) (*domain.Run, error) {
	return s.runs.GetByID(ctx, id)
}

func (s *runService) List(ctx context.Context, sprintID *int64) ([]*domain.Run, error) {
	return s.runs.List(ctx, sprintID, runListLimit)
}

func (s *runService) Delete(ctx context.Context, id string) error {
	return s.runs.Delete(ctx, id)
}

// RunFromSeries converts a series response into an unsaved run.
func RunFromSeries(resp *app.SeriesResponse) *domain.Run {
	return &domain.Run{
		SprintID:      resp.Sprint.ID,
		SprintName:    resp.Sprint.Name,
		SpentBy:       resp.SpentBy,
		RemainingMode: resp.RemainingMode,
		Timezone:      resp.Timezone,
		WindowStart:   resp.Window.Start,
		WindowEnd:     resp.Window.End,
		WindowOpen:    resp.Window.Open,
		Baseline:      resp.Baseline,
		ItemCount:     len(resp.Items),
		Warnings:      resp.Warnings,
		Items:         resp.Items,
		Rows:          resp.Rows,
	}
}
