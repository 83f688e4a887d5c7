package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/sprintburn/internal/app"
	"github.com/alexanderramin/sprintburn/internal/burndown"
	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/timeparse"
)

// SeriesOptions tunes the series computation.
type SeriesOptions struct {
	Fields  burndown.FieldSet
	Workers int
}

func DefaultSeriesOptions() SeriesOptions {
	return SeriesOptions{Fields: burndown.DefaultFieldSet(), Workers: 8}
}

type seriesService struct {
	tracker  app.Tracker
	sprints  app.BoardDirectory
	norm     *timeparse.Normalizer
	opts     SeriesOptions
	observer UseCaseObserver
}

// NewSeriesService builds the daily series use case. sprints is optional and
// only used to label the response with the sprint's name and state.
func NewSeriesService(
	tracker app.Tracker,
	sprints app.BoardDirectory,
	norm *timeparse.Normalizer,
	opts SeriesOptions,
	observers ...UseCaseObserver,
) SeriesService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if len(opts.Fields.OriginalIDs) == 0 && len(opts.Fields.RemainingIDs) == 0 {
		opts.Fields = burndown.DefaultFieldSet()
	}
	return &seriesService{
		tracker:  tracker,
		sprints:  sprints,
		norm:     norm,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

// itemResult is everything one item contributes to the sprint totals.
type itemResult struct {
	baseline domain.ItemBaseline
	spent    []domain.DailyChange
	deltas   []domain.DailyChange
	warning  string
}

func (s *seriesService) ComputeDailySeries(ctx context.Context, req app.SeriesRequest) (resp *app.SeriesResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"sprint_id":      req.SprintID,
		"spent_by":       string(req.SpentBy),
		"remaining_mode": string(req.RemainingMode),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "compute-daily-series",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = req.Validate(); err != nil {
		return nil, err
	}

	var window domain.SprintWindow
	window, err = s.tracker.SprintWindow(ctx, req.SprintID)
	if err != nil {
		if errors.Is(err, app.ErrMissingWindowStart) {
			return nil, &app.SeriesError{Code: app.SeriesErrMissingWindowStart, Message: err.Error()}
		}
		return nil, fmt.Errorf("loading sprint %d window: %w", req.SprintID, err)
	}
	if window.Open && req.Now != nil {
		window.End = *req.Now
	}

	var rng burndown.DateRange
	rng, err = burndown.NewDateRange(s.norm.Date(window.Start), s.norm.Date(window.End))
	if err != nil {
		return nil, &app.SeriesError{Code: app.SeriesErrInvalidRequest, Message: err.Error()}
	}

	sprint := domain.Sprint{ID: req.SprintID}
	if s.sprints != nil {
		if sprint, err = s.sprints.Sprint(ctx, req.SprintID); err != nil {
			return nil, fmt.Errorf("loading sprint %d: %w", req.SprintID, err)
		}
	}

	var keys []string
	keys, err = s.tracker.SprintItemKeys(ctx, req.SprintID)
	if err != nil {
		return nil, fmt.Errorf("listing sprint %d items: %w", req.SprintID, err)
	}
	fields["items"] = len(keys)

	results := make([]itemResult, len(keys))
	var (
		mu     sync.Mutex
		total  domain.BaselineTotal
		spent  = burndown.DailyAmounts{}
		deltas = burndown.DailyAmounts{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, key := range keys {
		g.Go(func() error {
			res, err := s.processItem(gctx, key, window.Start, rng, req.SpentBy)
			if err != nil {
				return fmt.Errorf("item %s: %w", key, err)
			}
			mu.Lock()
			defer mu.Unlock()
			results[i] = res
			total = total.Add(res.baseline)
			spent.Merge(burndown.SumByDate(res.spent))
			deltas.Merge(burndown.SumByDate(res.deltas))
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	rows := burndown.BuildSeries(rng, total, spent, deltas, req.RemainingMode)
	resp = &app.SeriesResponse{
		GeneratedAt:   s.norm.Now(),
		Sprint:        sprint,
		Window:        window,
		Range:         app.DateSpan{Start: rng.Start, End: rng.End},
		Baseline:      total,
		Items:         make([]domain.ItemBaseline, 0, len(results)),
		Rows:          rows,
		Ideal:         burndown.IdealRemaining(rows),
		SpentBy:       req.SpentBy,
		RemainingMode: req.RemainingMode,
		Timezone:      s.norm.Location().String(),
	}
	for _, res := range results {
		resp.Items = append(resp.Items, res.baseline)
		resp.Changes = append(resp.Changes, res.spent...)
		resp.Changes = append(resp.Changes, res.deltas...)
		if res.warning != "" {
			resp.Warnings = append(resp.Warnings, res.warning)
		}
	}
	slices.SortStableFunc(resp.Changes, func(a, b domain.DailyChange) int {
		if a.Date != b.Date {
			if a.Date.Before(b.Date) {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.ItemKey, b.ItemKey); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})

	fields["baseline_remaining"] = total.Remaining
	fields["days"] = len(rows)
	return resp, nil
}

// processItem reads one item's feeds once and derives its baseline and its
// bucketed changes.
func (s *seriesService) processItem(ctx context.Context, key string, reference time.Time, rng burndown.DateRange, policy domain.SpentBy) (itemResult, error) {
	current, err := s.tracker.CurrentEstimates(ctx, key)
	if err != nil {
		return itemResult{}, fmt.Errorf("current estimates: %w", err)
	}
	events, err := drain(s.tracker.ChangeHistory(ctx, key))
	if err != nil {
		return itemResult{}, fmt.Errorf("change history: %w", err)
	}
	entries, err := drain(s.tracker.WorkLog(ctx, key))
	if err != nil {
		return itemResult{}, fmt.Errorf("work log: %w", err)
	}

	res := itemResult{
		baseline: burndown.Reconstruct(key, current, events, reference, s.opts.Fields),
		spent:    burndown.SpentChanges(entries, rng, s.norm, policy),
		deltas:   burndown.ReestimateChanges(events, rng, s.norm, s.opts.Fields),
	}
	hasEstimate := current.Original != 0 || current.Remaining != 0
	if hasEstimate && len(events) > 0 && burndown.MatchingEdits(events, s.opts.Fields) == 0 {
		res.warning = fmt.Sprintf("%s: %d history records but none touch the configured estimate fields; check the field ids", key, len(events))
	}
	return res, nil
}

func drain[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
