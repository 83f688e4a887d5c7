// Package jobs runs scheduled series refreshes.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/sprintburn/internal/contract"
	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/jira"
	"github.com/alexanderramin/sprintburn/internal/service"
)

const defaultRunTimeout = 5 * time.Minute

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// WatchConfig selects what a Watcher refreshes. With SprintID zero the
// board's active sprint is resolved on every tick.
type WatchConfig struct {
	Spec          string
	Location      *time.Location
	SprintID      int64
	BoardID       int64
	SpentBy       domain.SpentBy
	RemainingMode domain.RemainingMode
	RunTimeout    time.Duration
	// Now pins the clock used to close an open sprint. Nil means wall time.
	Now           func() time.Time
	// OnRefresh, when set, is called after every tick.
	OnRefresh     func(run *domain.Run, err error)
}

// Watcher recomputes a sprint's series on a cron schedule and stores each
// result as a run.
type Watcher struct {
	cfg    WatchConfig
	series service.SeriesService
	boards service.BoardService
	runs   service.RunService
	log    zerolog.Logger
	cron   *cron.Cron
	now    func() time.Time

	mu   sync.Mutex
	last *domain.Run
}

func NewWatcher(cfg WatchConfig, series service.SeriesService, boards service.BoardService, runs service.RunService, log zerolog.Logger) (*Watcher, error) {
	if cfg.SprintID <= 0 && cfg.BoardID <= 0 {
		return nil, errors.New("watch needs a sprint or a board")
	}
	if cfg.SprintID <= 0 && boards == nil {
		return nil, errors.New("watching a board needs a board directory")
	}
	if _, err := parser.Parse(cfg.Spec); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", cfg.Spec, err)
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}

	w := &Watcher{
		cfg:    cfg,
		series: series,
		boards: boards,
		runs:   runs,
		log:    log,
		now:    time.Now,
	}
	if cfg.Now != nil {
		w.now = cfg.Now
	}
	w.cron = cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{log: log})),
	)
	if _, err := w.cron.AddFunc(cfg.Spec, w.tick); err != nil {
		return nil, fmt.Errorf("scheduling %q: %w", cfg.Spec, err)
	}
	return w, nil
}

// Start runs the schedule in the background.
func (w *Watcher) Start() {
	w.log.Info().Str("cron", w.cfg.Spec).Int64("sprint_id", w.cfg.SprintID).Int64("board_id", w.cfg.BoardID).Msg("watch: started")
	w.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}

// Next reports when the next refresh is due.
func (w *Watcher) Next() time.Time {
	entries := w.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Last returns the most recently stored run, if any.
func (w *Watcher) Last() *domain.Run {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func (w *Watcher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.RunTimeout)
	defer cancel()
	_, _ = w.RefreshOnce(ctx)
}

// RefreshOnce computes and stores one run. Failures are logged; a Jira
// outage only postpones the refresh to the next tick.
func (w *Watcher) RefreshOnce(ctx context.Context) (run *domain.Run, err error) {
	defer func() {
		if w.cfg.OnRefresh != nil {
			w.cfg.OnRefresh(run, err)
		}
	}()

	sprintID := w.cfg.SprintID
	if sprintID <= 0 {
		sp, err := w.boards.ActiveSprint(ctx, w.cfg.BoardID)
		if err != nil {
			w.logFailure(err, "watch: resolving active sprint")
			return nil, err
		}
		sprintID = sp.ID
	}

	req := contract.NewSeriesRequest(sprintID)
	if w.cfg.SpentBy != "" {
		req.SpentBy = w.cfg.SpentBy
	}
	if w.cfg.RemainingMode != "" {
		req.RemainingMode = w.cfg.RemainingMode
	}
	now := w.now()
	req.Now = &now

	resp, err := w.series.ComputeDailySeries(ctx, req)
	if err != nil {
		w.logFailure(err, "watch: computing series")
		return nil, err
	}
	run, err = w.runs.Save(ctx, resp)
	if err != nil {
		w.logFailure(err, "watch: saving run")
		return nil, err
	}

	w.mu.Lock()
	w.last = run
	w.mu.Unlock()

	ev := w.log.Info()
	if len(resp.Warnings) > 0 {
		ev = w.log.Warn().Strs("warnings", resp.Warnings)
	}
	ev.Str("run_id", run.ID).
		Int64("sprint_id", sprintID).
		Int("items", run.ItemCount).
		Int("days", len(run.Rows)).
		Msg("watch: run stored")
	return run, nil
}

func (w *Watcher) logFailure(err error, msg string) {
	if jira.IsRetryable(err) {
		w.log.Warn().Err(err).Msg(msg + "; retrying on next tick")
		return
	}
	w.log.Error().Err(err).Msg(msg)
}

// cronLogger routes robfig/cron's own messages through zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
