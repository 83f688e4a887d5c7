package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/sprintburn/internal/app"
	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/repository"
	"github.com/alexanderramin/sprintburn/internal/service"
	"github.com/alexanderramin/sprintburn/internal/testutil"
	"github.com/alexanderramin/sprintburn/internal/timeparse"
)

var bangkok = time.FixedZone("ICT", 7*3600)

func at(day, hour int) time.Time {
	return time.Date(2024, 5, day, hour, 0, 0, 0, bangkok)
}

type harness struct {
	tracker *testutil.FakeTracker
	series  service.SeriesService
	boards  service.BoardService
	runs    service.RunService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	f := testutil.NewFakeTracker()
	f.AddSprint(1, 10, "Old", at(1, 9), at(3, 18), "SB-1")
	f.AddSprint(2, 10, "Current", at(6, 9), time.Time{}, "SB-1")
	f.SetItem("SB-1", testutil.FakeItem{
		Current: domain.Estimates{Original: 7200, Remaining: 7200},
		WorkLog: []domain.WorkLogEntry{{Started: at(6, 10), Created: at(6, 10), Seconds: 3600}},
	})
	database := testutil.NewTestDB(t)
	return &harness{
		tracker: f,
		series:  service.NewSeriesService(f, f, timeparse.NewNormalizer(bangkok), service.DefaultSeriesOptions()),
		boards:  service.NewBoardService(f),
		runs:    service.NewRunService(repository.NewSQLiteRunRepo(database), testutil.NewTestUoW(database)),
	}
}

func (h *harness) watcher(t *testing.T, cfg WatchConfig) *Watcher {
	t.Helper()
	if cfg.Spec == "" {
		cfg.Spec = "0 * * * *"
	}
	w, err := NewWatcher(cfg, h.series, h.boards, h.runs, zerolog.Nop())
	require.NoError(t, err)
	w.now = func() time.Time { return at(7, 12) }
	return w
}

func TestRefreshOnce_StoresRun(t *testing.T) {
	h := newHarness(t)
	w := h.watcher(t, WatchConfig{SprintID: 1, RemainingMode: domain.RemainingBurnOnly})

	run, err := w.RefreshOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), run.SprintID)
	assert.Equal(t, domain.RemainingBurnOnly, run.RemainingMode)
	assert.Len(t, run.Rows, 3)
	assert.Same(t, run, w.Last())

	stored, err := h.runs.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRefreshOnce_ResolvesActiveSprint(t *testing.T) {
	h := newHarness(t)
	var seen []*domain.Run
	w := h.watcher(t, WatchConfig{BoardID: 10, OnRefresh: func(run *domain.Run, err error) {
		assert.NoError(t, err)
		seen = append(seen, run)
	}})

	run, err := w.RefreshOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), run.SprintID)
	assert.True(t, run.WindowOpen)
	// Open sprint ends at the watcher's clock.
	assert.Len(t, run.Rows, 2)
	assert.Equal(t, int64(3600), run.Rows[1].Remaining)
	assert.Len(t, seen, 1)
}

func TestRefreshOnce_FailureStoresNothing(t *testing.T) {
	h := newHarness(t)
	h.tracker.ErrKeys = fmt.Errorf("%w: 503", app.ErrCollaboratorUnavailable)
	var gotErr error
	w := h.watcher(t, WatchConfig{SprintID: 1, OnRefresh: func(_ *domain.Run, err error) { gotErr = err }})

	run, err := w.RefreshOnce(context.Background())

	assert.Nil(t, run)
	assert.ErrorIs(t, err, app.ErrCollaboratorUnavailable)
	assert.ErrorIs(t, gotErr, app.ErrCollaboratorUnavailable)
	assert.Nil(t, w.Last())
	stored, err := h.runs.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRefreshOnce_NoActiveSprint(t *testing.T) {
	h := newHarness(t)
	w := h.watcher(t, WatchConfig{BoardID: 99})

	_, err := w.RefreshOnce(context.Background())

	assert.ErrorIs(t, err, service.ErrNoActiveSprint)
}

func TestNewWatcher_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := NewWatcher(WatchConfig{Spec: "0 * * * *"}, h.series, h.boards, h.runs, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewWatcher(WatchConfig{Spec: "every minute", SprintID: 1}, h.series, h.boards, h.runs, zerolog.Nop())
	assert.ErrorContains(t, err, "invalid cron spec")

	_, err = NewWatcher(WatchConfig{Spec: "@hourly", BoardID: 10}, h.series, nil, h.runs, zerolog.Nop())
	assert.Error(t, err)
}

func TestWatcher_StartSchedulesNextRun(t *testing.T) {
	h := newHarness(t)
	w := h.watcher(t, WatchConfig{SprintID: 1, Spec: "@hourly", Location: time.UTC})
	assert.True(t, w.Next().IsZero())

	w.Start()
	defer w.Stop()

	next := w.Next()
	assert.False(t, next.IsZero())
	assert.Zero(t, next.Minute())
}
