package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/sprintburn/internal/app"
	"github.com/alexanderramin/sprintburn/internal/burndown"
	"github.com/alexanderramin/sprintburn/internal/contract"
	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/testutil"
)

func TestComputeDailySeries_BurnOnlyAndWithReestimate(t *testing.T) {
	f := scenarioTracker()
	svc := NewSeriesService(f, f, newNormalizer(), DefaultSeriesOptions())
	ctx := context.Background()

	req := contract.NewSeriesRequest(1)
	req.RemainingMode = domain.RemainingBurnOnly
	burn, err := svc.ComputeDailySeries(ctx, req)
	require.NoError(t, err)

	req.RemainingMode = domain.RemainingWithReestimate
	withRe, err := svc.ComputeDailySeries(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, domain.BaselineTotal{Original: 28800, Remaining: 28800}, burn.Baseline)
	assert.Equal(t, []int64{14400, 14400, 7200}, remainingOf(burn.Rows))
	assert.Equal(t, []int64{14400, 18000, 10800}, remainingOf(withRe.Rows))
	assert.Equal(t, app.DateSpan{Start: testutil.Day(2024, 5, 1), End: testutil.Day(2024, 5, 3)}, withRe.Range)
	assert.Equal(t, "Sprint 1", withRe.Sprint.Name)
	assert.Equal(t, "ICT", withRe.Timezone)
	assert.Equal(t, []float64{14400, 7200, 0}, withRe.Ideal)
	assert.Len(t, withRe.Changes, 3)
	assert.Empty(t, withRe.Warnings)
}

func TestComputeDailySeries_SpentByCreated(t *testing.T) {
	f := scenarioTracker()
	f.SetItem("SB-1", testutil.FakeItem{
		Current: domain.Estimates{Original: 28800, Remaining: 28800},
		WorkLog: []domain.WorkLogEntry{
			// Performed on day 1, recorded on day 2.
			worklog(at(1, 10), at(2, 9), 3600),
		},
	})
	svc := NewSeriesService(f, nil, newNormalizer(), DefaultSeriesOptions())

	req := contract.NewSeriesRequest(1)
	req.SpentBy = domain.SpentByCreated
	resp, err := svc.ComputeDailySeries(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []int64{0, 3600, 0}, []int64{resp.Rows[0].Spent, resp.Rows[1].Spent, resp.Rows[2].Spent})
	assert.Equal(t, int64(1), resp.Sprint.ID)
	assert.Empty(t, resp.Sprint.Name)
}

func TestComputeDailySeries_BucketsInReportingZone(t *testing.T) {
	f := scenarioTracker()
	f.SetItem("SB-1", testutil.FakeItem{
		Current: domain.Estimates{Remaining: 7200},
		WorkLog: []domain.WorkLogEntry{
			// 20:00 UTC on May 1 is already May 2 in Bangkok.
			worklog(time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC), time.Time{}, 1800),
		},
	})
	svc := NewSeriesService(f, nil, newNormalizer(), DefaultSeriesOptions())

	resp, err := svc.ComputeDailySeries(context.Background(), contract.NewSeriesRequest(1))

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Rows[0].Spent)
	assert.Equal(t, int64(1800), resp.Rows[1].Spent)
}

func TestComputeDailySeries_Idempotent(t *testing.T) {
	f := scenarioTracker()
	svc := NewSeriesService(f, f, newNormalizer(), DefaultSeriesOptions())
	req := contract.NewSeriesRequest(1)

	a, err := svc.ComputeDailySeries(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.ComputeDailySeries(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, a.Items, b.Items)
	assert.Equal(t, a.Changes, b.Changes)
}

func TestComputeDailySeries_IndependentOfWorkerCount(t *testing.T) {
	f := testutil.NewFakeTracker()
	var keys []string
	for i := 0; i < 25; i++ {
		key := fmt.Sprintf("SB-%d", i+1)
		keys = append(keys, key)
		base := int64(3600 * (i%5 + 1))
		f.SetItem(key, testutil.FakeItem{
			Current: domain.Estimates{Original: base, Remaining: base + int64(i*60)},
			History: []domain.ChangeEvent{
				originalChange(time.Date(2024, 4, 29, 9, 0, 0, 0, bangkok), 0, base),
				remainingChange(at(1+i%3, 12), base, base+int64(i*60)),
			},
			WorkLog: []domain.WorkLogEntry{
				worklog(at(1+i%3, 11), at(1+i%3, 11), int64(600*(i%4))),
			},
		})
	}
	f.AddSprint(1, 10, "Parallel", at(1, 9), at(3, 18), keys...)

	run := func(workers int) *contract.SeriesResponse {
		svc := NewSeriesService(f, nil, newNormalizer(), SeriesOptions{Fields: burndown.DefaultFieldSet(), Workers: workers})
		resp, err := svc.ComputeDailySeries(context.Background(), contract.NewSeriesRequest(1))
		require.NoError(t, err)
		return resp
	}
	serial := run(1)
	parallel := run(8)

	assert.Equal(t, serial.Baseline, parallel.Baseline)
	assert.Equal(t, serial.Rows, parallel.Rows)
	assert.Equal(t, serial.Items, parallel.Items)
	assert.Equal(t, serial.Changes, parallel.Changes)
	assert.Len(t, serial.Items, 25)
}

func TestComputeDailySeries_OpenSprintEndsAtNow(t *testing.T) {
	f := scenarioTracker()
	f.AddSprint(2, 10, "Running", at(1, 9), time.Time{}, "SB-1")
	svc := NewSeriesService(f, f, newNormalizer(), DefaultSeriesOptions())

	req := contract.NewSeriesRequest(2)
	now := at(2, 15)
	req.Now = &now
	resp, err := svc.ComputeDailySeries(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Window.Open)
	assert.Len(t, resp.Rows, 2)
	assert.Equal(t, testutil.Day(2024, 5, 2), resp.Range.End)
}

func TestComputeDailySeries_MissingWindowStart(t *testing.T) {
	f := scenarioTracker()
	f.ErrWindow = fmt.Errorf("sprint 1: %w", app.ErrMissingWindowStart)
	obs := &recordingUseCaseObserver{}
	svc := NewSeriesService(f, f, newNormalizer(), DefaultSeriesOptions(), obs)

	resp, err := svc.ComputeDailySeries(context.Background(), contract.NewSeriesRequest(1))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, app.ErrMissingWindowStart)
	var serr *app.SeriesError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, app.SeriesErrMissingWindowStart, serr.Code)
	assert.False(t, obs.last(t).Success)
}

func TestComputeDailySeries_CollaboratorFailureAbortsWholeRun(t *testing.T) {
	f := scenarioTracker()
	f.AddSprint(1, 10, "Sprint 1", at(1, 9), at(3, 18), "SB-1", "SB-2")
	f.SetItem("SB-2", testutil.FakeItem{})
	f.ErrHistory["SB-2"] = fmt.Errorf("%w: connection reset", app.ErrCollaboratorUnavailable)
	svc := NewSeriesService(f, f, newNormalizer(), DefaultSeriesOptions())

	resp, err := svc.ComputeDailySeries(context.Background(), contract.NewSeriesRequest(1))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, app.ErrCollaboratorUnavailable)
	assert.Contains(t, err.Error(), "SB-2")
}

func TestComputeDailySeries_InvalidRequest(t *testing.T) {
	f := scenarioTracker()
	svc := NewSeriesService(f, f, newNormalizer(), DefaultSeriesOptions())

	req := contract.NewSeriesRequest(1)
	req.RemainingMode = "sideways"
	_, err := svc.ComputeDailySeries(context.Background(), req)

	var serr *app.SeriesError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, app.SeriesErrInvalidRequest, serr.Code)
	assert.Zero(t, f.Calls.Load())
}

func TestComputeDailySeries_WarnsWhenFieldsNeverMatch(t *testing.T) {
	f := scenarioTracker()
	fields := burndown.FieldSet{OriginalIDs: []string{"customfield_1"}, RemainingIDs: []string{"customfield_2"}}
	obs := &recordingUseCaseObserver{}
	svc := NewSeriesService(f, f, newNormalizer(), SeriesOptions{Fields: fields, Workers: 2}, obs)

	resp, err := svc.ComputeDailySeries(context.Background(), contract.NewSeriesRequest(1))

	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "SB-1")
	// Nothing is reversed, so the baseline is the current value.
	assert.Equal(t, int64(32400), resp.Baseline.Remaining)
	ev := obs.last(t)
	assert.True(t, ev.Success)
	assert.Equal(t, 1, ev.Fields["items"])
}

func TestComputeDailySeries_EmptySprint(t *testing.T) {
	f := testutil.NewFakeTracker()
	f.AddSprint(5, 10, "Empty", at(1, 9), at(2, 9))
	svc := NewSeriesService(f, f, newNormalizer(), DefaultSeriesOptions())

	resp, err := svc.ComputeDailySeries(context.Background(), contract.NewSeriesRequest(5))

	require.NoError(t, err)
	assert.Len(t, resp.Rows, 2)
	assert.Equal(t, domain.BaselineTotal{}, resp.Baseline)
	assert.Empty(t, resp.Items)
}
