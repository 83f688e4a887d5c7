package burndown

import (
	"testing"
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateRange_RejectsInverted(t *testing.T) {
	_, err := NewDateRange(day(2024, 5, 3), day(2024, 5, 1))
	require.Error(t, err)

	r, err := NewDateRange(day(2024, 5, 1), day(2024, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestDateRange_DaysCrossMonth(t *testing.T) {
	r := mustRange(day(2024, 2, 28), day(2024, 3, 2))

	assert.Equal(t, []domain.Date{
		day(2024, 2, 28), day(2024, 2, 29), day(2024, 3, 1), day(2024, 3, 2),
	}, r.Days())
	assert.True(t, r.Contains(day(2024, 2, 29)))
	assert.False(t, r.Contains(day(2024, 3, 3)))
	assert.False(t, r.Contains(day(2024, 2, 27)))
}

func TestManualReestimateDeltas_BucketsInReportingZone(t *testing.T) {
	rng := mustRange(day(2024, 5, 1), day(2024, 5, 3))
	events := []domain.ChangeEvent{
		// 2024-05-01 20:00 UTC is 2024-05-02 03:00 in Bangkok.
		event(time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC), change("timeestimate", 3600, 7200)),
		event(time.Date(2024, 5, 2, 10, 0, 0, 0, bangkok), change("timeestimate", 7200, 5400)),
		event(time.Date(2024, 5, 1, 10, 0, 0, 0, bangkok), change("timeoriginalestimate", 0, 9000)),
	}

	got := ManualReestimateDeltas(events, rng, norm, DefaultFieldSet())

	assert.Equal(t, DailyAmounts{day(2024, 5, 2): 1800}, got)
}

func TestManualReestimateDeltas_DropsOutOfRange(t *testing.T) {
	rng := mustRange(day(2024, 5, 1), day(2024, 5, 3))
	events := []domain.ChangeEvent{
		event(time.Date(2024, 4, 30, 23, 59, 0, 0, bangkok), change("timeestimate", 0, 100)),
		event(time.Date(2024, 5, 4, 0, 0, 0, 0, bangkok), change("timeestimate", 0, 100)),
		event(time.Date(2024, 5, 3, 23, 59, 59, 0, bangkok), change("timeestimate", 100, 40)),
	}

	got := ManualReestimateDeltas(events, rng, norm, DefaultFieldSet())

	assert.Equal(t, DailyAmounts{day(2024, 5, 3): -60}, got)
	assert.Equal(t, int64(-60), got.Total())
}

func TestReestimateChanges_OnePerRecord(t *testing.T) {
	rng := mustRange(day(2024, 5, 1), day(2024, 5, 1))
	ev := event(time.Date(2024, 5, 1, 12, 0, 0, 0, bangkok),
		change("timeestimate", 0, 100),
		change("Remaining Estimate", 100, 50))
	ev.Author = "dana"

	got := ReestimateChanges([]domain.ChangeEvent{ev}, rng, norm, DefaultFieldSet())

	require.Len(t, got, 2)
	assert.Equal(t, domain.ChangeReestimate, got[0].Kind)
	assert.Equal(t, "SB-1", got[0].ItemKey)
	assert.Equal(t, "dana", got[1].Author)
	assert.Equal(t, int64(100), got[0].Seconds)
	assert.Equal(t, int64(-50), got[1].Seconds)
}

func TestSpentByDay_PolicySelectsInstant(t *testing.T) {
	rng := mustRange(day(2024, 5, 1), day(2024, 5, 3))
	entries := []domain.WorkLogEntry{
		{
			ItemKey: "SB-1",
			Started: time.Date(2024, 5, 1, 9, 0, 0, 0, bangkok),
			Created: time.Date(2024, 5, 3, 18, 0, 0, 0, bangkok),
			Seconds: 3600,
		},
		{
			ItemKey: "SB-2",
			Started: time.Date(2024, 5, 2, 9, 0, 0, 0, bangkok),
			Created: time.Date(2024, 5, 2, 17, 0, 0, 0, bangkok),
			Seconds: 1800,
		},
	}

	started := SpentByDay(entries, rng, norm, domain.SpentByStarted)
	created := SpentByDay(entries, rng, norm, domain.SpentByCreated)

	assert.Equal(t, DailyAmounts{day(2024, 5, 1): 3600, day(2024, 5, 2): 1800}, started)
	assert.Equal(t, DailyAmounts{day(2024, 5, 2): 1800, day(2024, 5, 3): 3600}, created)
}

func TestSpentChanges_SkipsMissingInstantAndClampsNegative(t *testing.T) {
	rng := mustRange(day(2024, 5, 1), day(2024, 5, 3))
	entries := []domain.WorkLogEntry{
		{ItemKey: "SB-1", Created: time.Date(2024, 5, 1, 9, 0, 0, 0, bangkok), Seconds: 600},
		{ItemKey: "SB-1", Started: time.Date(2024, 5, 2, 9, 0, 0, 0, bangkok), Seconds: -300},
		{ItemKey: "SB-1", Started: time.Date(2024, 6, 2, 9, 0, 0, 0, bangkok), Seconds: 900},
	}

	got := SpentChanges(entries, rng, norm, domain.SpentByStarted)

	require.Len(t, got, 1)
	assert.Equal(t, day(2024, 5, 2), got[0].Date)
	assert.Equal(t, int64(0), got[0].Seconds)
	assert.Equal(t, domain.ChangeSpent, got[0].Kind)
}

func TestDailyAmounts_Merge(t *testing.T) {
	a := DailyAmounts{day(2024, 5, 1): 10}
	a.Merge(DailyAmounts{day(2024, 5, 1): 5, day(2024, 5, 2): 7})

	assert.Equal(t, int64(15), a.Get(day(2024, 5, 1)))
	assert.Equal(t, int64(7), a.Get(day(2024, 5, 2)))
	assert.Equal(t, int64(0), a.Get(day(2024, 5, 9)))
	assert.Equal(t, int64(22), a.Total())
}
