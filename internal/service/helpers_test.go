package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/testutil"
	"github.com/alexanderramin/sprintburn/internal/timeparse"
)

var bangkok = time.FixedZone("ICT", 7*3600)

func at(day, hour int) time.Time {
	return time.Date(2024, 5, day, hour, 0, 0, 0, bangkok)
}

func remainingChange(when time.Time, from, to int64) domain.ChangeEvent {
	return domain.ChangeEvent{
		Created: when,
		Items: []domain.FieldChange{{
			FieldID: "timeestimate", Field: "timeestimate",
			From: testutil.Seconds(from), To: testutil.Seconds(to),
		}},
	}
}

func originalChange(when time.Time, from, to int64) domain.ChangeEvent {
	return domain.ChangeEvent{
		Created: when,
		Items: []domain.FieldChange{{
			FieldID: "timeoriginalestimate", Field: "timeoriginalestimate",
			From: testutil.Seconds(from), To: testutil.Seconds(to),
		}},
	}
}

func worklog(started, created time.Time, seconds int64) domain.WorkLogEntry {
	return domain.WorkLogEntry{Started: started, Created: created, Seconds: seconds}
}

// scenarioTracker holds one sprint (id 1, 2024-05-01..03 Bangkok) with a
// single item: 8h baseline, 4h logged on day 1, 2h on day 3 and a +1h
// re-estimate on day 2.
func scenarioTracker() *testutil.FakeTracker {
	f := testutil.NewFakeTracker()
	f.AddSprint(1, 10, "Sprint 1", at(1, 9), at(3, 18), "SB-1")
	f.SetItem("SB-1", testutil.FakeItem{
		Current: domain.Estimates{Original: 28800, Remaining: 32400},
		History: []domain.ChangeEvent{
			originalChange(time.Date(2024, 4, 30, 9, 0, 0, 0, bangkok), 0, 28800),
			remainingChange(time.Date(2024, 4, 30, 9, 0, 0, 0, bangkok), 0, 28800),
			remainingChange(at(2, 10), 28800, 32400),
		},
		WorkLog: []domain.WorkLogEntry{
			worklog(at(1, 10), at(1, 17), 14400),
			worklog(at(3, 10), at(3, 11), 7200),
		},
	})
	return f
}

func newNormalizer() *timeparse.Normalizer {
	return timeparse.NewNormalizer(bangkok)
}

type recordingUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingUseCaseObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		t.Fatal("no use-case events recorded")
	}
	return o.events[len(o.events)-1]
}

func remainingOf(rows []domain.DailyRow) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Remaining
	}
	return out
}
