package burndown

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

// Bucketer maps an instant to its reporting-timezone calendar day.
// *timeparse.Normalizer satisfies it.
type Bucketer interface {
	Date(t time.Time) domain.Date
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start domain.Date
	End   domain.Date
}

// NewDateRange validates that end is not before start.
func NewDateRange(start, end domain.Date) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("date range end %s is before start %s", end, start)
	}
	return DateRange{Start: start, End: end}, nil
}

func (r DateRange) Contains(d domain.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Len is the number of days in the range.
func (r DateRange) Len() int {
	return r.Start.DaysUntil(r.End) + 1
}

// Days lists every day of the range in order.
func (r DateRange) Days() []domain.Date {
	n := r.Len()
	if n <= 0 {
		return nil
	}
	out := make([]domain.Date, 0, n)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// DailyAmounts is a sparse date -> seconds mapping. Missing days are zero.
type DailyAmounts map[domain.Date]int64

func (a DailyAmounts) Add(d domain.Date, v int64) {
	a[d] += v
}

func (a DailyAmounts) Get(d domain.Date) int64 {
	return a[d]
}

// Merge adds every entry of o into a.
func (a DailyAmounts) Merge(o DailyAmounts) {
	for d, v := range o {
		a[d] += v
	}
}

func (a DailyAmounts) Total() int64 {
	var t int64
	for _, v := range a {
		t += v
	}
	return t
}

// SumByDate collapses per-item changes into daily sums.
func SumByDate(changes []domain.DailyChange) DailyAmounts {
	out := DailyAmounts{}
	for _, c := range changes {
		out.Add(c.Date, c.Seconds)
	}
	return out
}

// ReestimateChanges lists remaining-estimate edits whose normalized created
// day falls in rng, one entry per matching record, signed to - from.
func ReestimateChanges(events []domain.ChangeEvent, rng DateRange, b Bucketer, fields FieldSet) []domain.DailyChange {
	var out []domain.DailyChange
	for _, ev := range events {
		d := b.Date(ev.Created)
		if !rng.Contains(d) {
			continue
		}
		for _, ch := range ev.Items {
			if !fields.IsRemaining(ch) {
				continue
			}
			out = append(out, domain.DailyChange{
				Date:    d,
				ItemKey: ev.ItemKey,
				Kind:    domain.ChangeReestimate,
				Seconds: ch.Delta(),
				Author:  ev.Author,
			})
		}
	}
	return out
}

// SpentChanges lists work-log entries bucketed by the instant policy
// selects. Entries without that instant are skipped and negative durations
// count as zero.
func SpentChanges(entries []domain.WorkLogEntry, rng DateRange, b Bucketer, policy domain.SpentBy) []domain.DailyChange {
	var out []domain.DailyChange
	for _, e := range entries {
		ts := e.InstantFor(policy)
		if ts.IsZero() {
			continue
		}
		d := b.Date(ts)
		if !rng.Contains(d) {
			continue
		}
		out = append(out, domain.DailyChange{
			Date:    d,
			ItemKey: e.ItemKey,
			Kind:    domain.ChangeSpent,
			Seconds: max(0, e.Seconds),
			Author:  e.Author,
		})
	}
	return out
}

// ManualReestimateDeltas sums remaining-estimate edits per day.
func ManualReestimateDeltas(events []domain.ChangeEvent, rng DateRange, b Bucketer, fields FieldSet) DailyAmounts {
	return SumByDate(ReestimateChanges(events, rng, b, fields))
}

// SpentByDay sums logged work per day.
func SpentByDay(entries []domain.WorkLogEntry, rng DateRange, b Bucketer, policy domain.SpentBy) DailyAmounts {
	return SumByDate(SpentChanges(entries, rng, b, policy))
}
