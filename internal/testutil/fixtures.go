package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

// Run options
type RunOption func(*domain.Run)

func WithRunCreatedAt(t time.Time) RunOption {
	return func(r *domain.Run) {
		r.CreatedAt = t
	}
}

func WithRunMode(spentBy domain.SpentBy, mode domain.RemainingMode) RunOption {
	return func(r *domain.Run) {
		r.SpentBy = spentBy
		r.RemainingMode = mode
	}
}

func WithRunItems(items ...domain.ItemBaseline) RunOption {
	return func(r *domain.Run) {
		r.Items = items
		r.ItemCount = len(items)
		var total domain.BaselineTotal
		for _, it := range items {
			total = total.Add(it)
		}
		r.Baseline = total
	}
}

func WithRunRows(rows ...domain.DailyRow) RunOption {
	return func(r *domain.Run) {
		r.Rows = rows
	}
}

func WithRunWarnings(w ...string) RunOption {
	return func(r *domain.Run) {
		r.Warnings = w
	}
}

// NewTestRun builds a three-day run of sprintID starting 2024-05-01 UTC.
func NewTestRun(sprintID int64, opts ...RunOption) *domain.Run {
	start := time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC)
	r := &domain.Run{
		ID:            uuid.New().String(),
		SprintID:      sprintID,
		SprintName:    "Sprint",
		SpentBy:       domain.SpentByStarted,
		RemainingMode: domain.RemainingWithReestimate,
		Timezone:      "UTC",
		WindowStart:   start,
		WindowEnd:     start.AddDate(0, 0, 2),
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Day is shorthand for a calendar date in tests.
func Day(y int, m time.Month, d int) domain.Date {
	return domain.Date{Year: y, Month: m, Day: d}
}

// Seconds returns a pointer for FieldChange values.
func Seconds(v int64) *int64 {
	return &v
}
