package burndown

import "github.com/alexanderramin/sprintburn/internal/domain"

// BuildSeries walks rng day by day and emits one row per day, including days
// without activity. Remaining is computed per mode and clamped at zero:
//
//	burn_only:       re0 - cum_spent
//	with_reestimate: re0 - cum_spent + cum_delta
func BuildSeries(rng DateRange, baseline domain.BaselineTotal, spent, delta DailyAmounts, mode domain.RemainingMode) []domain.DailyRow {
	days := rng.Days()
	rows := make([]domain.DailyRow, 0, len(days))

	var cumSpent, cumDelta int64
	for _, d := range days {
		daySpent := spent.Get(d)
		dayDelta := delta.Get(d)
		cumSpent += daySpent
		cumDelta += dayDelta

		remaining := baseline.Remaining - cumSpent
		if mode == domain.RemainingWithReestimate {
			remaining += cumDelta
		}

		rows = append(rows, domain.DailyRow{
			Date:                     d,
			BaselineOriginal:         baseline.Original,
			BaselineRemaining:        baseline.Remaining,
			Spent:                    daySpent,
			CumulativeSpent:          cumSpent,
			DeltaRemaining:           dayDelta,
			CumulativeDeltaRemaining: cumDelta,
			Remaining:                max(0, remaining),
		})
	}
	return rows
}

// IdealRemaining interpolates linearly from the first row's remaining value
// down to zero over len(rows)-1 steps. With a single row the ideal equals the
// actual value.
func IdealRemaining(rows []domain.DailyRow) []float64 {
	if len(rows) == 0 {
		return nil
	}
	start := float64(rows[0].Remaining)
	out := make([]float64, len(rows))
	if len(rows) == 1 {
		out[0] = start
		return out
	}
	steps := float64(len(rows) - 1)
	for i := range rows {
		out[i] = start * (1 - float64(i)/steps)
	}
	return out
}
