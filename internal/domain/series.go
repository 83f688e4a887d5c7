package domain

// DailyRow is one day of the sprint series. All amounts are seconds.
type DailyRow struct {
	Date                     Date
	BaselineOriginal         int64
	BaselineRemaining        int64
	Spent                    int64
	CumulativeSpent          int64
	DeltaRemaining           int64
	CumulativeDeltaRemaining int64
	Remaining                int64
}
