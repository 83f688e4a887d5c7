package domain

import "time"

// Run is a persisted series computation.
type Run struct {
	ID            string
	SprintID      int64
	SprintName    string
	SpentBy       SpentBy
	RemainingMode RemainingMode
	Timezone      string
	WindowStart   time.Time
	WindowEnd     time.Time
	WindowOpen    bool
	Baseline      BaselineTotal
	ItemCount     int
	Warnings      []string
	CreatedAt     time.Time

	Items []ItemBaseline
	Rows  []DailyRow
}
