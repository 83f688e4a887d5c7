package domain

import "time"

type Board struct {
	ID   int64
	Name string
	Type string
}

type Sprint struct {
	ID           int64
	BoardID      int64
	Name         string
	State        SprintState
	StartDate    *time.Time
	EndDate      *time.Time
	CompleteDate *time.Time
}

// SprintWindow is the reporting window of a sprint. Open is set when the
// tracker had no end instant and End was defaulted to now.
type SprintWindow struct {
	Start time.Time
	End   time.Time
	Open  bool
}
