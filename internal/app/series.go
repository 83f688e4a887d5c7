package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

var (
	// ErrMissingWindowStart means the sprint has no start instant, so no
	// baseline reference exists.
	ErrMissingWindowStart = errors.New("sprint window has no start")
	// ErrCollaboratorUnavailable wraps transport failures of the tracker.
	ErrCollaboratorUnavailable = errors.New("tracker unavailable")
)

type SeriesRequest struct {
	SprintID      int64
	SpentBy       domain.SpentBy
	RemainingMode domain.RemainingMode
	// Now replaces the current instant when the sprint has no end yet.
	Now *time.Time
}

func NewSeriesRequest(sprintID int64) SeriesRequest {
	return SeriesRequest{
		SprintID:      sprintID,
		SpentBy:       domain.SpentByStarted,
		RemainingMode: domain.RemainingWithReestimate,
	}
}

func (r SeriesRequest) Validate() error {
	if r.SprintID <= 0 {
		return &SeriesError{Code: SeriesErrInvalidRequest, Message: fmt.Sprintf("sprint id must be positive, got %d", r.SprintID)}
	}
	if _, err := domain.ParseSpentBy(string(r.SpentBy)); err != nil {
		return &SeriesError{Code: SeriesErrInvalidRequest, Message: err.Error()}
	}
	if _, err := domain.ParseRemainingMode(string(r.RemainingMode)); err != nil {
		return &SeriesError{Code: SeriesErrInvalidRequest, Message: err.Error()}
	}
	return nil
}

// DateSpan is the inclusive day range of a series in the reporting timezone.
type DateSpan struct {
	Start domain.Date
	End   domain.Date
}

type SeriesResponse struct {
	GeneratedAt   time.Time
	Sprint        domain.Sprint
	Window        domain.SprintWindow
	Range         DateSpan
	Baseline      domain.BaselineTotal
	Items         []domain.ItemBaseline
	Rows          []domain.DailyRow
	Ideal         []float64
	Changes       []domain.DailyChange
	SpentBy       domain.SpentBy
	RemainingMode domain.RemainingMode
	Timezone      string
	Warnings      []string
}

type SeriesErrorCode string

const (
	SeriesErrInvalidRequest     SeriesErrorCode = "INVALID_REQUEST"
	SeriesErrMissingWindowStart SeriesErrorCode = "MISSING_WINDOW_START"
)

type SeriesError struct {
	Code    SeriesErrorCode
	Message string
}

func (e *SeriesError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Is lets errors.Is(err, ErrMissingWindowStart) match the coded form.
func (e *SeriesError) Is(target error) bool {
	return target == ErrMissingWindowStart && e.Code == SeriesErrMissingWindowStart
}
