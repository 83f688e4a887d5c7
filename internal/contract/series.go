package contract

import "github.com/alexanderramin/sprintburn/internal/app"

type SeriesRequest = app.SeriesRequest

func NewSeriesRequest(sprintID int64) SeriesRequest {
	return app.NewSeriesRequest(sprintID)
}

type DateSpan = app.DateSpan

type SeriesResponse = app.SeriesResponse

type SeriesErrorCode = app.SeriesErrorCode

const (
	SeriesErrInvalidRequest     SeriesErrorCode = app.SeriesErrInvalidRequest
	SeriesErrMissingWindowStart SeriesErrorCode = app.SeriesErrMissingWindowStart
)

type SeriesError = app.SeriesError

var (
	ErrMissingWindowStart      = app.ErrMissingWindowStart
	ErrCollaboratorUnavailable = app.ErrCollaboratorUnavailable
)
