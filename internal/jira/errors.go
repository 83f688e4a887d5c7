package jira

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/sprintburn/internal/app"
)

var (
	// ErrUnavailable indicates Jira could not be reached or kept failing
	// with retryable statuses. It matches app.ErrCollaboratorUnavailable.
	ErrUnavailable = fmt.Errorf("jira: %w", app.ErrCollaboratorUnavailable)

	// ErrUnauthorized indicates the credentials were rejected (401/403).
	ErrUnauthorized = errors.New("jira: unauthorized")

	// ErrNotFound indicates the sprint, board or issue does not exist.
	ErrNotFound = errors.New("jira: not found")
)

// StatusError is a non-retryable HTTP failure.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jira %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsRetryable reports whether err came from a collaborator outage that may
// clear up later.
func IsRetryable(err error) bool {
	return errors.Is(err, app.ErrCollaboratorUnavailable)
}
