package jira

import "time"

// Config holds everything the client needs to reach a Jira site.
type Config struct {
	BaseURL  string
	Email    string
	APIToken string

	// PAT is a personal access token. When set it is sent as a bearer
	// token and Email/APIToken are ignored.
	PAT string

	APIVersion string
	PageSize   int
	Timeout    time.Duration
	MaxRetries int

	// BackoffBase is the first retry delay; later delays double.
	BackoffBase time.Duration

	// Issue fields read for the current estimates.
	OriginalField  string
	RemainingField string
}

func DefaultConfig() Config {
	return Config{
		APIVersion:     "3",
		PageSize:       50,
		Timeout:        60 * time.Second,
		MaxRetries:     3,
		BackoffBase:    500 * time.Millisecond,
		OriginalField:  "timeoriginalestimate",
		RemainingField: "timeestimate",
	}
}
