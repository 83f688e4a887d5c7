package domain

import "fmt"

// SpentBy selects which work-log instant buckets an entry into a day.
type SpentBy string

const (
	// SpentByStarted buckets by the instant the work was performed.
	SpentByStarted SpentBy = "started"
	// SpentByCreated buckets by the instant the entry was recorded.
	SpentByCreated SpentBy = "created"
)

// RemainingMode selects the remaining-work formula of the daily series.
type RemainingMode string

const (
	RemainingBurnOnly       RemainingMode = "burn_only"
	RemainingWithReestimate RemainingMode = "with_reestimate"
)

type SprintState string

const (
	SprintActive SprintState = "active"
	SprintClosed SprintState = "closed"
	SprintFuture SprintState = "future"
)

// ParseSpentBy validates a spent-by policy string.
func ParseSpentBy(s string) (SpentBy, error) {
	switch SpentBy(s) {
	case SpentByStarted, SpentByCreated:
		return SpentBy(s), nil
	}
	return "", fmt.Errorf("invalid spent-by policy %q (want %q or %q)", s, SpentByStarted, SpentByCreated)
}

// ParseRemainingMode validates a remaining-mode string.
func ParseRemainingMode(s string) (RemainingMode, error) {
	switch RemainingMode(s) {
	case RemainingBurnOnly, RemainingWithReestimate:
		return RemainingMode(s), nil
	}
	return "", fmt.Errorf("invalid remaining mode %q (want %q or %q)", s, RemainingBurnOnly, RemainingWithReestimate)
}
