package domain

import "time"

// WorkLogEntry is a unit of logged work. Started is when the work was
// performed, Created when it was recorded in the tracker.
type WorkLogEntry struct {
	ItemKey string
	ID      string
	Author  string
	Started time.Time
	Created time.Time
	Seconds int64
}

// InstantFor returns the bucketing instant selected by policy.
func (w WorkLogEntry) InstantFor(policy SpentBy) time.Time {
	if policy == SpentByCreated {
		return w.Created
	}
	return w.Started
}
