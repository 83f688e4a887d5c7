package burndown

import (
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

// Reconstruct recovers an item's estimates as they stood at reference by
// undoing every tracked edit made strictly after it. Events at exactly
// reference are treated as already in effect. Event order does not matter.
// The result is clamped to be non-negative.
func Reconstruct(itemKey string, current domain.Estimates, events []domain.ChangeEvent, reference time.Time, fields FieldSet) domain.ItemBaseline {
	oe, re := current.Original, current.Remaining
	for _, ev := range events {
		if !ev.Created.After(reference) {
			continue
		}
		for _, ch := range ev.Items {
			switch fields.classify(ch) {
			case fieldOriginal:
				oe -= ch.Delta()
			case fieldRemaining:
				re -= ch.Delta()
			}
		}
	}
	return domain.ItemBaseline{
		ItemKey:   itemKey,
		Original:  max(0, oe),
		Remaining: max(0, re),
	}
}

// Replay applies every tracked edit made strictly after `after` to start.
// It is the forward counterpart of Reconstruct and does not clamp.
func Replay(start domain.Estimates, events []domain.ChangeEvent, after time.Time, fields FieldSet) domain.Estimates {
	out := start
	for _, ev := range events {
		if !ev.Created.After(after) {
			continue
		}
		for _, ch := range ev.Items {
			switch fields.classify(ch) {
			case fieldOriginal:
				out.Original += ch.Delta()
			case fieldRemaining:
				out.Remaining += ch.Delta()
			}
		}
	}
	return out
}

// MatchingEdits counts records in events that touch a tracked field.
func MatchingEdits(events []domain.ChangeEvent, fields FieldSet) int {
	n := 0
	for _, ev := range events {
		for _, ch := range ev.Items {
			if fields.IsTracked(ch) {
				n++
			}
		}
	}
	return n
}
