// Package burndown holds the pure sprint-series engine: baseline
// reconstruction from a changelog, daily bucketing and the series walk.
package burndown

import (
	"strings"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

type trackedField int

const (
	fieldNone trackedField = iota
	fieldOriginal
	fieldRemaining
)

// FieldSet lists the identifiers a change record may use for the two
// tracked fields. Matching is case-insensitive, on the field id first and
// the display name second.
type FieldSet struct {
	OriginalIDs  []string
	RemainingIDs []string
}

// DefaultFieldSet matches Jira's time-tracking fields by id and by name.
func DefaultFieldSet() FieldSet {
	return FieldSet{
		OriginalIDs:  []string{"timeoriginalestimate", "Original Estimate"},
		RemainingIDs: []string{"timeestimate", "Remaining Estimate"},
	}
}

func (f FieldSet) classify(c domain.FieldChange) trackedField {
	if k := f.lookup(c.FieldID); k != fieldNone {
		return k
	}
	return f.lookup(c.Field)
}

func (f FieldSet) lookup(name string) trackedField {
	if name == "" {
		return fieldNone
	}
	for _, id := range f.OriginalIDs {
		if strings.EqualFold(id, name) {
			return fieldOriginal
		}
	}
	for _, id := range f.RemainingIDs {
		if strings.EqualFold(id, name) {
			return fieldRemaining
		}
	}
	return fieldNone
}

// IsRemaining reports whether c edits the remaining-estimate field.
func (f FieldSet) IsRemaining(c domain.FieldChange) bool {
	return f.classify(c) == fieldRemaining
}

// IsTracked reports whether c edits either tracked field.
func (f FieldSet) IsTracked(c domain.FieldChange) bool {
	return f.classify(c) != fieldNone
}
