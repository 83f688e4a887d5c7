// Package timeparse parses tracker timestamps and buckets instants into
// calendar days of a fixed reporting timezone.
package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

// ErrMalformedTimestamp indicates text matched none of the accepted shapes.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Tried in order. Offsets without a colon come first because that is what
// the Jira REST API emits; a trailing "Z" is rewritten to +0000 beforehand.
var layouts = []string{
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05-07:00",
}

// Parse converts a timestamp with fractional or whole seconds and a "Z",
// "+hhmm" or "+hh:mm" offset into an instant.
func Parse(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+0000"
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
}

// Normalizer converts instants into the reporting timezone. All date
// bucketing goes through Date so it never sees a foreign-zone instant.
type Normalizer struct {
	loc   *time.Location
	clock func() time.Time
}

// NewNormalizer returns a Normalizer for loc. A nil loc means UTC.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc, clock: time.Now}
}

// LoadNormalizer resolves an IANA zone name such as "Asia/Bangkok".
func LoadNormalizer(name string) (*Normalizer, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return NewNormalizer(loc), nil
}

// WithClock returns a copy whose Now uses clock.
func (n *Normalizer) WithClock(clock func() time.Time) *Normalizer {
	cp := *n
	cp.clock = clock
	return &cp
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

func (n *Normalizer) Normalize(t time.Time) time.Time {
	return t.In(n.loc)
}

// ParseNormalized parses text and converts it to the reporting timezone.
func (n *Normalizer) ParseNormalized(text string) (time.Time, error) {
	t, err := Parse(text)
	if err != nil {
		return time.Time{}, err
	}
	return n.Normalize(t), nil
}

// Date returns the reporting-timezone calendar day of t.
func (n *Normalizer) Date(t time.Time) domain.Date {
	return domain.DateOf(n.Normalize(t))
}

// Now returns the current instant in the reporting timezone.
func (n *Normalizer) Now() time.Time {
	return n.Normalize(n.clock())
}
