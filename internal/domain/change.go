package domain

import "time"

// ChangeEvent is one changelog history entry of a tracked item.
type ChangeEvent struct {
	ItemKey string
	ID      string
	Created time.Time
	Author  string
	Items   []FieldChange
}

// FieldChange is a single field edit inside a ChangeEvent. From and To are
// nil when the tracker reported no value; both count as zero.
type FieldChange struct {
	FieldID    string
	Field      string
	From       *int64
	To         *int64
	FromString string
	ToString   string
}

func (c FieldChange) FromValue() int64 {
	if c.From == nil {
		return 0
	}
	return *c.From
}

func (c FieldChange) ToValue() int64 {
	if c.To == nil {
		return 0
	}
	return *c.To
}

// Delta is the signed change To - From.
func (c FieldChange) Delta() int64 {
	return c.ToValue() - c.FromValue()
}

type ChangeKind string

const (
	ChangeSpent      ChangeKind = "spent"
	ChangeReestimate ChangeKind = "reestimate"
)

// DailyChange attributes one bucketed amount to an item and day.
type DailyChange struct {
	Date    Date
	ItemKey string
	Kind    ChangeKind
	Seconds int64
	Author  string
}
