package domain

// Estimates is an (original, remaining) pair in seconds.
type Estimates struct {
	Original  int64
	Remaining int64
}

// ItemBaseline holds one item's estimates as of the reference instant.
// Both values are non-negative.
type ItemBaseline struct {
	ItemKey   string
	Original  int64
	Remaining int64
}

// BaselineTotal is the sprint-wide sum of item baselines. The zero value is
// the identity for Add.
type BaselineTotal struct {
	Original  int64
	Remaining int64
}

// Add folds one item baseline into the total.
func (t BaselineTotal) Add(b ItemBaseline) BaselineTotal {
	return BaselineTotal{
		Original:  t.Original + b.Original,
		Remaining: t.Remaining + b.Remaining,
	}
}

// Merge combines two partial totals.
func (t BaselineTotal) Merge(o BaselineTotal) BaselineTotal {
	return BaselineTotal{
		Original:  t.Original + o.Original,
		Remaining: t.Remaining + o.Remaining,
	}
}
