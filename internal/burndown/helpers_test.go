package burndown

import (
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/timeparse"
)

var (
	bangkok  = time.FixedZone("ICT", 7*3600)
	sprintT0 = time.Date(2024, 5, 1, 9, 0, 0, 0, bangkok)
	norm     = timeparse.NewNormalizer(bangkok)
)

func i64(v int64) *int64 { return &v }

func change(field string, from, to int64) domain.FieldChange {
	return domain.FieldChange{FieldID: field, Field: field, From: i64(from), To: i64(to)}
}

func event(at time.Time, items ...domain.FieldChange) domain.ChangeEvent {
	return domain.ChangeEvent{ItemKey: "SB-1", Created: at, Items: items}
}

func day(y int, m time.Month, d int) domain.Date {
	return domain.Date{Year: y, Month: m, Day: d}
}

func mustRange(start, end domain.Date) DateRange {
	r, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}
