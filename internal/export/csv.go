// Package export writes daily series as CSV and as an HTML line chart.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

// CSVHeader is the fixed column order of the series export.
var CSVHeader = []string{
	"date",
	"baseline_total_original_seconds",
	"baseline_total_remaining_seconds",
	"spent_seconds",
	"cumulative_spent_seconds",
	"delta_remaining_manual_seconds",
	"cumulative_delta_remaining_manual_seconds",
	"remaining_seconds",
}

// WriteCSV writes one line per row after the header. All amounts are whole
// seconds.
func WriteCSV(w io.Writer, rows []domain.DailyRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Date.String(),
			itoa(r.BaselineOriginal),
			itoa(r.BaselineRemaining),
			itoa(r.Spent),
			itoa(r.CumulativeSpent),
			itoa(r.DeltaRemaining),
			itoa(r.CumulativeDeltaRemaining),
			itoa(r.Remaining),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv row %s: %w", r.Date, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
