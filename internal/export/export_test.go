package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

func sampleRows() []domain.DailyRow {
	return []domain.DailyRow{
		{
			Date: domain.Date{Year: 2024, Month: 5, Day: 1}, BaselineOriginal: 28800, BaselineRemaining: 28800,
			Spent: 14400, CumulativeSpent: 14400, Remaining: 14400,
		},
		{
			Date: domain.Date{Year: 2024, Month: 5, Day: 2}, BaselineOriginal: 28800, BaselineRemaining: 28800,
			CumulativeSpent: 14400, DeltaRemaining: 3600, CumulativeDeltaRemaining: 3600, Remaining: 18000,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "date,baseline_total_original_seconds,baseline_total_remaining_seconds,spent_seconds,"+
		"cumulative_spent_seconds,delta_remaining_manual_seconds,cumulative_delta_remaining_manual_seconds,remaining_seconds",
		strings.Join(records[0], ","))
	assert.Equal(t, []string{"2024-05-01", "28800", "28800", "14400", "14400", "0", "0", "14400"}, records[1])
	assert.Equal(t, []string{"2024-05-02", "28800", "28800", "0", "14400", "3600", "3600", "18000"}, records[2])
}

func TestWriteCSV_EmptySeriesWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", buf.String())
}

func TestWriteChart(t *testing.T) {
	var buf bytes.Buffer
	labels := ChartLabels{
		Sprint:        "Sprint 7",
		SpentBy:       domain.SpentByStarted,
		RemainingMode: domain.RemainingWithReestimate,
		Timezone:      "Asia/Bangkok",
	}

	require.NoError(t, WriteChart(&buf, sampleRows(), []float64{14400, 0}, labels))

	html := buf.String()
	assert.Contains(t, html, "Sprint 7 burndown")
	assert.Contains(t, html, "remaining_mode=with_reestimate")
	assert.Contains(t, html, "Ideal remaining")
	assert.Contains(t, html, "Cumulative spent")
	assert.Contains(t, html, "2024-05-02")
}

func TestWriteChart_RejectsMismatchedIdeal(t *testing.T) {
	err := WriteChart(&bytes.Buffer{}, sampleRows(), []float64{1}, ChartLabels{})

	assert.Error(t, err)
}

func TestHours(t *testing.T) {
	assert.Equal(t, 4.0, hours(14400))
	assert.Equal(t, 0.5, hours(1800))
	assert.Equal(t, 0.33, hours(1200))
}
