package httpapi

import (
	"time"

	"github.com/alexanderramin/sprintburn/internal/contract"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

type sprintJSON struct {
	ID        int64      `json:"id"`
	BoardID   int64      `json:"board_id,omitempty"`
	Name      string     `json:"name,omitempty"`
	State     string     `json:"state,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func toSprintJSON(s domain.Sprint) sprintJSON {
	return sprintJSON{
		ID:        s.ID,
		BoardID:   s.BoardID,
		Name:      s.Name,
		State:     string(s.State),
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
	}
}

type boardJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// rowJSON uses the same column names as the CSV export.
type rowJSON struct {
	Date                     domain.Date `json:"date"`
	BaselineOriginal         int64       `json:"baseline_total_original_seconds"`
	BaselineRemaining        int64       `json:"baseline_total_remaining_seconds"`
	Spent                    int64       `json:"spent_seconds"`
	CumulativeSpent          int64       `json:"cumulative_spent_seconds"`
	DeltaRemaining           int64       `json:"delta_remaining_manual_seconds"`
	CumulativeDeltaRemaining int64       `json:"cumulative_delta_remaining_manual_seconds"`
	Remaining                int64       `json:"remaining_seconds"`
}

func toRowsJSON(rows []domain.DailyRow) []rowJSON {
	out := make([]rowJSON, len(rows))
	for i, r := range rows {
		out[i] = rowJSON(r)
	}
	return out
}

type itemJSON struct {
	ItemKey   string `json:"key"`
	Original  int64  `json:"original_seconds"`
	Remaining int64  `json:"remaining_seconds"`
}

func toItemsJSON(items []domain.ItemBaseline) []itemJSON {
	out := make([]itemJSON, len(items))
	for i, it := range items {
		out[i] = itemJSON(it)
	}
	return out
}

type baselineJSON struct {
	Original  int64 `json:"original_seconds"`
	Remaining int64 `json:"remaining_seconds"`
}

type windowJSON struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Open  bool      `json:"open"`
}

type seriesJSON struct {
	RunID         string       `json:"run_id,omitempty"`
	GeneratedAt   time.Time    `json:"generated_at"`
	Sprint        sprintJSON   `json:"sprint"`
	Window        windowJSON   `json:"window"`
	Start         domain.Date  `json:"start_date"`
	End           domain.Date  `json:"end_date"`
	Timezone      string       `json:"timezone"`
	SpentBy       string       `json:"spent_by"`
	RemainingMode string       `json:"remaining_mode"`
	Baseline      baselineJSON `json:"baseline"`
	Items         []itemJSON   `json:"items"`
	Rows          []rowJSON    `json:"rows"`
	Ideal         []float64    `json:"ideal_remaining_seconds"`
	Warnings      []string     `json:"warnings,omitempty"`
}

func toSeriesJSON(resp *contract.SeriesResponse) seriesJSON {
	return seriesJSON{
		GeneratedAt:   resp.GeneratedAt,
		Sprint:        toSprintJSON(resp.Sprint),
		Window:        windowJSON(resp.Window),
		Start:         resp.Range.Start,
		End:           resp.Range.End,
		Timezone:      resp.Timezone,
		SpentBy:       string(resp.SpentBy),
		RemainingMode: string(resp.RemainingMode),
		Baseline:      baselineJSON(resp.Baseline),
		Items:         toItemsJSON(resp.Items),
		Rows:          toRowsJSON(resp.Rows),
		Ideal:         resp.Ideal,
		Warnings:      resp.Warnings,
	}
}

type runJSON struct {
	ID            string       `json:"id"`
	SprintID      int64        `json:"sprint_id"`
	SprintName    string       `json:"sprint_name,omitempty"`
	SpentBy       string       `json:"spent_by"`
	RemainingMode string       `json:"remaining_mode"`
	Timezone      string       `json:"timezone"`
	Window        windowJSON   `json:"window"`
	Baseline      baselineJSON `json:"baseline"`
	ItemCount     int          `json:"item_count"`
	Warnings      []string     `json:"warnings,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	Items         []itemJSON   `json:"items,omitempty"`
	Rows          []rowJSON    `json:"rows,omitempty"`
}

func toRunJSON(r *domain.Run, detail bool) runJSON {
	out := runJSON{
		ID:            r.ID,
		SprintID:      r.SprintID,
		SprintName:    r.SprintName,
		SpentBy:       string(r.SpentBy),
		RemainingMode: string(r.RemainingMode),
		Timezone:      r.Timezone,
		Window:        windowJSON{Start: r.WindowStart, End: r.WindowEnd, Open: r.WindowOpen},
		Baseline:      baselineJSON(r.Baseline),
		ItemCount:     r.ItemCount,
		Warnings:      r.Warnings,
		CreatedAt:     r.CreatedAt,
	}
	if detail {
		out.Items = toItemsJSON(r.Items)
		out.Rows = toRowsJSON(r.Rows)
	}
	return out
}
