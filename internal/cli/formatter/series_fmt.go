package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sprintburn/internal/contract"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

// SeriesOptions selects the optional sections of FormatSeries.
type SeriesOptions struct {
	Items    bool
	Details  bool
	Location *time.Location
}

// FormatSeries renders a computed series: a summary box, the daily table and
// optionally the per-item baselines and the per-day change list.
func FormatSeries(resp *contract.SeriesResponse, opts SeriesOptions) string {
	var b strings.Builder

	title := resp.Sprint.Name
	if title == "" {
		title = fmt.Sprintf("Sprint %d", resp.Sprint.ID)
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "%s  %s #%d", Dim("Sprint  "), Bold(title), resp.Sprint.ID)
	if resp.Sprint.State != "" {
		summary.WriteString("  " + StatePill(resp.Sprint.State))
	}
	summary.WriteString("\n")
	summary.WriteString(windowLine(resp.Window, opts.Location))
	fmt.Fprintf(&summary, "%s  %s .. %s %s\n", Dim("Days    "), resp.Range.Start, resp.Range.End, Dim("("+resp.Timezone+")"))
	fmt.Fprintf(&summary, "%s  %s\n", Dim("Policy  "), ModeBadge(resp.SpentBy, resp.RemainingMode))
	summary.WriteString(baselineLine(resp.Baseline))
	var spent int64
	if n := len(resp.Rows); n > 0 {
		spent = resp.Rows[n-1].CumulativeSpent
	}
	fmt.Fprintf(&summary, "%s  %s %s", Dim("Burned  "), RenderProgress(spent, resp.Baseline.Remaining, 20), Dim(Hours(spent)))

	b.WriteString(RenderBox("Burndown", summary.String()))
	b.WriteString("\n\n")

	b.WriteString(Header("Daily series"))
	b.WriteString("\n")
	b.WriteString(rowsTable(resp.Rows, resp.Ideal))

	if opts.Items {
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("Item baselines (%d)", len(resp.Items))))
		b.WriteString("\n")
		b.WriteString(itemsTable(resp.Items))
	}
	if opts.Details {
		b.WriteString("\n")
		b.WriteString(Header("Daily changes"))
		b.WriteString("\n")
		b.WriteString(changeList(resp.Changes))
	}
	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render("! "+w) + "\n")
		}
	}
	return b.String()
}

func windowLine(w domain.SprintWindow, loc *time.Location) string {
	end := WindowTime(w.End, loc)
	if w.Open {
		end += " " + StyleGreen.Render("(open)")
	}
	return fmt.Sprintf("%s  %s -> %s\n", Dim("Window  "), WindowTime(w.Start, loc), end)
}

func baselineLine(t domain.BaselineTotal) string {
	return fmt.Sprintf("%s  original %s %s, remaining %s %s\n",
		Dim("Baseline"),
		Bold(Hours(t.Original)), Dim("("+Seconds(t.Original)+")"),
		Bold(Hours(t.Remaining)), Dim("("+Seconds(t.Remaining)+")"))
}

// rowsTable renders the daily rows. ideal may be shorter than rows, in which
// case the missing cells stay blank.
func rowsTable(rows []domain.DailyRow, ideal []float64) string {
	cols := []Column{
		{Title: "Date"},
		{Title: "Spent", Right: true},
		{Title: "Cum. spent", Right: true},
		{Title: "Re-estimate", Right: true},
		{Title: "Cum. re-est.", Right: true},
		{Title: "Remaining", Right: true},
		{Title: "Ideal", Right: true},
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		remaining := Hours(r.Remaining)
		idealCell := ""
		if i < len(ideal) {
			remaining = TrendStyle(r.Remaining, ideal[i]).Render(remaining)
			idealCell = Dim(Hours(int64(ideal[i])))
		}
		out[i] = []string{
			r.Date.String(),
			Hours(r.Spent),
			Hours(r.CumulativeSpent),
			SignedHours(r.DeltaRemaining),
			SignedHours(r.CumulativeDeltaRemaining),
			remaining,
			idealCell,
		}
	}
	return RenderTable(cols, out)
}

func itemsTable(items []domain.ItemBaseline) string {
	cols := []Column{
		{Title: "Item"},
		{Title: "Original", Right: true},
		{Title: "Remaining", Right: true},
	}
	out := make([][]string, len(items))
	for i, it := range items {
		out[i] = []string{it.ItemKey, Hours(it.Original), Hours(it.Remaining)}
	}
	return RenderTable(cols, out)
}

// changeList groups changes under their day. Changes must be sorted by date.
func changeList(changes []domain.DailyChange) string {
	if len(changes) == 0 {
		return Dim("No spent time or re-estimates in the window.") + "\n"
	}
	var b strings.Builder
	var current domain.Date
	for i, c := range changes {
		if i == 0 || c.Date != current {
			current = c.Date
			b.WriteString(Bold(c.Date.String()) + "\n")
		}
		kind := StyleBlue.Render("spent     ")
		amount := Hours(c.Seconds)
		if c.Kind == domain.ChangeReestimate {
			kind = StylePurple.Render("re-estimate")
			amount = SignedHours(c.Seconds)
		}
		line := fmt.Sprintf("  %-12s %s %8s", c.ItemKey, kind, amount)
		if c.Author != "" {
			line += "  " + Dim(c.Author)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
