package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sprintburn/internal/burndown"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

// FormatRuns lists stored runs, newest first as returned by the store.
func FormatRuns(runs []*domain.Run, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No stored runs.") + "\n"
	}
	cols := []Column{
		{Title: "ID"},
		{Title: "Sprint"},
		{Title: "Mode"},
		{Title: "Items", Right: true},
		{Title: "Baseline", Right: true},
		{Title: "Saved"},
	}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		sprint := strconv.FormatInt(r.SprintID, 10)
		if r.SprintName != "" {
			sprint = r.SprintName + Dim(" #"+sprint)
		}
		rows[i] = []string{
			TruncID(r.ID),
			sprint,
			fmt.Sprintf("%s/%s", r.SpentBy, r.RemainingMode),
			strconv.Itoa(r.ItemCount),
			Hours(r.Baseline.Remaining),
			HumanTimestamp(r.CreatedAt, now),
		}
	}
	return RenderTable(cols, rows)
}

// FormatRun renders one stored run with its daily table.
func FormatRun(r *domain.Run, loc *time.Location) string {
	var summary strings.Builder
	fmt.Fprintf(&summary, "%s  %s\n", Dim("Run     "), r.ID)
	fmt.Fprintf(&summary, "%s  %s #%d\n", Dim("Sprint  "), Bold(r.SprintName), r.SprintID)
	summary.WriteString(windowLine(domain.SprintWindow{Start: r.WindowStart, End: r.WindowEnd, Open: r.WindowOpen}, loc))
	fmt.Fprintf(&summary, "%s  %s %s\n", Dim("Policy  "), ModeBadge(r.SpentBy, r.RemainingMode), Dim("("+r.Timezone+")"))
	summary.WriteString(baselineLine(r.Baseline))
	fmt.Fprintf(&summary, "%s  %s", Dim("Saved   "), WindowTime(r.CreatedAt, loc))

	var b strings.Builder
	b.WriteString(RenderBox("Stored run", summary.String()))
	b.WriteString("\n\n")
	b.WriteString(Header("Daily series"))
	b.WriteString("\n")
	b.WriteString(rowsTable(r.Rows, burndown.IdealRemaining(r.Rows)))
	for _, w := range r.Warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	return b.String()
}
