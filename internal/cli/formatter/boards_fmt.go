package formatter

import (
	"strconv"
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

func FormatBoards(boards []domain.Board) string {
	if len(boards) == 0 {
		return Dim("No boards visible to this account.") + "\n"
	}
	rows := make([][]string, len(boards))
	for i, b := range boards {
		rows[i] = []string{strconv.FormatInt(b.ID, 10), b.Name, b.Type}
	}
	return RenderTable([]Column{{Title: "ID", Right: true}, {Title: "Name"}, {Title: "Type"}}, rows)
}

func FormatSprints(sprints []domain.Sprint, loc *time.Location) string {
	if len(sprints) == 0 {
		return Dim("No sprints match.") + "\n"
	}
	rows := make([][]string, len(sprints))
	for i, s := range sprints {
		rows[i] = []string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			StatePill(s.State),
			optionalDay(s.StartDate, loc),
			optionalDay(s.EndDate, loc),
		}
	}
	cols := []Column{{Title: "ID", Right: true}, {Title: "Name"}, {Title: "State"}, {Title: "Start"}, {Title: "End"}}
	return RenderTable(cols, rows)
}

func optionalDay(t *time.Time, loc *time.Location) string {
	if t == nil {
		return Dim("--")
	}
	if loc != nil {
		return t.In(loc).Format("2006-01-02")
	}
	return t.Format("2006-01-02")
}
