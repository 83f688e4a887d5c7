package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/alexanderramin/sprintburn/internal/timeparse"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanTimestamp renders t relative to now, e.g. "3 hours ago".
func HumanTimestamp(t, now time.Time) string {
	if now.Sub(t) < time.Minute && now.Sub(t) >= 0 {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Hours renders seconds as "2h 30m".
func Hours(seconds int64) string {
	return timeparse.FormatHours(seconds)
}

// SignedHours renders a change with an explicit sign, "0m" for none.
func SignedHours(seconds int64) string {
	if seconds > 0 {
		return "+" + timeparse.FormatHours(seconds)
	}
	return timeparse.FormatHours(seconds)
}

// Seconds renders a raw second count with thousands separators.
func Seconds(seconds int64) string {
	return humanize.Comma(seconds) + "s"
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// WindowTime formats an instant in loc for display.
func WindowTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("Mon Jan 2 15:04 MST")
}
