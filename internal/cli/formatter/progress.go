package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a burn bar like [████░░░░] 45% for the share of
// the baseline already spent. Past 100% the bar turns red.
func RenderProgress(spent, baseline int64, width int) string {
	width = max(width, 2)
	if baseline <= 0 {
		return fmt.Sprintf("[%s] %s", StyleDim.Render(strings.Repeat(emptyBlock, width)), Dim("n/a"))
	}

	pct := float64(spent) / float64(baseline)
	shown := min(max(pct, 0), 1)
	filled := int(shown * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct > 1 {
		style = StyleRed
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
