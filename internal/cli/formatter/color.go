package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TrendStyle colors a day's remaining work against the ideal line: green on
// or below it, yellow within 10% above, red beyond.
func TrendStyle(remaining int64, ideal float64) lipgloss.Style {
	r := float64(remaining)
	switch {
	case r <= ideal:
		return StyleGreen
	case r <= ideal*1.1:
		return StyleYellow
	default:
		return StyleRed
	}
}

// StatePill returns a colored indicator for a sprint state.
func StatePill(state domain.SprintState) string {
	switch state {
	case domain.SprintActive:
		return StyleGreen.Render("● Active")
	case domain.SprintFuture:
		return StyleBlue.Render("○ Future")
	case domain.SprintClosed:
		return StyleDim.Render("✔ Closed")
	default:
		return StyleDim.Render(string(state))
	}
}

// ModeBadge summarises the two series policies on one line.
func ModeBadge(spentBy domain.SpentBy, mode domain.RemainingMode) string {
	remaining := StyleGreen.Render("● WITH RE-ESTIMATES")
	if mode == domain.RemainingBurnOnly {
		remaining = StyleYellow.Render("● BURN ONLY")
	}
	return remaining + Dim(fmt.Sprintf(" | spent by %s", spentBy))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
