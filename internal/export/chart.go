package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

const (
	chartWidth  = "1100px"
	chartHeight = "520px"

	colorRemaining = "#d9534f"
	colorIdeal     = "#8a8f98"
	colorSpent     = "#3b82f6"
)

// ChartLabels carries the text shown around the chart.
type ChartLabels struct {
	Sprint        string
	SpentBy       domain.SpentBy
	RemainingMode domain.RemainingMode
	Timezone      string
}

func (l ChartLabels) title() string {
	if l.Sprint == "" {
		return "Sprint burndown"
	}
	return l.Sprint + " burndown"
}

func (l ChartLabels) subtitle() string {
	s := fmt.Sprintf("spent_by=%s, remaining_mode=%s", l.SpentBy, l.RemainingMode)
	if l.Timezone != "" {
		s += ", days in " + l.Timezone
	}
	return s
}

// WriteChart renders remaining, ideal remaining and cumulative spent as an
// HTML page. Values are plotted in hours; cumulative spent uses the right
// axis. ideal must be empty or as long as rows.
func WriteChart(w io.Writer, rows []domain.DailyRow, ideal []float64, labels ChartLabels) error {
	if len(ideal) != 0 && len(ideal) != len(rows) {
		return fmt.Errorf("ideal curve has %d points for %d rows", len(ideal), len(rows))
	}

	days := make([]string, len(rows))
	remaining := make([]opts.LineData, len(rows))
	spent := make([]opts.LineData, len(rows))
	for i, r := range rows {
		days[i] = r.Date.String()
		remaining[i] = opts.LineData{Value: hours(float64(r.Remaining))}
		spent[i] = opts.LineData{Value: hours(float64(r.CumulativeSpent))}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: labels.title(),
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: labels.title(), Subtitle: labels.subtitle()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Remaining (h)", Type: "value"}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Cumulative spent (h)", Type: "value"})
	line.SetXAxis(days)

	line.AddSeries("Remaining", remaining,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorRemaining}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
	)
	if len(ideal) > 0 {
		idealData := make([]opts.LineData, len(ideal))
		for i, v := range ideal {
			idealData[i] = opts.LineData{Value: hours(v)}
		}
		line.AddSeries("Ideal remaining", idealData,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorIdeal}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: 1, Type: "dashed"}),
		)
	}
	line.AddSeries("Cumulative spent", spent,
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorSpent}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
	)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// hours converts seconds to hours rounded to two decimals.
func hours(seconds float64) float64 {
	return math.Round(seconds/36) / 100
}
