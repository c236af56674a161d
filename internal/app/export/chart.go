package export

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth     = 1024
	chartHeight    = 512
	chartMaxLabels = 40
)

var (
	chartBarColor  = drawing.ColorFromHex("2f6f9f")
	chartTextColor = drawing.ColorFromHex("222222")
)

// SeasonChartPNG draws total payment per person for the first chartMaxLabels rows.
func SeasonChartPNG(sheet SeasonSheet) ([]byte, error) {
	rows := sheet.Rows
	if len(rows) > chartMaxLabels {
		rows = rows[:chartMaxLabels]
	}

	var maxValue float64
	bars := make([]chart.Value, 0, len(rows)+1)
	for _, r := range rows {
		v := r.TotalPayment.Float64()
		if v > maxValue {
			maxValue = v
		}
		bars = append(bars, chart.Value{
			Label: r.GameName,
			Value: v,
			Style: chart.Style{FillColor: chartBarColor, StrokeColor: chartBarColor},
		})
	}
	// go-chart refuses an empty bar set and a zero-height range.
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "no participants", Value: 0})
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("%s - Total %s", sheet.Title(), sheet.TotalSum),
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   chartWidth / (2 * (len(bars) + 1)),
		Background: chart.Style{Padding: chart.Box{Top: 60, Bottom: 20}},
		XAxis:      chart.Style{FontColor: chartTextColor, TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: chartTextColor},
			Range:          &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.2f", v) },
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
