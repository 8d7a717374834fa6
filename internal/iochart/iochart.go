// Package iochart renders PNG previews of histogram and pie charts.
package iochart

import (
	"bytes"
	"fmt"

	"github.com/gnames/gndash/pkg/charts"
	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	width  = 1024
	height = 600
)

// HistogramPNG draws one stacked bar per category, segments are colored by
// series. Zero counts are left out of a bar.
func HistogramPNG(h *charts.HistogramData) ([]byte, error) {
	if len(h.Categories) == 0 {
		return nil, EmptyChartError(h.Title)
	}

	bars := make([]chart.StackedBar, len(h.Categories))
	for i, cat := range h.Categories {
		bars[i].Name = cat
		for j, s := range h.Series {
			if s.Counts[i] == 0 {
				continue
			}
			bars[i].Values = append(bars[i].Values, chart.Value{
				Label: s.Name,
				Value: float64(s.Counts[i]),
				Style: chart.Style{
					FillColor:   chart.GetDefaultColor(j),
					StrokeColor: chart.GetDefaultColor(j),
				},
			})
		}
	}

	ch := chart.StackedBarChart{
		Title:  h.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, RenderError(h.Title, err)
	}
	return buf.Bytes(), nil
}

// PiePNG draws a pie chart with percentage labels.
func PiePNG(p *charts.PieData) ([]byte, error) {
	if p.Total == 0 {
		return nil, EmptyChartError(p.Title)
	}

	values := make([]chart.Value, len(p.Slices))
	for i, s := range p.Slices {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Percent),
			Value: float64(s.Count),
		}
	}

	ch := chart.PieChart{
		Title:  p.Title,
		Width:  height,
		Height: height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, RenderError(p.Title, err)
	}
	return buf.Bytes(), nil
}
