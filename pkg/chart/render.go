/*
 * Copyright (c) 2024, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package chart

import (
	"fmt"
	"io"

	"github.com/dburkart/rewind/pkg/table"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Render writes the chart as a standalone HTML page. Bars of the two series
// overlay each other; lines are drawn on top of the bars.
func (c *Chart) Render(w io.Writer) error {
	cats := c.Categories()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Width:     fmt.Sprintf("%dpx", c.Width),
			Height:    fmt.Sprintf("%dpx", c.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "30"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
	)
	bar.SetXAxis(cats)

	line := charts.NewLine()
	line.SetXAxis(cats)

	for _, s := range c.Series {
		switch s.Kind {
		case KindBar:
			data := make([]opts.BarData, 0, len(s.Points))
			for _, p := range s.Points {
				data = append(data, opts.BarData{Value: []interface{}{table.FormatValue(p.X), p.Y}})
			}
			bar.AddSeries(s.Label, data,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color, Opacity: 0.6}),
				charts.WithBarChartOpts(opts.BarChart{BarGap: "-100%"}),
			)
		case KindLine:
			data := make([]opts.LineData, 0, len(s.Points))
			for _, p := range s.Points {
				data = append(data, opts.LineData{Value: []interface{}{table.FormatValue(p.X), p.Y}})
			}
			line.AddSeries(s.Label, data,
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Width: 4}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			)
		}
	}

	bar.Overlap(line)
	return bar.Render(w)
}
