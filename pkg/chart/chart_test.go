/*
 * Copyright (c) 2024, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package chart

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dburkart/rewind/pkg/table"
)

func revenue(total int) table.ResultTable {
	t := table.New("month", "total")
	t.Append("2024-01", total)
	return t
}

func TestVisualizeRevenue(t *testing.T) {
	c, err := Visualize(revenue(1000), revenue(900), Spec{XColumn: "month", YColumn: "total"})
	if err != nil {
		t.Fatal(err)
	}

	if c.Title != "Data Comparison" || c.Width != 1500 || c.Height != 600 {
		t.Errorf("defaults not applied: %+v", c)
	}
	if len(c.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(c.Series))
	}

	hist, ok := c.SeriesByLabel("Historical Data")
	if !ok {
		t.Fatal("missing historical series")
	}
	if hist.Kind != KindBar || hist.Color != HistoricalColor {
		t.Errorf("historical series: %+v", hist)
	}
	if !reflect.DeepEqual(hist.Points, []Point{{X: "2024-01", Y: 900}}) {
		t.Errorf("historical points: %v", hist.Points)
	}

	cur, ok := c.SeriesByLabel("Current Data")
	if !ok {
		t.Fatal("missing current series")
	}
	if cur.Kind != KindLine || cur.Color != CurrentColor {
		t.Errorf("current series: %+v", cur)
	}
	if !reflect.DeepEqual(cur.Points, []Point{{X: "2024-01", Y: 1000}}) {
		t.Errorf("current points: %v", cur.Points)
	}
}

func TestVisualizeKinds(t *testing.T) {
	tests := []struct {
		kind       Kind
		historical Kind
		current    Kind
	}{
		{KindBar, KindBar, KindBar},
		{KindLine, KindLine, KindLine},
		{KindBoth, KindBar, KindLine},
		{"", KindBar, KindLine},
		{"LINE", KindLine, KindLine},
	}

	for _, tc := range tests {
		c, err := Visualize(revenue(1), revenue(2), Spec{XColumn: "month", YColumn: "total", Kind: tc.kind})
		if err != nil {
			t.Fatalf("%q: %s", tc.kind, err)
		}
		if c.Series[0].Kind != tc.historical || c.Series[1].Kind != tc.current {
			t.Errorf("%q: got %s/%s, want %s/%s", tc.kind, c.Series[0].Kind, c.Series[1].Kind, tc.historical, tc.current)
		}
	}
}

func TestVisualizeInvalidKind(t *testing.T) {
	_, err := Visualize(revenue(1), revenue(2), Spec{XColumn: "month", YColumn: "total", Kind: "pie"})
	if !errors.Is(err, ErrInvalidChartKind) {
		t.Fatalf("expected ErrInvalidChartKind, got %v", err)
	}
}

func TestVisualizeMissingColumn(t *testing.T) {
	other := table.New("month", "count")
	other.Append("2024-01", 3)

	tests := []struct {
		name       string
		current    table.ResultTable
		historical table.ResultTable
		spec       Spec
		table      string
		column     string
	}{
		{"missing y", revenue(1), revenue(2), Spec{XColumn: "month", YColumn: "revenue"}, "current", "revenue"},
		{"missing x", revenue(1), revenue(2), Spec{XColumn: "day", YColumn: "total"}, "current", "day"},
		{"historical only", revenue(1), other, Spec{XColumn: "month", YColumn: "total"}, "historical", "total"},
		{"empty column", revenue(1), revenue(2), Spec{XColumn: "month"}, "current", ""},
	}

	for _, tc := range tests {
		_, err := Visualize(tc.current, tc.historical, tc.spec)
		if !errors.Is(err, ErrMissingColumn) {
			t.Errorf("%s: expected ErrMissingColumn, got %v", tc.name, err)
			continue
		}
		var mce *MissingColumnError
		if !errors.As(err, &mce) {
			t.Errorf("%s: expected *MissingColumnError", tc.name)
			continue
		}
		if mce.Table != tc.table || mce.Column != tc.column {
			t.Errorf("%s: got %s/%q, want %s/%q", tc.name, mce.Table, mce.Column, tc.table, tc.column)
		}
	}
}

func TestVisualizeEmptyTables(t *testing.T) {
	c, err := Visualize(table.New("x", "y"), table.New("x", "y"), Spec{XColumn: "x", YColumn: "y"})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range c.Series {
		if len(s.Points) != 0 {
			t.Errorf("%s: expected no points", s.Label)
		}
	}
	if len(c.Categories()) != 0 {
		t.Errorf("expected no categories, got %v", c.Categories())
	}
}

func TestCategories(t *testing.T) {
	cur := table.New("month", "total")
	cur.Append("2024-02", 5)
	cur.Append("2024-03", 6)
	hist := table.New("month", "total")
	hist.Append("2024-01", 1)
	hist.Append("2024-02", 2)

	c, err := Visualize(cur, hist, Spec{XColumn: "month", YColumn: "total"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"2024-01", "2024-02", "2024-03"}
	if got := c.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestVisualizeDateFormat(t *testing.T) {
	period := func(total int) table.ResultTable {
		tbl := table.New("PERIOD", "SUM")
		tbl.Append(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), total)
		tbl.Append(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), total/2)
		return tbl
	}

	tests := []struct {
		layout string
		want   []string
	}{
		{"", []string{"Mar-2024", "Feb-2024"}},
		{"2006-01", []string{"2024-03", "2024-02"}},
	}

	for _, tc := range tests {
		c, err := Visualize(period(1000), period(900), Spec{XColumn: "PERIOD", YColumn: "SUM", DateFormat: tc.layout})
		if err != nil {
			t.Fatal(err)
		}
		if got := c.Categories(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%q: got %v, want %v", tc.layout, got, tc.want)
		}
		if x := c.Series[0].Points[0].X; x != tc.want[0] {
			t.Errorf("%q: historical x should be formatted, got %v", tc.layout, x)
		}
	}
}

func TestRender(t *testing.T) {
	c, err := Visualize(revenue(1000), revenue(900), Spec{
		XColumn:         "month",
		YColumn:         "total",
		CurrentLabel:    "Today",
		HistoricalLabel: "LastWeek",
		Title:           "Revenue",
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Today", "LastWeek", "Revenue", "2024-01", "1000", "900", HistoricalColor, CurrentColor} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered chart missing %q", want)
		}
	}
}
