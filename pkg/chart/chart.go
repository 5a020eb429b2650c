/*
 * Copyright (c) 2024, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/dburkart/rewind/pkg/table"
	"github.com/pkg/errors"
)

type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
	KindBoth Kind = "both"
)

var (
	ErrMissingColumn    = errors.New("missing column")
	ErrInvalidChartKind = errors.New("invalid chart kind")
)

const (
	HistoricalColor = "#FFD100"
	CurrentColor    = "#00E0FF"
)

// MissingColumnError names the table and column a chart could not find.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s table has no column %q", ErrMissingColumn, e.Table, e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

// Spec configures a comparison chart. Zero fields take the defaults below.
type Spec struct {
	XColumn         string
	YColumn         string
	CurrentLabel    string
	HistoricalLabel string
	Title           string
	Kind            Kind
	// DateFormat is the Go layout used for time.Time x values
	DateFormat string
	Width      int
	Height     int
}

func (s Spec) withDefaults() Spec {
	if s.CurrentLabel == "" {
		s.CurrentLabel = "Current Data"
	}
	if s.HistoricalLabel == "" {
		s.HistoricalLabel = "Historical Data"
	}
	if s.Title == "" {
		s.Title = "Data Comparison"
	}
	if s.Kind == "" {
		s.Kind = KindBoth
	}
	if s.DateFormat == "" {
		s.DateFormat = "Jan-2006"
	}
	if s.Width <= 0 {
		s.Width = 1500
	}
	if s.Height <= 0 {
		s.Height = 600
	}
	return s
}

// ParseKind accepts bar, line or both, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBar, KindLine, KindBoth:
		return k, nil
	case "":
		return KindBoth, nil
	}
	return "", errors.Wrapf(ErrInvalidChartKind, "%q is not one of bar, line, both", s)
}

type Point struct {
	X any
	Y any
}

type Series struct {
	Label  string
	Kind   Kind
	Color  string
	Points []Point
}

// A Chart is a renderer independent description of a comparison chart.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	Series []Series
}

// Visualize lays the current and historical tables out as chart series. Rows
// are plotted in the order received; x values are not aligned between the
// two tables.
func Visualize(current, historical table.ResultTable, spec Spec) (*Chart, error) {
	spec = spec.withDefaults()

	kind, err := ParseKind(string(spec.Kind))
	if err != nil {
		return nil, err
	}

	for _, t := range []struct {
		name string
		data table.ResultTable
	}{{"current", current}, {"historical", historical}} {
		for _, col := range []string{spec.XColumn, spec.YColumn} {
			if !t.data.HasColumn(col) {
				return nil, &MissingColumnError{Table: t.name, Column: col}
			}
		}
	}

	historicalKind, currentKind := kind, kind
	if kind == KindBoth {
		historicalKind, currentKind = KindBar, KindLine
	}

	return &Chart{
		Title:  spec.Title,
		XLabel: spec.XColumn,
		YLabel: spec.YColumn,
		Width:  spec.Width,
		Height: spec.Height,
		Series: []Series{
			{
				Label:  spec.HistoricalLabel,
				Kind:   historicalKind,
				Color:  HistoricalColor,
				Points: points(historical, spec),
			},
			{
				Label:  spec.CurrentLabel,
				Kind:   currentKind,
				Color:  CurrentColor,
				Points: points(current, spec),
			},
		},
	}, nil
}

func points(t table.ResultTable, spec Spec) []Point {
	pts := make([]Point, 0, t.Len())
	for _, r := range t.Rows {
		x := r[spec.XColumn]
		if tm, ok := x.(time.Time); ok {
			x = tm.Format(spec.DateFormat)
		}
		pts = append(pts, Point{X: x, Y: r[spec.YColumn]})
	}
	return pts
}

// SeriesByLabel returns the series with the given label.
func (c *Chart) SeriesByLabel(label string) (Series, bool) {
	for _, s := range c.Series {
		if s.Label == label {
			return s, true
		}
	}
	return Series{}, false
}

// Categories returns every x value across all series, formatted, in first
// seen order.
func (c *Chart) Categories() []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, s := range c.Series {
		for _, p := range s.Points {
			x := table.FormatValue(p.X)
			if _, ok := seen[x]; ok {
				continue
			}
			seen[x] = struct{}{}
			cats = append(cats, x)
		}
	}
	return cats
}
