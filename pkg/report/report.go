/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dburkart/rewind/pkg/chart"
	"github.com/dburkart/rewind/pkg/compare"
	"github.com/dburkart/rewind/pkg/table"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type jsonSnapshot struct {
	Query     string      `json:"query"`
	When      string      `json:"when"`
	QueriedAt time.Time   `json:"queried_at"`
	Rows      []table.Row `json:"rows"`
}

type jsonComparison struct {
	ID         string       `json:"id"`
	Current    jsonSnapshot `json:"current"`
	Historical jsonSnapshot `json:"historical"`
}

// WriteComparison prints both sides of a comparison in the given output
// format. Text and CSV output print each table under a heading followed by a
// summary line; JSON output is a single object.
func WriteComparison(w io.Writer, cmp compare.Comparison, format string) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(jsonComparison{
			ID:         cmp.ID.String(),
			Current:    toJSON(cmp.Current),
			Historical: toJSON(cmp.Historical),
		})
	}

	out := table.NewOutputWriter(w, format)
	for _, s := range []struct {
		name string
		snap compare.Snapshot
	}{{"current", cmp.Current}, {"historical", cmp.Historical}} {
		fmt.Fprintf(w, "-- %s (%s)\n", s.name, s.snap.When)
		if err := out.Write(s.snap.Data); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, Summary(cmp))
	return err
}

func toJSON(s compare.Snapshot) jsonSnapshot {
	rows := s.Data.Rows
	if rows == nil {
		rows = []table.Row{}
	}
	return jsonSnapshot{
		Query:     s.Query,
		When:      s.When.String(),
		QueriedAt: s.QueriedAt,
		Rows:      rows,
	}
}

// Summary describes the row counts of a comparison in one line.
func Summary(cmp compare.Comparison) string {
	delta := cmp.RowDelta()
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	return fmt.Sprintf("%s rows now, %s rows %s (%s%s rows) in %s",
		humanize.Comma(int64(cmp.Current.RowCount())),
		humanize.Comma(int64(cmp.Historical.RowCount())),
		cmp.Historical.When,
		sign, humanize.Comma(int64(delta)),
		cmp.Current.Elapsed+cmp.Historical.Elapsed,
	)
}

// WriteChart draws the comparison and writes the HTML page to path.
func WriteChart(path string, cmp compare.Comparison, spec chart.Spec) error {
	c, err := chart.Visualize(cmp.Current.Data, cmp.Historical.Data, spec)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create chart file")
	}
	if err := c.Render(f); err != nil {
		f.Close()
		return errors.Wrap(err, "could not render chart")
	}
	return f.Close()
}
