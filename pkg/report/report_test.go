/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dburkart/rewind/pkg/chart"
	"github.com/dburkart/rewind/pkg/compare"
	"github.com/dburkart/rewind/pkg/table"
	"github.com/dburkart/rewind/pkg/timetravel"
	"github.com/google/uuid"
)

func comparison() compare.Comparison {
	cur := table.New("month", "total")
	cur.Append("2024-01", 1000)
	cur.Append("2024-02", 1200)
	hist := table.New("month", "total")
	hist.Append("2024-01", 900)

	id := uuid.New()
	return compare.Comparison{
		ID:         id,
		Current:    compare.Snapshot{ID: id, Data: cur, When: timetravel.Now(), Elapsed: time.Second},
		Historical: compare.Snapshot{ID: id, Data: hist, When: timetravel.DaysAgo(7), Elapsed: time.Second},
	}
}

func TestSummary(t *testing.T) {
	want := "2 rows now, 1 rows 7 days ago (+1 rows) in 2s"
	if got := Summary(comparison()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteComparisonCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteComparison(&buf, comparison(), "csv"); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"-- current (now)",
		"month,total",
		"2024-01,1000",
		"2024-02,1200",
		"-- historical (7 days ago)",
		"month,total",
		"2024-01,900",
		"2 rows now, 1 rows 7 days ago (+1 rows) in 2s",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteComparisonJSON(t *testing.T) {
	var buf bytes.Buffer
	cmp := comparison()
	if err := WriteComparison(&buf, cmp, "json"); err != nil {
		t.Fatal(err)
	}

	var out struct {
		ID         string
		Historical struct {
			When string
			Rows []map[string]any
		}
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != cmp.ID.String() {
		t.Errorf("id mismatch: %s != %s", out.ID, cmp.ID)
	}
	if out.Historical.When != "7 days ago" || len(out.Historical.Rows) != 1 {
		t.Errorf("unexpected historical %+v", out.Historical)
	}
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")
	if err := WriteChart(path, comparison(), chart.Spec{XColumn: "month", YColumn: "total"}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Data Comparison") {
		t.Error("chart title missing from output")
	}

	err = WriteChart(path, comparison(), chart.Spec{XColumn: "month", YColumn: "revenue"})
	if !errors.Is(err, chart.ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}
