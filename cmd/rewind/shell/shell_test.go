/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dburkart/rewind/pkg/compare"
	"github.com/dburkart/rewind/pkg/repl"
	"github.com/dburkart/rewind/pkg/table"
	"github.com/dburkart/rewind/pkg/timetravel"
	"github.com/rs/zerolog"
)

type staticExecutor struct {
	current    table.ResultTable
	historical table.ResultTable
	err        error
}

func (s staticExecutor) Ping(ctx context.Context) error { return nil }

func (s staticExecutor) Execute(ctx context.Context, query string, args ...any) (table.ResultTable, error) {
	if s.err != nil {
		return table.ResultTable{}, s.err
	}
	if strings.Contains(query, "AT(") {
		return s.historical, nil
	}
	return s.current, nil
}

func revenue(total int) table.ResultTable {
	t := table.New("month", "total")
	t.Append("2024-01", total)
	return t
}

func TestRunQuery(t *testing.T) {
	exec := staticExecutor{current: revenue(1000), historical: revenue(900)}
	session := repl.NewSession(timetravel.DaysAgo(7), "csv")
	session.ChartPath = filepath.Join(t.TempDir(), "chart.html")
	session.Chart.XColumn = "month"
	session.Chart.YColumn = "total"

	var out bytes.Buffer
	runQuery(context.Background(), zerolog.Nop(), &out, compare.New(nil), exec, session, "SELECT month, total FROM revenue")

	for _, want := range []string{"2024-01,1000", "2024-01,900", "wrote chart to"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if _, err := os.Stat(session.ChartPath); err != nil {
		t.Errorf("chart not written: %s", err)
	}
}

func TestRunQueryErrors(t *testing.T) {
	session := repl.NewSession(timetravel.DaysAgo(7), "text")

	var out bytes.Buffer
	runQuery(context.Background(), zerolog.Nop(), &out, compare.New(nil), staticExecutor{}, session, "DELETE FROM revenue")
	if !strings.Contains(out.String(), "^") {
		t.Errorf("expected a caret diagnostic, got:\n%s", out.String())
	}

	out.Reset()
	runQuery(context.Background(), zerolog.Nop(), &out, compare.New(nil), staticExecutor{err: errors.New("warehouse suspended")}, session, "SELECT * FROM revenue")
	if !strings.Contains(out.String(), "warehouse suspended") {
		t.Errorf("expected the driver error, got:\n%s", out.String())
	}
}

func TestSettingItems(t *testing.T) {
	items := settingItems()
	if len(items) != len(repl.Settings) {
		t.Errorf("expected %d items, got %d", len(repl.Settings), len(items))
	}
}
