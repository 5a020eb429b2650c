/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package connector

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dburkart/rewind/pkg/compare"
	"github.com/dburkart/rewind/pkg/table"
	"github.com/dburkart/rewind/pkg/timetravel"
	_ "modernc.org/sqlite"
)

var _ compare.Executor = (*DB)(nil)

func seed(t *testing.T) ConnectionString {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rewind.db")
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer handle.Close()

	for _, stmt := range []string{
		"CREATE TABLE revenue (month TEXT, total INTEGER, note BLOB)",
		"INSERT INTO revenue VALUES ('2024-01', 1000, x'6869')",
		"INSERT INTO revenue VALUES ('2024-02', 1200, NULL)",
	} {
		if _, err := handle.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}

	cs, err := ParseConnectionString("sqlite://" + path)
	if err != nil {
		t.Fatal(err)
	}
	return cs
}

func TestOpenAndExecute(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, seed(t))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	result, err := db.Execute(ctx, "SELECT month, total, note FROM revenue WHERE total > ? ORDER BY month", 500)
	if err != nil {
		t.Fatal(err)
	}

	if !result.SameColumns(table.New("month", "total", "note")) {
		t.Fatalf("unexpected columns %v", result.Columns)
	}
	if result.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", result.Len())
	}

	first := result.Rows[0]
	if first["month"] != "2024-01" {
		t.Errorf("month: %v", first["month"])
	}
	if first["total"] != int64(1000) {
		t.Errorf("total: %#v", first["total"])
	}
	if first["note"] != "hi" {
		t.Errorf("blob should come back as a string, got %#v", first["note"])
	}
	if result.Rows[1]["note"] != nil {
		t.Errorf("expected NULL note, got %#v", result.Rows[1]["note"])
	}
}

func TestExecuteEmpty(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, seed(t))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	result, err := db.Execute(ctx, "SELECT month FROM revenue WHERE total < 0")
	if err != nil {
		t.Fatal(err)
	}
	if result.Len() != 0 || len(result.Columns) != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestExecuteError(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, seed(t))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Execute(ctx, "SELECT * FROM missing"); err == nil {
		t.Error("expected an error for a missing table")
	}
}

func TestOpenUnregisteredDriver(t *testing.T) {
	cs := ConnectionString{Scheme: "x", Driver: "no-such-driver", DSN: "x", redacted: "x://x"}
	if _, err := Open(context.Background(), cs); err == nil {
		t.Error("expected an error for an unregistered driver")
	}
}

func TestCompareOverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, seed(t))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// sqlite has no time travel, so only the unscoped current query can run
	c := compare.New(nil)
	_, _, err = c.Compare(ctx, db, "SELECT month, total FROM revenue", timetravel.DaysAgo(7))
	var ee *compare.ExecutionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected an execution error, got %v", err)
	}
	if ee.Scope != compare.ScopeHistorical {
		t.Errorf("expected the historical query to fail, got %s", ee.Scope)
	}
}
