/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timetravel

import "testing"

func TestLookupDialect(t *testing.T) {
	tt := map[string]string{
		"snowflake":   "snowflake",
		"Snowflake":   "snowflake",
		" duckdb ":    "duckdb",
		"ducklake":    "duckdb",
		"mariadb":     "mariadb",
		"mysql":       "mariadb",
		"system-time": "mariadb",
	}

	for name, want := range tt {
		d, err := LookupDialect(name)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", name, err)
			continue
		}
		if d.Name() != want {
			t.Errorf("%q: wanted %s, got %s", name, want, d.Name())
		}
	}

	if _, err := LookupDialect("oracle"); err == nil {
		t.Error("oracle should not be a known dialect")
	}
}

func TestOffsetClauses(t *testing.T) {
	tt := []struct {
		dialect Dialect
		want    string
	}{
		{Snowflake, "AT(TIMESTAMP => DATEADD(DAY, -7, CURRENT_TIMESTAMP()))"},
		{DuckDB, "AT (TIMESTAMP => now() - INTERVAL 7 DAY)"},
		{SystemTime, "FOR SYSTEM_TIME AS OF CURRENT_TIMESTAMP - INTERVAL 7 DAY"},
	}

	for _, tc := range tt {
		if got := tc.dialect.OffsetClause(7); got != tc.want {
			t.Errorf("%s: wanted %q, got %q", tc.dialect.Name(), tc.want, got)
		}
	}
}
