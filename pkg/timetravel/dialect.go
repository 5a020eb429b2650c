/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timetravel

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// A Dialect renders the time travel clause placed after a relation name.
// Renderers only ever see an integer or a time.Time, never caller text.
type Dialect interface {
	Name() string
	// OffsetClause scopes a relation to now minus days.
	OffsetClause(days int) string
	// TimestampClause scopes a relation to the instant t.
	TimestampClause(t time.Time) string
	// BackslashEscapes reports whether '\' escapes quotes in string literals.
	BackslashEscapes() bool
	// SlashComments reports whether // starts a line comment.
	SlashComments() bool
}

type snowflake struct{}

func (snowflake) Name() string { return "snowflake" }

func (snowflake) OffsetClause(days int) string {
	return fmt.Sprintf("AT(TIMESTAMP => DATEADD(DAY, -%d, CURRENT_TIMESTAMP()))", days)
}

func (snowflake) TimestampClause(t time.Time) string {
	return fmt.Sprintf("AT(TIMESTAMP => '%s'::TIMESTAMP_TZ)", t.Format("2006-01-02 15:04:05.000000000 -07:00"))
}

func (snowflake) BackslashEscapes() bool { return true }

func (snowflake) SlashComments() bool { return true }

type duckdb struct{}

func (duckdb) Name() string { return "duckdb" }

func (duckdb) OffsetClause(days int) string {
	return fmt.Sprintf("AT (TIMESTAMP => now() - INTERVAL %d DAY)", days)
}

func (duckdb) TimestampClause(t time.Time) string {
	return fmt.Sprintf("AT (TIMESTAMP => TIMESTAMPTZ '%s')", t.Format("2006-01-02 15:04:05.000000-07:00"))
}

func (duckdb) BackslashEscapes() bool { return false }

// In DuckDB // is integer division.
func (duckdb) SlashComments() bool { return false }

// systemTime is the SQL:2011 system versioned table syntax used by MariaDB.
type systemTime struct{}

func (systemTime) Name() string { return "mariadb" }

func (systemTime) OffsetClause(days int) string {
	return fmt.Sprintf("FOR SYSTEM_TIME AS OF CURRENT_TIMESTAMP - INTERVAL %d DAY", days)
}

func (systemTime) TimestampClause(t time.Time) string {
	return fmt.Sprintf("FOR SYSTEM_TIME AS OF TIMESTAMP '%s'", t.Format("2006-01-02 15:04:05.000000"))
}

func (systemTime) BackslashEscapes() bool { return true }

func (systemTime) SlashComments() bool { return false }

var (
	Snowflake  Dialect = snowflake{}
	DuckDB     Dialect = duckdb{}
	SystemTime Dialect = systemTime{}

	DefaultDialect = Snowflake
)

var dialects = map[string]Dialect{
	"snowflake":   Snowflake,
	"duckdb":      DuckDB,
	"ducklake":    DuckDB,
	"mariadb":     SystemTime,
	"mysql":       SystemTime,
	"system-time": SystemTime,
}

// LookupDialect returns the dialect registered under name, ignoring case.
func LookupDialect(name string) (Dialect, error) {
	if d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown dialect %q (known: %s)", name, strings.Join(DialectNames(), ", "))
}

// DialectNames lists every registered dialect name.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for k := range dialects {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
