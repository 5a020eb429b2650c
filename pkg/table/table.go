/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package table

import (
	"fmt"
	"time"
)

// A Row maps column names to the values a driver returned for them.
type Row map[string]any

// ResultTable is an ordered set of rows sharing one column schema.
type ResultTable struct {
	Columns []string
	Rows    []Row
}

func New(columns ...string) ResultTable {
	return ResultTable{Columns: columns}
}

// Append adds a row built from values in column order.
func (t *ResultTable) Append(values ...any) {
	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		if i < len(values) {
			row[c] = values[i]
		} else {
			row[c] = nil
		}
	}
	t.Rows = append(t.Rows, row)
}

func (t ResultTable) Len() int {
	return len(t.Rows)
}

func (t ResultTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the values of one column in row order.
func (t ResultTable) Column(name string) []any {
	values := make([]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		values = append(values, r[name])
	}
	return values
}

// SameColumns reports whether t and other have the same columns in the same
// order.
func (t ResultTable) SameColumns(other ResultTable) bool {
	if len(t.Columns) != len(other.Columns) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != other.Columns[i] {
			return false
		}
	}
	return true
}

func (t ResultTable) Headers() []string {
	return t.Columns
}

func (t ResultTable) Values() [][]string {
	values := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		line := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			line = append(line, FormatValue(r[c]))
		}
		values = append(values, line)
	}
	return values
}

// FormatValue renders a single cell for text and CSV output.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}
