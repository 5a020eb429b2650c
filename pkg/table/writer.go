/*
 * Copyright (c) 2023-2024, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package table

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Printable is anything with a header row and string cells.
type Printable interface {
	Headers() []string
	Values() [][]string
}

type OutputWriter interface {
	Write(v Printable) error
}

type CSVWriter struct {
	w io.Writer
}

type TextWriter struct {
	w io.Writer
}

type JSONWriter struct {
	w io.Writer
}

var Formats = []string{"text", "csv", "json"}

func NewOutputWriter(w io.Writer, t string) OutputWriter {
	switch t {
	case "csv":
		return CSVWriter{
			w,
		}
	case "json":
		return JSONWriter{
			w,
		}
	}
	return TextWriter{
		w,
	}
}

func (w CSVWriter) Write(v Printable) error {
	wtr := csv.NewWriter(w.w)
	if err := wtr.Write(v.Headers()); err != nil {
		return err
	}
	return wtr.WriteAll(v.Values())
}

func (w TextWriter) Write(v Printable) error {
	headers := make([]any, 0, len(v.Headers()))
	for _, h := range v.Headers() {
		headers = append(headers, h)
	}

	table := tablewriter.NewWriter(w.w)
	table.Header(headers...)
	if err := table.Bulk(v.Values()); err != nil {
		return err
	}
	return table.Render()
}

// JSON output keeps the typed row values when v is a ResultTable.
func (w JSONWriter) Write(v Printable) error {
	enc := json.NewEncoder(w.w)
	if t, ok := v.(ResultTable); ok {
		rows := t.Rows
		if rows == nil {
			rows = []Row{}
		}
		return enc.Encode(rows)
	}

	out := make([]map[string]string, 0, len(v.Values()))
	for _, line := range v.Values() {
		m := make(map[string]string, len(line))
		for i, h := range v.Headers() {
			if i < len(line) {
				m[h] = line[i]
			}
		}
		out = append(out, m)
	}
	return enc.Encode(out)
}
