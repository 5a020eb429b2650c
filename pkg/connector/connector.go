/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package connector

import (
	"context"
	"database/sql"

	"github.com/dburkart/rewind/pkg/table"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DB runs queries against a database/sql handle and collects the results
// into tables.
type DB struct {
	db  *sql.DB
	log zerolog.Logger
}

type Option func(*DB)

func WithLogger(l zerolog.Logger) Option {
	return func(d *DB) { d.log = l }
}

// Open connects to the database named by the connection string and checks
// the connection is live. The driver must already be registered.
func Open(ctx context.Context, cs ConnectionString, opts ...Option) (*DB, error) {
	handle, err := sql.Open(cs.Driver, cs.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", cs)
	}

	d := NewDB(handle, opts...)
	d.log.Debug().Str("driver", cs.Driver).Stringer("connection", cs).Msg("connecting")

	if err := d.Ping(ctx); err != nil {
		handle.Close()
		return nil, errors.Wrapf(err, "could not connect to %s", cs)
	}
	return d, nil
}

// NewDB wraps a handle opened by the caller.
func NewDB(handle *sql.DB, opts ...Option) *DB {
	d := &DB{db: handle, log: zerolog.Nop()}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Execute runs the query and reads every row. Byte slices are returned as
// strings.
func (d *DB) Execute(ctx context.Context, query string, args ...any) (table.ResultTable, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return table.ResultTable{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return table.ResultTable{}, err
	}

	result := table.New(columns...)
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return table.ResultTable{}, err
		}
		row := make([]any, len(values))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[i] = v
		}
		result.Append(row...)
	}
	if err := rows.Err(); err != nil {
		return table.ResultTable{}, err
	}

	d.log.Trace().Int("rows", result.Len()).Msg("query finished")
	return result, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
