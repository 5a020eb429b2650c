/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package compare

import (
	"context"
	"time"

	"github.com/dburkart/rewind/pkg/metrics"
	"github.com/dburkart/rewind/pkg/table"
	"github.com/dburkart/rewind/pkg/timetravel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Executor runs read queries. Its lifetime belongs to the caller.
type Executor interface {
	Ping(ctx context.Context) error
	Execute(ctx context.Context, query string, args ...any) (table.ResultTable, error)
}

const (
	ScopeCurrent    = "current"
	ScopeHistorical = "historical"
)

type Comparator struct {
	builder      *timetravel.Builder
	log          zerolog.Logger
	metrics      metrics.Recorder
	scopeCurrent bool
	now          func() time.Time
}

type Option func(*Comparator)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Comparator) { c.log = l }
}

func WithMetrics(m metrics.Recorder) Option {
	return func(c *Comparator) { c.metrics = m }
}

// WithScopedCurrent runs the current side scoped to DaysAgo(0) instead of
// running the base query unchanged.
func WithScopedCurrent() Option {
	return func(c *Comparator) { c.scopeCurrent = true }
}

func New(b *timetravel.Builder, opts ...Option) *Comparator {
	if b == nil {
		b = timetravel.NewBuilder(timetravel.DefaultDialect)
	}
	c := &Comparator{
		builder: b,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Comparator) Builder() *timetravel.Builder {
	return c.builder
}

// Compare runs baseQuery now and as of when, current first. Either both
// tables are returned or neither is.
func (c *Comparator) Compare(ctx context.Context, exec Executor, baseQuery string, when timetravel.PointInTime, args ...any) (current, historical table.ResultTable, err error) {
	cmp, err := c.CompareSnapshots(ctx, exec, baseQuery, when, args...)
	if err != nil {
		return table.ResultTable{}, table.ResultTable{}, err
	}
	return cmp.Current.Data, cmp.Historical.Data, nil
}

// CompareSnapshots is Compare with the scoped queries and timings kept.
func (c *Comparator) CompareSnapshots(ctx context.Context, exec Executor, baseQuery string, when timetravel.PointInTime, args ...any) (Comparison, error) {
	id := uuid.New()
	log := c.log.With().Str("comparison", id.String()).Logger()

	currentQuery := baseQuery
	if c.scopeCurrent {
		q, err := c.builder.BuildScopedQuery(baseQuery, timetravel.Now())
		if err != nil {
			c.countComparison("invalid")
			return Comparison{}, err
		}
		currentQuery = q
	} else if _, err := c.builder.InsertionPoints(baseQuery); err != nil {
		c.countComparison("invalid")
		return Comparison{}, err
	}

	historicalQuery, err := c.builder.BuildScopedQuery(baseQuery, when)
	if err != nil {
		c.countComparison("invalid")
		return Comparison{}, err
	}

	if err := c.ping(ctx, exec); err != nil {
		c.countComparison("error")
		return Comparison{}, err
	}

	current, err := c.run(ctx, log, exec, ScopeCurrent, currentQuery, timetravel.Now(), args)
	if err != nil {
		c.countComparison("error")
		return Comparison{}, err
	}

	historical, err := c.run(ctx, log, exec, ScopeHistorical, historicalQuery, when, args)
	if err != nil {
		c.countComparison("error")
		return Comparison{}, err
	}

	current.ID = id
	historical.ID = id

	log.Debug().
		Int("current_rows", current.RowCount()).
		Int("historical_rows", historical.RowCount()).
		Str("when", when.String()).
		Msg("comparison complete")
	c.countComparison("ok")

	return Comparison{ID: id, Current: current, Historical: historical}, nil
}

// QueryAt runs baseQuery scoped to when.
func (c *Comparator) QueryAt(ctx context.Context, exec Executor, baseQuery string, when timetravel.PointInTime, args ...any) (Snapshot, error) {
	scoped, err := c.builder.BuildScopedQuery(baseQuery, when)
	if err != nil {
		return Snapshot{}, err
	}

	if err := c.ping(ctx, exec); err != nil {
		return Snapshot{}, err
	}

	id := uuid.New()
	snap, err := c.run(ctx, c.log.With().Str("snapshot", id.String()).Logger(), exec, ScopeHistorical, scoped, when, args)
	if err != nil {
		return Snapshot{}, err
	}
	snap.ID = id
	return snap, nil
}

func (c *Comparator) ping(ctx context.Context, exec Executor) error {
	if exec == nil {
		return &ConnectionError{Err: errNoExecutor}
	}
	if err := exec.Ping(ctx); err != nil {
		return &ConnectionError{Err: err}
	}
	return nil
}

func (c *Comparator) run(ctx context.Context, log zerolog.Logger, exec Executor, scope, query string, when timetravel.PointInTime, args []any) (Snapshot, error) {
	dialect := c.builder.DialectName()

	log.Trace().Str("scope", scope).Str("query", query).Msg("executing")

	start := c.now()
	data, err := exec.Execute(ctx, query, args...)
	elapsed := c.now().Sub(start)

	if c.metrics != nil {
		c.metrics.ObserveQuery(dialect, scope, elapsed)
	}

	if err != nil {
		c.countQuery(dialect, scope, "error")
		log.Debug().Err(err).Str("scope", scope).Msg("query failed")
		if isConnectionFailure(err) {
			return Snapshot{}, &ConnectionError{Err: err}
		}
		return Snapshot{}, &ExecutionError{Scope: scope, Query: query, Err: err}
	}
	c.countQuery(dialect, scope, "ok")

	log.Debug().
		Str("scope", scope).
		Int("rows", data.Len()).
		Dur("elapsed", elapsed).
		Msg("query complete")

	return Snapshot{
		Data:      data,
		Query:     query,
		When:      when,
		QueriedAt: start,
		Elapsed:   elapsed,
	}, nil
}

func (c *Comparator) countQuery(dialect, scope, status string) {
	if c.metrics != nil {
		c.metrics.IncQueries(dialect, scope, status)
	}
}

func (c *Comparator) countComparison(status string) {
	if c.metrics != nil {
		c.metrics.IncComparisons(status)
	}
}
