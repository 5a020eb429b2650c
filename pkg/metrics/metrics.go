/*
 * Copyright (c) 2022-2024, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the collection side of a Store.
type Recorder interface {
	IncQueries(dialect, scope, status string)
	ObserveQuery(dialect, scope string, d time.Duration)
	IncComparisons(status string)
}

type Store interface {
	Recorder

	Registry() *prometheus.Registry
	Handler() http.Handler
}

type metricsStore struct {
	registry     *prometheus.Registry
	Queries      *prometheus.CounterVec
	QuerySeconds *prometheus.HistogramVec
	Comparisons  *prometheus.CounterVec
}

var (
	DialectLabel = "dialect"
	ScopeLabel   = "scope"
	StatusLabel  = "status"
)

func NewStore() Store {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
	)

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewind_queries_total",
			Help: "Queries executed, by dialect, time scope and outcome",
		}, []string{DialectLabel, ScopeLabel, StatusLabel}),
		QuerySeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rewind_query_seconds",
			Help:    "Query execution time against the database",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{DialectLabel, ScopeLabel}),
		Comparisons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewind_comparisons_total",
			Help: "Current versus historical comparisons, by outcome",
		}, []string{StatusLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) IncQueries(dialect, scope, status string) {
	ms.Queries.With(prometheus.Labels{DialectLabel: dialect, ScopeLabel: scope, StatusLabel: status}).Inc()
}

func (ms *metricsStore) ObserveQuery(dialect, scope string, d time.Duration) {
	ms.QuerySeconds.
		With(prometheus.Labels{DialectLabel: dialect, ScopeLabel: scope}).
		Observe(d.Seconds())
}

func (ms *metricsStore) IncComparisons(status string) {
	ms.Comparisons.With(prometheus.Labels{StatusLabel: status}).Inc()
}
