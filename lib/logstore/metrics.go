package logstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monolog_viewer_store_queries_total",
		Help: "Total number of log store queries by query and outcome",
	}, []string{"query", "status"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "monolog_viewer_store_query_duration_seconds",
		Help:    "Duration of log store queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})
)
