// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mdstruct_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "mdstruct_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "route"},
	)

	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mdstruct_jobs_total",
			Help: "Finished analysis jobs by final status",
		},
		[]string{"status"},
	)

	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "mdstruct_job_duration_seconds",
			Help: "Time from job pickup to completion or failure",
		},
	)

	ScannedLines = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mdstruct_scanned_lines_total",
			Help: "Total number of lines scanned by analysis jobs",
		},
	)

	StructuresFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mdstruct_structures_total",
			Help: "Structures found by analysis jobs, by kind",
		},
		[]string{"kind"},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mdstruct_queue_depth",
			Help: "Jobs waiting for a worker",
		},
	)
)
