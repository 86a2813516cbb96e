// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by path and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playlist_http_requests_total",
		Help: "HTTP requests by path and status code.",
	}, []string{"path", "status"})

	// HTTPDuration tracks request latency by path.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "playlist_http_request_duration_seconds",
		Help:    "HTTP request latency by path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	// SnapshotLoads counts snapshot loads by source (cache or store).
	SnapshotLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playlist_snapshot_loads_total",
		Help: "Snapshot loads by source.",
	}, []string{"source"})

	// SnapshotEvents reports the size of the most recent store load.
	SnapshotEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "playlist_snapshot_events",
		Help: "Events in the most recently loaded snapshot.",
	})
)
