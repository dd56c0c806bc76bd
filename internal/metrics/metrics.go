package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garment_http_requests_total",
			Help: "HTTP requests served, by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garment_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UpstreamRequestsTotal counts calls to the manpower/overtime/salary collaborators.
	// outcome is one of ok, transport_error, api_error.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garment_upstream_requests_total",
			Help: "Calls to external collaborators, by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garment_upstream_request_duration_seconds",
			Help:    "Latency of calls to external collaborators",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	StaleFetchesDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "garment_worksheet_stale_fetches_total",
			Help: "Fetch results dropped because a newer date selection or refresh started",
		},
	)

	WorksheetSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garment_worksheet_saves_total",
			Help: "Worksheet save attempts by outcome",
		},
		[]string{"outcome"},
	)

	NotifyClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garment_notify_clients",
			Help: "Connected websocket notification clients",
		},
	)
)
