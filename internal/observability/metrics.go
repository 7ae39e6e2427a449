package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fleetops"

var (
	RosterChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "roster_changes_total", Help: "Roster mutations by action"},
		[]string{"action"},
	)
	TollChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "toll_changes_total", Help: "Toll mutations by action"},
		[]string{"action"},
	)
	DocumentStatusChangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "document_status_changes_total", Help: "Documents whose status changed on refresh"},
	)
	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "domain_errors_total", Help: "Errors returned by services, by kind"},
		[]string{"kind"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
