package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// Command surface metrics
	CommandRequests *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),

		CommandRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_command_requests_total",
				Help: "Total commands dispatched by name and result kind",
			},
			[]string{"command", "result"},
		),
		CommandDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contas_command_duration_seconds",
				Help:    "Command dispatch duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contas_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
