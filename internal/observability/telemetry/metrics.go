package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	ActiveChargingSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chargemgr_active_charging_sessions",
		Help: "Number of charging sessions currently in progress",
	})

	EnergyDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chargemgr_energy_delivered_kwh_total",
		Help: "Total energy delivered across completed sessions in kWh",
	})

	SessionsCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chargemgr_sessions_completed_total",
		Help: "Total charging sessions that reached a terminal state",
	}, []string{"status"})

	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chargemgr_payments_total",
		Help: "Total payment settlement attempts",
	}, []string{"status"})

	// Infrastructure metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chargemgr_http_requests_total",
		Help: "Total HTTP requests served",
	}, []string{"method", "path", "status"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chargemgr_database_latency_seconds",
		Help:    "Database query latency",
		Buckets: prometheus.DefBuckets,
	})
)
