// Package metrics provides the Prometheus implementation of the wallet
// core's MetricsCollector.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type WalletMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	volumeTotal       *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
}

func NewWalletMetrics() *WalletMetrics {
	return &WalletMetrics{
		operationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_operations_total",
				Help: "Wallet operations by type and result",
			},
			[]string{"operation", "result"},
		),
		operationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wallet_operation_duration_seconds",
				Help:    "Wallet operation latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		volumeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_volume_minor_units_total",
				Help: "Moved amounts in minor units by operation and currency",
			},
			[]string{"operation", "currency"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_errors_total",
				Help: "Wallet operation failures by code",
			},
			[]string{"operation", "code"},
		),
	}
}

func (m *WalletMetrics) RecordOperation(operation, result string) {
	m.operationsTotal.WithLabelValues(operation, result).Inc()
}

func (m *WalletMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *WalletMetrics) RecordVolume(operation, currency string, amountMinor int64) {
	m.volumeTotal.WithLabelValues(operation, currency).Add(float64(amountMinor))
}

func (m *WalletMetrics) RecordError(operation, code string) {
	m.errorsTotal.WithLabelValues(operation, code).Inc()
}

// Serve exposes /metrics on its own listener so the main API port stays
// clean.
func Serve(addr string, logger *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.WithError(err).Error("metrics server stopped")
		}
	}()
}
