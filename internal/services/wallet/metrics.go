package wallet

import "time"

// MetricsCollector receives operational metrics from the wallet core.
type MetricsCollector interface {
	RecordOperation(operation, result string)
	RecordOperationDuration(operation string, duration time.Duration)
	RecordVolume(operation, currency string, amountMinor int64)
	RecordError(operation, code string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperation(string, string)                {}
func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordVolume(string, string, int64)            {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
