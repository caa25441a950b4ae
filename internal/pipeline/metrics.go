package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the per-operation call collectors.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them. Collectors already
// registered by another client on the same registerer are reused.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: constants.MetricsNamespace,
		Subsystem: constants.MetricsSubsystem,
		Name:      "calls_total",
		Help:      "API calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: constants.MetricsNamespace,
		Subsystem: constants.MetricsSubsystem,
		Name:      "call_duration_seconds",
		Help:      "API call latency by operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	registeredCalls, err := register(registerer, calls)
	if err != nil {
		return nil, err
	}

	registeredDuration, err := register(registerer, duration)
	if err != nil {
		return nil, err
	}

	return &Metrics{calls: registeredCalls, duration: registeredDuration}, nil
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

func (m *Metrics) observe(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.calls.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
