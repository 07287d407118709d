// File: metrics.go
// Title: errenhanced Prometheus Metrics
// Description: Counters and histograms for composition, serialization,
//              dependency discovery and stack-cache lookups. A nil *Recorder
//              is valid and records nothing, so callers never branch on
//              whether metrics are enabled.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Stack cache lookup results
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Recorder holds the errenhanced metrics
type Recorder struct {
	compositions          prometheus.Counter
	serializations        *prometheus.CounterVec   // by format and outcome
	serializationDuration *prometheus.HistogramVec // by format
	dependencyFetches     *prometheus.CounterVec   // by outcome
	stackCacheLookups     *prometheus.CounterVec   // by result
}

// NewRecorder creates the metrics under namespace and registers them with
// reg. A nil reg creates unregistered collectors, which is what tests and
// short-lived CLI runs want.
func NewRecorder(namespace string, reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		compositions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compositions_total",
			Help:      "Total number of enhanced errors composed",
		}),

		serializations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "serializer",
			Name:      "serializations_total",
			Help:      "Total number of serializations by format and outcome",
		}, []string{"format", "outcome"}),

		serializationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "serializer",
			Name:      "duration_seconds",
			Help:      "Serialization duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"format"}),

		dependencyFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "application_state",
			Name:      "dependency_fetches_total",
			Help:      "Total number of dependency discovery runs by outcome",
		}, []string{"outcome"}),

		stackCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "stack_cache_lookups_total",
			Help:      "Total number of parsed-stack cache lookups by result",
		}, []string{"result"}),
	}

	if reg == nil {
		return r, nil
	}

	var err error
	if r.compositions, err = register(reg, r.compositions); err != nil {
		return nil, err
	}
	if r.serializations, err = register(reg, r.serializations); err != nil {
		return nil, err
	}
	if r.serializationDuration, err = register(reg, r.serializationDuration); err != nil {
		return nil, err
	}
	if r.dependencyFetches, err = register(reg, r.dependencyFetches); err != nil {
		return nil, err
	}
	if r.stackCacheLookups, err = register(reg, r.stackCacheLookups); err != nil {
		return nil, err
	}

	return r, nil
}

// RecordComposition counts one composed error
func (r *Recorder) RecordComposition() {
	if r == nil {
		return
	}
	r.compositions.Inc()
}

// RecordSerialization counts one serialization and observes its duration
func (r *Recorder) RecordSerialization(format string, err error, duration time.Duration) {
	if r == nil {
		return
	}
	r.serializations.WithLabelValues(format, outcome(err)).Inc()
	r.serializationDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordDependencyFetch counts one dependency discovery run
func (r *Recorder) RecordDependencyFetch(err error) {
	if r == nil {
		return
	}
	r.dependencyFetches.WithLabelValues(outcome(err)).Inc()
}

// RecordStackCacheLookup counts a parsed-stack cache hit or miss
func (r *Recorder) RecordStackCacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	r.stackCacheLookups.WithLabelValues(result).Inc()
}

// register adds c to reg, reusing the collector already registered under
// the same descriptor
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
