// Package metrics provides interfaces and implementations for Prometheus-compatible metrics.
//
// The package supports two modes of operation, usually together:
//   - Scrape mode: metrics are registered with a private Prometheus registry and exposed via HTTP
//   - Push mode: the same registry is gathered and pushed to a Prometheus remote write endpoint
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Gauge is a metric that represents a single numerical value that can go up and down.
type Gauge interface {
	// Set sets the Gauge to the given value.
	Set(float64)
}

// Counter is a metric that represents a single monotonically increasing counter.
type Counter interface {
	// Inc increments the counter by 1.
	Inc()
	// Add adds the given value to the counter. It panics if the value is negative.
	Add(float64)
}

// Histogram samples observations and counts them in configurable buckets.
type Histogram interface {
	// Observe adds a single observation to the histogram.
	Observe(float64)
}

// Registry creates and registers metrics.
type Registry interface {
	// NewGauge creates and registers a new Gauge.
	NewGauge(opts prometheus.GaugeOpts) (Gauge, error)

	// NewCounter creates and registers a new Counter.
	NewCounter(opts prometheus.CounterOpts) (Counter, error)

	// NewHistogram creates and registers a new Histogram.
	NewHistogram(opts prometheus.HistogramOpts) (Histogram, error)
}
