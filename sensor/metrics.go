package sensor

import (
	"fmt"

	"github.com/nomis52/sensorsim/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names exposed by the service.
const (
	RequestsTotalName     = "sensor_requests_total"
	FailuresTotalName     = "sensor_failures_total"
	CPUSpikeName          = "sensor_cpu_spike"
	ProcessingLatencyName = "sensor_processing_latency_seconds"
	ScrapeDurationName    = "sensor_scrape_duration_seconds"
)

// ScrapeDurationBuckets are the bucket boundaries of the scrape duration histogram.
var ScrapeDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}

// Metrics holds every metric the service reports. It is created once and
// shared by reference; nothing registers these names again.
type Metrics struct {
	Requests          metrics.Counter
	Failures          metrics.Counter
	CPUSpike          metrics.Gauge
	ProcessingLatency metrics.Histogram
	ScrapeDuration    metrics.Histogram
}

// NewMetrics registers the sensor metrics with reg.
// Any registration failure is a programming error and is returned to abort startup.
func NewMetrics(reg metrics.Registry) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.Requests, err = reg.NewCounter(prometheus.CounterOpts{
		Name: RequestsTotalName,
		Help: "Total sensor requests",
	})
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	m.CPUSpike, err = reg.NewGauge(prometheus.GaugeOpts{
		Name: CPUSpikeName,
		Help: "Simulated CPU spike state",
	})
	if err != nil {
		return nil, fmt.Errorf("creating cpu spike gauge: %w", err)
	}

	m.ProcessingLatency, err = reg.NewHistogram(prometheus.HistogramOpts{
		Name:    ProcessingLatencyName,
		Help:    "Processing time",
		Buckets: prometheus.DefBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("creating processing latency histogram: %w", err)
	}

	m.ScrapeDuration, err = reg.NewHistogram(prometheus.HistogramOpts{
		Name:    ScrapeDurationName,
		Help:    "Time spent generating metrics",
		Buckets: ScrapeDurationBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("creating scrape duration histogram: %w", err)
	}

	m.Failures, err = reg.NewCounter(prometheus.CounterOpts{
		Name: FailuresTotalName,
		Help: "Total number of failed sensor reads",
	})
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	return m, nil
}
