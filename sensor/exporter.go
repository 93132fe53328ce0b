package sensor

import (
	"net/http"
	"time"
)

// ProcessingDelay is the simulated cost of preparing a scrape.
const ProcessingDelay = 2 * time.Millisecond

// Exporter serves the metrics endpoint. Each scrape records its own duration
// and sets the CPU spike gauge before the registry is rendered, so the
// rendered snapshot already includes the scrape that produced it.
type Exporter struct {
	metrics *Metrics
	render  http.Handler
	rand    RandomSource
	delay   time.Duration
}

// NewExporter creates an Exporter that renders with the given handler,
// typically metrics.ScrapeRegistry.Handler().
func NewExporter(m *Metrics, render http.Handler, rand RandomSource) *Exporter {
	return &Exporter{
		metrics: m,
		render:  render,
		rand:    rand,
		delay:   ProcessingDelay,
	}
}

// Instrument records one scrape: it waits for the processing delay, observes
// the elapsed time into both latency histograms and sets the CPU spike gauge
// to 0 or 1. It returns the observed duration.
func (e *Exporter) Instrument() time.Duration {
	start := time.Now()
	time.Sleep(e.delay)
	elapsed := time.Since(start)

	e.metrics.ScrapeDuration.Observe(elapsed.Seconds())
	e.metrics.ProcessingLatency.Observe(elapsed.Seconds())

	spike := 0.0
	if e.rand.Float64() >= 0.5 {
		spike = 1
	}
	e.metrics.CPUSpike.Set(spike)

	return elapsed
}

// ServeHTTP implements http.Handler.
func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.Instrument()
	e.render.ServeHTTP(w, r)
}
