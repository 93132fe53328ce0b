package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ScrapeRegistry implements Registry for scrape-based metrics collection.
// Metrics are registered with a private Prometheus registry, never the
// global default one, and exposed via HTTP.
type ScrapeRegistry struct {
	prom *prometheus.Registry
}

// ScrapeOption configures a ScrapeRegistry.
type ScrapeOption func(*scrapeOptions)

type scrapeOptions struct {
	runtimeCollectors bool
}

// WithRuntimeCollectors registers the standard Go and process collectors
// alongside the application metrics.
func WithRuntimeCollectors() ScrapeOption {
	return func(o *scrapeOptions) {
		o.runtimeCollectors = true
	}
}

// NewScrapeRegistry creates a new ScrapeRegistry.
func NewScrapeRegistry(opts ...ScrapeOption) (*ScrapeRegistry, error) {
	var o scrapeOptions
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()

	if o.runtimeCollectors {
		if err := reg.Register(collectors.NewGoCollector()); err != nil {
			return nil, fmt.Errorf("registering go collector: %w", err)
		}
		if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, fmt.Errorf("registering process collector: %w", err)
		}
	}

	return &ScrapeRegistry{prom: reg}, nil
}

// Handler returns an http.Handler that renders the registry in the text
// exposition format, or OpenMetrics when the client negotiates it.
func (r *ScrapeRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Gatherer returns the registry as a prometheus.Gatherer, for pushing and tests.
func (r *ScrapeRegistry) Gatherer() prometheus.Gatherer {
	return r.prom
}

// NewGauge creates and registers a new Gauge.
func (r *ScrapeRegistry) NewGauge(opts prometheus.GaugeOpts) (Gauge, error) {
	g := prometheus.NewGauge(opts)
	if err := r.prom.Register(g); err != nil {
		return nil, fmt.Errorf("registering gauge %q: %w", opts.Name, err)
	}
	return g, nil
}

// NewCounter creates and registers a new Counter.
func (r *ScrapeRegistry) NewCounter(opts prometheus.CounterOpts) (Counter, error) {
	c := prometheus.NewCounter(opts)
	if err := r.prom.Register(c); err != nil {
		return nil, fmt.Errorf("registering counter %q: %w", opts.Name, err)
	}
	return c, nil
}

// NewHistogram creates and registers a new Histogram.
func (r *ScrapeRegistry) NewHistogram(opts prometheus.HistogramOpts) (Histogram, error) {
	h := prometheus.NewHistogram(opts)
	if err := r.prom.Register(h); err != nil {
		return nil, fmt.Errorf("registering histogram %q: %w", opts.Name, err)
	}
	return h, nil
}
