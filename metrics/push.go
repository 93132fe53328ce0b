package metrics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/prometheus/prompb"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	remoteWritePath = "/api/v1/write"
)

// PushConfig configures a Pusher.
type PushConfig struct {
	// URL is the base URL of the remote write endpoint (e.g., "http://localhost:9090").
	URL string
	// Prefix is the metric name prefix. All metric names will be prefixed with this value
	// followed by an underscore.
	Prefix string
	// Job is the job label for all metrics.
	Job string
	// Instance is the instance label for all metrics.
	Instance string
	// Timeout is the HTTP client timeout. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Pusher gathers a registry and sends a snapshot of it to a
// VictoriaMetrics/Prometheus remote write endpoint.
type Pusher struct {
	url        string
	httpClient *http.Client
	gatherer   prometheus.Gatherer
	prefix     string
	job        string
	instance   string
	timeout    time.Duration
	now        func() time.Time
}

// NewPusher creates a new Pusher that pushes everything the gatherer collects.
func NewPusher(cfg PushConfig, gatherer prometheus.Gatherer) *Pusher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Pusher{
		url:        cfg.URL + remoteWritePath,
		httpClient: &http.Client{Timeout: timeout},
		gatherer:   gatherer,
		prefix:     cfg.Prefix,
		job:        cfg.Job,
		instance:   cfg.Instance,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Run pushes a single snapshot using the configured timeout.
// It satisfies the cron Runnable interface.
func (p *Pusher) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.Push(ctx)
}

// Push gathers the registry and sends it to the remote write endpoint.
func (p *Pusher) Push(ctx context.Context) error {
	families, err := p.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	timeseries := p.toTimeSeries(families, p.now().UnixMilli())
	if len(timeseries) == 0 {
		return nil
	}

	req := &prompb.WriteRequest{
		Timeseries: timeseries,
	}

	data, err := proto.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling write request: %w", err)
	}

	compressed := snappy.Encode(nil, data)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Encoding", "snappy")
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	httpReq.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// toTimeSeries flattens gathered metric families into remote write series.
// Histograms are expanded into their _bucket, _sum and _count series.
func (p *Pusher) toTimeSeries(families []*dto.MetricFamily, ts int64) []prompb.TimeSeries {
	var out []prompb.TimeSeries

	for _, mf := range families {
		name := mf.GetName()
		for _, m := range mf.GetMetric() {
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				out = append(out, p.series(name, m.GetLabel(), nil, m.GetCounter().GetValue(), ts))
			case dto.MetricType_GAUGE:
				out = append(out, p.series(name, m.GetLabel(), nil, m.GetGauge().GetValue(), ts))
			case dto.MetricType_UNTYPED:
				out = append(out, p.series(name, m.GetLabel(), nil, m.GetUntyped().GetValue(), ts))
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				for _, b := range h.GetBucket() {
					// +Inf is implicit and emitted from the sample count below.
					if math.IsInf(b.GetUpperBound(), 1) {
						continue
					}
					le := map[string]string{"le": strconv.FormatFloat(b.GetUpperBound(), 'g', -1, 64)}
					out = append(out, p.series(name+"_bucket", m.GetLabel(), le, float64(b.GetCumulativeCount()), ts))
				}
				inf := map[string]string{"le": "+Inf"}
				out = append(out,
					p.series(name+"_bucket", m.GetLabel(), inf, float64(h.GetSampleCount()), ts),
					p.series(name+"_sum", m.GetLabel(), nil, h.GetSampleSum(), ts),
					p.series(name+"_count", m.GetLabel(), nil, float64(h.GetSampleCount()), ts),
				)
			case dto.MetricType_SUMMARY:
				s := m.GetSummary()
				out = append(out,
					p.series(name+"_sum", m.GetLabel(), nil, s.GetSampleSum(), ts),
					p.series(name+"_count", m.GetLabel(), nil, float64(s.GetSampleCount()), ts),
				)
			}
		}
	}

	return out
}

// series builds a single TimeSeries with the name, job, instance and metric labels.
func (p *Pusher) series(name string, pairs []*dto.LabelPair, extra map[string]string, value float64, ts int64) prompb.TimeSeries {
	labels := make([]prompb.Label, 0, len(pairs)+len(extra)+3)

	// Add metric name with prefix
	metricName := name
	if p.prefix != "" {
		metricName = p.prefix + "_" + name
	}
	labels = append(labels, prompb.Label{
		Name:  "__name__",
		Value: metricName,
	})

	if p.job != "" {
		labels = append(labels, prompb.Label{Name: "job", Value: p.job})
	}
	if p.instance != "" {
		labels = append(labels, prompb.Label{Name: "instance", Value: p.instance})
	}

	for _, lp := range pairs {
		labels = append(labels, prompb.Label{Name: lp.GetName(), Value: lp.GetValue()})
	}
	for k, v := range extra {
		labels = append(labels, prompb.Label{Name: k, Value: v})
	}

	return prompb.TimeSeries{
		Labels:  labels,
		Samples: []prompb.Sample{{Value: value, Timestamp: ts}},
	}
}
