package sensor

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/nomis52/sensorsim/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceSource returns the queued values in order and fails the test
// if more values are drawn than were queued.
type sequenceSource struct {
	t      *testing.T
	mu     sync.Mutex
	values []float64
}

func newSequenceSource(t *testing.T, values ...float64) *sequenceSource {
	return &sequenceSource{t: t, values: values}
}

func (s *sequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		s.t.Fatal("random source exhausted")
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

// seededSource is a reproducible RandomSource for distribution tests.
type seededSource struct {
	r *rand.Rand
}

func newSeededSource(seed uint64) *seededSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Float64() float64 {
	return s.r.Float64()
}

func newTestMetrics(t *testing.T) (*Metrics, *metrics.ScrapeRegistry) {
	t.Helper()
	reg, err := metrics.NewScrapeRegistry()
	require.NoError(t, err)
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	return m, reg
}

func gatherFamilies(t *testing.T, g prometheus.Gatherer) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func counterValue(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	mf, ok := gatherFamilies(t, g)[name]
	require.True(t, ok, "metric %s not registered", name)
	return mf.GetMetric()[0].GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	mf, ok := gatherFamilies(t, g)[name]
	require.True(t, ok, "metric %s not registered", name)
	return mf.GetMetric()[0].GetGauge().GetValue()
}

func histogram(t *testing.T, g prometheus.Gatherer, name string) *dto.Histogram {
	t.Helper()
	mf, ok := gatherFamilies(t, g)[name]
	require.True(t, ok, "metric %s not registered", name)
	return mf.GetMetric()[0].GetHistogram()
}

func TestNewMetrics(t *testing.T) {
	_, reg := newTestMetrics(t)

	families := gatherFamilies(t, reg.Gatherer())
	assert.Len(t, families, 5)

	assert.Equal(t, dto.MetricType_COUNTER, families[RequestsTotalName].GetType())
	assert.Equal(t, dto.MetricType_COUNTER, families[FailuresTotalName].GetType())
	assert.Equal(t, dto.MetricType_GAUGE, families[CPUSpikeName].GetType())
	assert.Equal(t, dto.MetricType_HISTOGRAM, families[ProcessingLatencyName].GetType())
	assert.Equal(t, dto.MetricType_HISTOGRAM, families[ScrapeDurationName].GetType())

	assert.Zero(t, counterValue(t, reg.Gatherer(), RequestsTotalName))
	assert.Zero(t, counterValue(t, reg.Gatherer(), FailuresTotalName))
}

func TestNewMetrics_Buckets(t *testing.T) {
	_, reg := newTestMetrics(t)

	var got []float64
	for _, b := range histogram(t, reg.Gatherer(), ScrapeDurationName).GetBucket() {
		got = append(got, b.GetUpperBound())
	}
	assert.Equal(t, []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}, got)

	got = nil
	for _, b := range histogram(t, reg.Gatherer(), ProcessingLatencyName).GetBucket() {
		got = append(got, b.GetUpperBound())
	}
	assert.Equal(t, prometheus.DefBuckets, got)
}

func TestNewMetrics_RegisterTwice(t *testing.T) {
	_, reg := newTestMetrics(t)

	_, err := NewMetrics(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), RequestsTotalName)
}
