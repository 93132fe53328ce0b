// Package sensor simulates a flaky physical sensor and the metrics it reports.
//
// A Simulator answers sensor reads: roughly one read in ten fails with a
// "sensor disconnected" error, and one in five of the remaining reads returns
// an oversized payload. An Exporter instruments each metrics scrape with a
// fixed processing delay and a simulated CPU spike before rendering the
// registry.
//
// Both share a single Metrics value, registered once at startup:
//
//	reg, _ := metrics.NewScrapeRegistry()
//	m, err := sensor.NewMetrics(reg)
//	if err != nil {
//	    return err
//	}
//	sim := sensor.NewSimulator(m, sensor.NewRandomSource())
//	exp := sensor.NewExporter(m, reg.Handler(), sensor.NewRandomSource())
package sensor
