// Package metrics records build observability data.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())
//	site, err := site.New(cfg, site.WithRecorder(recorder))
//
// A build is a short-lived batch run, so there is no scrape endpoint. The
// Prometheus recorder instead writes its registry to a file in the text
// exposition format, ready for node_exporter's textfile collector.
package metrics
