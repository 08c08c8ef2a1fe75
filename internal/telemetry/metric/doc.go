// Package metric provides Prometheus metrics for csrftok.
//
//   - prometheus.go: Registry of token, verification and secret metrics
//   - collector.go: Collector exporting the active tokenizer settings
//
// Metrics live on a private registry. Handler serves them for embedders,
// WriteText renders them for the CLI.
package metric
