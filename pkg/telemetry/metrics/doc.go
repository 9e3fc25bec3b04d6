// Package metrics exposes a Prometheus Collector for evaluation and
// reload outcomes, served over HTTP in Prometheus text exposition
// format.
package metrics
