// Package metrics exposes Prometheus metrics on a dedicated listener and
// the counters the gateway records: handled HTTP requests and outbound
// Teller API calls.
package metrics
