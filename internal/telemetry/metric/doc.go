// Package metric provides Prometheus metrics for configuration loading.
//
// Metrics live on a private registry so tests and embedding programs do
// not collide on the global one. The watch command exposes them over HTTP.
package metric
