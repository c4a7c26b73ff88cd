// Package monitoring provides Prometheus metrics for the extension registry.
//
// Metrics cover module loads, evictions, key-map binds and refresh passes.
// The gin middleware records request metrics for the introspection API.
package monitoring
