// Package http exposes the registry introspection API over gin: cached
// module listing, the active module, manual refresh and Prometheus metrics.
// All reads and mutations go through the registry's serialized public API.
package http
