// Package server wires the host together: platform layer, extension catalog,
// key-map loader, running registry, refresh loop and the optional
// introspection API.
package server
