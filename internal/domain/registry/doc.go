// Package registry caches one app module instance per live process and owns
// their lifecycle.
//
// Modules are constructed lazily on first lookup and evicted once their
// process is observed dead during a refresh pass. The registry is the sole
// owner of module instances; all mutation is serialized behind one mutex so
// the single-writer model survives concurrent readers such as the
// introspection API.
package registry
