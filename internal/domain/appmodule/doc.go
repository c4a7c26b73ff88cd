// Package appmodule defines the per-application behavior extension bound to
// one OS process.
//
// A Module owns exactly one synchronize-only process handle, a key-chord to
// script-name map, and a table of runtime-invokable scripts. The running
// registry is the sole owner of Module instances; focus-chain references are
// non-owning back-references.
package appmodule
