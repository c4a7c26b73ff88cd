// Package proc abstracts the OS process facilities the host depends on:
// process enumeration, synchronize-only process handles, and the foreground
// window's owning process.
//
// The System interface is implemented per-OS behind build tags. Registry and
// resolver code depend only on the interface, so tests inject fakes.
package proc
