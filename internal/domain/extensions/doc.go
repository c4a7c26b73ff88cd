// Package extensions discovers the behavior extension matching an application
// name.
//
// Extensions are compiled in and self-register a Loader under their
// application name at init time; discovery is a catalog lookup rather than a
// filesystem probe. The three discovery outcomes are kept distinct: a name
// with no registration yields the generic default factory, a registration
// that defines nothing usable also yields the default, and a registration
// that fails to load surfaces a LoadError that callers must not swallow.
package extensions
