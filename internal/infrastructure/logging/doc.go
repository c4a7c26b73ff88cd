// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// The host logs every module load, key-map bind and eviction through this
// package; subsystems receive a named child logger via Named.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("module loaded", zap.String("app", "notepad"))
package logging
