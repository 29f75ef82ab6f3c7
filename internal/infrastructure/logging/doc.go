// Package logging provides structured diagnostic logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Output always goes to stderr. When Config.File is set, a JSON copy is
// written to a size-rotated file (lumberjack).
//
// This is the operator-facing log. The user-facing audit trail lives in
// package audit and has its own line format.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("engine ready", zap.String("root", root))
//	logger.Error("scan failed", zap.Error(err))
package logging
