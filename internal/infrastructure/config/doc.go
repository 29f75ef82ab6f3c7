// Package config provides 12-factor configuration management for the file engine.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables.
//
// Configuration Sections:
//   - Engine: sandbox root, audit log, bookmark store, scan/preview tuning
//   - Auth: credential store location and first-run admin seeding
//   - Logging: log level, output format and optional rotated log file
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	root, _ := cfg.AbsRoot()
//
// Environment Variables:
//   - FILEENGINE_ROOT, FILEENGINE_AUDIT_LOG, FILEENGINE_BOOKMARKS
//   - FILEENGINE_PREVIEW_LINES, FILEENGINE_RECENT_COUNT, FILEENGINE_SCAN_WORKERS
//   - FILEENGINE_USERS, FILEENGINE_SEED_ADMIN
//   - LOG_LEVEL, LOG_DEV, LOG_FILE
package config
