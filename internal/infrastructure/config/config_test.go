package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Engine config
	assert.Equal(t, "file_management_system", cfg.Engine.Root)
	assert.Equal(t, "operations.log", cfg.Engine.AuditLog)
	assert.Equal(t, "bookmarks.txt", cfg.Engine.Bookmarks)
	assert.Equal(t, 10, cfg.Engine.PreviewLines)
	assert.Equal(t, 5, cfg.Engine.RecentCount)
	assert.Equal(t, 4, cfg.Engine.ScanWorkers)

	// Auth config
	assert.Equal(t, "users.yaml", cfg.Auth.UsersFile)
	assert.Empty(t, cfg.Auth.SeedAdmin)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.NoError(t, cfg.Validate())
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"FILEENGINE_ROOT":          "/srv/files",
		"FILEENGINE_AUDIT_LOG":     "/var/log/fe.log",
		"FILEENGINE_BOOKMARKS":     "/var/lib/fe/bookmarks",
		"FILEENGINE_PREVIEW_LINES": "25",
		"FILEENGINE_RECENT_COUNT":  "12",
		"FILEENGINE_SCAN_WORKERS":  "8",
		"FILEENGINE_USERS":         "/etc/fe/users.yaml",
		"FILEENGINE_SEED_ADMIN":    "s3cret",
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
		"LOG_FILE":                 "/var/log/fe-debug.log",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/files", cfg.Engine.Root)
	assert.Equal(t, "/var/log/fe.log", cfg.Engine.AuditLog)
	assert.Equal(t, "/var/lib/fe/bookmarks", cfg.Engine.Bookmarks)
	assert.Equal(t, 25, cfg.Engine.PreviewLines)
	assert.Equal(t, 12, cfg.Engine.RecentCount)
	assert.Equal(t, 8, cfg.Engine.ScanWorkers)
	assert.Equal(t, "/etc/fe/users.yaml", cfg.Auth.UsersFile)
	assert.Equal(t, "s3cret", cfg.Auth.SeedAdmin)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "/var/log/fe-debug.log", cfg.Logging.File)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("FILEENGINE_PREVIEW_LINES", "3")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, 3, cfg.Engine.PreviewLines)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "file_management_system", cfg.Engine.Root)
	assert.Equal(t, 5, cfg.Engine.RecentCount)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero preview lines", key: "FILEENGINE_PREVIEW_LINES", value: "0"},
		{name: "negative recent count", key: "FILEENGINE_RECENT_COUNT", value: "-1"},
		{name: "zero workers", key: "FILEENGINE_SCAN_WORKERS", value: "0"},
		{name: "not a number", key: "FILEENGINE_SCAN_WORKERS", value: "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAbsRoot(t *testing.T) {
	cfg := Default()
	cfg.Engine.Root = "relative/root"

	root, err := cfg.AbsRoot()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(root))
	assert.Equal(t, "root", filepath.Base(root))
}
