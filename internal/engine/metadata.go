package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

func (e *Engine) properties(op Properties) Outcome {
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}

	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return failed(err, fmt.Sprintf("'%s' not found.", op.Name))
	}
	if err != nil {
		return failed(err, fmt.Sprintf("Properties error: %v", err))
	}

	lines := []string{
		"Name: " + filepath.Base(path),
		"Path: " + e.display(path),
		"Type: " + entryKind(info.Mode()),
		fmt.Sprintf("Size: %d bytes (%s)", info.Size(), formatBytes(info.Size())),
		"Mode: " + info.Mode().String(),
		"Modified: " + info.ModTime().Format(time.RFC3339),
	}
	if info.Mode().IsRegular() {
		if mtype, err := mimetype.DetectFile(path); err == nil {
			lines = append(lines, "MIME: "+mtype.String())
		}
	}
	return done(fmt.Sprintf("Properties of '%s'.", e.display(path)), lines...)
}

func entryKind(mode fs.FileMode) string {
	switch {
	case mode.IsDir():
		return "directory"
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode.IsRegular():
		return "file"
	default:
		return "other"
	}
}

// formatBytes formats bytes to human-readable size
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
