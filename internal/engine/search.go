package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/fileengine/internal/scan"
	"github.com/bmatcuk/doublestar/v4"
)

func (e *Engine) search(ctx context.Context, op Search) Outcome {
	if op.Glob != "" && !doublestar.ValidatePattern(op.Glob) {
		return failed(invalidf("bad glob %q", op.Glob), fmt.Sprintf("Invalid glob pattern '%s'.", op.Glob))
	}
	if op.Size != nil && *op.Size < 0 {
		return failed(invalidf("negative size"), "Size must not be negative.")
	}

	files, err := scan.Files(ctx, e.cursor, e.scanner.Workers())
	if err != nil {
		return failed(err, fmt.Sprintf("Search error: %v", err))
	}

	var lines []string
	for _, f := range files {
		if matchesSearch(op, e.cursor, f) {
			lines = append(lines, e.display(f.Path))
		}
	}

	if len(lines) == 0 {
		return done(fmt.Sprintf("Searched for '%s': no match found.", op.Name))
	}
	return done(fmt.Sprintf("Searched for '%s': %d match(es).", op.Name, len(lines)), lines...)
}

func matchesSearch(op Search, base string, f scan.File) bool {
	name := filepath.Base(f.Path)
	if !strings.Contains(name, op.Name) {
		return false
	}
	if op.Size != nil && f.Info.Size() != *op.Size {
		return false
	}
	if op.Suffix != "" && !strings.HasSuffix(name, op.Suffix) {
		return false
	}
	if op.Date != nil {
		y1, m1, d1 := f.Info.ModTime().Local().Date()
		y2, m2, d2 := op.Date.Local().Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	if op.Glob != "" {
		subject := name
		if strings.Contains(op.Glob, "/") {
			rel, err := filepath.Rel(base, f.Path)
			if err != nil {
				return false
			}
			subject = filepath.ToSlash(rel)
		}
		if ok, _ := doublestar.Match(op.Glob, subject); !ok {
			return false
		}
	}
	return true
}

func (e *Engine) recentFiles(ctx context.Context, op RecentFiles) Outcome {
	count := op.Count
	if count <= 0 {
		count = e.recentCount
	}

	stamps, err := e.scanner.Recent(ctx, e.Root(), count)
	if err != nil {
		return failed(err, fmt.Sprintf("Recent files error: %v", err))
	}
	if len(stamps) == 0 {
		return done("No files found.")
	}

	lines := make([]string, len(stamps))
	for i, s := range stamps {
		lines[i] = fmt.Sprintf("%s  %s", s.ModTime.Format("2006-01-02 15:04:05"), e.display(s.Path))
	}
	return done(fmt.Sprintf("%d most recently modified file(s).", len(stamps)), lines...)
}

func (e *Engine) findDuplicates(ctx context.Context) Outcome {
	dups, err := e.scanner.Duplicates(ctx, e.Root())
	if err != nil {
		return failed(err, fmt.Sprintf("Duplicate scan error: %v", err))
	}
	if len(dups) == 0 {
		return done("No duplicate files found.")
	}

	lines := make([]string, len(dups))
	for i, d := range dups {
		lines[i] = fmt.Sprintf("%s duplicates %s", e.display(d.Path), e.display(d.Original))
	}
	return done(fmt.Sprintf("Found %d duplicate file(s).", len(dups)), lines...)
}
