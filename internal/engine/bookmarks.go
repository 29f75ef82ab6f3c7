package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/GriffinCanCode/fileengine/internal/audit"
)

func (e *Engine) addBookmark(op AddBookmark) Outcome {
	if e.bookmarks == nil {
		return failed(invalidf("no bookmark store"), "Bookmarks are not configured.")
	}
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return failed(err, fmt.Sprintf("'%s' not found.", op.Name))
	}

	if err := e.bookmarks.Add(path); err != nil {
		return failed(err, fmt.Sprintf("Bookmark error: %v", err))
	}
	return done(fmt.Sprintf("Bookmarked '%s'.", e.display(path)))
}

func (e *Engine) listBookmarks() Outcome {
	if e.bookmarks == nil {
		return done("No bookmarks.")
	}
	list, err := e.bookmarks.List()
	if err != nil {
		return failed(err, fmt.Sprintf("Bookmark error: %v", err))
	}
	if len(list) == 0 {
		return done("No bookmarks.")
	}
	return done(fmt.Sprintf("%d bookmark(s).", len(list)), list...)
}

func (e *Engine) logDashboard() Outcome {
	var summary audit.Summary
	if e.auditPath != "" {
		s, err := audit.SummarizeFile(e.auditPath)
		if err != nil {
			return failed(err, fmt.Sprintf("Dashboard error: %v", err))
		}
		summary = s
	}

	snap := e.metrics.Snapshot()
	lines := []string{
		fmt.Sprintf("Records: %d", summary.Total),
		"Most used commands: " + formatCounts(summary.TopCommands(5)),
		"Most active users: " + formatCounts(summary.TopUsers(5)),
		fmt.Sprintf("Errors: %d", summary.Errors),
		fmt.Sprintf("This session: %d operation(s), %d denied, %d failed, avg %s",
			snap.TotalOperations, snap.Denied, snap.Failed, snap.AvgDuration()),
	}
	return done("Log dashboard.", lines...)
}

func formatCounts(counts []audit.Count) string {
	if len(counts) == 0 {
		return "none"
	}
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s (%d)", c.Name, c.Count)
	}
	return strings.Join(parts, ", ")
}
