package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	trailOpen  = "│   "
	trailDone  = "    "
)

// TreeEntry is one line of a directory tree before rendering.
type TreeEntry struct {
	Depth int
	Last  bool
	Name  string
	IsDir bool
	// Trail records, for each ancestor level, whether that ancestor was the
	// last of its siblings.
	Trail []bool
}

// Tree lists everything below dir depth first, siblings in name order.
// Unreadable subdirectories contribute no children.
func Tree(ctx context.Context, dir string) ([]TreeEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []TreeEntry
	if err := walkTree(ctx, dir, entries, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func walkTree(ctx context.Context, dir string, entries []os.DirEntry, trail []bool, out *[]TreeEntry) error {
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		last := i == len(entries)-1
		*out = append(*out, TreeEntry{
			Depth: len(trail),
			Last:  last,
			Name:  e.Name(),
			IsDir: e.IsDir(),
			Trail: trail,
		})

		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		children, err := os.ReadDir(sub)
		if err != nil {
			continue
		}

		next := make([]bool, len(trail)+1)
		copy(next, trail)
		next[len(trail)] = last
		if err := walkTree(ctx, sub, children, next, out); err != nil {
			return err
		}
	}
	return nil
}

// Render formats entries with box-drawing connectors, one line per entry.
func Render(entries []TreeEntry) []string {
	lines := make([]string, 0, len(entries))
	var b strings.Builder
	for _, e := range entries {
		b.Reset()
		for _, done := range e.Trail {
			if done {
				b.WriteString(trailDone)
			} else {
				b.WriteString(trailOpen)
			}
		}
		if e.Last {
			b.WriteString(branchLast)
		} else {
			b.WriteString(branchMid)
		}
		b.WriteString(e.Name)
		lines = append(lines, b.String())
	}
	return lines
}
