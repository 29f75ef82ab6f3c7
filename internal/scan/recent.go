package scan

import (
	"context"
	"sort"
	"time"
)

// DefaultRecentCount is used when a non-positive count is requested.
const DefaultRecentCount = 5

// FileStamp is a file path with its modification time.
type FileStamp struct {
	Path    string
	ModTime time.Time
}

// Recent returns the count most recently modified regular files under root,
// newest first. Files with equal times keep canonical order.
func (s *Scanner) Recent(ctx context.Context, root string, count int) ([]FileStamp, error) {
	if count <= 0 {
		count = DefaultRecentCount
	}

	files, err := Files(ctx, root, s.workers)
	if err != nil {
		return nil, err
	}

	s.observe(len(files), 0)

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Info.ModTime().After(files[j].Info.ModTime())
	})

	if len(files) > count {
		files = files[:count]
	}
	out := make([]FileStamp, len(files))
	for i, f := range files {
		out[i] = FileStamp{Path: f.Path, ModTime: f.Info.ModTime()}
	}
	return out, nil
}
