package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// File is a regular file found during enumeration.
type File struct {
	Path string
	Info fs.FileInfo
}

// compareCanonical orders two paths below the same root the way a
// depth-first, name-sorted walk visits them. A directory sorts before its
// own children because its path is a strict component prefix.
func compareCanonical(a, b string) int {
	as := strings.Split(filepath.ToSlash(a), "/")
	bs := strings.Split(filepath.ToSlash(b), "/")

	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}

func sortCanonical(files []File) {
	sort.Slice(files, func(i, j int) bool {
		return compareCanonical(files[i].Path, files[j].Path) < 0
	})
}

// Files enumerates every regular file under root in canonical order.
// Entries that cannot be read are skipped. workers bounds the parallel
// directory readers; zero lets fastwalk choose.
func Files(ctx context.Context, root string, workers int) ([]File, error) {
	var (
		mu    sync.Mutex
		files []File
	)

	conf := fastwalk.Config{Follow: false, NumWorkers: workers}
	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return err
			}
			// unreadable directories are skipped, not fatal
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		mu.Lock()
		files = append(files, File{Path: path, Info: info})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortCanonical(files)
	return files, nil
}
