// Package bookmarks keeps an append-only list of absolute paths in a text
// file, one per line. Duplicates are kept; order is append order.
package bookmarks

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a bookmark file.
type Store struct {
	path string
}

// New returns a store backed by path. The file is created on first Add.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Add appends target to the list.
func (s *Store) Add(target string) error {
	if strings.ContainsAny(target, "\r\n") {
		return fmt.Errorf("bookmark contains a line break")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(target + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every bookmark in append order. A missing file is an empty
// list.
func (s *Store) List() ([]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}
