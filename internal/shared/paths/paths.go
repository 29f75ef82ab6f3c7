package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a name would resolve outside the sandbox root.
var ErrOutsideRoot = errors.New("path escapes sandbox root")

// Resolver joins user-supplied names onto a cursor and keeps the result
// inside a single sandbox root. Resolution is purely lexical: it never
// touches the filesystem.
type Resolver struct {
	root string
}

// NewResolver creates a resolver bound to root, which must be absolute.
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("sandbox root cannot be empty")
	}
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("sandbox root %q must be an absolute path", root)
	}
	return &Resolver{root: filepath.Clean(root)}, nil
}

// Root returns the cleaned sandbox root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve joins name onto cursor and returns the absolute result.
// Absolute names, names carrying a volume, and names that climb above the
// root are rejected with ErrOutsideRoot. An empty name resolves to cursor.
func (r *Resolver) Resolve(cursor, name string) (string, error) {
	if !IsWithin(r.root, cursor) {
		return "", fmt.Errorf("%w: cursor %q", ErrOutsideRoot, cursor)
	}
	if filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %q names a volume", ErrOutsideRoot, name)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", fmt.Errorf("%w: %q is absolute", ErrOutsideRoot, name)
	}

	resolved := filepath.Join(cursor, name)
	if !IsWithin(r.root, resolved) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}
	return resolved, nil
}

// Rel returns path relative to the root in display form ("/" for the root
// itself, "/docs/a.txt" below it). Paths outside the root are returned as-is.
func (r *Resolver) Rel(path string) string {
	if !IsWithin(r.root, path) {
		return path
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}

// IsWithin reports whether path is root or a descendant of root.
// Both arguments are compared lexically after cleaning.
func IsWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	if filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ValidateName checks a bare entry name, as used for rename targets and
// archive members. It must be non-empty and must not contain NUL bytes.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("name %q contains a NUL byte", name)
	}
	return nil
}
