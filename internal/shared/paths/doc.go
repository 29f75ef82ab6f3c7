// Package paths confines user-supplied names to a single sandbox root.
//
// Every engine operation that touches the filesystem resolves its path
// arguments through a Resolver first. Resolution is lexical: "." and ".."
// segments are folded by filepath.Join before the containment check, so
// "docs/../a.txt" is accepted while "../../etc/passwd" is rejected.
//
// # Usage
//
//	r, err := paths.NewResolver("/srv/files")
//	abs, err := r.Resolve(cursor, "docs/report.txt")
//	if errors.Is(err, paths.ErrOutsideRoot) {
//	    // refuse before any I/O
//	}
//
// Symlinks inside the root are not followed by the resolver; callers that
// walk the tree (package scan) also refuse to follow them.
package paths
