// Package scan walks the managed tree: duplicate detection by content digest,
// tree rendering and recency ranking.
//
// Enumeration runs in parallel (fastwalk) but every result is put back into
// canonical order before it is returned: depth first, siblings by name, which
// is the order filepath.WalkDir would visit them. Two scans of an unchanged
// tree therefore produce identical output.
//
// Symlinks are never followed.
package scan
