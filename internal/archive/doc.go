// Package archive creates single-file archives and extracts them.
//
// Supported containers are zip (the default, interoperable with any zip
// tool), tar.gz and tar.zst. Extraction detects the container from the file
// content rather than the name and refuses entries that would land outside
// the destination directory.
package archive
