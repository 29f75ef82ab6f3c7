// Package engine is the file-management façade.
//
// An Engine owns one authenticated Session and a cursor (the current
// directory). Every request is a typed Operation passed to Do, which:
//
//   - checks the role against the privileged-operation table
//   - resolves every path argument against the cursor, refusing anything
//     that would leave the sandbox root
//   - performs the filesystem, crypto or scan work
//   - writes exactly one audit record
//   - returns an Outcome; errors never escape as panics or Go errors
//
// The engine has no internal locking. Callers that share an Engine between
// goroutines must serialize calls to Do.
//
// Organization:
//   - basic.go: create, read, write and delete of files
//   - preview.go: head of a file decoded to UTF-8
//   - directory.go: directories, the cursor, listings and trees
//   - transfer.go: move, rename, copy, batch rename
//   - search.go: search, recent files, duplicate scans
//   - metadata.go: properties
//   - archives.go: compress and decompress
//   - secure.go: encrypt and decrypt in place
//   - bookmarks.go: bookmarks and the log dashboard
//   - operations.go, outcome.go, errors.go: request and result types
package engine
