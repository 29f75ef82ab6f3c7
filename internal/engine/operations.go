package engine

import (
	"time"

	"github.com/GriffinCanCode/fileengine/internal/permissions"
)

// Operation is one request to the engine. The set of implementations is
// closed: every type below maps to exactly one permissions.Kind.
type Operation interface {
	Kind() permissions.Kind
}

// CreateDirectory creates Name (and any missing parents) under the cursor.
type CreateDirectory struct{ Name string }

// CreateFile creates an empty file. An existing file is left untouched.
type CreateFile struct{ Name string }

// ListDirectory lists the cursor directory.
type ListDirectory struct{}

// DeleteFile removes a regular file.
type DeleteFile struct{ Name string }

// DeleteDirectory removes a directory and everything below it.
type DeleteDirectory struct{ Name string }

// Move moves Src to Dst, or into Dst when Dst is an existing directory.
type Move struct{ Src, Dst string }

// Rename renames Old to New. New must not exist.
type Rename struct{ Old, New string }

// Copy copies Src to Dst. Directories are copied recursively.
type Copy struct{ Src, Dst string }

// ReadFile returns the lines of a file.
type ReadFile struct{ Name string }

// WriteFile appends Content and a newline, creating the file if needed.
type WriteFile struct{ Name, Content string }

// Search finds regular files below the cursor whose name contains Name.
// The optional filters are AND-ed.
type Search struct {
	Name string
	// Size, when set, requires an exact size in bytes.
	Size *int64
	// Suffix, when set, requires the name to end with it.
	Suffix string
	// Date, when set, requires the modification time to fall on the same
	// local calendar day.
	Date *time.Time
	// Glob, when set, is a doublestar pattern matched against the path
	// relative to the cursor (or the base name if it has no slash).
	Glob string
}

// ChangeDirectory moves the cursor.
type ChangeDirectory struct{ Name string }

// CurrentPath reports the cursor.
type CurrentPath struct{}

// Compress writes the file Name into a single-entry Archive.
type Compress struct{ Name, Archive string }

// Decompress extracts Archive into the cursor directory.
type Decompress struct{ Archive string }

// EncryptFile encrypts Name in place with a key derived from Password.
type EncryptFile struct{ Name, Password string }

// DecryptFile reverses EncryptFile.
type DecryptFile struct{ Name, Password string }

// BatchRename replaces Old with New in the name of every entry of the
// cursor directory. Subdirectories are not entered.
type BatchRename struct{ Old, New string }

// PreviewFile returns at most Lines lines of a text file. Zero uses the
// configured default.
type PreviewFile struct {
	Name  string
	Lines int
}

// Properties describes one entry.
type Properties struct{ Name string }

// Tree renders the directory Name (the cursor when empty).
type Tree struct{ Name string }

// RecentFiles lists the Count most recently modified files in the sandbox.
// Zero uses the configured default.
type RecentFiles struct{ Count int }

// FindDuplicates reports files with identical content anywhere in the
// sandbox.
type FindDuplicates struct{}

// AddBookmark stores the absolute path of Name (the cursor when empty).
type AddBookmark struct{ Name string }

// ListBookmarks lists stored bookmarks.
type ListBookmarks struct{}

// LogDashboard summarizes the audit log.
type LogDashboard struct{}

func (CreateDirectory) Kind() permissions.Kind { return permissions.KindCreateDirectory }
func (CreateFile) Kind() permissions.Kind      { return permissions.KindCreateFile }
func (ListDirectory) Kind() permissions.Kind   { return permissions.KindListDirectory }
func (DeleteFile) Kind() permissions.Kind      { return permissions.KindDeleteFile }
func (DeleteDirectory) Kind() permissions.Kind { return permissions.KindDeleteDirectory }
func (Move) Kind() permissions.Kind            { return permissions.KindMove }
func (Rename) Kind() permissions.Kind          { return permissions.KindRename }
func (Copy) Kind() permissions.Kind            { return permissions.KindCopy }
func (ReadFile) Kind() permissions.Kind        { return permissions.KindReadFile }
func (WriteFile) Kind() permissions.Kind       { return permissions.KindWriteFile }
func (Search) Kind() permissions.Kind          { return permissions.KindSearch }
func (ChangeDirectory) Kind() permissions.Kind { return permissions.KindChangeDirectory }
func (CurrentPath) Kind() permissions.Kind     { return permissions.KindCurrentPath }
func (Compress) Kind() permissions.Kind        { return permissions.KindCompress }
func (Decompress) Kind() permissions.Kind      { return permissions.KindDecompress }
func (EncryptFile) Kind() permissions.Kind     { return permissions.KindEncryptFile }
func (DecryptFile) Kind() permissions.Kind     { return permissions.KindDecryptFile }
func (BatchRename) Kind() permissions.Kind     { return permissions.KindBatchRename }
func (PreviewFile) Kind() permissions.Kind     { return permissions.KindPreviewFile }
func (Properties) Kind() permissions.Kind      { return permissions.KindProperties }
func (Tree) Kind() permissions.Kind            { return permissions.KindTree }
func (RecentFiles) Kind() permissions.Kind     { return permissions.KindRecentFiles }
func (FindDuplicates) Kind() permissions.Kind  { return permissions.KindFindDuplicates }
func (AddBookmark) Kind() permissions.Kind     { return permissions.KindAddBookmark }
func (ListBookmarks) Kind() permissions.Kind   { return permissions.KindListBookmarks }
func (LogDashboard) Kind() permissions.Kind    { return permissions.KindLogDashboard }
