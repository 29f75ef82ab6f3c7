package permissions

import (
	"github.com/GriffinCanCode/fileengine/internal/shared/types"
)

// Kind names one engine operation. The set is closed; every Kind appears in
// the kinds table below.
type Kind string

const (
	KindCreateDirectory Kind = "create-directory"
	KindCreateFile      Kind = "create-file"
	KindListDirectory   Kind = "list-directory"
	KindDeleteFile      Kind = "delete-file"
	KindDeleteDirectory Kind = "delete-directory"
	KindMove            Kind = "move"
	KindRename          Kind = "rename"
	KindCopy            Kind = "copy"
	KindReadFile        Kind = "read-file"
	KindWriteFile       Kind = "write-file"
	KindSearch          Kind = "search"
	KindChangeDirectory Kind = "change-directory"
	KindCurrentPath     Kind = "current-path"
	KindCompress        Kind = "compress"
	KindDecompress      Kind = "decompress"
	KindEncryptFile     Kind = "encrypt-file"
	KindDecryptFile     Kind = "decrypt-file"
	KindBatchRename     Kind = "batch-rename"
	KindPreviewFile     Kind = "preview-file"
	KindProperties      Kind = "properties"
	KindTree            Kind = "tree"
	KindRecentFiles     Kind = "recent-files"
	KindFindDuplicates  Kind = "find-duplicates"
	KindAddBookmark     Kind = "add-bookmark"
	KindListBookmarks   Kind = "list-bookmarks"
	KindLogDashboard    Kind = "log-dashboard"
)

// kinds maps every operation kind to whether it is privileged.
var kinds = map[Kind]bool{
	KindCreateDirectory: true,
	KindCreateFile:      false,
	KindListDirectory:   false,
	KindDeleteFile:      true,
	KindDeleteDirectory: true,
	KindMove:            false,
	KindRename:          false,
	KindCopy:            false,
	KindReadFile:        false,
	KindWriteFile:       false,
	KindSearch:          false,
	KindChangeDirectory: false,
	KindCurrentPath:     false,
	KindCompress:        false,
	KindDecompress:      false,
	KindEncryptFile:     false,
	KindDecryptFile:     false,
	KindBatchRename:     false,
	KindPreviewFile:     false,
	KindProperties:      false,
	KindTree:            false,
	KindRecentFiles:     false,
	KindFindDuplicates:  false,
	KindAddBookmark:     false,
	KindListBookmarks:   false,
	KindLogDashboard:    false,
}

// Known reports whether k is a defined operation kind.
func Known(k Kind) bool {
	_, ok := kinds[k]
	return ok
}

// IsPrivileged reports whether k is restricted to the admin role.
// Unknown kinds are treated as privileged.
func IsPrivileged(k Kind) bool {
	privileged, ok := kinds[k]
	return !ok || privileged
}

// Authorize decides whether role may invoke k. It is a pure function of its
// arguments.
func Authorize(role types.Role, k Kind) bool {
	if !IsPrivileged(k) {
		return true
	}
	return role == types.RoleAdmin
}

// Kinds returns every defined kind. Order is unspecified.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	return out
}
