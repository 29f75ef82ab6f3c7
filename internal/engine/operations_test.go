package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/GriffinCanCode/fileengine/internal/audit"
	"github.com/GriffinCanCode/fileengine/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDirectoryAlreadyExistsIsNotice(t *testing.T) {
	e := newEngine(t, types.RoleAdmin, &memorySink{})
	ctx := context.Background()

	require.Equal(t, OutcomeSuccess, e.Do(ctx, CreateDirectory{Name: "a/b"}).Kind)
	assert.DirExists(t, filepath.Join(e.Root(), "a", "b"))

	out := e.Do(ctx, CreateDirectory{Name: "a/b"})
	assert.Equal(t, OutcomeNotice, out.Kind)
	assert.ErrorIs(t, out.Err, ErrAlreadyExists)
	assert.True(t, out.OK())
	assert.Contains(t, out.Message, "already exists")
}

func TestCreateFileLeavesExistingUntouched(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	path := filepath.Join(e.Root(), "a.txt")
	write(t, path, "keep me")

	out := e.Do(context.Background(), CreateFile{Name: "a.txt"})
	assert.Equal(t, OutcomeNotice, out.Kind)
	assert.ErrorIs(t, out.Err, ErrAlreadyExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestCreateFileRequiresName(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	out := e.Do(context.Background(), CreateFile{Name: "  "})
	assert.Equal(t, OutcomeError, out.Kind)
	assert.ErrorIs(t, out.Err, ErrInvalid)
}

func TestListDirectory(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()

	out := e.Do(ctx, ListDirectory{})
	assert.Contains(t, out.Message, "is empty")

	write(t, filepath.Join(e.Root(), "b.txt"), "")
	require.NoError(t, os.Mkdir(filepath.Join(e.Root(), "a"), 0o755))
	out = e.Do(ctx, ListDirectory{})
	assert.Equal(t, []string{"a/", "b.txt"}, out.Lines)
}

func TestDeleteFile(t *testing.T) {
	e := newEngine(t, types.RoleAdmin, &memorySink{})
	ctx := context.Background()
	write(t, filepath.Join(e.Root(), "a.txt"), "x")
	require.NoError(t, os.Mkdir(filepath.Join(e.Root(), "dir"), 0o755))

	assert.Equal(t, OutcomeSuccess, e.Do(ctx, DeleteFile{Name: "a.txt"}).Kind)
	assert.NoFileExists(t, filepath.Join(e.Root(), "a.txt"))

	out := e.Do(ctx, DeleteFile{Name: "a.txt"})
	assert.Equal(t, OutcomeNotice, out.Kind)
	assert.ErrorIs(t, out.Err, ErrNotFound)

	out = e.Do(ctx, DeleteFile{Name: "dir"})
	assert.Equal(t, OutcomeError, out.Kind)
	assert.DirExists(t, filepath.Join(e.Root(), "dir"))
}

func TestDeleteDirectory(t *testing.T) {
	e := newEngine(t, types.RoleAdmin, &memorySink{})
	ctx := context.Background()
	write(t, filepath.Join(e.Root(), "docs", "sub", "a.txt"), "x")

	require.Equal(t, OutcomeSuccess, e.Do(ctx, ChangeDirectory{Name: "docs/sub"}).Kind)
	require.Equal(t, OutcomeSuccess, e.Do(ctx, ChangeDirectory{Name: "../.."}).Kind)
	require.Equal(t, OutcomeSuccess, e.Do(ctx, ChangeDirectory{Name: "docs"}).Kind)

	out := e.Do(ctx, DeleteDirectory{Name: "."})
	assert.Equal(t, OutcomeSuccess, out.Kind)
	assert.NoDirExists(t, filepath.Join(e.Root(), "docs"))
	assert.Equal(t, e.Root(), e.Cursor(), "cursor follows to the parent")

	out = e.Do(ctx, DeleteDirectory{Name: "docs"})
	assert.Equal(t, OutcomeNotice, out.Kind)

	out = e.Do(ctx, DeleteDirectory{Name: "."})
	assert.Equal(t, OutcomeError, out.Kind)
	assert.ErrorIs(t, out.Err, ErrInvalid)
	assert.DirExists(t, e.Root())
}

func TestUserCannotDelete(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()
	write(t, filepath.Join(e.Root(), "d", "a.txt"), "x")

	for _, op := range []Operation{DeleteFile{Name: "d/a.txt"}, DeleteDirectory{Name: "d"}} {
		out := e.Do(ctx, op)
		assert.Equal(t, OutcomeDenied, out.Kind)
		assert.ErrorIs(t, out.Err, ErrUnauthorized)
	}
	assert.FileExists(t, filepath.Join(e.Root(), "d", "a.txt"))
}

func TestChangeDirectory(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()
	write(t, filepath.Join(e.Root(), "docs", "f.txt"), "x")

	out := e.Do(ctx, ChangeDirectory{Name: "docs/f.txt"})
	assert.Equal(t, OutcomeError, out.Kind)
	assert.ErrorIs(t, out.Err, ErrInvalid)
	assert.Equal(t, e.Root(), e.Cursor())

	out = e.Do(ctx, ChangeDirectory{Name: "missing"})
	assert.ErrorIs(t, out.Err, ErrNotFound)
	assert.Equal(t, e.Root(), e.Cursor())

	require.Equal(t, OutcomeSuccess, e.Do(ctx, ChangeDirectory{Name: "docs"}).Kind)
	assert.Equal(t, filepath.Join(e.Root(), "docs"), e.Cursor())

	cur := e.Do(ctx, CurrentPath{})
	assert.Equal(t, []string{"/docs", filepath.Join(e.Root(), "docs")}, cur.Lines)

	// names now resolve against the cursor
	read := e.Do(ctx, ReadFile{Name: "f.txt"})
	assert.Equal(t, []string{"x"}, read.Lines)
}

func TestChangeDirectoryRejectsSymlinkEscape(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(e.Root(), "jump")))

	out := e.Do(context.Background(), ChangeDirectory{Name: "jump"})
	assert.Equal(t, OutcomeError, out.Kind)
	assert.ErrorIs(t, out.Err, ErrConfinement)
	assert.Equal(t, e.Root(), e.Cursor())
}

func TestRename(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()
	write(t, filepath.Join(e.Root(), "a.txt"), "a")
	write(t, filepath.Join(e.Root(), "b.txt"), "b")

	out := e.Do(ctx, Rename{Old: "missing", New: "c.txt"})
	assert.ErrorIs(t, out.Err, ErrNotFound)

	out = e.Do(ctx, Rename{Old: "a.txt", New: "b.txt"})
	assert.ErrorIs(t, out.Err, ErrAlreadyExists)
	assert.FileExists(t, filepath.Join(e.Root(), "a.txt"))

	require.Equal(t, OutcomeSuccess, e.Do(ctx, Rename{Old: "a.txt", New: "c.txt"}).Kind)
	assert.NoFileExists(t, filepath.Join(e.Root(), "a.txt"))
	assert.FileExists(t, filepath.Join(e.Root(), "c.txt"))
}

func TestMove(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()
	write(t, filepath.Join(e.Root(), "a.txt"), "a")
	require.NoError(t, os.Mkdir(filepath.Join(e.Root(), "box"), 0o755))

	require.Equal(t, OutcomeSuccess, e.Do(ctx, Move{Src: "a.txt", Dst: "box"}).Kind)
	assert.FileExists(t, filepath.Join(e.Root(), "box", "a.txt"))

	require.Equal(t, OutcomeSuccess, e.Do(ctx, Move{Src: "box/a.txt", Dst: "b.txt"}).Kind)
	assert.FileExists(t, filepath.Join(e.Root(), "b.txt"))

	out := e.Do(ctx, Move{Src: "box", Dst: "box/inner"})
	assert.ErrorIs(t, out.Err, ErrInvalid)

	out = e.Do(ctx, Move{Src: "gone", Dst: "box"})
	assert.ErrorIs(t, out.Err, ErrNotFound)
}

func TestCopy(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()
	root := e.Root()
	stamp := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	write(t, filepath.Join(root, "src", "a.txt"), "a")
	write(t, filepath.Join(root, "src", "deep", "b.txt"), "b")
	require.NoError(t, os.Chtimes(filepath.Join(root, "src", "a.txt"), stamp, stamp))

	require.Equal(t, OutcomeSuccess, e.Do(ctx, Copy{Src: "src", Dst: "dst"}).Kind)
	data, err := os.ReadFile(filepath.Join(root, "dst", "deep", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	info, err := os.Stat(filepath.Join(root, "dst", "a.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp))

	out := e.Do(ctx, Copy{Src: "src", Dst: "dst"})
	assert.ErrorIs(t, out.Err, ErrAlreadyExists)

	out = e.Do(ctx, Copy{Src: "src", Dst: "src/again"})
	assert.ErrorIs(t, out.Err, ErrInvalid)

	require.Equal(t, OutcomeSuccess, e.Do(ctx, Copy{Src: "src/a.txt", Dst: "dst/deep"}).Kind)
	assert.FileExists(t, filepath.Join(root, "dst", "deep", "a.txt"))

	out = e.Do(ctx, Copy{Src: "nope", Dst: "x"})
	assert.ErrorIs(t, out.Err, ErrNotFound)
}

func TestSearchFilters(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()
	root := e.Root()
	old := time.Date(2020, 6, 15, 12, 0, 0, 0, time.Local)

	write(t, filepath.Join(root, "report.txt"), "12345")
	write(t, filepath.Join(root, "report.md"), "123")
	write(t, filepath.Join(root, "sub", "report-old.txt"), "12345")
	write(t, filepath.Join(root, "other.txt"), "1")
	require.NoError(t, os.Chtimes(filepath.Join(root, "sub", "report-old.txt"), old, old))

	out := e.Do(ctx, Search{Name: "report"})
	assert.Equal(t, []string{"/report.md", "/report.txt", "/sub/report-old.txt"}, out.Lines)

	size := int64(5)
	out = e.Do(ctx, Search{Name: "report", Size: &size, Suffix: ".txt"})
	assert.Equal(t, []string{"/report.txt", "/sub/report-old.txt"}, out.Lines)

	out = e.Do(ctx, Search{Name: "report", Date: &old})
	assert.Equal(t, []string{"/sub/report-old.txt"}, out.Lines)

	out = e.Do(ctx, Search{Glob: "sub/**/*.txt"})
	assert.Equal(t, []string{"/sub/report-old.txt"}, out.Lines)

	out = e.Do(ctx, Search{Glob: "*.md"})
	assert.Equal(t, []string{"/report.md"}, out.Lines)

	out = e.Do(ctx, Search{Name: "zzz"})
	assert.Equal(t, OutcomeSuccess, out.Kind)
	assert.Empty(t, out.Lines)
	assert.Contains(t, out.Message, "no match")

	out = e.Do(ctx, Search{Glob: "[bad"})
	assert.ErrorIs(t, out.Err, ErrInvalid)

	// search is scoped to the cursor
	require.True(t, e.Do(ctx, ChangeDirectory{Name: "sub"}).OK())
	out = e.Do(ctx, Search{Name: "report"})
	assert.Equal(t, []string{"/sub/report-old.txt"}, out.Lines)
}

func TestPreviewFile(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()

	var b strings.Builder
	for i := 0; i < 15; i++ {
		b.WriteString("line\n")
	}
	write(t, filepath.Join(e.Root(), "long.txt"), b.String())

	out := e.Do(ctx, PreviewFile{Name: "long.txt"})
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Len(t, out.Lines, DefaultPreviewLines)

	out = e.Do(ctx, PreviewFile{Name: "long.txt", Lines: 3})
	assert.Len(t, out.Lines, 3)

	write(t, filepath.Join(e.Root(), "latin.txt"), "caf\xe9 au lait\nna\xefve\n")
	out = e.Do(ctx, PreviewFile{Name: "latin.txt"})
	require.Equal(t, OutcomeSuccess, out.Kind)
	require.Len(t, out.Lines, 2)
	for _, l := range out.Lines {
		assert.True(t, utf8.ValidString(l))
	}
	assert.True(t, strings.HasPrefix(out.Lines[0], "caf"))

	out = e.Do(ctx, PreviewFile{Name: "absent.txt"})
	assert.ErrorIs(t, out.Err, ErrNotFound)
}

func TestPreviewCutsLongLines(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()

	write(t, filepath.Join(e.Root(), "big.txt"), strings.Repeat("x", 2<<20)+"\nsecond\n")
	out := e.Do(ctx, PreviewFile{Name: "big.txt"})
	require.Equal(t, OutcomeSuccess, out.Kind, out.Message)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, strings.Repeat("x", maxLineBytes)+truncMark, out.Lines[0])
	assert.Equal(t, "second", out.Lines[1])

	// a cut inside a multi-byte rune drops the partial rune
	write(t, filepath.Join(e.Root(), "euro.txt"), strings.Repeat("€", 2000))
	out = e.Do(ctx, PreviewFile{Name: "euro.txt"})
	require.Equal(t, OutcomeSuccess, out.Kind, out.Message)
	require.Len(t, out.Lines, 1)
	assert.True(t, utf8.ValidString(out.Lines[0]))
	assert.True(t, strings.HasSuffix(out.Lines[0], truncMark))
	assert.Equal(t, strings.Repeat("€", maxLineBytes/3)+truncMark, out.Lines[0])
}

func TestPropertiesAndTree(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()
	write(t, filepath.Join(e.Root(), "A", "x"), "hello")
	write(t, filepath.Join(e.Root(), "A", "y"), "")

	out := e.Do(ctx, Properties{Name: "A/x"})
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Contains(t, out.Lines, "Type: file")
	assert.Contains(t, out.Lines, "Size: 5 bytes (5 B)")
	assert.Contains(t, out.Lines, "Path: /A/x")

	out = e.Do(ctx, Tree{Name: "A"})
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Equal(t, []string{"├── x", "└── y"}, out.Lines)

	out = e.Do(ctx, Tree{Name: "A/x"})
	assert.ErrorIs(t, out.Err, ErrInvalid)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "1023 B", formatBytes(1023))
	assert.Equal(t, "1.00 KB", formatBytes(1024))
	assert.Equal(t, "1.50 MB", formatBytes(1536*1024))
}

func TestRecentAndDuplicatesScanWholeRoot(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()
	root := e.Root()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.txt", "sub/b.txt", "sub/c.txt"} {
		p := filepath.Join(root, name)
		write(t, p, "same")
		ts := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(p, ts, ts))
	}
	require.True(t, e.Do(ctx, ChangeDirectory{Name: "sub"}).OK())

	out := e.Do(ctx, FindDuplicates{})
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Equal(t, []string{"/sub/b.txt duplicates /a.txt", "/sub/c.txt duplicates /a.txt"}, out.Lines)

	out = e.Do(ctx, RecentFiles{Count: 2})
	require.Len(t, out.Lines, 2)
	assert.True(t, strings.HasSuffix(out.Lines[0], "/sub/c.txt"))
	assert.True(t, strings.HasSuffix(out.Lines[1], "/sub/b.txt"))
}

func TestCompressDecompress(t *testing.T) {
	e := newEngine(t, types.RoleAdmin, &memorySink{})
	ctx := context.Background()
	write(t, filepath.Join(e.Root(), "a.txt"), "payload")

	for _, name := range []string{"a.zip", "a.tar.gz", "a.tar.zst"} {
		require.Equal(t, OutcomeSuccess, e.Do(ctx, Compress{Name: "a.txt", Archive: name}).Kind, name)
	}
	require.Equal(t, OutcomeSuccess, e.Do(ctx, DeleteFile{Name: "a.txt"}).Kind)

	require.NoError(t, os.Mkdir(filepath.Join(e.Root(), "out"), 0o755))
	require.True(t, e.Do(ctx, ChangeDirectory{Name: "out"}).OK())
	out := e.Do(ctx, Decompress{Archive: "../a.tar.zst"})
	require.Equal(t, OutcomeSuccess, out.Kind, out.Message)

	data, err := os.ReadFile(filepath.Join(e.Root(), "out", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	out = e.Do(ctx, Decompress{Archive: "missing.zip"})
	assert.ErrorIs(t, out.Err, ErrNotFound)

	out = e.Do(ctx, Compress{Name: ".", Archive: "x.zip"})
	assert.ErrorIs(t, out.Err, ErrInvalid, "archives only hold regular files")
}

func TestEncryptMissingFile(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	out := e.Do(context.Background(), EncryptFile{Name: "none.txt", Password: "pw"})
	assert.ErrorIs(t, out.Err, ErrNotFound)

	write(t, filepath.Join(e.Root(), "a.txt"), "x")
	out = e.Do(context.Background(), EncryptFile{Name: "a.txt"})
	assert.ErrorIs(t, out.Err, ErrInvalid)
}

func TestBatchRenameCollisionsAreSkipped(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	write(t, filepath.Join(e.Root(), "v1.txt"), "old")
	write(t, filepath.Join(e.Root(), "v2.txt"), "keep")

	out := e.Do(context.Background(), BatchRename{Old: "v1", New: "v2"})
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Contains(t, out.Message, "Renamed 0 item(s)")
	assert.Contains(t, out.Message, "1 skipped")

	out = e.Do(context.Background(), BatchRename{Old: "", New: "x"})
	assert.ErrorIs(t, out.Err, ErrInvalid)

	out = e.Do(context.Background(), BatchRename{Old: "v1", New: "../v1"})
	assert.ErrorIs(t, out.Err, ErrInvalid)
}

func TestBookmarks(t *testing.T) {
	e := newEngine(t, types.RoleUser, &memorySink{})
	ctx := context.Background()

	out := e.Do(ctx, ListBookmarks{})
	assert.Equal(t, OutcomeSuccess, out.Kind)
	assert.Equal(t, "No bookmarks.", out.Message)

	require.NoError(t, os.Mkdir(filepath.Join(e.Root(), "docs"), 0o755))
	require.Equal(t, OutcomeSuccess, e.Do(ctx, AddBookmark{Name: "docs"}).Kind)
	require.Equal(t, OutcomeSuccess, e.Do(ctx, AddBookmark{}).Kind)
	require.Equal(t, OutcomeSuccess, e.Do(ctx, AddBookmark{Name: "docs"}).Kind)

	out = e.Do(ctx, ListBookmarks{})
	docs := filepath.Join(e.Root(), "docs")
	assert.Equal(t, []string{docs, e.Root(), docs}, out.Lines)

	out = e.Do(ctx, AddBookmark{Name: "ghost"})
	assert.ErrorIs(t, out.Err, ErrNotFound)
}

func TestLogDashboard(t *testing.T) {
	log, err := audit.Open(filepath.Join(t.TempDir(), "operations.log"))
	require.NoError(t, err)
	e := newEngine(t, types.RoleUser, log)
	ctx := context.Background()

	e.Do(ctx, CreateFile{Name: "a.txt"})
	e.Do(ctx, CreateFile{Name: "b.txt"})
	e.Do(ctx, DeleteFile{Name: "a.txt"})
	e.Do(ctx, ReadFile{Name: "missing"})

	out := e.Do(ctx, LogDashboard{})
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Contains(t, out.Lines, "Records: 4")
	assert.Contains(t, out.Lines, "Errors: 1")
	assert.Contains(t, out.Lines[1], "create-file (2)")
	assert.Contains(t, out.Lines[2], "tester (4)")
	assert.True(t, strings.HasPrefix(out.Lines[4], "This session: 4 operation(s), 1 denied, 1 failed"))
}
