package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/fileengine/internal/shared/paths"
	"github.com/GriffinCanCode/fileengine/internal/shared/utils"
)

func (e *Engine) move(op Move) Outcome {
	if out := requireName(op.Src, "source"); out != nil {
		return *out
	}
	if out := requireName(op.Dst, "destination"); out != nil {
		return *out
	}
	src, out := e.resolveArg(op.Src)
	if out != nil {
		return *out
	}
	dst, out := e.resolveArg(op.Dst)
	if out != nil {
		return *out
	}

	srcInfo, err := os.Lstat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return failed(err, fmt.Sprintf("'%s' not found.", op.Src))
	}
	if err != nil {
		return failed(err, fmt.Sprintf("Move error: %v", err))
	}
	if src == e.Root() {
		return failed(invalidf("cannot move the sandbox root"), "The managed root directory cannot be moved.")
	}

	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if srcInfo.IsDir() && paths.IsWithin(src, dst) {
		return failed(invalidf("%s into itself", op.Src), fmt.Sprintf("Cannot move '%s' into itself.", op.Src))
	}
	if _, err := os.Lstat(dst); err == nil {
		return failed(fmt.Errorf("%w: %s", ErrAlreadyExists, e.display(dst)),
			fmt.Sprintf("Move error: '%s' already exists.", e.display(dst)))
	}

	if err := os.Rename(src, dst); err != nil {
		return failed(err, fmt.Sprintf("Move error: %v", err))
	}
	if paths.IsWithin(src, e.cursor) {
		e.cursor = filepath.Join(dst, strings.TrimPrefix(e.cursor, src))
	}
	return done(fmt.Sprintf("Moved '%s' to '%s'.", op.Src, e.display(dst)))
}

func (e *Engine) rename(op Rename) Outcome {
	if out := requireName(op.Old, "old name"); out != nil {
		return *out
	}
	if out := requireName(op.New, "new name"); out != nil {
		return *out
	}
	oldPath, out := e.resolveArg(op.Old)
	if out != nil {
		return *out
	}
	newPath, out := e.resolveArg(op.New)
	if out != nil {
		return *out
	}
	if oldPath == e.Root() {
		return failed(invalidf("cannot rename the sandbox root"), "The managed root directory cannot be renamed.")
	}

	if _, err := os.Lstat(oldPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return failed(err, fmt.Sprintf("'%s' not found.", op.Old))
		}
		return failed(err, fmt.Sprintf("Rename error: %v", err))
	}
	if _, err := os.Lstat(newPath); err == nil {
		return failed(fmt.Errorf("%w: %s", ErrAlreadyExists, op.New), fmt.Sprintf("'%s' already exists.", op.New))
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return failed(err, fmt.Sprintf("Rename error: %v", err))
	}
	if paths.IsWithin(oldPath, e.cursor) {
		e.cursor = filepath.Join(newPath, strings.TrimPrefix(e.cursor, oldPath))
	}
	return done(fmt.Sprintf("Renamed '%s' to '%s'.", op.Old, op.New))
}

func (e *Engine) copy(ctx context.Context, op Copy) Outcome {
	if out := requireName(op.Src, "source"); out != nil {
		return *out
	}
	if out := requireName(op.Dst, "destination"); out != nil {
		return *out
	}
	src, out := e.resolveArg(op.Src)
	if out != nil {
		return *out
	}
	dst, out := e.resolveArg(op.Dst)
	if out != nil {
		return *out
	}

	srcInfo, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return failed(err, fmt.Sprintf("'%s' not found.", op.Src))
	}
	if err != nil {
		return failed(err, fmt.Sprintf("Copy error: %v", err))
	}

	if srcInfo.IsDir() {
		if paths.IsWithin(src, dst) {
			return failed(invalidf("%s into itself", op.Src), fmt.Sprintf("Cannot copy '%s' into itself.", op.Src))
		}
		if _, err := os.Lstat(dst); err == nil {
			return failed(fmt.Errorf("%w: %s", ErrAlreadyExists, op.Dst), fmt.Sprintf("Copy error: '%s' already exists.", op.Dst))
		}
		if err := copyTree(ctx, src, dst); err != nil {
			_ = os.RemoveAll(dst)
			return failed(err, fmt.Sprintf("Copy error: %v", err))
		}
		return done(fmt.Sprintf("Copied '%s' to '%s'.", op.Src, op.Dst))
	}

	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if dst == src {
		return failed(invalidf("%s onto itself", op.Src), fmt.Sprintf("Cannot copy '%s' onto itself.", op.Src))
	}
	if err := copyFile(src, dst, srcInfo); err != nil {
		return failed(err, fmt.Sprintf("Copy error: %v", err))
	}
	return done(fmt.Sprintf("Copied '%s' to '%s'.", op.Src, e.display(dst)))
}

// copyFile copies content, permission bits and modification time.
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// copyTree recreates src at dst. Symlinks and special files are skipped.
func copyTree(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.Mkdir(dst, info.Mode().Perm()|0o700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyTree(ctx, from, to); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			fi, err := entry.Info()
			if err != nil {
				return err
			}
			if err := copyFile(from, to, fi); err != nil {
				return err
			}
		}
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func (e *Engine) batchRename(op BatchRename) Outcome {
	if err := utils.ValidatePattern(op.Old, "pattern"); err != nil {
		return failed(invalidf("%v", err), "A non-empty pattern to replace is required.")
	}
	if strings.ContainsAny(op.New, `/\`) || strings.ContainsRune(op.New, 0) {
		return failed(invalidf("replacement %q contains a path separator", op.New), "The replacement must not contain path separators.")
	}

	entries, err := os.ReadDir(e.cursor)
	if err != nil {
		return failed(err, fmt.Sprintf("Batch rename error: %v", err))
	}

	var lines []string
	renamed, skipped := 0, 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.Contains(name, op.Old) {
			continue
		}
		target := strings.ReplaceAll(name, op.Old, op.New)
		if target == name {
			continue
		}
		if target == "" || target == "." || target == ".." {
			skipped++
			lines = append(lines, fmt.Sprintf("skipped %s: invalid new name", name))
			continue
		}

		to := filepath.Join(e.cursor, target)
		if _, err := os.Lstat(to); err == nil {
			skipped++
			lines = append(lines, fmt.Sprintf("skipped %s: %s already exists", name, target))
			continue
		}
		if err := os.Rename(filepath.Join(e.cursor, name), to); err != nil {
			skipped++
			lines = append(lines, fmt.Sprintf("skipped %s: %v", name, err))
			continue
		}
		renamed++
		lines = append(lines, fmt.Sprintf("%s -> %s", name, target))
	}

	msg := fmt.Sprintf("Renamed %d item(s) replacing '%s' with '%s'.", renamed, op.Old, op.New)
	if skipped > 0 {
		msg = fmt.Sprintf("Renamed %d item(s) replacing '%s' with '%s'; %d skipped.", renamed, op.Old, op.New, skipped)
	}
	return done(msg, lines...)
}
