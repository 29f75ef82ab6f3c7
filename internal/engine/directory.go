package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/fileengine/internal/scan"
	"github.com/GriffinCanCode/fileengine/internal/shared/paths"
)

func (e *Engine) createDirectory(op CreateDirectory) Outcome {
	if out := requireName(op.Name, "directory name"); out != nil {
		return *out
	}
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}

	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return failed(fmt.Errorf("%w: %s is a file", ErrAlreadyExists, op.Name),
				fmt.Sprintf("'%s' already exists and is not a directory.", op.Name))
		}
		return notice(fmt.Errorf("%w: %s", ErrAlreadyExists, op.Name),
			fmt.Sprintf("Directory '%s' already exists.", op.Name))
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return failed(err, fmt.Sprintf("Create error: %v", err))
	}
	return done(fmt.Sprintf("Directory '%s' created.", op.Name))
}

func (e *Engine) deleteDirectory(op DeleteDirectory) Outcome {
	if out := requireName(op.Name, "directory name"); out != nil {
		return *out
	}
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}
	if path == e.Root() {
		return failed(invalidf("cannot delete the sandbox root"), "The managed root directory cannot be deleted.")
	}

	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return notice(err, fmt.Sprintf("Directory '%s' not found.", op.Name))
	}
	if err != nil {
		return failed(err, fmt.Sprintf("Delete error: %v", err))
	}
	if !info.IsDir() {
		return failed(invalidf("%s is not a directory", op.Name), fmt.Sprintf("'%s' is not a directory; use delete-file.", op.Name))
	}

	if err := os.RemoveAll(path); err != nil {
		return failed(err, fmt.Sprintf("Delete error: %v", err))
	}
	// keep the cursor on an existing directory
	if paths.IsWithin(path, e.cursor) {
		e.cursor = filepath.Dir(path)
	}
	return done(fmt.Sprintf("Directory '%s' deleted.", op.Name))
}

func (e *Engine) listDirectory() Outcome {
	entries, err := os.ReadDir(e.cursor)
	if err != nil {
		return failed(err, fmt.Sprintf("List error: %v", err))
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		lines = append(lines, name)
	}
	if len(lines) == 0 {
		return done(fmt.Sprintf("Directory '%s' is empty.", e.display(e.cursor)))
	}
	return done(fmt.Sprintf("Contents of '%s' (%d entries).", e.display(e.cursor), len(lines)), lines...)
}

func (e *Engine) changeDirectory(op ChangeDirectory) Outcome {
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return failed(err, fmt.Sprintf("Directory '%s' does not exist.", op.Name))
	}
	if err != nil {
		return failed(err, fmt.Sprintf("Error: %v", err))
	}
	if !info.IsDir() {
		return failed(invalidf("%s is not a directory", op.Name), fmt.Sprintf("'%s' is not a directory.", op.Name))
	}
	if err := e.checkReal(path); err != nil {
		return outsideRoot(op.Name, err)
	}

	e.cursor = path
	return done(fmt.Sprintf("Changed directory to '%s'.", e.display(path)))
}

// checkReal rejects a path whose symlinks lead outside the root.
func (e *Engine) checkReal(path string) error {
	realRoot, err := filepath.EvalSymlinks(e.Root())
	if err != nil {
		return err
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	if !paths.IsWithin(realRoot, resolved) {
		return fmt.Errorf("%w: %s links outside the root", ErrConfinement, path)
	}
	return nil
}

func (e *Engine) currentPath() Outcome {
	return done(fmt.Sprintf("Current directory: %s", e.display(e.cursor)), e.display(e.cursor), e.cursor)
}

func (e *Engine) tree(ctx context.Context, op Tree) Outcome {
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return failed(err, fmt.Sprintf("Directory '%s' does not exist.", op.Name))
	}
	if err != nil {
		return failed(err, fmt.Sprintf("Tree error: %v", err))
	}
	if !info.IsDir() {
		return failed(invalidf("%s is not a directory", op.Name), fmt.Sprintf("'%s' is not a directory.", op.Name))
	}

	entries, err := scan.Tree(ctx, path)
	if err != nil {
		return failed(err, fmt.Sprintf("Tree error: %v", err))
	}
	return done(fmt.Sprintf("Tree of '%s' (%d entries).", e.display(path), len(entries)), scan.Render(entries)...)
}
