package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

func (e *Engine) createFile(op CreateFile) Outcome {
	if out := requireName(op.Name, "file name"); out != nil {
		return *out
	}
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	switch {
	case errors.Is(err, fs.ErrExist):
		return notice(err, fmt.Sprintf("File '%s' already exists.", op.Name))
	case errors.Is(err, fs.ErrNotExist):
		return failed(err, fmt.Sprintf("Cannot create '%s': parent directory does not exist.", op.Name))
	case err != nil:
		return failed(err, fmt.Sprintf("Create error: %v", err))
	}
	if err := f.Close(); err != nil {
		return failed(err, fmt.Sprintf("Create error: %v", err))
	}
	return done(fmt.Sprintf("File '%s' created.", op.Name))
}

func (e *Engine) readFile(op ReadFile) Outcome {
	if out := requireName(op.Name, "file name"); out != nil {
		return *out
	}
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}
	if out := regularFile(path, op.Name); out != nil {
		return *out
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return failed(err, fmt.Sprintf("Read error: %v", err))
	}
	return done(fmt.Sprintf("Read file '%s'.", op.Name), splitLines(string(data))...)
}

func (e *Engine) writeFile(op WriteFile) Outcome {
	if out := requireName(op.Name, "file name"); out != nil {
		return *out
	}
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return failed(err, fmt.Sprintf("Write error: %v", err))
	}
	if _, err := f.WriteString(op.Content + "\n"); err != nil {
		f.Close()
		return failed(err, fmt.Sprintf("Write error: %v", err))
	}
	if err := f.Close(); err != nil {
		return failed(err, fmt.Sprintf("Write error: %v", err))
	}
	return done(fmt.Sprintf("Content written to '%s'.", op.Name))
}

func (e *Engine) deleteFile(op DeleteFile) Outcome {
	if out := requireName(op.Name, "file name"); out != nil {
		return *out
	}
	path, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}

	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return notice(err, fmt.Sprintf("File '%s' not found.", op.Name))
	}
	if err != nil {
		return failed(err, fmt.Sprintf("Delete error: %v", err))
	}
	if info.IsDir() {
		return failed(invalidf("%s is a directory", op.Name), fmt.Sprintf("'%s' is a directory; use delete-directory.", op.Name))
	}

	if err := os.Remove(path); err != nil {
		return failed(err, fmt.Sprintf("Delete error: %v", err))
	}
	return done(fmt.Sprintf("File '%s' deleted.", op.Name))
}

// regularFile returns an error outcome unless path is an existing
// non-directory.
func regularFile(path, name string) *Outcome {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		out := failed(err, fmt.Sprintf("File '%s' not found.", name))
		return &out
	}
	if err != nil {
		out := failed(err, fmt.Sprintf("Error: %v", err))
		return &out
	}
	if info.IsDir() {
		out := failed(invalidf("%s is a directory", name), fmt.Sprintf("'%s' is a directory.", name))
		return &out
	}
	return nil
}

// splitLines splits text into lines without a trailing empty element.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
