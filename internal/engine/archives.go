package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GriffinCanCode/fileengine/internal/archive"
)

func (e *Engine) compress(ctx context.Context, op Compress) Outcome {
	if out := requireName(op.Name, "file name"); out != nil {
		return *out
	}
	if out := requireName(op.Archive, "archive name"); out != nil {
		return *out
	}
	src, out := e.resolveArg(op.Name)
	if out != nil {
		return *out
	}
	dst, out := e.resolveArg(op.Archive)
	if out != nil {
		return *out
	}
	if out := regularFile(src, op.Name); out != nil {
		return *out
	}
	if src == dst {
		return failed(invalidf("archive overwrites source"), "The archive must not replace the file being compressed.")
	}

	if err := archive.Create(ctx, src, dst); err != nil {
		return failed(err, fmt.Sprintf("Compression error: %v", err))
	}
	return done(fmt.Sprintf("File '%s' compressed to '%s' (%s).", op.Name, op.Archive, archive.FormatFor(dst)))
}

func (e *Engine) decompress(ctx context.Context, op Decompress) Outcome {
	if out := requireName(op.Archive, "archive name"); out != nil {
		return *out
	}
	src, out := e.resolveArg(op.Archive)
	if out != nil {
		return *out
	}
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return failed(err, fmt.Sprintf("Archive '%s' not found.", op.Archive))
	}

	n, err := archive.Extract(ctx, src, e.cursor)
	switch {
	case errors.Is(err, archive.ErrUnsafeEntry):
		return failed(err, fmt.Sprintf("Decompression refused: '%s' contains entries outside the target directory.", op.Archive))
	case errors.Is(err, archive.ErrUnsupported):
		return failed(err, fmt.Sprintf("'%s' is not a supported archive.", op.Archive))
	case err != nil:
		return failed(err, fmt.Sprintf("Decompression error: %v", err))
	}
	return done(fmt.Sprintf("File '%s' decompressed (%d file(s)).", op.Archive, n))
}
