package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/fileengine/internal/shared/paths"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrUnsupported is returned for content that is not a known archive.
	ErrUnsupported = errors.New("unsupported archive format")
	// ErrUnsafeEntry is returned when an entry would escape the destination.
	ErrUnsafeEntry = errors.New("archive entry escapes destination")
	// ErrNotRegular is returned when the source is not a regular file.
	ErrNotRegular = errors.New("source is not a regular file")
)

// Create writes an archive at dst holding the single regular file src,
// stored under its base name. The container is chosen from dst's suffix.
// A partially written dst is removed on failure.
func Create(ctx context.Context, src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, filepath.Base(src))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	switch FormatFor(dst) {
	case TarGz:
		gz := gzip.NewWriter(out)
		if err := writeTar(gz, in, info); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	case TarZst:
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return err
		}
		if err := writeTar(zw, in, info); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case Tar:
		return writeTar(out, in, info)
	default:
		return writeZip(out, in, info)
	}
}

func writeZip(w io.Writer, in io.Reader, info os.FileInfo) error {
	zw := zip.NewWriter(w)
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Method = zip.Deflate

	entry, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(entry, in); err != nil {
		return err
	}
	return zw.Close()
}

func writeTar(w io.Writer, in io.Reader, info os.FileInfo) error {
	tw := tar.NewWriter(w)
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = info.Name()

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	if _, err := io.Copy(tw, in); err != nil {
		return err
	}
	return tw.Close()
}

// Extract unpacks every entry of the archive at src into dest and returns
// the number of files written. Existing files are overwritten.
func Extract(ctx context.Context, src, dest string) (int, error) {
	format, err := Detect(src)
	if err != nil {
		return 0, err
	}

	switch format {
	case Zip:
		return extractZip(ctx, src, dest)
	default:
		return extractTarFile(ctx, src, dest, format)
	}
}

// target maps an entry name to a path inside dest.
func target(dest, name string) (string, error) {
	clean := filepath.FromSlash(strings.TrimPrefix(name, "./"))
	if clean == "" || filepath.IsAbs(clean) || filepath.VolumeName(clean) != "" || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}
	p := filepath.Join(dest, clean)
	if p == filepath.Clean(dest) || !paths.IsWithin(dest, p) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}
	return p, nil
}

func extractZip(ctx context.Context, src, dest string) (int, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	// check every name before writing anything
	targets := make([]string, len(r.File))
	for i, f := range r.File {
		if targets[i], err = target(dest, f.Name); err != nil {
			return 0, err
		}
	}

	count := 0
	for i, f := range r.File {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targets[i], 0o755); err != nil {
				return count, err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return count, err
		}
		err = writeEntry(targets[i], rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func extractTarFile(ctx context.Context, src, dest string, format Format) (int, error) {
	f, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var r io.Reader = f
	switch format {
	case TarGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return 0, err
		}
		defer gz.Close()
		r = gz
	case TarZst:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return 0, err
		}
		defer zr.Close()
		r = zr
	}
	return extractTar(ctx, tar.NewReader(r), dest)
}

func extractTar(ctx context.Context, tr *tar.Reader, dest string) (int, error) {
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		header, err := tr.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		path, err := target(dest, header.Name)
		if err != nil {
			return count, err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return count, err
			}
		case tar.TypeReg:
			if err := writeEntry(path, tr, os.FileMode(header.Mode).Perm()); err != nil {
				return count, err
			}
			count++
		}
		// links and devices are ignored
	}
}

func writeEntry(path string, r io.Reader, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
