package archive

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format identifies an archive container.
type Format string

const (
	Zip    Format = "zip"
	Tar    Format = "tar"
	TarGz  Format = "tar.gz"
	TarZst Format = "tar.zst"
)

// FormatFor picks the container for an output name. Unknown suffixes get zip.
func FormatFor(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return TarGz
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return TarZst
	case strings.HasSuffix(lower, ".tar"):
		return Tar
	default:
		return Zip
	}
}

// Detect sniffs the container format of the file at path.
func Detect(path string) (Format, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}

	// walk up so zip-based formats (docx, jar) still count as zip
	for m := mime; m != nil; m = m.Parent() {
		switch {
		case m.Is("application/zip"):
			return Zip, nil
		case m.Is("application/gzip"):
			return TarGz, nil
		case m.Is("application/zstd"):
			return TarZst, nil
		case m.Is("application/x-tar"):
			return Tar, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, mime.String())
}
