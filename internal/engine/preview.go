package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// sniffLen is how much of a file is inspected to guess its encoding.
	sniffLen = 32 * 1024
	// maxLineBytes caps one preview line; the rest of a longer line is skipped.
	maxLineBytes = 4096
	truncMark    = " …"
)

func (e *Engine) previewFile(op PreviewFile) Outcome {
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

	limit := op.Lines
	if limit <= 0 {
		limit = e.previewLines
	}

	f, err := os.Open(path)
	if err != nil {
		return failed(err, fmt.Sprintf("Preview error: %v", err))
	}
	defer f.Close()

	lines, name, err := previewLines(f, limit)
	if err != nil {
		return failed(err, fmt.Sprintf("Preview error: %v", err))
	}
	return done(fmt.Sprintf("Preview of '%s' (%s, %d line(s)).", op.Name, name, len(lines)), lines...)
}

// previewLines decodes r to UTF-8 and returns at most limit lines along with
// the detected charset name. Undecodable bytes become U+FFFD.
func previewLines(r io.Reader, limit int) ([]string, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	sample, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", err
	}

	enc, name := detectEncoding(sample, len(sample) == sniffLen)
	lr := bufio.NewReader(transform.NewReader(br, enc.NewDecoder()))

	var lines []string
	for len(lines) < limit {
		line, err := readLine(lr, maxLineBytes)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", err
		}
		lines = append(lines, line)
	}
	return lines, name, nil
}

// readLine returns the next line without its line ending, cut to max bytes.
// io.EOF is returned only when no line is left.
func readLine(r *bufio.Reader, max int) (string, error) {
	var buf []byte
	cut := false
	for {
		chunk, more, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (buf != nil || cut) {
				break
			}
			return "", err
		}
		if buf == nil {
			buf = []byte{}
		}
		if room := max - len(buf); len(chunk) > room {
			buf = append(buf, chunk[:room]...)
			cut = true
		} else {
			buf = append(buf, chunk...)
		}
		if !more {
			break
		}
	}

	if !cut {
		return string(buf), nil
	}
	// drop a rune split by the cut
	for i := 0; i < utf8.UTFMax && len(buf) > 0 && !utf8.Valid(buf); i++ {
		buf = buf[:len(buf)-1]
	}
	return string(buf) + truncMark, nil
}

// detectEncoding picks a decoder for sample. Valid UTF-8 wins outright;
// otherwise chardet guesses. truncated means sample may end mid-rune.
func detectEncoding(sample []byte, truncated bool) (encoding.Encoding, string) {
	if validUTF8(sample, truncated) {
		return unicode.UTF8, "utf-8"
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil && result != nil {
		if enc, name := charset.Lookup(result.Charset); enc != nil {
			return enc, name
		}
	}
	// undecodable bytes are replaced by the UTF-8 decoder
	return unicode.UTF8, "utf-8"
}

func validUTF8(b []byte, truncated bool) bool {
	if utf8.Valid(b) {
		return true
	}
	if !truncated {
		return false
	}
	for cut := 1; cut < utf8.UTFMax && cut < len(b); cut++ {
		if utf8.Valid(b[:len(b)-cut]) {
			return true
		}
	}
	return false
}
