package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is one audited action. Every engine operation produces exactly one.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Command string
	User    string
	Message string
}

// Text renders the greppable body of the record. Command and user appear as
// key=value markers so the summarizer can tally them.
func (e Entry) Text() string {
	return fmt.Sprintf("command=%s user=%s %s", token(e.Command), token(e.User), e.Message)
}

// Sink receives audit entries.
type Sink interface {
	Record(ctx context.Context, e Entry) error
}

// Log is the durable, append-only audit trail. Each Record opens the file,
// appends one line and closes it again; no handle is held between records.
//
// Line format: <ISO8601 time>\t<LEVEL>\t<text>
type Log struct {
	path string
	core zapcore.Core
}

// Open prepares the audit file at path, creating it and its parent directory
// when missing.
func Open(path string) (*Log, error) {
	if path == "" {
		return nil, fmt.Errorf("audit log path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve audit log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create audit log directory: %w", err)
	}
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close audit log: %w", err)
	}

	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "T",
		LevelKey:         "L",
		MessageKey:       "M",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: "\t",
	})

	return &Log{
		path: abs,
		core: zapcore.NewCore(enc, &appendSyncer{path: abs}, zapcore.DebugLevel),
	}, nil
}

// Path returns the absolute location of the audit file.
func (l *Log) Path() string {
	return l.path
}

// Record appends e as a single line.
func (l *Log) Record(_ context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	ent := zapcore.Entry{
		Level:   e.Level,
		Time:    e.Time,
		Message: singleLine(e.Text()),
	}
	if err := l.core.Write(ent, nil); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

// appendSyncer opens the file for every write so the log is never held open.
type appendSyncer struct {
	path string
	mu   sync.Mutex
}

func (s *appendSyncer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(p)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (s *appendSyncer) Sync() error { return nil }

var lineEscaper = strings.NewReplacer("\r", `\r`, "\n", `\n`)

func singleLine(s string) string {
	return lineEscaper.Replace(s)
}

// token keeps marker values to one whitespace-free word.
func token(s string) string {
	s = strings.Join(strings.Fields(s), "_")
	if s == "" {
		return "-"
	}
	return s
}
