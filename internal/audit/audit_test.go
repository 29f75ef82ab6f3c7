package audit

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestOpenCreatesFileAndParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "operations.log")

	log, err := Open(path)
	require.NoError(t, err)

	info, err := os.Stat(log.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestRecordAppendsOneLinePerEntry(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "operations.log"))
	require.NoError(t, err)
	ctx := context.Background()

	ts := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	require.NoError(t, log.Record(ctx, Entry{Time: ts, Level: zapcore.InfoLevel, Command: "create-file", User: "jiya", Message: "File 'a.txt' created."}))
	require.NoError(t, log.Record(ctx, Entry{Level: zapcore.WarnLevel, Command: "delete-file", User: "jiya", Message: "Permission denied: Only admin can delete files."}))
	require.NoError(t, log.Record(ctx, Entry{Level: zapcore.ErrorLevel, Command: "read-file", User: "jiya", Message: "line one\nline two"}))

	lines := readLines(t, log.Path())
	require.Len(t, lines, 3)

	fields := strings.Split(lines[0], "\t")
	require.Len(t, fields, 3)
	assert.True(t, strings.HasPrefix(fields[0], "2026-10-16T09:30:00"))
	assert.Equal(t, "INFO", fields[1])
	assert.Equal(t, "command=create-file user=jiya File 'a.txt' created.", fields[2])

	assert.Contains(t, lines[1], "\tWARN\t")
	assert.Contains(t, lines[2], "\tERROR\t")
	assert.Contains(t, lines[2], `line one\nline two`)
}

func TestRecordSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.log")
	ctx := context.Background()

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Record(ctx, Entry{Level: zapcore.InfoLevel, Command: "tree", User: "a", Message: "one"}))

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Record(ctx, Entry{Level: zapcore.InfoLevel, Command: "tree", User: "a", Message: "two"}))

	assert.Len(t, readLines(t, path), 2)
}

func TestEntryTextNormalizesMarkers(t *testing.T) {
	e := Entry{Command: "", User: "mary ann", Message: "hello"}
	assert.Equal(t, "command=- user=mary_ann hello", e.Text())
}

func TestSummarize(t *testing.T) {
	input := strings.Join([]string{
		"2026-10-16T09:00:00.000Z\tINFO\tcommand=create-file user=jiya File 'a.txt' created.",
		"2026-10-16T09:00:01.000Z\tINFO\tcommand=create-file user=sneha File 'b.txt' created.",
		"2026-10-16T09:00:02.000Z\tWARN\tcommand=delete-file user=jiya Permission denied: Only admin can delete files.",
		"2026-10-16T09:00:03.000Z\tERROR\tcommand=read-file user=jiya 'c.txt' not found.",
		"2026-10-16T09:00:04.000Z\tINFO\tcommand=write-file user=jiya Content written to 'error.txt'.",
		"",
		"legacy line with an Error inside",
	}, "\n")

	s, err := Summarize(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 6, s.Total)
	assert.Equal(t, map[string]int{"create-file": 2, "delete-file": 1, "read-file": 1, "write-file": 1}, s.Commands)
	assert.Equal(t, map[string]int{"jiya": 4, "sneha": 1}, s.Users)
	// the INFO line mentioning error.txt is not an error; the legacy line is
	assert.Equal(t, 2, s.Errors)

	assert.Equal(t, []Count{{Name: "create-file", Count: 2}}, s.TopCommands(1))
	assert.Equal(t, []Count{{Name: "jiya", Count: 4}, {Name: "sneha", Count: 1}}, s.TopUsers(0))
}

func TestSummarizeFileRoundTrip(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "operations.log"))
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, log.Record(ctx, Entry{Level: zapcore.InfoLevel, Command: "search", User: "charvi", Message: "Searched for 'x'."}))
	}
	require.NoError(t, log.Record(ctx, Entry{Level: zapcore.ErrorLevel, Command: "copy", User: "charvi", Message: "copy failed"}))

	s, err := SummarizeFile(log.Path())
	require.NoError(t, err)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Commands["search"])
	assert.Equal(t, 4, s.Users["charvi"])
	assert.Equal(t, 1, s.Errors)
}

func TestSummarizeMissingFile(t *testing.T) {
	s, err := SummarizeFile(filepath.Join(t.TempDir(), "absent.log"))
	require.NoError(t, err)
	assert.Zero(t, s.Total)
	assert.Empty(t, s.Commands)
}
