package audit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
)

const (
	commandMarker = "command="
	userMarker    = "user="
)

// Summary tallies an audit log: how often each command ran, how active each
// user was, and how many records signal an error.
type Summary struct {
	Total    int
	Commands map[string]int
	Users    map[string]int
	Errors   int
}

// Count is one tally row, used for ranked output.
type Count struct {
	Name  string
	Count int
}

// Summarize reads audit lines from r.
func Summarize(r io.Reader) (Summary, error) {
	s := Summary{
		Commands: make(map[string]int),
		Users:    make(map[string]int),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.Total++

		if cmd, ok := markerValue(line, commandMarker); ok {
			s.Commands[cmd]++
		}
		if user, ok := markerValue(line, userMarker); ok {
			s.Users[user]++
		}
		if isErrorLine(line) {
			s.Errors++
		}
	}
	if err := sc.Err(); err != nil {
		return s, fmt.Errorf("read audit log: %w", err)
	}
	return s, nil
}

// SummarizeFile summarizes the audit file at path. A missing file yields an
// empty summary.
func SummarizeFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Summarize(strings.NewReader(""))
	}
	if err != nil {
		return Summary{}, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	return Summarize(f)
}

// TopCommands returns up to n commands ordered by count, then name.
func (s Summary) TopCommands(n int) []Count {
	return ranked(s.Commands, n)
}

// TopUsers returns up to n users ordered by count, then name.
func (s Summary) TopUsers(n int) []Count {
	return ranked(s.Users, n)
}

func ranked(m map[string]int, n int) []Count {
	out := make([]Count, 0, len(m))
	for name, c := range m {
		out = append(out, Count{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func markerValue(line, marker string) (string, bool) {
	i := strings.Index(line, marker)
	if i < 0 {
		return "", false
	}
	rest := line[i+len(marker):]
	if j := strings.IndexAny(rest, " \t"); j >= 0 {
		rest = rest[:j]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}

// isErrorLine trusts the level column when the line is in audit format and
// falls back to a case-insensitive search otherwise.
func isErrorLine(line string) bool {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) == 3 {
		return fields[1] == "ERROR"
	}
	return strings.Contains(strings.ToLower(line), "error")
}
