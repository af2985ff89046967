package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"splitstep/internal/sims/langevin"
)

// LogFileName is the conventional durable log name for growth rate a.
func LogFileName(a float64) string {
	return fmt.Sprintf("integration_%g.log", a)
}

// TextLog appends one "<time>, <density>" line per record.
type TextLog struct {
	w      io.Writer
	closer io.Closer
	path   string
}

// NewTextLog writes records to w.
func NewTextLog(w io.Writer) *TextLog {
	return &TextLog{w: w}
}

// CreateTextLog creates (or truncates) the log file at path.
func CreateTextLog(path string) (*TextLog, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}
	return &TextLog{w: f, closer: f, path: path}, nil
}

// Path returns the file path, or "" for writer-backed logs.
func (l *TextLog) Path() string { return l.path }

// Emit writes one record line.
func (l *TextLog) Emit(r langevin.Record) error {
	if _, err := fmt.Fprintf(l.w, "%.6g, %.6g\n", r.Time, r.Density); err != nil {
		return fmt.Errorf("write %s: %w", l.describe(), err)
	}
	return nil
}

// Close closes the underlying file, if any.
func (l *TextLog) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *TextLog) describe() string {
	if l.path == "" {
		return "text log"
	}
	return l.path
}

// ReadTextLog parses a durable log back into records. Iteration and Wall are
// not stored in the log and stay zero.
func ReadTextLog(r io.Reader) ([]langevin.Record, error) {
	var out []langevin.Record
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"<time>, <density>\", got %q", line, text)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: time: %w", line, err)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: density: %w", line, err)
		}
		out = append(out, langevin.Record{Time: t, Density: d})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadTextLogFile opens and parses a durable log.
func ReadTextLogFile(path string) ([]langevin.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := ReadTextLog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
