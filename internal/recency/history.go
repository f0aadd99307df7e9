// pattern: Imperative Shell

package recency

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/flock"

	"projpick/internal/logging"
)

// LoadHistory reads the history log at path and returns its last n unique
// entries. When a line occurs more than once only its last occurrence
// counts, so re-opened projects move toward the end. A missing file is an
// empty history.
func LoadHistory(path string, n int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}
	return lastUnique(readLines(data), n), nil
}

// AppendHistory adds project as a new line unless the file already contains
// it verbatim. An existing entry is left where it is: repeated opens do not
// move a project toward the end of the file.
func AppendHistory(path, project string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("lock history: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read history %s: %w", path, err)
	}
	if slices.Contains(readLines(data), project) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history %s: %w", path, err)
	}

	// A hand-edited file may lack its final newline.
	line := project + "\n"
	if len(data) > 0 && data[len(data)-1] != '\n' {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append history %s: %w", path, err)
	}
	return f.Close()
}

// History binds the history log location to a logger for callers that load
// and append repeatedly.
type History struct {
	path   string
	logger *logging.ScopedLogger
}

// NewHistory creates a History for the log file at path.
func NewHistory(path string, logger *logging.ScopedLogger) *History {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &History{path: path, logger: logger}
}

// Path returns the history file location.
func (h *History) Path() string {
	return h.path
}

// Recent returns the last n unique opened projects.
func (h *History) Recent(n int) ([]string, error) {
	entries, err := LoadHistory(h.path, n)
	if err != nil {
		h.logger.Error("failed to load history", "path", h.path, "error", err)
		return nil, err
	}
	h.logger.Debug("history loaded", "path", h.path, "count", len(entries))
	return entries, nil
}

// Record appends project to the log unless it is already present.
func (h *History) Record(project string) error {
	if err := AppendHistory(h.path, project); err != nil {
		h.logger.Error("failed to record project", "path", h.path, "project", project, "error", err)
		return err
	}
	h.logger.Info("project recorded", "project", project)
	return nil
}

// readLines splits file content into lines, dropping blank ones and a
// trailing carriage return. Lines have no length limit.
func readLines(data []byte) []string {
	var lines []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// lastUnique collapses duplicates to their last occurrence and returns the
// final n entries.
func lastUnique(lines []string, n int) []string {
	last := make(map[string]int, len(lines))
	for i, l := range lines {
		last[l] = i
	}
	var unique []string
	for i, l := range lines {
		if last[l] == i {
			unique = append(unique, l)
		}
	}
	if n < 0 {
		n = 0
	}
	if len(unique) > n {
		unique = unique[len(unique)-n:]
	}
	return unique
}
