// pattern: Imperative Shell

package discovery

import (
	"os"
	"path/filepath"

	"projpick/internal/logging"
)

// Scanner discovers version-controlled projects beneath a root directory.
type Scanner struct {
	markers []string
	logger  *logging.ScopedLogger
}

// NewScanner creates a scanner recognising the given marker directory names.
// With no markers, DefaultMarker is used.
func NewScanner(logger *logging.ScopedLogger, markers ...string) *Scanner {
	if len(markers) == 0 {
		markers = []string{DefaultMarker}
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Scanner{markers: markers, logger: logger}
}

// Discover walks root and returns every directory containing a marker,
// in walk order.
//
// The depth of a directory is the number of path separators between root and
// it, so root is at depth 0 and its children at depth 1. Directories at
// maxDepth are inspected for a marker but never read further. A directory
// holding a marker is never descended into, so repositories nested inside a
// project are not reported. Unreadable directories are skipped; a missing
// root yields no projects. A relative root is resolved against the working
// directory, so project paths are always absolute.
func (s *Scanner) Discover(root string, maxDepth int) []Project {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	} else {
		root = filepath.Clean(root)
	}
	var projects []Project
	s.walk(root, 0, maxDepth, &projects)
	s.logger.Debug("discovery finished", "root", root, "max_depth", maxDepth, "count", len(projects))
	return projects
}

// Discover is a convenience wrapper around a default-marker Scanner.
func Discover(root string, maxDepth int) []Project {
	return NewScanner(nil).Discover(root, maxDepth)
}

func (s *Scanner) walk(dir string, depth, maxDepth int, projects *[]Project) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) || depth > 0 {
			s.logger.Debug("skipping unreadable directory", "path", dir, "error", err)
		}
		return
	}

	if marker, ok := s.findMarker(dir, entries); ok {
		*projects = append(*projects, NewProject(dir, marker))
		return
	}

	if depth >= maxDepth {
		return
	}

	for _, entry := range entries {
		// Symlinked directories report a non-directory type and are not followed.
		if !entry.IsDir() {
			continue
		}
		s.walk(filepath.Join(dir, entry.Name()), depth+1, maxDepth, projects)
	}
}

// findMarker reports the first configured marker present in dir as a
// directory. A symlink resolving to a directory counts.
func (s *Scanner) findMarker(dir string, entries []os.DirEntry) (string, bool) {
	for _, marker := range s.markers {
		for _, entry := range entries {
			if entry.Name() != marker {
				continue
			}
			if entry.IsDir() {
				return marker, true
			}
			if entry.Type()&os.ModeSymlink != 0 {
				if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
					return marker, true
				}
			}
		}
	}
	return "", false
}
