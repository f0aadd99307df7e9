// pattern: Imperative Shell

package recency

import (
	"fmt"
	"os"
	"slices"
	"time"
)

// StatFunc returns file information for a path; os.Stat in production.
type StatFunc func(path string) (os.FileInfo, error)

// RankByModTime returns up to n paths ordered by modification time, newest
// first. Equal times keep their input order. A path that cannot be stat'ed
// fails the whole call.
func RankByModTime(paths []string, n int) ([]string, error) {
	return RankByModTimeWith(paths, n, os.Stat)
}

// RankByModTimeWith is RankByModTime with an injectable stat function.
func RankByModTimeWith(paths []string, n int, stat StatFunc) ([]string, error) {
	type ranked struct {
		path    string
		modTime time.Time
	}

	entries := make([]ranked, 0, len(paths))
	for _, p := range paths {
		info, err := stat(p)
		if err != nil {
			return nil, fmt.Errorf("modification time of %s: %w", p, err)
		}
		entries = append(entries, ranked{path: p, modTime: info.ModTime()})
	}

	slices.SortStableFunc(entries, func(a, b ranked) int {
		return b.modTime.Compare(a.modTime)
	})

	n = max(0, min(n, len(entries)))
	out := make([]string, n)
	for i := range out {
		out[i] = entries[i].path
	}
	return out, nil
}
