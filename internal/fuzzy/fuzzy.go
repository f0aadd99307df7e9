// pattern: Functional Core

// Package fuzzy filters project paths by case-insensitive subsequence match.
// Results are never scored: a match keeps its position from the input.
package fuzzy

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsSubsequenceMatch reports whether every rune of query appears in
// candidate in order, ignoring case. The empty query matches everything.
func IsSubsequenceMatch(query, candidate string) bool {
	for _, q := range query {
		q = unicode.ToLower(q)
		found := false
		for len(candidate) > 0 {
			c, size := utf8.DecodeRuneInString(candidate)
			candidate = candidate[size:]
			if unicode.ToLower(c) == q {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Search returns the candidates matching query, in input order. A query
// containing a path separator is matched against full paths; otherwise only
// each candidate's basename is considered.
func Search(candidates []string, query string) []string {
	fullPath := strings.ContainsRune(query, filepath.Separator) || strings.ContainsRune(query, '/')

	var matches []string
	for _, c := range candidates {
		target := c
		if !fullPath {
			target = filepath.Base(c)
		}
		if IsSubsequenceMatch(query, target) {
			matches = append(matches, c)
		}
	}
	return matches
}
