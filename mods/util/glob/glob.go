// Package glob matches logger names against level patterns.
package glob

import "path"

// Match returns true when str matches pattern. The pattern syntax is that
// of path.Match: '*', '?' and character classes. Returns an error when
// the pattern is invalid.
func Match(pattern, str string) (matched bool, err error) {
	return path.Match(pattern, str)
}

// IsGlob returns true when the pattern is a valid glob with at least one
// wildcard.
func IsGlob(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '[', '*', '?':
			_, err := Match(pattern, "whatever")
			return err == nil
		}
	}
	return false
}
