// Package readme extracts a one-line human summary from a project README.
//
// The search is non-recursive and best-effort: a missing, empty, or
// unreadable README degrades to "not found" and never fails a scan.
package readme

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// candidates is the fixed priority list of README file names.
// The first candidate yielding a non-blank line wins.
var candidates = []string{
	"README.md",
	"Readme.md",
	"readme.md",
	"README",
	"README.rst",
}

// headingRe strips leading markdown heading markup from the summary line.
var headingRe = regexp.MustCompile(`^#+\s*`)

// Extract returns the first non-blank line found in the README candidates
// directly under root, with any leading heading markup stripped. An
// unreadable or all-blank candidate falls through to the next name, so a
// placeholder README.md does not hide a populated README. The second
// return value is false when no candidate yields a line.
func Extract(root string) (string, bool) {
	for _, name := range candidates {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path) //nolint:gosec // Path is rooted at the scan root
		if err != nil {
			continue
		}

		for _, line := range strings.Split(string(data), "\n") {
			clean := strings.TrimSpace(line)
			if clean == "" {
				continue
			}
			return headingRe.ReplaceAllString(clean, ""), true
		}
	}
	return "", false
}
