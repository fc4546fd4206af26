// Package introspect extracts the release branch bound to a project
// configuration file.
package introspect

import (
	"os"
	"regexp"
)

// branchTable matches a TOML table header whose dotted path ends in
// semantic_release.branches.<name>. This is a textual probe, not a parse:
// the file's schema belongs to semantic-release, and a batch run must
// survive half-written or foreign-format files that a strict parser would
// reject. Only the first match is authoritative; the surrounding structure
// is not validated.
var branchTable = regexp.MustCompile(`\[.*semantic_release\.branches\.(\w+)\]`)

// Branch returns the branch name bound in the configuration file at path.
// The boolean is false when the file cannot be read or holds no branch
// table; no failure mode escapes to the caller.
func Branch(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	m := branchTable.FindSubmatch(content)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}
