// Package configstore locates and enumerates per-project release
// configuration files under the repository's .release-mate directory.
// One file per project, named after the project id. The files themselves
// belong to semantic-release's schema; this package never parses them.
package configstore

import (
	"os"
	"path/filepath"
	"strings"
)

// DirName is the repository-relative directory holding one configuration
// file per project.
const DirName = ".release-mate"

const configExt = ".toml"

// Dir returns the project configuration directory for a repository root.
func Dir(repoRoot string) string {
	return filepath.Join(repoRoot, DirName)
}

// Resolve returns the canonical configuration path for a project id,
// independent of whether the file exists.
func Resolve(projectID, repoRoot string) string {
	return filepath.Join(Dir(repoRoot), projectID+configExt)
}

// ResolveOrLiteral returns token verbatim when it names an existing file,
// letting a caller bypass the naming convention with an explicit
// configuration path. Anything else is resolved as a project id.
func ResolveOrLiteral(token, repoRoot string) string {
	if info, err := os.Stat(token); err == nil && info.Mode().IsRegular() {
		return token
	}
	return Resolve(token, repoRoot)
}

// Exists reports whether a configuration file is present at path. A missing
// file is the canonical "unknown project" signal across every command.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ListAll enumerates the project ids known to the repository, one per .toml
// file in the configuration directory, extension stripped. A missing
// directory yields an empty list, never an error.
func ListAll(repoRoot string) []string {
	entries, err := os.ReadDir(Dir(repoRoot))
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), configExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), configExt))
	}
	return ids
}
