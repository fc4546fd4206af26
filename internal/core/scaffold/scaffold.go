// Package scaffold writes the initial semantic-release configuration for a
// newly initialized project.
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/BurntSushi/toml"
)

// Project carries everything the configuration template needs.
type Project struct {
	ID        string
	Directory string // repo-relative
	Branch    string
	RemoteURL string
	Domain    string
}

// configTemplate is the per-project semantic-release configuration. The
// branches table is keyed by the project's branch name, hence a template
// rather than a static struct fed to the TOML encoder. The {version}
// placeholders belong to semantic-release, not to this template.
var configTemplate = template.Must(template.New("config").Parse(`[semantic_release]
tag_format = "{{.ID}}-v{version}"
commit_message = "chore(release): {{.ID}} {version}"
build_command = ""
version_variables = []

[semantic_release.changelog]
changelog_file = "{{.Directory}}/CHANGELOG.md"

[semantic_release.branches.{{.Branch}}]
match = "{{.Branch}}"
prerelease = false

[semantic_release.remote]
url = "{{.RemoteURL}}"
domain = "{{.Domain}}"
`))

// Write renders the configuration for p, checks that the result parses as
// TOML (a branch or id with characters the format rejects fails here, not
// on the first release), and writes it to path. An existing file is never
// overwritten.
func Write(path string, p Project) error {
	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, p); err != nil {
		return fmt.Errorf("rendering config for project %q: %w", p.ID, err)
	}

	var probe map[string]interface{}
	if err := toml.Unmarshal(buf.Bytes(), &probe); err != nil {
		return fmt.Errorf("generated config for project %q is not valid TOML: %w", p.ID, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = f.Write(buf.Bytes())
	return err
}
