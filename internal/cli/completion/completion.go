// Package completion provides project-id shell completion and the
// install-completion command.
package completion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/release-mate/release-mate/internal/core/configstore"
	"github.com/release-mate/release-mate/internal/core/gitrepo"
	"github.com/release-mate/release-mate/internal/ui"
)

// ProjectIDs prints the project ids known to the surrounding repository,
// one per line, for shell completion. Outside a repository it prints
// nothing; completion must never error.
func ProjectIDs(c *cli.Context) {
	repo, err := gitrepo.Discover(c.Context, ".")
	if err != nil {
		return
	}
	for _, id := range configstore.ListAll(repo.Root()) {
		fmt.Fprintln(c.App.Writer, id)
	}
}

const marker = "# Release Mate completion"

// bash and zsh hook into the hidden --generate-bash-completion flag that
// urfave/cli exposes on every command.
const bashSnippet = `_release_mate_completion() {
  local cur
  cur="${COMP_WORDS[COMP_CWORD]}"
  COMPREPLY=( $(compgen -W "$(${COMP_WORDS[@]:0:$COMP_CWORD} --generate-bash-completion 2>/dev/null)" -- "${cur}") )
  return 0
}
complete -o bashdefault -o default -o nospace -F _release_mate_completion release-mate`

const zshSnippet = `_release_mate_completion() {
  local -a opts
  opts=("${(@f)$(${words[@]:0:#words[@]-1} --generate-bash-completion 2>/dev/null)}")
  _describe 'values' opts
}
compdef _release_mate_completion release-mate`

const fishSnippet = `complete -c release-mate -f -a '(release-mate (commandline -opc)[2..-1] --generate-bash-completion 2>/dev/null)'`

// InstallCommand builds the install-completion command. It detects the
// shell from $SHELL and appends the matching snippet to its rc file,
// once.
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install-completion",
		Usage: "Install shell completion for bash, zsh or fish shells",
		Action: func(c *cli.Context) error {
			return install(os.Getenv("SHELL"))
		},
	}
}

func install(shell string) error {
	if shell == "" {
		return cli.Exit("Error: could not detect shell type. Please make sure the SHELL environment variable is set.", 1)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: could not locate home directory: %v", err), 1)
	}

	var rcFile, snippet string
	switch filepath.Base(shell) {
	case "bash":
		rcFile = filepath.Join(home, ".bashrc")
		snippet = bashSnippet
	case "zsh":
		rcFile = filepath.Join(home, ".zshrc")
		snippet = zshSnippet
	case "fish":
		rcFile = filepath.Join(home, ".config", "fish", "config.fish")
		snippet = fishSnippet
	default:
		return cli.Exit(fmt.Sprintf("Error: unsupported shell: %s. Supported shells: bash, zsh, fish", filepath.Base(shell)), 1)
	}

	if err := os.MkdirAll(filepath.Dir(rcFile), 0755); err != nil {
		return cli.Exit(fmt.Sprintf("Error: creating %s: %v", filepath.Dir(rcFile), err), 1)
	}

	if existing, err := os.ReadFile(rcFile); err == nil && strings.Contains(string(existing), marker) {
		ui.Info("Info", "Shell completion is already installed.")
		return nil
	}

	f, err := os.OpenFile(rcFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: opening %s: %v", rcFile, err), 1)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "\n%s\n%s\n", marker, snippet); err != nil {
		return cli.Exit(fmt.Sprintf("Error: writing %s: %v", rcFile, err), 1)
	}

	ui.Success("Success", fmt.Sprintf(
		"Shell completion installed successfully.\n\nThe completion script has been added to: %s\n\nTo start using completions, either:\n1. Restart your shell\n2. Or run: source %s", rcFile, rcFile))
	return nil
}
