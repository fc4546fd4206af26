// Package initcmd implements the init command: registering a new project
// with the repository's .release-mate directory.
package initcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/urfave/cli/v2"

	"github.com/release-mate/release-mate/internal/core/configstore"
	"github.com/release-mate/release-mate/internal/core/gitrepo"
	"github.com/release-mate/release-mate/internal/core/scaffold"
	"github.com/release-mate/release-mate/internal/ui"
)

// Command builds the init command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new release-mate project",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Usage: "Project identifier (defaults to the current branch)"},
			&cli.StringFlag{Name: "current-version", Aliases: []string{"v0"}, Value: "0.0.0", Usage: "Initial version"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Value: ".", Usage: "Project directory"},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context

			currentVersion := c.String("current-version")
			if _, err := semver.NewVersion(strings.TrimPrefix(currentVersion, "v")); err != nil {
				return cli.Exit(fmt.Sprintf("Error: invalid --current-version %q: %v", currentVersion, err), 1)
			}

			repo, err := gitrepo.Discover(ctx, ".")
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			branch, err := repo.CurrentBranch(ctx)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			projectID := c.String("id")
			if projectID == "" {
				projectID = branch
			}

			projectDir, err := normalizeProjectDir(repo.Root(), c.String("dir"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			// Duplicate guard: an existing config is a hard error, never an
			// overwrite.
			configPath := configstore.Resolve(projectID, repo.Root())
			if configstore.Exists(configPath) {
				return cli.Exit(fmt.Sprintf("Error: project %q already exists in %s directory", projectID, configstore.DirName), 1)
			}

			remoteURL := repo.RemoteURL(ctx)
			if err := scaffold.Write(configPath, scaffold.Project{
				ID:        projectID,
				Directory: projectDir,
				Branch:    branch,
				RemoteURL: remoteURL,
				Domain:    gitrepo.Domain(remoteURL),
			}); err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			ui.Success("Release Mate Init", fmt.Sprintf(
				"Successfully initialized release-mate for project %s\nConfiguration file: %s\nMake sure to update build_command and version_variables in %s to suit your project needs.",
				projectID, configPath, configPath))

			tag := fmt.Sprintf("%s-%s", projectID, currentVersion)
			if err := repo.CreateTag(ctx, tag); err != nil {
				ui.Warn("Warning", fmt.Sprintf("Tag %s already exists. Skipping tag creation.", tag))
			}
			return nil
		},
	}
}

// normalizeProjectDir turns dir into a repo-relative path and verifies it
// exists. "." means the directory the command was run from.
func normalizeProjectDir(repoRoot, dir string) (string, error) {
	if dir == "." {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(repoRoot, wd)
		if err != nil {
			return "", err
		}
		dir = rel
	}
	if _, err := os.Stat(filepath.Join(repoRoot, dir)); err != nil {
		return "", fmt.Errorf("project directory %q does not exist", dir)
	}
	return filepath.ToSlash(dir), nil
}
