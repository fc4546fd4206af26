// Package batch implements the batch-version command: one version bump
// applied to every discovered project, each on its own branch.
package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/release-mate/release-mate/internal/cli/version"
	"github.com/release-mate/release-mate/internal/core/gitrepo"
	"github.com/release-mate/release-mate/internal/core/intent"
	"github.com/release-mate/release-mate/internal/core/orchestrate"
	"github.com/release-mate/release-mate/internal/core/semrel"
	"github.com/release-mate/release-mate/internal/ui"
)

// Command builds the batch-version command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "batch-version",
		Usage: "Perform version bumps for all projects in the repository",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "noop", Usage: "Dry run without making any changes"},
			&cli.BoolFlag{Name: "major", Usage: "Force the next version to be a major release"},
			&cli.BoolFlag{Name: "minor", Usage: "Force the next version to be a minor release"},
			&cli.BoolFlag{Name: "patch", Usage: "Force the next version to be a patch release"},
			&cli.BoolFlag{Name: "prerelease", Usage: "Force the next version to be a prerelease"},
			&cli.BoolFlag{Name: "no-commit", Usage: "Do not commit changes locally"},
			&cli.BoolFlag{Name: "no-tag", Usage: "Do not create a tag for the new version"},
			&cli.BoolFlag{Name: "no-changelog", Usage: "Do not update the changelog"},
			&cli.BoolFlag{Name: "no-push", Usage: "Do not push the new commit and tag to the remote"},
		},
		Action: func(c *cli.Context) error {
			in := intent.New()
			in.Noop = c.Bool("noop")
			in.Major = c.Bool("major")
			in.Minor = c.Bool("minor")
			in.Patch = c.Bool("patch")
			in.Prerelease = c.Bool("prerelease")
			in.Commit = !c.Bool("no-commit")
			in.Tag = !c.Bool("no-tag")
			in.Changelog = !c.Bool("no-changelog")
			in.Push = !c.Bool("no-push")

			repo, err := gitrepo.Discover(c.Context, ".")
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			runner := semrel.Runner{}
			orch := &orchestrate.Batch{
				Repo:     repo,
				RepoRoot: repo.Root(),
				RunProject: func(ctx context.Context, projectID string, in intent.Intent) error {
					return version.Run(ctx, repo, runner, projectID, in)
				},
				Observe: func(projectID, branch string) {
					ui.Info("Batch Version", fmt.Sprintf("Processing project %s on branch %s", projectID, branch))
				},
			}

			// Partial per-project failures are warnings, not a non-zero exit.
			report, err := orch.Run(c.Context, in)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			if len(report) > 0 {
				ui.Warn("Batch Version Warnings", strings.Join(report, "\n"))
			}
			return nil
		},
	}
}
