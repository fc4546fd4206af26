// Package changelog implements the changelog command: changelog generation
// for a single project, delegated to semantic-release.
package changelog

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/release-mate/release-mate/internal/cli/completion"
	"github.com/release-mate/release-mate/internal/core/configstore"
	"github.com/release-mate/release-mate/internal/core/gitrepo"
	"github.com/release-mate/release-mate/internal/core/intent"
	"github.com/release-mate/release-mate/internal/core/semrel"
	"github.com/release-mate/release-mate/internal/ui"
)

// Command builds the changelog command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "changelog",
		Usage:     "Generate and optionally publish a changelog for your project",
		ArgsUsage: "[PROJECT_ID]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "post-to-release-tag", Usage: "Post the generated release notes to the remote VCS's release for this tag"},
			&cli.BoolFlag{Name: "noop", Usage: "Dry run without making any changes"},
		},
		BashComplete: completion.ProjectIDs,
		Action: func(c *cli.Context) error {
			repo, err := gitrepo.Discover(c.Context, ".")
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			projectID := c.Args().First()
			if projectID == "" {
				if projectID, err = repo.CurrentBranch(c.Context); err != nil {
					return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
				}
			}

			if err := run(c.Context, repo, semrel.Runner{}, projectID, c.Bool("noop"), c.String("post-to-release-tag")); err != nil {
				var terr *semrel.ToolError
				if errors.As(err, &terr) {
					return cli.Exit(fmt.Sprintf("Error: failed to run semantic-release changelog: %s", terr.Stderr), 1)
				}
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			return nil
		},
	}
}

func run(ctx context.Context, repo *gitrepo.Repo, runner semrel.Runner, projectID string, noop bool, postToReleaseTag string) error {
	configPath := configstore.ResolveOrLiteral(projectID, repo.Root())
	if !configstore.Exists(configPath) {
		return fmt.Errorf("project %q does not exist in %s directory", projectID, configstore.DirName)
	}

	args := intent.ChangelogArgs(noop, postToReleaseTag)

	suffix := ""
	if noop {
		suffix = " (dry run)"
	}
	ui.Info("Release Mate Changelog", fmt.Sprintf("Generating changelog for project %s%s", projectID, suffix))

	out, err := runner.Run(ctx, semrel.SubChangelog, configPath, args, repo.Root())
	if err != nil {
		return err
	}
	if out.Stdout != "" {
		ui.Info("Changelog Logs", out.Stdout)
	}
	if out.Stderr != "" {
		ui.Error("Changelog Logs", out.Stderr)
	}
	return nil
}
