// Package publish implements the publish command: building and publishing
// a distribution to a VCS release via semantic-release.
package publish

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

// Command builds the publish command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Build and publish a distribution to a VCS release",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Usage: "Project identifier (defaults to the current branch)"},
			&cli.BoolFlag{Name: "noop", Usage: "Dry run without making changes"},
			&cli.StringFlag{Name: "tag", Usage: "The tag associated with the release to publish to"},
		},
		BashComplete: completion.ProjectIDs,
		Action: func(c *cli.Context) error {
			repo, err := gitrepo.Discover(c.Context, ".")
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			projectID := c.String("id")
			if projectID == "" {
				if projectID, err = repo.CurrentBranch(c.Context); err != nil {
					return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
				}
			}

			if err := run(c.Context, repo, semrel.Runner{}, projectID, c.Bool("noop"), c.String("tag")); err != nil {
				var terr *semrel.ToolError
				if errors.As(err, &terr) {
					return cli.Exit(fmt.Sprintf("Error: failed to run semantic-release publish: %s", terr.Stderr), 1)
				}
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			return nil
		},
	}
}

func run(ctx context.Context, repo *gitrepo.Repo, runner semrel.Runner, projectID string, noop bool, tag string) error {
	configPath := configstore.ResolveOrLiteral(projectID, repo.Root())
	if !configstore.Exists(configPath) {
		return fmt.Errorf("project %q does not exist in %s directory", projectID, configstore.DirName)
	}

	args := intent.PublishArgs(noop, tag)

	suffix := ""
	if noop {
		suffix = " (dry run)"
	}
	ui.Info("Release Mate Publish", fmt.Sprintf("Publishing release for project %s%s", projectID, suffix))

	out, err := runner.Run(ctx, semrel.SubPublish, configPath, args, repo.Root())
	if err != nil {
		return err
	}
	if out.Stdout != "" {
		ui.Info("Publish Logs", out.Stdout)
	}
	if out.Stderr != "" {
		ui.Error("Publish Logs", out.Stderr)
	}
	return nil
}
