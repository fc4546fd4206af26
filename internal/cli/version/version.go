// Package version implements the version command: a single-project version
// bump delegated to semantic-release.
package version

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

// Command builds the version command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Perform a version bump using semantic-release",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Usage: "Project identifier (defaults to the current branch)"},
			&cli.BoolFlag{Name: "noop", Usage: "Dry run without making any changes"},
			&cli.BoolFlag{Name: "print", Usage: "Print the next version and exit"},
			&cli.BoolFlag{Name: "print-tag", Usage: "Print the next version tag and exit"},
			&cli.BoolFlag{Name: "print-last-released", Usage: "Print the last released version and exit"},
			&cli.BoolFlag{Name: "print-last-released-tag", Usage: "Print the last released version tag and exit"},
			&cli.BoolFlag{Name: "major", Usage: "Force the next version to be a major release"},
			&cli.BoolFlag{Name: "minor", Usage: "Force the next version to be a minor release"},
			&cli.BoolFlag{Name: "patch", Usage: "Force the next version to be a patch release"},
			&cli.BoolFlag{Name: "prerelease", Usage: "Force the next version to be a prerelease"},
			&cli.BoolFlag{Name: "no-commit", Usage: "Do not commit changes locally"},
			&cli.BoolFlag{Name: "no-tag", Usage: "Do not create a tag for the new version"},
			&cli.BoolFlag{Name: "no-changelog", Usage: "Do not update the changelog"},
			&cli.BoolFlag{Name: "no-push", Usage: "Do not push the new commit and tag to the remote"},
			&cli.BoolFlag{Name: "no-vcs-release", Usage: "Do not create a release in the remote VCS"},
			&cli.BoolFlag{Name: "as-prerelease", Usage: "Ensure the next version to be released is a prerelease version"},
			&cli.StringFlag{Name: "prerelease-token", Usage: "Force the next version to use this prerelease token, if it is a prerelease"},
			&cli.StringFlag{Name: "build-metadata", Usage: "Build metadata to append to the new version"},
			&cli.BoolFlag{Name: "skip-build", Usage: "Skip building the current project"},
		},
		BashComplete: completion.ProjectIDs,
		Action: func(c *cli.Context) error {
			in := intent.New()
			in.Noop = c.Bool("noop")
			in.PrintVersion = c.Bool("print")
			in.PrintTag = c.Bool("print-tag")
			in.PrintLastReleased = c.Bool("print-last-released")
			in.PrintLastReleasedTag = c.Bool("print-last-released-tag")
			in.Major = c.Bool("major")
			in.Minor = c.Bool("minor")
			in.Patch = c.Bool("patch")
			in.Prerelease = c.Bool("prerelease")
			in.Commit = !c.Bool("no-commit")
			in.Tag = !c.Bool("no-tag")
			in.Changelog = !c.Bool("no-changelog")
			in.Push = !c.Bool("no-push")
			in.VCSRelease = !c.Bool("no-vcs-release")
			in.AsPrerelease = c.Bool("as-prerelease")
			in.PrereleaseToken = c.String("prerelease-token")
			in.BuildMetadata = c.String("build-metadata")
			in.SkipBuild = c.Bool("skip-build")

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

			if err := Run(c.Context, repo, semrel.Runner{}, projectID, in); err != nil {
				var terr *semrel.ToolError
				if errors.As(err, &terr) {
					return cli.Exit(fmt.Sprintf("Error: failed to run semantic-release: %s", terr.Stderr), 1)
				}
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			return nil
		},
	}
}

// Run executes the single-project version workflow: resolve the project's
// configuration, validate the intent, translate it and hand it to
// semantic-release on the repository root. Returned errors are not yet
// operator-formatted, so the batch can aggregate them per project.
func Run(ctx context.Context, repo *gitrepo.Repo, runner semrel.Runner, projectID string, in intent.Intent) error {
	configPath := configstore.ResolveOrLiteral(projectID, repo.Root())
	if !configstore.Exists(configPath) {
		return fmt.Errorf("project %q does not exist in %s directory", projectID, configstore.DirName)
	}

	if err := in.ValidateBump(); err != nil {
		return err
	}
	if err := in.ValidatePrint(); err != nil {
		return err
	}

	args := in.VersionArgs()
	if p := in.PrintArg(); p != "" {
		args = append(args, p)
	}

	if !in.PrintRequested() {
		ui.Info("Release Mate Version", fmt.Sprintf("Running semantic-release for project %s%s", projectID, dryRunSuffix(in.Noop)))
	}

	out, err := runner.Run(ctx, semrel.SubVersion, configPath, args, repo.Root())
	if err != nil {
		return err
	}
	reportOutcome(out, in.PrintRequested())
	return nil
}

// reportOutcome surfaces the tool's output. Print-mode stdout goes out
// verbatim with no decoration; everything else is wrapped as panels.
func reportOutcome(out semrel.Outcome, plain bool) {
	if out.Stdout != "" {
		if plain {
			fmt.Fprint(ui.Out, out.Stdout)
		} else {
			ui.Info("Versioning Logs", out.Stdout)
		}
	}
	if out.Stderr != "" {
		if plain {
			fmt.Fprint(ui.Out, out.Stderr)
		} else {
			ui.Error("Versioning Logs", out.Stderr)
		}
	}
}

func dryRunSuffix(noop bool) string {
	if noop {
		return " (dry run)"
	}
	return ""
}
