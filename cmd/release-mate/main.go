package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/release-mate/release-mate/internal/cli/batch"
	"github.com/release-mate/release-mate/internal/cli/changelog"
	"github.com/release-mate/release-mate/internal/cli/completion"
	"github.com/release-mate/release-mate/internal/cli/initcmd"
	"github.com/release-mate/release-mate/internal/cli/publish"
	"github.com/release-mate/release-mate/internal/cli/self"
	"github.com/release-mate/release-mate/internal/cli/version"
)

// appVersion is overridden at build time via -ldflags.
var appVersion = "v0.1.0"

func main() {
	app := &cli.App{
		Name:                 "release-mate",
		Usage:                "Simplify release and changelog management for multi-project repositories",
		Version:              appVersion,
		EnableBashCompletion: true,
		Action: func(c *cli.Context) error {
			_ = cli.ShowAppHelp(c)
			return nil
		},
		Commands: []*cli.Command{
			initcmd.Command(),
			version.Command(),
			changelog.Command(),
			publish.Command(),
			batch.Command(),
			completion.InstallCommand(),
			self.Command(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
