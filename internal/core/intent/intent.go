// Package intent describes a requested release operation and translates it
// into semantic-release's argument vocabulary.
package intent

import "errors"

var (
	// ErrConflictingBumpFlags is returned when more than one version type
	// flag is selected.
	ErrConflictingBumpFlags = errors.New("only one version type flag can be specified at a time")
	// ErrConflictingPrintFlags is returned when more than one print flag is
	// selected.
	ErrConflictingPrintFlags = errors.New("only one print flag can be specified at a time")
)

// Intent is a structured description of one release operation, built once
// by a command and passed around by value. The suppression toggles default
// to on, so construct with New rather than a literal.
type Intent struct {
	// Noop requests a dry run; semantic-release performs no side effects.
	Noop bool

	// Version bump selection. At most one may be set (ValidateBump).
	Major, Minor, Patch, Prerelease bool

	// Print modes: print a value and exit instead of releasing. At most one
	// may be set (ValidatePrint).
	PrintVersion, PrintTag, PrintLastReleased, PrintLastReleasedTag bool

	// Default-true toggles. A false value suppresses the corresponding
	// semantic-release action.
	Commit, Tag, Changelog, Push, VCSRelease bool

	// AsPrerelease forces the next version to be classified as a prerelease.
	AsPrerelease bool
	// PrereleaseToken overrides the prerelease token, when a prerelease is
	// produced.
	PrereleaseToken string
	// BuildMetadata is an opaque suffix appended to the new version.
	BuildMetadata string
	// SkipBuild skips the project's build step.
	SkipBuild bool
}

// New returns an Intent with every suppression toggle at its default.
func New() Intent {
	return Intent{Commit: true, Tag: true, Changelog: true, Push: true, VCSRelease: true}
}

// ValidateBump rejects an intent selecting more than one version bump.
func (i Intent) ValidateBump() error {
	n := 0
	for _, set := range []bool{i.Major, i.Minor, i.Patch, i.Prerelease} {
		if set {
			n++
		}
	}
	if n > 1 {
		return ErrConflictingBumpFlags
	}
	return nil
}

// ValidatePrint rejects an intent selecting more than one print mode.
func (i Intent) ValidatePrint() error {
	n := 0
	for _, set := range []bool{i.PrintVersion, i.PrintTag, i.PrintLastReleased, i.PrintLastReleasedTag} {
		if set {
			n++
		}
	}
	if n > 1 {
		return ErrConflictingPrintFlags
	}
	return nil
}

// VersionArgs translates the intent into the version subcommand's argument
// list. The emission order is a contract: semantic-release sees flags in
// exactly this sequence, and the golden tests pin it. Validation is the
// caller's job; VersionArgs never re-checks.
func (i Intent) VersionArgs() []string {
	var args []string
	if i.Noop {
		args = append(args, "--noop")
	}
	switch {
	case i.Major:
		args = append(args, "--major")
	case i.Minor:
		args = append(args, "--minor")
	case i.Patch:
		args = append(args, "--patch")
	case i.Prerelease:
		args = append(args, "--prerelease")
	}
	if !i.Commit {
		args = append(args, "--no-commit")
	}
	if !i.Tag {
		args = append(args, "--no-tag")
	}
	if !i.Changelog {
		args = append(args, "--no-changelog")
	}
	if !i.Push {
		args = append(args, "--no-push")
	}
	if !i.VCSRelease {
		args = append(args, "--no-vcs-release")
	}
	if i.AsPrerelease {
		args = append(args, "--as-prerelease")
	}
	if i.PrereleaseToken != "" {
		args = append(args, "--prerelease-token="+i.PrereleaseToken)
	}
	if i.BuildMetadata != "" {
		args = append(args, "--build-metadata="+i.BuildMetadata)
	}
	if i.SkipBuild {
		args = append(args, "--skip-build")
	}
	return args
}

// PrintArg returns the selected print-mode flag, or "" when none is set.
// When several are set the first in priority order wins; callers that care
// run ValidatePrint first.
func (i Intent) PrintArg() string {
	switch {
	case i.PrintVersion:
		return "--print"
	case i.PrintTag:
		return "--print-tag"
	case i.PrintLastReleased:
		return "--print-last-released"
	case i.PrintLastReleasedTag:
		return "--print-last-released-tag"
	}
	return ""
}

// PrintRequested reports whether any print mode is selected. Print-mode
// stdout is machine-consumable and bypasses panel decoration.
func (i Intent) PrintRequested() bool {
	return i.PrintArg() != ""
}

// ChangelogArgs builds the changelog subcommand's argument list.
func ChangelogArgs(noop bool, postToReleaseTag string) []string {
	var args []string
	if noop {
		args = append(args, "--noop")
	}
	if postToReleaseTag != "" {
		args = append(args, "--post-to-release-tag="+postToReleaseTag)
	}
	return args
}

// PublishArgs builds the publish subcommand's argument list.
func PublishArgs(noop bool, tag string) []string {
	var args []string
	if noop {
		args = append(args, "--noop")
	}
	if tag != "" {
		args = append(args, "--tag="+tag)
	}
	return args
}
