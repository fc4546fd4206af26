// Package gitrepo is a thin handle over the git binary for the repository
// hosting the release-mate projects.
package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const commandTimeout = 30 * time.Second

// Repo is a handle to a local git repository. All operations run the git
// binary with the repository root as working directory.
type Repo struct {
	root string
}

// Discover locates the repository containing dir and returns a handle
// rooted at its top level.
func Discover(ctx context.Context, dir string) (*Repo, error) {
	out, err := runIn(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return &Repo{root: strings.TrimSpace(out)}, nil
}

// Root returns the repository's top-level directory as an absolute path.
func (r *Repo) Root() string { return r.root }

// CurrentBranch returns the checked-out branch name.
// Uses symbolic-ref, which works on unborn branches (no commits yet).
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("getting current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Checkout switches the repository to the given branch.
func (r *Repo) Checkout(ctx context.Context, branch string) error {
	if _, err := r.run(ctx, "checkout", branch); err != nil {
		return fmt.Errorf("checking out %q: %w", branch, err)
	}
	return nil
}

// CreateTag creates a lightweight tag at HEAD. Creating a tag that already
// exists is an error; callers that tolerate it degrade to a warning.
func (r *Repo) CreateTag(ctx context.Context, name string) error {
	if _, err := r.run(ctx, "tag", name); err != nil {
		return fmt.Errorf("creating tag %q: %w", name, err)
	}
	return nil
}

// RemoteURL returns the fetch URL of the origin remote, or "" when the
// repository has none.
func (r *Repo) RemoteURL(ctx context.Context) string {
	out, err := r.run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// Domain derives the web base URL (protocol://host) from a git remote URL.
// Understands the ssh form (git@host:owner/repo.git) and http(s) forms;
// anything else yields "".
func Domain(remoteURL string) string {
	switch {
	case strings.HasPrefix(remoteURL, "git@"):
		host, _, _ := strings.Cut(strings.TrimPrefix(remoteURL, "git@"), ":")
		if host == "" {
			return ""
		}
		return "https://" + host
	case strings.HasPrefix(remoteURL, "https://"), strings.HasPrefix(remoteURL, "http://"):
		parts := strings.SplitN(remoteURL, "/", 4)
		if len(parts) < 3 || parts[2] == "" {
			return ""
		}
		return parts[0] + "//" + parts[2]
	}
	return ""
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return runIn(ctx, r.root, args...)
}

func runIn(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
