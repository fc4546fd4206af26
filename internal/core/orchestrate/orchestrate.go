// Package orchestrate runs one release intent across every project
// discovered in the repository, each on its own branch.
package orchestrate

import (
	"context"
	"fmt"

	"github.com/release-mate/release-mate/internal/core/configstore"
	"github.com/release-mate/release-mate/internal/core/intent"
	"github.com/release-mate/release-mate/internal/core/introspect"
)

// RepoHandle is the slice of repository behavior the batch needs.
type RepoHandle interface {
	CurrentBranch(ctx context.Context) (string, error)
	Checkout(ctx context.Context, branch string) error
}

// ProjectFunc runs the single-project version workflow for one project id.
type ProjectFunc func(ctx context.Context, projectID string, in intent.Intent) error

// Batch applies one intent to every discovered project. Execution is
// strictly sequential: the checked-out branch is shared state, so one
// project's checkout-and-release cycle must finish before the next starts.
type Batch struct {
	Repo       RepoHandle
	RepoRoot   string
	RunProject ProjectFunc

	// Observe, when set, is called before each project's workflow runs.
	// The commands hang progress output off it.
	Observe func(projectID, branch string)
}

// Run walks every project configuration under the repository, switches to
// each project's bound branch and invokes the version workflow. Failures
// are collected per project: a project with no resolvable branch, a failed
// checkout or a failed workflow becomes one report entry and the batch
// moves on. The starting branch is restored after the loop regardless of
// what happened inside it.
//
// The returned slice is the per-project error report, nil when every
// project succeeded. A non-nil error means the batch itself could not run
// (conflicting bump flags, unreadable starting branch, failed restore) and
// trumps the report.
func (b *Batch) Run(ctx context.Context, in intent.Intent) ([]string, error) {
	if err := in.ValidateBump(); err != nil {
		return nil, err
	}

	startBranch, err := b.Repo.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("recording starting branch: %w", err)
	}

	var report []string
	for _, projectID := range configstore.ListAll(b.RepoRoot) {
		branch, ok := introspect.Branch(configstore.Resolve(projectID, b.RepoRoot))
		if !ok {
			report = append(report, fmt.Sprintf("could not determine branch for project %s", projectID))
			continue
		}
		if err := b.Repo.Checkout(ctx, branch); err != nil {
			report = append(report, fmt.Sprintf("error switching to branch %q for project %s: %v", branch, projectID, err))
			continue
		}
		if b.Observe != nil {
			b.Observe(projectID, branch)
		}
		if err := b.RunProject(ctx, projectID, in); err != nil {
			report = append(report, fmt.Sprintf("error processing project %s: %v", projectID, err))
		}
	}

	if err := b.Repo.Checkout(ctx, startBranch); err != nil {
		return report, fmt.Errorf("restoring branch %q: %w", startBranch, err)
	}
	return report, nil
}
