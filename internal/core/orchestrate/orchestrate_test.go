package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/release-mate/release-mate/internal/core/configstore"
	"github.com/release-mate/release-mate/internal/core/intent"
)

type fakeRepo struct {
	current   string
	failOn    map[string]error
	checkouts []string
}

func (f *fakeRepo) CurrentBranch(context.Context) (string, error) {
	return f.current, nil
}

func (f *fakeRepo) Checkout(_ context.Context, branch string) error {
	f.checkouts = append(f.checkouts, branch)
	if err, ok := f.failOn[branch]; ok {
		return err
	}
	f.current = branch
	return nil
}

// writeProject drops a config for id under root, bound to branch. An empty
// branch produces a config with no branch table.
func writeProject(t *testing.T, root, id, branch string) {
	t.Helper()
	content := "[semantic_release]\ntag_format = \"" + id + "-v{version}\"\n"
	if branch != "" {
		content += fmt.Sprintf("\n[semantic_release.branches.%s]\nmatch = %q\n", branch, branch)
	}
	require.NoError(t, os.MkdirAll(configstore.Dir(root), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configstore.Dir(root), id+".toml"), []byte(content), 0644))
}

func TestRun_UnknownBranchIsSkippedOthersProceed(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "alpha", "") // no branch table
	writeProject(t, root, "beta", "feature")

	repo := &fakeRepo{current: "main"}
	var invoked []string
	b := &Batch{
		Repo:     repo,
		RepoRoot: root,
		RunProject: func(_ context.Context, projectID string, _ intent.Intent) error {
			invoked = append(invoked, projectID)
			return nil
		},
	}

	report, err := b.Run(context.Background(), intent.New())
	require.NoError(t, err)

	require.Len(t, report, 1)
	assert.Contains(t, report[0], "alpha")
	assert.Equal(t, []string{"beta"}, invoked)
	assert.Equal(t, "main", repo.current, "starting branch restored after the loop")
}

func TestRun_CheckoutFailureIsIsolated(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "alpha", "broken")
	writeProject(t, root, "beta", "feature")

	repo := &fakeRepo{
		current: "main",
		failOn:  map[string]error{"broken": errors.New("pathspec 'broken' did not match")},
	}
	var invoked []string
	b := &Batch{
		Repo:     repo,
		RepoRoot: root,
		RunProject: func(_ context.Context, projectID string, _ intent.Intent) error {
			invoked = append(invoked, projectID)
			return nil
		},
	}

	report, err := b.Run(context.Background(), intent.New())
	require.NoError(t, err)

	require.Len(t, report, 1)
	assert.Contains(t, report[0], "alpha")
	assert.Contains(t, report[0], "broken")
	assert.Equal(t, []string{"beta"}, invoked)
	assert.Equal(t, "main", repo.current)
}

func TestRun_WorkflowFailureDoesNotStopBatch(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "alpha", "one")
	writeProject(t, root, "beta", "two")

	repo := &fakeRepo{current: "main"}
	b := &Batch{
		Repo:     repo,
		RepoRoot: root,
		RunProject: func(_ context.Context, projectID string, _ intent.Intent) error {
			if projectID == "alpha" {
				return errors.New("semantic-release version failed")
			}
			return nil
		},
	}

	report, err := b.Run(context.Background(), intent.New())
	require.NoError(t, err)

	require.Len(t, report, 1)
	assert.Contains(t, report[0], "alpha")
	assert.Equal(t, "main", repo.current)
}

func TestRun_ConflictingBumpFailsBeforeAnyCheckout(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "alpha", "one")

	repo := &fakeRepo{current: "main"}
	b := &Batch{
		Repo:     repo,
		RepoRoot: root,
		RunProject: func(context.Context, string, intent.Intent) error {
			t.Fatal("workflow must not run for a conflicting intent")
			return nil
		},
	}

	in := intent.New()
	in.Major = true
	in.Minor = true
	report, err := b.Run(context.Background(), in)

	assert.ErrorIs(t, err, intent.ErrConflictingBumpFlags)
	assert.Empty(t, report)
	assert.Empty(t, repo.checkouts)
}

func TestRun_SharedIntentPassedUnchanged(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "alpha", "one")
	writeProject(t, root, "beta", "two")

	want := intent.New()
	want.Noop = true
	want.Patch = true

	repo := &fakeRepo{current: "main"}
	b := &Batch{
		Repo:     repo,
		RepoRoot: root,
		RunProject: func(_ context.Context, _ string, got intent.Intent) error {
			assert.Equal(t, want, got)
			return nil
		},
	}

	report, err := b.Run(context.Background(), want)
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestRun_EmptyRepositoryIsANoop(t *testing.T) {
	repo := &fakeRepo{current: "main"}
	b := &Batch{
		Repo:     repo,
		RepoRoot: t.TempDir(),
		RunProject: func(context.Context, string, intent.Intent) error {
			t.Fatal("no projects to run")
			return nil
		},
	}

	report, err := b.Run(context.Background(), intent.New())
	require.NoError(t, err)
	assert.Empty(t, report)
	// Only the final restore touches the repository.
	assert.Equal(t, []string{"main"}, repo.checkouts)
}
