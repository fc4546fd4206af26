package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionArgs_FullSuppressionOrder(t *testing.T) {
	in := New()
	in.Noop = true
	in.Major = true
	in.Commit = false
	in.Tag = false
	in.Changelog = false
	in.Push = false

	// The exact token order is the contract with semantic-release.
	assert.Equal(t,
		[]string{"--noop", "--major", "--no-commit", "--no-tag", "--no-changelog", "--no-push"},
		in.VersionArgs())
}

func TestVersionArgs_EmitsExactlyOneBumpToken(t *testing.T) {
	cases := []struct {
		name string
		set  func(*Intent)
		want string
	}{
		{"major", func(i *Intent) { i.Major = true }, "--major"},
		{"minor", func(i *Intent) { i.Minor = true }, "--minor"},
		{"patch", func(i *Intent) { i.Patch = true }, "--patch"},
		{"prerelease", func(i *Intent) { i.Prerelease = true }, "--prerelease"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := New()
			tc.set(&in)
			require.NoError(t, in.ValidateBump())
			assert.Equal(t, []string{tc.want}, in.VersionArgs())
		})
	}
}

func TestVersionArgs_DefaultsProduceNothing(t *testing.T) {
	assert.Empty(t, New().VersionArgs())
}

func TestVersionArgs_TrailingFields(t *testing.T) {
	in := New()
	in.AsPrerelease = true
	in.PrereleaseToken = "rc"
	in.BuildMetadata = "build.5"
	in.SkipBuild = true

	assert.Equal(t,
		[]string{"--as-prerelease", "--prerelease-token=rc", "--build-metadata=build.5", "--skip-build"},
		in.VersionArgs())
}

func TestVersionArgs_Idempotent(t *testing.T) {
	in := New()
	in.Noop = true
	in.Patch = true
	in.Push = false

	assert.Equal(t, in.VersionArgs(), in.VersionArgs())
}

func TestValidateBump(t *testing.T) {
	in := New()
	in.Major = true
	in.Patch = true
	assert.ErrorIs(t, in.ValidateBump(), ErrConflictingBumpFlags)

	in = New()
	in.Minor = true
	assert.NoError(t, in.ValidateBump())
	assert.NoError(t, New().ValidateBump())
}

func TestValidatePrint(t *testing.T) {
	in := New()
	in.PrintVersion = true
	in.PrintLastReleased = true
	assert.ErrorIs(t, in.ValidatePrint(), ErrConflictingPrintFlags)

	in = New()
	in.PrintTag = true
	assert.NoError(t, in.ValidatePrint())
}

func TestPrintArg_PriorityOrder(t *testing.T) {
	in := New()
	assert.Equal(t, "", in.PrintArg())
	assert.False(t, in.PrintRequested())

	in.PrintLastReleasedTag = true
	assert.Equal(t, "--print-last-released-tag", in.PrintArg())
	in.PrintLastReleased = true
	assert.Equal(t, "--print-last-released", in.PrintArg())
	in.PrintTag = true
	assert.Equal(t, "--print-tag", in.PrintArg())
	in.PrintVersion = true
	assert.Equal(t, "--print", in.PrintArg())
	assert.True(t, in.PrintRequested())
}

func TestChangelogArgs(t *testing.T) {
	assert.Empty(t, ChangelogArgs(false, ""))
	assert.Equal(t, []string{"--noop"}, ChangelogArgs(true, ""))
	assert.Equal(t,
		[]string{"--noop", "--post-to-release-tag=web-v1.2.3"},
		ChangelogArgs(true, "web-v1.2.3"))
}

func TestPublishArgs(t *testing.T) {
	assert.Empty(t, PublishArgs(false, ""))
	assert.Equal(t, []string{"--tag=api-v2.0.0"}, PublishArgs(false, "api-v2.0.0"))
	assert.Equal(t, []string{"--noop", "--tag=api-v2.0.0"}, PublishArgs(true, "api-v2.0.0"))
}
