package cmd

import (
	"testing"
	"time"

	"github.com/pinup-dev/pinup/internal/config"
	"github.com/pinup-dev/pinup/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStatus_MissingToken(t *testing.T) {
	env := testEnv()
	env.Token = ""
	cmd, _ := newTestCommand()

	err := runStatusWithDeps(cmd, &statusDeps{gh: &fakeGitHub{}, env: env}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing GITHUB_TOKEN")
}

func TestRunStatus_MalformedRepository(t *testing.T) {
	env := testEnv()
	env.Repository = "just-a-name"
	cmd, _ := newTestCommand()

	err := runStatusWithDeps(cmd, &statusDeps{gh: &fakeGitHub{}, env: env}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid GITHUB_REPOSITORY")
}

func TestRunStatus_NoPullRequest(t *testing.T) {
	cmd, out := newTestCommand()

	err := runStatusWithDeps(cmd, &statusDeps{gh: &fakeGitHub{byBranch: nil}, env: testEnv()}, nil)

	require.NoError(t, err)
	assert.Equal(t, "No update pull request found for branch integrates/iree.\n", out.String())
}

func TestRunStatus_PullRequestFound(t *testing.T) {
	pr := &github.PullRequest{
		Number:     12,
		Title:      "Update dependencies",
		State:      "open",
		HTMLURL:    "https://github.com/octo-org/widgets/pull/12",
		HeadBranch: "integrates/iree",
		BaseBranch: "main",
		UpdatedAt:  time.Now().Add(-2 * time.Hour),
	}
	cmd, out := newTestCommand()

	err := runStatusWithDeps(cmd, &statusDeps{gh: &fakeGitHub{byBranch: pr}, env: testEnv()}, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "12")
	assert.Contains(t, out.String(), "Update dependencies")
	assert.Contains(t, out.String(), "open")
	assert.Contains(t, out.String(), "https://github.com/octo-org/widgets/pull/12")
}

func TestRunStatus_UsesConfiguredWorkingBranch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Branch.Working = "updates/acme"
	cmd, out := newTestCommand()

	err := runStatusWithDeps(cmd, &statusDeps{gh: &fakeGitHub{}, env: testEnv()}, &cfg)

	require.NoError(t, err)
	assert.Equal(t, "No update pull request found for branch updates/acme.\n", out.String())
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "shorter than max", input: "short", maxLen: 10, expected: "short"},
		{name: "exactly max", input: "exact", maxLen: 5, expected: "exact"},
		{name: "longer than max", input: "a much longer title", maxLen: 8, expected: "a much …"},
		{name: "unicode aware", input: "héllo wörld", maxLen: 6, expected: "héllo…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateString(tt.input, tt.maxLen))
		})
	}
}
