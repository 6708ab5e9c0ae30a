package github

import (
	"context"
	"time"
)

// PullRequest holds the subset of pull request fields pinup reports on.
type PullRequest struct {
	Number     int
	Title      string
	State      string // "open", "closed"
	HTMLURL    string
	HeadBranch string
	BaseBranch string
	UpdatedAt  time.Time
}

// NewPullRequest describes the pull request to open on the publish path.
type NewPullRequest struct {
	Title string
	Head  string // working branch
	Base  string // base branch
	Body  string
}

type GitHub interface {

	// EnsurePullRequest opens a pull request for the given head/base pair.
	// If one is already open for that pair, it is returned with created=false
	// instead of an error: re-running after a pull request is open must not
	// fail.
	EnsurePullRequest(ctx context.Context, pr NewPullRequest) (PullRequest, bool, error)

	// GetPullRequestByBranch returns the open pull request whose head is the
	// given branch, or nil if there is none.
	GetPullRequestByBranch(ctx context.Context, headBranch string) (*PullRequest, error)
}
