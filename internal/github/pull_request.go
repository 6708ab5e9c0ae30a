package github

import gh "github.com/google/go-github/v75/github"

// fromAPI converts the API representation into the local PullRequest type.
func fromAPI(pr *gh.PullRequest) PullRequest {
	if pr == nil {
		return PullRequest{}
	}
	return PullRequest{
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		State:      pr.GetState(),
		HTMLURL:    pr.GetHTMLURL(),
		HeadBranch: pr.GetHead().GetRef(),
		BaseBranch: pr.GetBase().GetRef(),
		UpdatedAt:  pr.GetUpdatedAt().Time,
	}
}
