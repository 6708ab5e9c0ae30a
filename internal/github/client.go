package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	clog "github.com/charmbracelet/log"
	gh "github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"
)

// Client provides GitHub operations through the REST API.
type Client struct {
	inner *gh.Client
	log   *clog.Logger
	owner string
	repo  string
}

var _ GitHub = &Client{}

// NewClient creates a REST client for the given repository, authenticated
// with the access token. baseURL overrides the API endpoint (GHES); when it
// is empty the public api.github.com endpoint is used.
func NewClient(ctx context.Context, owner, repo, token, baseURL string) (*Client, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	inner := gh.NewClient(httpClient)

	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
		}
		inner.BaseURL = u
	}

	return &Client{
		inner: inner,
		log:   clog.Default().WithPrefix("github"),
		owner: owner,
		repo:  repo,
	}, nil
}

func (c *Client) EnsurePullRequest(ctx context.Context, pr NewPullRequest) (PullRequest, bool, error) {
	c.log.Debug("Creating pull request", "title", pr.Title, "head", pr.Head, "base", pr.Base)

	created, _, err := c.inner.PullRequests.Create(ctx, c.owner, c.repo, &gh.NewPullRequest{
		Title: gh.Ptr(pr.Title),
		Head:  gh.Ptr(pr.Head),
		Base:  gh.Ptr(pr.Base),
		Body:  gh.Ptr(pr.Body),
	})
	if err == nil {
		c.log.Info("Opened pull request", "number", created.GetNumber(), "url", created.GetHTMLURL())
		return fromAPI(created), true, nil
	}

	if !isAlreadyExists(err) {
		return PullRequest{}, false, fmt.Errorf("failed to create pull request: %w", err)
	}

	// A pull request is already open for this head/base pair. Resolve it so
	// the caller can report which one was updated.
	c.log.Info("Pull request already exists, resolving it", "head", pr.Head, "base", pr.Base)
	existing, err := c.GetPullRequestByBranch(ctx, pr.Head)
	if err != nil {
		return PullRequest{}, false, err
	}
	if existing == nil {
		return PullRequest{}, false, fmt.Errorf("pull request for %s reported as existing but not found", pr.Head)
	}
	return *existing, false, nil
}

func (c *Client) GetPullRequestByBranch(ctx context.Context, headBranch string) (*PullRequest, error) {
	prs, _, err := c.inner.PullRequests.List(ctx, c.owner, c.repo, &gh.PullRequestListOptions{
		State: "open",
		Head:  c.owner + ":" + headBranch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests for branch %s: %w", headBranch, err)
	}

	if len(prs) == 0 {
		return nil, nil
	}

	pr := fromAPI(prs[0])
	return &pr, nil
}

// isAlreadyExists reports whether the error is the API's structured
// "A pull request already exists" validation failure. The error entries are
// matched on resource and message prefix rather than by substring-scanning
// the raw response body.
func isAlreadyExists(err error) bool {
	var errResp *gh.ErrorResponse
	if !errors.As(err, &errResp) {
		return false
	}
	for _, e := range errResp.Errors {
		if e.Resource == "PullRequest" && strings.HasPrefix(e.Message, "A pull request already exists") {
			return true
		}
	}
	return false
}
