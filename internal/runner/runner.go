package runner

import (
	"context"
	"errors"
	"fmt"

	clog "github.com/charmbracelet/log"
	"github.com/pinup-dev/pinup/internal/config"
	"github.com/pinup-dev/pinup/internal/git"
	"github.com/pinup-dev/pinup/internal/github"
)

// Outcome is the terminal state of a run.
type Outcome int

const (
	// OutcomeNoChanges means the update command left the working tree
	// unchanged and nothing was published.
	OutcomeNoChanges Outcome = iota
	// OutcomeCreated means a new pull request was opened.
	OutcomeCreated
	// OutcomeUpdated means the branch was force-pushed into an already open
	// pull request.
	OutcomeUpdated
	// OutcomePreviewed means a dry run logged the steps without performing them.
	OutcomePreviewed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoChanges:
		return "no-changes"
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomePreviewed:
		return "previewed"
	}
	return fmt.Sprintf("unknown(%d)", int(o))
}

// Result is what a completed run produced.
type Result struct {
	Outcome Outcome
	// PR is set for OutcomeCreated and OutcomeUpdated.
	PR *github.PullRequest
}

// Params holds the per-invocation inputs, as opposed to the file-backed
// configuration. Threading these explicitly keeps the run free of process-wide
// mutable state.
type Params struct {
	Actor         string // commit author name and push credential user
	Token         string // access token, embedded in the push remote URL
	UpdateCommand string // opaque shell command that mutates the version pins
	Repository    string // "owner/name", used to build the push remote URL
	BodyPath      string // resolved path to the pull request description file
	// DryRun previews the publish sequence without mutating anything. The git
	// client must be constructed in dry-run mode as well.
	DryRun bool
	// CleanupOnError hard-resets the working tree when a run fails partway.
	// Off by default: the fail-fast-without-rollback behavior is deliberate,
	// and the partial state is often useful for debugging.
	CleanupOnError bool
}

func (p Params) validate() error {
	if p.Token == "" {
		return errors.New("missing GITHUB_TOKEN")
	}
	if p.UpdateCommand == "" {
		return errors.New("missing UPDATE_COMMAND")
	}
	if p.Actor == "" {
		return errors.New("missing GITHUB_ACTOR")
	}
	if p.Repository == "" {
		return errors.New("missing GITHUB_REPOSITORY")
	}
	return nil
}

// CommandFunc executes the caller-supplied update command.
type CommandFunc func(ctx context.Context, command string) error

// Runner performs one update-detect-publish cycle.
type Runner struct {
	cfg    config.Config
	params Params
	git    git.Git
	gh     github.GitHub
	exec   CommandFunc
	log    *clog.Logger
}

// New creates a Runner over the given git and GitHub clients.
func New(cfg config.Config, params Params, gitClient git.Git, ghClient github.GitHub) *Runner {
	return &Runner{
		cfg:    cfg,
		params: params,
		git:    gitClient,
		gh:     ghClient,
		exec: func(ctx context.Context, command string) error {
			return RunShell(ctx, command, "")
		},
		log: clog.Default().WithPrefix("runner"),
	}
}

// SetCommandFunc overrides how the update command is executed.
func (r *Runner) SetCommandFunc(f CommandFunc) {
	r.exec = f
}

// Run executes the full sequence: synchronize the working branch, run the
// update command, and either stop (tree unchanged) or publish the change as a
// pull request. The first failing step aborts the run.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	res, err := r.run(ctx)
	if err != nil && r.params.CleanupOnError {
		r.cleanup()
	}
	return res, err
}

func (r *Runner) run(ctx context.Context) (Result, error) {
	if err := r.params.validate(); err != nil {
		return Result{}, err
	}

	if err := r.git.Fetch(r.cfg.Git.Remote); err != nil {
		return Result{}, err
	}

	if err := r.prepareBranch(); err != nil {
		return Result{}, err
	}

	if r.params.DryRun {
		r.log.Info("Dry run: would execute update command", "command", r.params.UpdateCommand)
		return r.publish(ctx)
	}

	r.log.Info("Executing update command", "command", r.params.UpdateCommand)
	if err := r.exec(ctx, r.params.UpdateCommand); err != nil {
		return Result{}, err
	}

	changed, err := r.git.HasChanges()
	if err != nil {
		return Result{}, err
	}
	if !changed {
		r.log.Info("No updates detected, nothing to publish")
		return Result{Outcome: OutcomeNoChanges}, nil
	}

	return r.publish(ctx)
}

// prepareBranch selects or creates the working branch. An existing branch is
// reset to the base branch's remote tip so unrelated prior edits never leak
// into a new run.
func (r *Runner) prepareBranch() error {
	working := r.cfg.Branch.Working

	exists, err := r.git.BranchExists(working)
	if err != nil {
		return err
	}

	if !exists {
		return r.git.CreateBranch(working)
	}

	if err := r.git.Checkout(working); err != nil {
		return err
	}
	if err := r.git.Pull(); err != nil {
		return err
	}
	baseTip := r.cfg.Git.Remote + "/" + r.cfg.Branch.Base
	return r.git.ResetHard(baseTip)
}

// publish commits the working tree, force-pushes the working branch through
// an authenticated remote, and opens (or re-uses) the pull request.
func (r *Runner) publish(ctx context.Context) (Result, error) {
	if err := r.git.SetConfig("user.email", r.cfg.Commit.Email); err != nil {
		return Result{}, err
	}
	if err := r.git.SetConfig("user.name", r.params.Actor); err != nil {
		return Result{}, err
	}

	pushURL := authenticatedRemoteURL(r.params.Actor, r.params.Token, r.params.Repository)
	if err := r.git.SetRemote(r.cfg.Git.PushRemote, pushURL); err != nil {
		return Result{}, err
	}

	if err := r.git.AddAll(); err != nil {
		return Result{}, err
	}
	if err := r.git.Commit(r.cfg.Commit.Message); err != nil {
		return Result{}, err
	}
	if err := r.git.ForcePush(r.cfg.Git.PushRemote, r.cfg.Branch.Working); err != nil {
		return Result{}, err
	}

	body, err := LoadBody(r.params.BodyPath)
	if err != nil {
		return Result{}, err
	}

	if r.params.DryRun {
		r.log.Info("Dry run: would open pull request",
			"title", r.cfg.PR.Title, "head", r.cfg.Branch.Working, "base", r.cfg.Branch.Base)
		return Result{Outcome: OutcomePreviewed}, nil
	}

	pr, created, err := r.gh.EnsurePullRequest(ctx, github.NewPullRequest{
		Title: r.cfg.PR.Title,
		Head:  r.cfg.Branch.Working,
		Base:  r.cfg.Branch.Base,
		Body:  body,
	})
	if err != nil {
		return Result{}, err
	}

	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}
	return Result{Outcome: outcome, PR: &pr}, nil
}

// cleanup makes a best-effort attempt to drop partially staged state after a
// failed run. Errors are logged, not returned: the run's own error wins.
func (r *Runner) cleanup() {
	r.log.Info("Resetting working tree after failed run")
	if err := r.git.ResetHard("HEAD"); err != nil {
		r.log.Warn("Cleanup failed", "error", err)
	}
}

// authenticatedRemoteURL builds the push URL with embedded credentials. The
// credential only ever lives in the ephemeral push remote entry; it is
// redacted anywhere the URL is logged.
func authenticatedRemoteURL(actor, token, repository string) string {
	return fmt.Sprintf("https://%s:%s@github.com/%s.git", actor, token, repository)
}
