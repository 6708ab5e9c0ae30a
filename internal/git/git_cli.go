package git

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// GitCli provides high-level git operations by executing real git commands via the git CLI.
type GitCli struct {
	dryRun     bool
	log        *clog.Logger
	timeout    time.Duration
	workingDir string
}

var _ Git = &GitCli{}

// New creates a new GitCli instance that executes git commands in the specified working directory.
func New(dryRun bool, workingDir string, timeout time.Duration) Git {
	return &GitCli{
		dryRun:     dryRun,
		log:        clog.Default().WithPrefix("git"),
		timeout:    timeout,
		workingDir: workingDir,
	}
}

func (g *GitCli) executeGitCommand(args ...string) (string, error) {
	g.log.Debug("Executing git command", "cmd", "git", "args", redactArgs(args), "workingDir", g.workingDir)

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workingDir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			g.log.Warn("git command timed out", "args", redactArgs(args), "timeout", g.timeout, "error", err)
			return "", fmt.Errorf("git %s timed out after %s", strings.Join(redactArgs(args), " "), g.timeout)
		}
		g.log.Warn("Git command failed", "args", redactArgs(args), "stderr", stderr.String(), "error", err)
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(redactArgs(args), " "), err, stderr.String())
	}

	output := strings.TrimSpace(stdout.String())
	g.log.Debug("Git command succeeded", "args", redactArgs(args), "output", output)
	return output, nil
}

// executeMutatingCommand runs a git command that modifies state, unless in dry-run mode.
func (g *GitCli) executeMutatingCommand(errContext string, args ...string) error {
	if g.dryRun {
		g.log.Info("Would execute git command", "cmd", "git", "args", redactArgs(args))
		return nil
	}
	if _, err := g.executeGitCommand(args...); err != nil {
		return fmt.Errorf("%s: %w", errContext, err)
	}
	return nil
}

// redactArgs strips credential userinfo from any URL-shaped argument so that
// embedded tokens never reach the logs or error messages.
func redactArgs(args []string) []string {
	redacted := make([]string, len(args))
	for i, arg := range args {
		redacted[i] = redactURL(arg)
	}
	return redacted
}

// redactURL replaces the userinfo portion of a URL with "***".
// Non-URL strings and URLs without userinfo are returned unchanged.
func redactURL(s string) string {
	if !strings.Contains(s, "://") || !strings.Contains(s, "@") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	u.User = url.User("***")
	return u.String()
}

func (g *GitCli) GetWorktreeRoot() (string, error) {
	output, err := g.executeGitCommand("rev-parse", "--show-toplevel")
	if err != nil {
		if strings.Contains(err.Error(), "not a git repo") {
			// Not in a git repo - this is a valid state, not an error
			return "", nil
		}
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return output, nil
}

func (g *GitCli) GetCurrentBranch() (string, error) {
	output, err := g.executeGitCommand("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}

func (g *GitCli) Fetch(remoteName string) error {
	g.log.Info("Fetching from remote", "remote", remoteName)
	args := []string{"fetch", remoteName, "--prune"}
	return g.executeMutatingCommand("failed to fetch from remote", args...)
}

func (g *GitCli) BranchExists(branchName string) (bool, error) {
	// `branch --list` prints nothing for a missing branch instead of failing,
	// so existence never shows up as a command error.
	output, err := g.executeGitCommand("branch", "--list", branchName)
	if err != nil {
		return false, fmt.Errorf("failed to check branch existence: %w", err)
	}
	return output != "", nil
}

func (g *GitCli) Checkout(branchName string) error {
	g.log.Info("Checking out branch", "branch", branchName)
	args := []string{"checkout", branchName}
	return g.executeMutatingCommand("failed to checkout branch", args...)
}

func (g *GitCli) CreateBranch(branchName string) error {
	g.log.Info("Creating branch", "branch", branchName)
	args := []string{"checkout", "-b", branchName}
	return g.executeMutatingCommand("failed to create branch", args...)
}

func (g *GitCli) Pull() error {
	g.log.Info("Pulling current branch")
	args := []string{"pull"}
	return g.executeMutatingCommand("failed to pull", args...)
}

func (g *GitCli) ResetHard(ref string) error {
	g.log.Info("Resetting working tree", "ref", ref)
	args := []string{"reset", "--hard", ref}
	return g.executeMutatingCommand("failed to reset to "+ref, args...)
}

func (g *GitCli) HasChanges() (bool, error) {
	output, err := g.executeGitCommand("status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check working tree status: %w", err)
	}

	entries := parseStatusEntries(output)
	g.log.Debug("Working tree status", "changedPaths", len(entries))
	return len(entries) > 0, nil
}

// parseStatusEntries parses `git status --porcelain` output into the list
// of changed paths.
func parseStatusEntries(output string) []string {
	if output == "" {
		return nil
	}

	var paths []string
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		// Format: XY <path> (or "XY <orig> -> <path>" for renames)
		path := line[3:]
		if idx := strings.Index(path, " -> "); idx != -1 {
			path = path[idx+4:]
		}
		paths = append(paths, strings.TrimSpace(path))
	}
	return paths
}

func (g *GitCli) SetConfig(key, value string) error {
	g.log.Info("Setting git config", "key", key, "value", value)
	args := []string{"config", key, value}
	return g.executeMutatingCommand("failed to set config "+key, args...)
}

func (g *GitCli) SetRemote(name, url string) error {
	g.log.Info("Registering remote", "remote", name, "url", redactURL(url))

	exists, err := g.remoteExists(name)
	if err != nil {
		return fmt.Errorf("failed to check remote existence: %w", err)
	}

	args := []string{"remote", "add", name, url}
	if exists {
		args = []string{"remote", "set-url", name, url}
	}
	return g.executeMutatingCommand("failed to register remote "+name, args...)
}

// remoteExists checks if a remote with the given name is configured.
func (g *GitCli) remoteExists(remoteName string) (bool, error) {
	_, err := g.executeGitCommand("remote", "get-url", remoteName)
	if err == nil {
		return true, nil
	}

	if strings.Contains(err.Error(), "No such remote") {
		return false, nil
	}

	return false, err
}

func (g *GitCli) AddAll() error {
	g.log.Info("Staging all working tree changes")
	args := []string{"add", "-A"}
	return g.executeMutatingCommand("failed to stage changes", args...)
}

func (g *GitCli) Commit(message string) error {
	g.log.Info("Creating commit", "message", message)
	args := []string{"commit", "--signoff", "-m", message}
	return g.executeMutatingCommand("failed to commit", args...)
}

func (g *GitCli) ForcePush(remoteName, branchName string) error {
	g.log.Info("Force-pushing branch", "remote", remoteName, "branch", branchName)
	args := []string{"push", "--force", remoteName, branchName}
	return g.executeMutatingCommand("failed to push branch", args...)
}
