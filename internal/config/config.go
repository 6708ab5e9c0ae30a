package config

import (
	"errors"
	"time"
)

// Config represents the complete pinup configuration.
type Config struct {
	Branch BranchConfig `toml:"branch"`
	Commit CommitConfig `toml:"commit"`
	Git    GitConfig    `toml:"git"`
	PR     PRConfig     `toml:"pr"`
}

// Validate checks that all config values are valid.
// Returns an error describing the first invalid value found.
func (c Config) Validate() error {
	if c.Branch.Working == "" {
		return errors.New("branch.working cannot be empty")
	}
	if c.Branch.Base == "" {
		return errors.New("branch.base cannot be empty")
	}
	if c.Branch.Working == c.Branch.Base {
		return errors.New("branch.working and branch.base cannot be the same branch")
	}
	if c.Git.Timeout < 0 {
		return errors.New("git.timeout cannot be negative")
	}
	if c.Git.Remote == "" {
		return errors.New("git.remote cannot be empty")
	}
	if c.Git.PushRemote == "" {
		return errors.New("git.push_remote cannot be empty")
	}
	if c.Commit.Message == "" {
		return errors.New("commit.message cannot be empty")
	}
	if c.Commit.Email == "" {
		return errors.New("commit.email cannot be empty")
	}
	if c.PR.Title == "" {
		return errors.New("pr.title cannot be empty")
	}
	if c.PR.BodyFile == "" {
		return errors.New("pr.body_file cannot be empty")
	}
	return nil
}

// BranchConfig configures the branches the runner operates on.
type BranchConfig struct {
	// Working is the fixed-name branch used to stage and publish updates.
	Working string `toml:"working"`
	// Base is the stable branch the working branch is reset to and the
	// pull request is opened against.
	Base string `toml:"base"`
}

// CommitConfig configures the commit created on the publish path.
type CommitConfig struct {
	Message string `toml:"message"`
	Email   string `toml:"email"` // committer email; the name comes from the actor
}

// GitConfig configures git command execution.
type GitConfig struct {
	Timeout time.Duration `toml:"timeout"` // Timeout for each git command (e.g., "5m")
	// Remote is the remote the branch state is synchronized against.
	Remote string `toml:"remote"`
	// PushRemote is the name of the ephemeral remote that carries the
	// embedded push credentials.
	PushRemote string `toml:"push_remote"`
}

// PRConfig configures the pull request opened on the publish path.
type PRConfig struct {
	Title string `toml:"title"`
	// BodyFile is the file holding the pull request description.
	// Relative paths are resolved against the repository root.
	BodyFile string `toml:"body_file"`
}
