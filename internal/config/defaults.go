package config

import "time"

// DefaultConfig returns sensible defaults for all configuration.
func DefaultConfig() Config {
	return Config{
		Branch: BranchConfig{
			Working: "integrates/iree",
			Base:    "main",
		},
		Commit: CommitConfig{
			Message: "Update dependencies",
			Email:   "pinup-bot@users.noreply.github.com",
		},
		Git: GitConfig{
			// Update commands and pushes can be slow, so the budget is
			// per command, not per run.
			Timeout:    5 * time.Minute,
			Remote:     "origin",
			PushRemote: "pinup-push",
		},
		PR: PRConfig{
			Title:    "Update dependencies",
			BodyFile: "pr_body.md",
		},
	}
}
