package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Branch defaults
	assert.Equal(t, "integrates/iree", cfg.Branch.Working)
	assert.Equal(t, "main", cfg.Branch.Base)

	// Commit defaults
	assert.Equal(t, "Update dependencies", cfg.Commit.Message)
	assert.Equal(t, "pinup-bot@users.noreply.github.com", cfg.Commit.Email)

	// Git defaults
	assert.Equal(t, 5*time.Minute, cfg.Git.Timeout)
	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.Equal(t, "pinup-push", cfg.Git.PushRemote)

	// PR defaults
	assert.Equal(t, "Update dependencies", cfg.PR.Title)
	assert.Equal(t, "pr_body.md", cfg.PR.BodyFile)

	// Default config should be valid
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: "",
		},
		{
			name: "empty working branch",
			modify: func(c *Config) {
				c.Branch.Working = ""
			},
			wantErr: "branch.working cannot be empty",
		},
		{
			name: "empty base branch",
			modify: func(c *Config) {
				c.Branch.Base = ""
			},
			wantErr: "branch.base cannot be empty",
		},
		{
			name: "working equals base",
			modify: func(c *Config) {
				c.Branch.Working = "main"
				c.Branch.Base = "main"
			},
			wantErr: "branch.working and branch.base cannot be the same branch",
		},
		{
			name: "negative git timeout",
			modify: func(c *Config) {
				c.Git.Timeout = -1 * time.Second
			},
			wantErr: "git.timeout cannot be negative",
		},
		{
			name: "zero timeout is valid",
			modify: func(c *Config) {
				c.Git.Timeout = 0
			},
			wantErr: "",
		},
		{
			name: "empty remote",
			modify: func(c *Config) {
				c.Git.Remote = ""
			},
			wantErr: "git.remote cannot be empty",
		},
		{
			name: "empty push remote",
			modify: func(c *Config) {
				c.Git.PushRemote = ""
			},
			wantErr: "git.push_remote cannot be empty",
		},
		{
			name: "empty commit message",
			modify: func(c *Config) {
				c.Commit.Message = ""
			},
			wantErr: "commit.message cannot be empty",
		},
		{
			name: "empty commit email",
			modify: func(c *Config) {
				c.Commit.Email = ""
			},
			wantErr: "commit.email cannot be empty",
		},
		{
			name: "empty pr title",
			modify: func(c *Config) {
				c.PR.Title = ""
			},
			wantErr: "pr.title cannot be empty",
		},
		{
			name: "empty body file",
			modify: func(c *Config) {
				c.PR.BodyFile = ""
			},
			wantErr: "pr.body_file cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	paths := ConfigPaths("/work/repo/subdir", "/work/repo")

	// Last two entries are repo root then cwd (highest priority last).
	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, filepath.Join("/work/repo", "pinup.toml"), paths[len(paths)-2])
	assert.Equal(t, filepath.Join("/work/repo/subdir", "pinup.toml"), paths[len(paths)-1])
}

func TestConfigPaths_CwdIsRepoRoot(t *testing.T) {
	paths := ConfigPaths("/work/repo", "/work/repo")

	// Duplicate paths are collapsed.
	seen := make(map[string]int)
	for _, p := range paths {
		seen[p]++
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, "path %s appears %d times", p, n)
	}
}

func TestConfigPaths_EmptyRepoRoot(t *testing.T) {
	paths := ConfigPaths("/work", "")

	assert.Equal(t, filepath.Join("/work", "pinup.toml"), paths[len(paths)-1])
	for _, p := range paths {
		assert.NotEqual(t, "pinup.toml", p, "empty repo root must not contribute a relative path")
	}
}

func TestLoader_Load_NoFiles(t *testing.T) {
	loader := NewDefaultLoader()

	result, err := loader.Load([]string{filepath.Join(t.TempDir(), "pinup.toml")})

	require.NoError(t, err)
	assert.Empty(t, result.SourcePaths)
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestLoader_Load_MergesInPriorityOrder(t *testing.T) {
	lowDir := t.TempDir()
	highDir := t.TempDir()

	lowPath := filepath.Join(lowDir, "pinup.toml")
	require.NoError(t, os.WriteFile(lowPath, []byte(`
[branch]
working = "deps/low"

[commit]
message = "low message"
`), 0644))

	highPath := filepath.Join(highDir, "pinup.toml")
	require.NoError(t, os.WriteFile(highPath, []byte(`
[branch]
working = "deps/high"
`), 0644))

	result, err := NewDefaultLoader().Load([]string{lowPath, highPath})

	require.NoError(t, err)
	assert.Equal(t, []string{lowPath, highPath}, result.SourcePaths)
	// High priority file wins where it sets a value...
	assert.Equal(t, "deps/high", result.Config.Branch.Working)
	// ...lower priority values survive where it doesn't...
	assert.Equal(t, "low message", result.Config.Commit.Message)
	// ...and defaults fill the rest.
	assert.Equal(t, "main", result.Config.Branch.Base)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pinup.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0644))

	_, err := NewDefaultLoader().Load([]string{path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoader_Load_InvalidMergedConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pinup.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[branch]
working = "main"
`), 0644))

	_, err := NewDefaultLoader().Load([]string{path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
