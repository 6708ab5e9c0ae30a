package config

import (
	"os"
	"path/filepath"
)

const configFileName = "pinup.toml"

// ConfigPaths returns the ordered list of config file paths to check.
// Paths are ordered from lowest to highest priority, so that when decoded
// sequentially, each subsequent file overrides values from previous files.
//
// Order (lowest to highest priority):
//  1. File in XDG config directory (~/.config/pinup/pinup.toml)
//  2. File in the repository root
//  3. File in the current working directory (if different from the repo root)
//
// An empty repoRoot is handled gracefully.
func ConfigPaths(cwd, repoRoot string) []string {
	var paths []string
	seen := make(map[string]bool)

	addPath := func(dir string) {
		if dir == "" {
			return
		}
		path := filepath.Join(dir, configFileName)
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	if xdgConfigDir, err := os.UserConfigDir(); err == nil {
		addPath(filepath.Join(xdgConfigDir, "pinup"))
	}

	addPath(repoRoot)
	addPath(cwd)

	return paths
}
