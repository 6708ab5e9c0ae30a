package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Env holds the values the CI platform supplies through the environment.
// Nothing here is marked required: the token and update command may arrive
// as positional arguments instead, and validation happens once both sources
// have been merged.
type Env struct {
	Token         string `env:"GITHUB_TOKEN"`
	UpdateCommand string `env:"UPDATE_COMMAND"`
	Actor         string `env:"GITHUB_ACTOR"`
	Repository    string `env:"GITHUB_REPOSITORY"` // "owner/name"
	APIBaseURL    string `env:"GITHUB_API_URL"`
}

// LoadEnv reads the CI environment values from the process environment.
func LoadEnv(ctx context.Context) (Env, error) {
	var e Env
	if err := envconfig.Process(ctx, &e); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return e, nil
}

// SplitRepository splits the "owner/name" repository value.
func (e Env) SplitRepository() (owner, name string, err error) {
	owner, name, ok := strings.Cut(e.Repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid GITHUB_REPOSITORY %q: expected owner/name", e.Repository)
	}
	return owner, name, nil
}
