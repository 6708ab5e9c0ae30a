package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pinup-dev/pinup/internal/config"
	"github.com/pinup-dev/pinup/internal/git"
	"github.com/pinup-dev/pinup/internal/github"
	"github.com/pinup-dev/pinup/internal/runner"
	"github.com/spf13/cobra"
)

var (
	runDryRunFlag  bool
	runCleanupFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run [token] [update-command]",
	Short: "Run the update command and publish a pull request",
	Long: `Run synchronizes the working branch with the base branch, executes the
update command, and publishes any resulting working tree change as a commit,
a force-push, and a pull request.

The token and update command may be passed as positional arguments or through
the GITHUB_TOKEN and UPDATE_COMMAND environment variables. GITHUB_ACTOR and
GITHUB_REPOSITORY (owner/name) must be present in the environment, e.g.
supplied by the CI platform.

Exit status is 0 on a clean no-op (no updates detected) and when a pull
request was created or was already open; non-zero on missing inputs or on any
failing git, shell, or network step.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runDryRunFlag, "dry-run", false, "Log mutating steps without performing them")
	runCmd.Flags().BoolVar(&runCleanupFlag, "cleanup-on-error", false, "Hard-reset the working tree if the run fails partway")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	return runRunWithDeps(cmd, args, nil, nil)
}

// runDeps holds injectable dependencies for testing.
type runDeps struct {
	git      git.Git
	gh       github.GitHub
	env      config.Env
	exec     runner.CommandFunc
	bodyPath string
}

func runRunWithDeps(cmd *cobra.Command, args []string, deps *runDeps, cfgOverride *config.Config) error {
	env, err := resolveEnv(cmd, deps)
	if err != nil {
		return err
	}

	// Positional arguments take precedence over the environment.
	token := env.Token
	if len(args) >= 1 && args[0] != "" {
		token = args[0]
	}
	command := env.UpdateCommand
	if len(args) == 2 && args[1] != "" {
		command = args[1]
	}

	// Required-input validation happens before any git or network side effect.
	if token == "" {
		return errors.New("missing GITHUB_TOKEN: pass the token as the first argument or set the environment variable")
	}
	if command == "" {
		return errors.New("missing UPDATE_COMMAND: pass the update command as the second argument or set the environment variable")
	}
	if env.Actor == "" {
		return errors.New("missing GITHUB_ACTOR in the environment")
	}
	owner, name, err := env.SplitRepository()
	if err != nil {
		return err
	}

	gitClient, ghClient, cfg, bodyPath, err := resolveRunContext(cmd, deps, cfgOverride, env, owner, name, token)
	if err != nil {
		return err
	}

	params := runner.Params{
		Actor:          env.Actor,
		Token:          token,
		UpdateCommand:  command,
		Repository:     env.Repository,
		BodyPath:       bodyPath,
		DryRun:         runDryRunFlag,
		CleanupOnError: runCleanupFlag,
	}

	r := runner.New(cfg, params, gitClient, ghClient)
	if deps != nil && deps.exec != nil {
		r.SetCommandFunc(deps.exec)
	}

	res, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}

	switch res.Outcome {
	case runner.OutcomeNoChanges:
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No updates detected.")
	case runner.OutcomeCreated:
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Opened pull request #%d: %s\n", res.PR.Number, res.PR.HTMLURL)
	case runner.OutcomeUpdated:
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated existing pull request #%d: %s\n", res.PR.Number, res.PR.HTMLURL)
	case runner.OutcomePreviewed:
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Dry run complete.")
	}
	return err
}

// resolveEnv returns the injected environment (for testing) or reads the
// process environment.
func resolveEnv(cmd *cobra.Command, deps *runDeps) (config.Env, error) {
	if deps != nil {
		return deps.env, nil
	}
	return config.LoadEnv(cmd.Context())
}

// resolveRunContext builds the git client, GitHub client, config, and body
// path from deps (for testing) or from the real environment.
func resolveRunContext(cmd *cobra.Command, deps *runDeps, cfgOverride *config.Config, env config.Env, owner, name, token string) (git.Git, github.GitHub, config.Config, string, error) {
	if deps != nil {
		cfg := config.DefaultConfig()
		if cfgOverride != nil {
			cfg = *cfgOverride
		}
		return deps.git, deps.gh, cfg, deps.bodyPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, config.Config{}, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	gitClient := git.New(false, cwd, config.DefaultConfig().Git.Timeout)

	repoRoot, err := gitClient.GetWorktreeRoot()
	if err != nil {
		return nil, nil, config.Config{}, "", fmt.Errorf("git error: %w", err)
	}
	if repoRoot == "" {
		return nil, nil, config.Config{}, "", errors.New("pinup must be run inside a git repository")
	}

	configPaths := config.ConfigPaths(cwd, repoRoot)
	loader := config.NewDefaultLoader()
	loadResult, err := loader.Load(configPaths)
	if err != nil {
		return nil, nil, config.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	cfg := loadResult.Config

	// Recreate the git client with the configured timeout and dry-run mode.
	gitClient = git.New(runDryRunFlag, cwd, cfg.Git.Timeout)

	ghClient, err := github.NewClient(cmd.Context(), owner, name, token, env.APIBaseURL)
	if err != nil {
		return nil, nil, config.Config{}, "", err
	}

	bodyPath := cfg.PR.BodyFile
	if !filepath.IsAbs(bodyPath) {
		bodyPath = filepath.Join(repoRoot, bodyPath)
	}

	return gitClient, ghClient, cfg, bodyPath, nil
}
