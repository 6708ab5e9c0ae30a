package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/pinup-dev/pinup/internal/config"
	"github.com/pinup-dev/pinup/internal/git"
	"github.com/pinup-dev/pinup/internal/github"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the open update pull request",
	Long: `Status looks up the pull request whose head is the working branch and
prints it as a table. Read-only: no branch, commit, or push side effects.

Requires GITHUB_TOKEN and GITHUB_REPOSITORY in the environment.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return runStatusWithDeps(cmd, nil, nil)
}

// statusDeps holds injectable dependencies for testing.
type statusDeps struct {
	gh  github.GitHub
	env config.Env
}

func runStatusWithDeps(cmd *cobra.Command, deps *statusDeps, cfgOverride *config.Config) error {
	var env config.Env
	if deps != nil {
		env = deps.env
	} else {
		var err error
		env, err = config.LoadEnv(cmd.Context())
		if err != nil {
			return err
		}
	}

	if env.Token == "" {
		return errors.New("missing GITHUB_TOKEN in the environment")
	}
	owner, name, err := env.SplitRepository()
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if cfgOverride != nil {
		cfg = *cfgOverride
	}

	var ghClient github.GitHub
	if deps != nil {
		ghClient = deps.gh
	} else {
		cwdCfg, err := loadStatusConfig()
		if err != nil {
			return err
		}
		cfg = cwdCfg

		ghClient, err = github.NewClient(cmd.Context(), owner, name, env.Token, env.APIBaseURL)
		if err != nil {
			return err
		}
	}

	pr, err := ghClient.GetPullRequestByBranch(cmd.Context(), cfg.Branch.Working)
	if err != nil {
		return fmt.Errorf("failed to look up pull request: %w", err)
	}

	if pr == nil {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "No update pull request found for branch %s.\n", cfg.Branch.Working)
		return err
	}

	return outputStatusTable(cmd, *pr)
}

// loadStatusConfig loads the merged config from the discovery paths. Unlike
// run, status works outside a git repository too; the repo root path is then
// simply skipped.
func loadStatusConfig() (config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get current directory: %w", err)
	}

	gitClient := git.New(false, cwd, config.DefaultConfig().Git.Timeout)
	repoRoot, err := gitClient.GetWorktreeRoot()
	if err != nil {
		return config.Config{}, fmt.Errorf("git error: %w", err)
	}

	loadResult, err := config.NewDefaultLoader().Load(config.ConfigPaths(cwd, repoRoot))
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return loadResult.Config, nil
}

// outputStatusTable renders a one-row lipgloss table to stdout.
func outputStatusTable(cmd *cobra.Command, pr github.PullRequest) error {
	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")

	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(gray)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "Title", "State", "Base", "Updated").
		Rows([]string{
			fmt.Sprintf("%d", pr.Number),
			truncateString(pr.Title, 40),
			pr.State,
			pr.BaseBranch,
			humanize.Time(pr.UpdatedAt),
		})

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
		return err
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), pr.HTMLURL)
	return err
}

// truncateString shortens s to maxLen runes, appending an ellipsis when truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
