package cmd

import "github.com/spf13/cobra"

// Version is set at build time via ldflags.
var Version = "n/a"

var rootCmd = &cobra.Command{
	Use:   "pinup",
	Short: "Dependency pin update automation",
	Long: `Pinup runs a dependency update command on a dedicated branch and opens
or updates a pull request when the version pins changed.`,
}

func init() {
	rootCmd.Version = Version
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
