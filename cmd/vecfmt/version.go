package main

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information, overridable at build time via -ldflags.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show vecfmt version",
	Args:  cobra.NoArgs,
	// version needs neither config nor logger
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		return nil
	},
	Run: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		printJSON(map[string]interface{}{
			"tool":       "vecfmt",
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
			"go":         runtime.Version(),
		})
		return
	}

	printInfo("vecfmt %s (%s)", color.New(color.Bold).Sprint(Version), runtime.Version())
	if GitCommit != "" {
		printInfo("commit: %s", GitCommit)
	}
	if BuildDate != "" {
		printInfo("built:  %s", BuildDate)
	}
}
