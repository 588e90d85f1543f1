package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/TheMichaelB/vecfmt/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the vecfmt config file",
	// config commands run before a config exists
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file holding the defaults",
	Example: `  vecfmt config init
  vecfmt config init ~/.config/vecfmt/config.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "vecfmt.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		printError("%s already exists, use --force to overwrite", path)
		return alreadyReported(fmt.Errorf("config file %s exists", path))
	}

	if err := config.SaveExample(path); err != nil {
		printError("write config: %v", err)
		return alreadyReported(err)
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "path": path})
		return nil
	}
	printSuccess("Wrote %s", path)
	return nil
}
