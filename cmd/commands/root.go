package commands

// Root command for Cobra CLI
// Registers all subcommands (web, current, history, notify)

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carbon-dash",
	Short: "Carbon Dash - UK carbon intensity dashboard and tooling",
	Long: `Carbon Dash serves a dashboard of UK grid carbon intensity with a
generation mix pie chart and an intensity history/forecast chart, plus CLI
commands for quick lookups and Telegram notifications.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(notifyCmd)
}
