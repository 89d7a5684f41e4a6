// Package cmd provides the command-line interface of the pentagon sequencer.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pentagon",
	Short: "Pentagon runs a five-approach traffic signal sequencer.",
	Long: `Pentagon runs a five-approach traffic signal sequencer, serves its ` +
		`state over HTTP, and drives an optional signal controller over a ` +
		`serial line. It also talks to a running service.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
