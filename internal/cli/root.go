// Package cli implements the dosecron command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dosecron",
	Short:         "Compute recurring calendar dates with weekend and holiday awareness",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(countriesCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
