// Package main provides the syft CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "syft",
	Short: "Ownership and pointer hooks for Born tensors.",
	Long: `syft hooks the Born tensor library with object ids, owners and ` +
		`remote pointers. Settings are read from SYFT_* environment variables.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
