package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/syft/internal/library"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "syft %s (%s)\n", library.Version, library.Name)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
