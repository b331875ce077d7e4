package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/mediasense/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Version:    %s\n", version.Version)
		fmt.Fprintf(w, "Commit:     %s\n", version.Commit)
		fmt.Fprintf(w, "Build Date: %s\n", version.Date)
		fmt.Fprintf(w, "Go Version: %s\n", runtime.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
