package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "flowcheck",
	Short:         "End-to-end flow checks for the organization web app",
	Long:          "Flowcheck drives a headless browser through the critical user flows of a running application instance and reports pass/fail per check.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
