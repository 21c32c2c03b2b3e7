package main

import (
	"github.com/spf13/cobra"

	"github.com/omniops/flowcheck/pkg/artifactcheck"
)

var (
	artifactDir      bool
	artifactNotEmpty bool
	artifactContains string
	artifactMatch    string
)

var artifactCmd = &cobra.Command{
	Use:   "artifact <path>",
	Short: "Verify a build artifact on the local filesystem",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtifactCheck,
}

func init() {
	artifactCmd.Flags().BoolVar(&artifactDir, "dir", false, "expect a directory")
	artifactCmd.Flags().BoolVar(&artifactNotEmpty, "not-empty", false, "file must have size > 0")
	artifactCmd.Flags().StringVar(&artifactContains, "contains", "", "literal string the content must contain")
	artifactCmd.Flags().StringVar(&artifactMatch, "match", "", "regex pattern the content must match")

	rootCmd.AddCommand(artifactCmd)
}

func runArtifactCheck(cmd *cobra.Command, args []string) error {
	c := &artifactcheck.Check{
		Path:      args[0],
		ExpectDir: artifactDir,
		NotEmpty:  artifactNotEmpty,
		Contains:  artifactContains,
		Match:     artifactMatch,
	}
	return runCheck(c)
}
