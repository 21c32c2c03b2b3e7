package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/omniops/flowcheck/pkg/apicheck"
)

var (
	apiExpect     []int
	apiTimeout    time.Duration
	apiRetry      int
	apiRetryDelay time.Duration
	apiJSONPath   string
)

var apiCmd = &cobra.Command{
	Use:   "api <url>",
	Short: "Probe a single API endpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runAPICheck,
}

func init() {
	apiCmd.Flags().IntSliceVar(&apiExpect, "expect", []int{200, 401}, "acceptable HTTP status codes")
	apiCmd.Flags().DurationVar(&apiTimeout, "timeout", 5*time.Second, "request timeout")
	apiCmd.Flags().IntVar(&apiRetry, "retry", 0, "retry count on failure")
	apiCmd.Flags().DurationVar(&apiRetryDelay, "retry-delay", 1*time.Second, "delay between retries")
	apiCmd.Flags().StringVar(&apiJSONPath, "json-path", "", "JSON path to assert (format: \"path\" or \"path=expected\")")

	rootCmd.AddCommand(apiCmd)
}

func runAPICheck(cmd *cobra.Command, args []string) error {
	c := &apicheck.Check{
		URL:              args[0],
		ExpectedStatuses: apiExpect,
		Timeout:          apiTimeout,
		Retry:            apiRetry,
		RetryDelay:       apiRetryDelay,
		JSONPath:         apiJSONPath,
	}
	return runCheck(c)
}
