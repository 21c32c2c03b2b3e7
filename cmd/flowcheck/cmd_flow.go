package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/omniops/flowcheck/pkg/browser"
	"github.com/omniops/flowcheck/pkg/flow"
	"github.com/omniops/flowcheck/pkg/flowfile"
	"github.com/omniops/flowcheck/pkg/output"
)

var (
	flowConfigPath    string
	flowBaseURL       string
	flowChromeBin     string
	flowScreenshotDir string
	flowBuildDir      string
	flowBuildMarker   string
	flowNavTimeout    time.Duration
	flowSettleDelay   time.Duration
	flowHeaded        bool
	flowVerbose       bool
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Run the full ordered flow check against a running instance",
	Args:  cobra.NoArgs,
	RunE:  runFlow,
}

func init() {
	flowCmd.Flags().StringVar(&flowConfigPath, "config", "", "path to "+flowfile.FileName+" (default: search up from current directory)")
	flowCmd.Flags().StringVar(&flowBaseURL, "base-url", "", "application origin (default: http://localhost:3000)")
	flowCmd.Flags().StringVar(&flowChromeBin, "chrome-bin", "", "Chrome binary to launch")
	flowCmd.Flags().StringVar(&flowScreenshotDir, "screenshot-dir", "", "directory for diagnostic screenshots (default: system temp dir)")
	flowCmd.Flags().StringVar(&flowBuildDir, "build-dir", "", "build output directory to verify")
	flowCmd.Flags().StringVar(&flowBuildMarker, "build-marker", "", "build completion marker file to verify")
	flowCmd.Flags().DurationVar(&flowNavTimeout, "nav-timeout", 0, "per-navigation timeout")
	flowCmd.Flags().DurationVar(&flowSettleDelay, "settle-delay", 0, "extra wait after page load")
	flowCmd.Flags().BoolVar(&flowHeaded, "headed", false, "show the browser window")
	flowCmd.Flags().BoolVarP(&flowVerbose, "verbose", "v", false, "log navigation and console diagnostics")

	rootCmd.AddCommand(flowCmd)
}

func runFlow(cmd *cobra.Command, args []string) error {
	cfg, err := loadFlowConfig()
	if err != nil {
		return err
	}

	logger := logrus.New()
	if flowVerbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	browserCfg := browser.Config{
		BaseURL:       cfg.BaseURL,
		ChromeBin:     cfg.ChromeBin,
		Headless:      !flowHeaded,
		NavTimeout:    time.Duration(cfg.NavTimeout),
		SettleDelay:   time.Duration(cfg.SettleDelay),
		ScreenshotDir: cfg.ScreenshotDir,
	}
	flowCfg := flow.Config{
		BaseURL:         cfg.BaseURL,
		APIEndpoints:    cfg.APIEndpoints,
		ProtectedRoutes: cfg.ProtectedRoutes,
		SweepRoutes:     cfg.SweepRoutes,
		BuildDir:        cfg.BuildDir,
		BuildMarker:     cfg.BuildMarker,
	}

	runner := &flow.Runner{
		Cfg:   flowCfg,
		Steps: flow.Steps(flowCfg),
		Launch: func(ctx context.Context) (flow.Session, error) {
			sess, err := browser.Launch(ctx, browserCfg, logger)
			if sess == nil {
				// avoid handing a typed-nil Session to the runner
				return nil, err
			}
			return sess, err
		},
		Logger:   logger,
		OnResult: output.PrintResult,
	}

	output.PrintHeader(fmt.Sprintf("Flow checks against %s", cfg.BaseURL))

	rep, code := runner.Run(cmd.Context())
	output.PrintSummary(rep)

	if code != 0 {
		return ErrCheckFailed
	}
	return nil
}

// loadFlowConfig resolves the run configuration: config file if present,
// defaults otherwise, command-line flags on top.
func loadFlowConfig() (flowfile.Config, error) {
	cfg := flowfile.Default()

	wd, err := os.Getwd()
	if err != nil {
		return cfg, fmt.Errorf("failed to get working directory: %w", err)
	}

	path, findErr := flowfile.Find(wd, flowConfigPath)
	if findErr == nil {
		cfg, err = flowfile.Load(path)
		if err != nil {
			return cfg, err
		}
	} else if flowConfigPath != "" {
		// An explicit --config that cannot be found is an error; the
		// implicit search falling through to defaults is not.
		return cfg, findErr
	}

	cfg = applyFlowOverrides(cfg, flowOverrides{
		BaseURL:       flowBaseURL,
		ChromeBin:     flowChromeBin,
		ScreenshotDir: flowScreenshotDir,
		BuildDir:      flowBuildDir,
		BuildMarker:   flowBuildMarker,
		NavTimeout:    flowNavTimeout,
		SettleDelay:   flowSettleDelay,
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// flowOverrides are the flag values layered over the config file.
type flowOverrides struct {
	BaseURL       string
	ChromeBin     string
	ScreenshotDir string
	BuildDir      string
	BuildMarker   string
	NavTimeout    time.Duration
	SettleDelay   time.Duration
}

func applyFlowOverrides(cfg flowfile.Config, o flowOverrides) flowfile.Config {
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.ChromeBin != "" {
		cfg.ChromeBin = o.ChromeBin
	}
	if o.ScreenshotDir != "" {
		cfg.ScreenshotDir = o.ScreenshotDir
	}
	if o.BuildDir != "" {
		cfg.BuildDir = o.BuildDir
	}
	if o.BuildMarker != "" {
		cfg.BuildMarker = o.BuildMarker
	}
	if o.NavTimeout != 0 {
		cfg.NavTimeout = flowfile.Duration(o.NavTimeout)
	}
	if o.SettleDelay != 0 {
		cfg.SettleDelay = flowfile.Duration(o.SettleDelay)
	}
	return cfg
}
