// Package flowfile loads the .flowcheck.yml run configuration: which
// origin to test, which routes make up the verification surface, and
// where build output and screenshots live. Every field has a default
// matching a local dev instance, so the file is optional.
package flowfile

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for when no explicit path is given.
const FileName = ".flowcheck.yml"

// Duration wraps time.Duration so YAML values like "10s" parse.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config mirrors the YAML file.
type Config struct {
	BaseURL         string   `yaml:"base_url"`
	ChromeBin       string   `yaml:"chrome_bin"`
	ScreenshotDir   string   `yaml:"screenshot_dir"`
	BuildDir        string   `yaml:"build_dir"`
	BuildMarker     string   `yaml:"build_marker"`
	APIEndpoints    []string `yaml:"api_endpoints"`
	ProtectedRoutes []string `yaml:"protected_routes"`
	SweepRoutes     []string `yaml:"sweep_routes"`
	NavTimeout      Duration `yaml:"nav_timeout"`
	SettleDelay     Duration `yaml:"settle_delay"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		BaseURL:     "http://localhost:3000",
		BuildDir:    ".next",
		BuildMarker: ".next/BUILD_ID",
		APIEndpoints: []string{
			"/api/auth/me",
			"/api/organizations",
		},
		ProtectedRoutes: []string{
			"/dashboard/analytics",
			"/dashboard/conversations",
			"/dashboard/settings",
		},
		SweepRoutes: []string{
			"/",
			"/login",
			"/dashboard",
			"/onboarding",
		},
		NavTimeout:  Duration(30 * time.Second),
		SettleDelay: Duration(time.Second),
	}
}

// Find locates the config file. An explicit path wins; otherwise the
// search walks up from startDir, stopping at a repository root (.git),
// the home directory, or the filesystem root.
func Find(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		if currentDir == homeDir {
			break
		}
		if _, err := os.Stat(filepath.Join(currentDir, ".git")); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", errors.New(FileName + " not found")
}

// Load reads and parses a config file, filling unset fields with
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.BuildDir == "" {
		c.BuildDir = def.BuildDir
	}
	if c.BuildMarker == "" {
		c.BuildMarker = def.BuildMarker
	}
	if len(c.APIEndpoints) == 0 {
		c.APIEndpoints = def.APIEndpoints
	}
	if len(c.ProtectedRoutes) == 0 {
		c.ProtectedRoutes = def.ProtectedRoutes
	}
	if len(c.SweepRoutes) == 0 {
		c.SweepRoutes = def.SweepRoutes
	}
	if c.NavTimeout == 0 {
		c.NavTimeout = def.NavTimeout
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = def.SettleDelay
	}
}

// Validate rejects configurations the runner cannot act on.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	for _, route := range append(append([]string{}, c.ProtectedRoutes...), c.SweepRoutes...) {
		if len(route) == 0 || route[0] != '/' {
			return fmt.Errorf("route %q must start with /", route)
		}
	}
	for _, endpoint := range c.APIEndpoints {
		if len(endpoint) == 0 || endpoint[0] != '/' {
			return fmt.Errorf("api endpoint %q must start with /", endpoint)
		}
	}
	return nil
}
