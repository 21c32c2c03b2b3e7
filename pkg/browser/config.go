package browser

import "time"

// Config holds browser session settings.
type Config struct {
	BaseURL        string        // origin of the application under test
	ChromeBin      string        // explicit Chrome binary (default: rod's lookup)
	Headless       bool          // run without a visible window
	ViewportWidth  int           // default: 1920
	ViewportHeight int           // default: 1080
	NavTimeout     time.Duration // per-navigation timeout (default: 30s)
	SettleDelay    time.Duration // extra wait after load for client-side redirects (default: 1s)
	ScreenshotDir  string        // where full-page screenshots land (default: os.TempDir())
}

// DefaultConfig returns the settings used against a local dev instance.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:3000",
		Headless:       true,
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		NavTimeout:     30 * time.Second,
		SettleDelay:    time.Second,
	}
}

func (c Config) viewportWidth() int {
	if c.ViewportWidth == 0 {
		return 1920
	}
	return c.ViewportWidth
}

func (c Config) viewportHeight() int {
	if c.ViewportHeight == 0 {
		return 1080
	}
	return c.ViewportHeight
}

func (c Config) navTimeout() time.Duration {
	if c.NavTimeout == 0 {
		return 30 * time.Second
	}
	return c.NavTimeout
}
