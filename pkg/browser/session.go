// Package browser wraps a go-rod Chrome session behind the small surface
// the flow checker needs: navigate, query the DOM, screenshot, and collect
// uncaught runtime errors. One Session drives one page; callers access it
// serially and must Close it on every exit path.
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// Session is the live browser/page handle for one flow run.
type Session struct {
	cfg      Config
	logger   *logrus.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	errMu      sync.Mutex
	pageErrors []string
}

// Launch starts a headless Chrome, connects, and opens a blank page with
// the configured viewport. On any failure the partially acquired resources
// are released before the error is returned, so a nil Session never leaks
// a browser process.
func Launch(ctx context.Context, cfg Config, logger *logrus.Logger) (*Session, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	l := launcher.New().Headless(cfg.Headless)
	if cfg.ChromeBin != "" {
		l = l.Bin(cfg.ChromeBin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	logger.Debugf("chrome launched, control url %s", controlURL)

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.viewportWidth(),
		Height:            cfg.viewportHeight(),
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		logger.Warnf("failed to set viewport: %v", err)
	}

	s := &Session{
		cfg:      cfg,
		logger:   logger,
		launcher: l,
		browser:  b,
		page:     page,
	}
	s.startEventStream()

	return s, nil
}

// startEventStream subscribes to uncaught exceptions and console output.
// Exceptions feed the runtime-error sweep; console messages only surface
// at debug level.
func (s *Session) startEventStream() {
	go s.page.EachEvent(
		func(ev *proto.RuntimeExceptionThrown) {
			msg := exceptionText(ev.ExceptionDetails)
			s.logger.Debugf("page error: %s", msg)
			s.errMu.Lock()
			s.pageErrors = append(s.pageErrors, msg)
			s.errMu.Unlock()
		},
		func(ev *proto.RuntimeConsoleAPICalled) {
			s.logger.Debugf("console %s: %s", ev.Type, stringifyConsoleArgs(ev.Args))
		},
	)()
}

// Close releases the page, browser connection, and launched process.
// Safe to call exactly once per Session on every exit path.
func (s *Session) Close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Kill()
	}
}

// Navigate loads a path resolved against the configured base origin, waits
// for the load event, and then sleeps the settle delay so client-side
// redirects land before any predicate runs.
func (s *Session) Navigate(path string) error {
	target := strings.TrimSuffix(s.cfg.BaseURL, "/") + path
	start := time.Now()

	page := s.page.Timeout(s.cfg.navTimeout())
	if err := page.Navigate(target); err != nil {
		return fmt.Errorf("navigate %s: %w", target, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", target, err)
	}
	if s.cfg.SettleDelay > 0 {
		time.Sleep(s.cfg.SettleDelay)
	}

	s.logger.Debugf("navigated to %s in %s", target, time.Since(start).Round(time.Millisecond))
	return nil
}

// URL returns the page's current resolved URL.
func (s *Session) URL() string {
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Title returns the page's current title.
func (s *Session) Title() string {
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.Title
}

// Has reports whether at least one element matches the selector. It does
// not wait for the element to appear.
func (s *Session) Has(selector string) bool {
	ok, _, err := s.page.Has(selector)
	if err != nil {
		s.logger.Debugf("selector %q: %v", selector, err)
		return false
	}
	return ok
}

// HasText reports whether an element matching the selector contains the
// given visible text.
func (s *Session) HasText(selector, text string) bool {
	ok, _, err := s.page.HasR(selector, regexp.QuoteMeta(text))
	if err != nil {
		s.logger.Debugf("selector %q text %q: %v", selector, text, err)
		return false
	}
	return ok
}

// Count returns the number of elements matching the selector.
func (s *Session) Count(selector string) int {
	els, err := s.page.Elements(selector)
	if err != nil {
		return 0
	}
	return len(els)
}

// Content returns the page's rendered HTML.
func (s *Session) Content() (string, error) {
	return s.page.HTML()
}

// Screenshot writes a full-page PNG into the screenshot directory. It is
// purely diagnostic: failures are logged, never propagated.
func (s *Session) Screenshot(name string) {
	dir := s.cfg.ScreenshotDir
	if dir == "" {
		dir = os.TempDir()
	}
	data, err := s.page.Screenshot(true, nil)
	if err != nil {
		s.logger.Warnf("screenshot %s: %v", name, err)
		return
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Warnf("write screenshot %s: %v", path, err)
		return
	}
	s.logger.Debugf("screenshot saved to %s", path)
}

// PageErrors returns the uncaught runtime errors observed since the last
// reset.
func (s *Session) PageErrors() []string {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	out := make([]string, len(s.pageErrors))
	copy(out, s.pageErrors)
	return out
}

// ResetPageErrors clears the collected runtime errors.
func (s *Session) ResetPageErrors() {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	s.pageErrors = nil
}

func exceptionText(details *proto.RuntimeExceptionDetails) string {
	if details == nil {
		return "unknown exception"
	}
	if details.Exception != nil && details.Exception.Description != "" {
		return details.Exception.Description
	}
	return details.Text
}

func stringifyConsoleArgs(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		if !a.Value.Nil() {
			parts = append(parts, a.Value.String())
			continue
		}
		if a.Description != "" {
			parts = append(parts, a.Description)
		}
	}
	return strings.Join(parts, " ")
}
