// Package flow runs an ordered list of verification steps against a live
// application through a single browser session.
//
// Later steps may depend on navigation state left behind by earlier ones,
// so the runner executes steps strictly in declaration order with no
// parallelism. A step failure never stops the run; only the session itself
// failing to come up does, and even then the release path executes and the
// partial report is returned.
package flow

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/omniops/flowcheck/pkg/apicheck"
	"github.com/omniops/flowcheck/pkg/artifactcheck"
	"github.com/omniops/flowcheck/pkg/check"
	"github.com/omniops/flowcheck/pkg/report"
)

// Pager is the page surface the steps drive. *browser.Session implements
// it; tests substitute a scripted fake.
type Pager interface {
	Navigate(path string) error
	URL() string
	Title() string
	Has(selector string) bool
	HasText(selector, text string) bool
	Count(selector string) int
	Content() (string, error)
	Screenshot(name string)
	PageErrors() []string
	ResetPageErrors()
}

// Session is the scoped browser resource owned by one run.
type Session interface {
	Pager
	Close()
}

// LaunchFunc acquires the session. Injected so tests run without Chrome.
type LaunchFunc func(ctx context.Context) (Session, error)

// Step is one named verification. Its Run must confine failures to the
// returned Result; the runner additionally converts panics into failed
// results so a broken predicate cannot abort the steps after it.
type Step struct {
	Name string
	Run  func(env *Env) check.Result
}

// Env carries the shared resources a step may use.
type Env struct {
	Page   Pager
	Client apicheck.HTTPClient
	FS     artifactcheck.FileSystem
	Cfg    Config
}

// Runner executes a fixed step list against one browser session.
type Runner struct {
	Cfg      Config
	Steps    []Step
	Launch   LaunchFunc
	Client   apicheck.HTTPClient       // default: apicheck.RealHTTPClient
	FS       artifactcheck.FileSystem  // default: artifactcheck.RealFileSystem
	Logger   *logrus.Logger            // default: logrus standard logger
	OnResult func(result check.Result) // streamed per-step, may be nil
}

// Run acquires the session, executes every step in order, and returns the
// finished report plus the process exit code. The session is released on
// every path, including acquisition failure.
func (r *Runner) Run(ctx context.Context) (*report.Report, int) {
	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	rep := report.New()

	sess, err := r.Launch(ctx)
	if sess != nil {
		defer sess.Close()
	}
	if err != nil {
		logger.Errorf("browser session unavailable: %v", err)
		return rep, 1
	}

	client := r.Client
	if client == nil {
		client = &apicheck.RealHTTPClient{Timeout: 5 * time.Second}
	}
	fsys := r.FS
	if fsys == nil {
		fsys = &artifactcheck.RealFileSystem{}
	}

	env := &Env{Page: sess, Client: client, FS: fsys, Cfg: r.Cfg}

	for _, step := range r.Steps {
		result := runStep(step, env)
		rep.Record(result)
		if r.OnResult != nil {
			r.OnResult(result)
		}
	}

	return rep, rep.ExitCode()
}

// runStep confines anything a predicate does wrong to its own result.
func runStep(step Step, env *Env) (result check.Result) {
	defer func() {
		if p := recover(); p != nil {
			failed := check.Result{Name: step.Name}
			result = failed.Failf("panic: %v", p)
		}
	}()
	return step.Run(env)
}
