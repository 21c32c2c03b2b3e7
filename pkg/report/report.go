// Package report accumulates check outcomes for one flow run.
package report

import "github.com/omniops/flowcheck/pkg/check"

// Report is the ordered record of every check outcome in a run.
// Results are appended as checks complete and never mutated afterwards.
type Report struct {
	results []check.Result
	passed  []string
	failed  []string
}

// New returns an empty report.
func New() *Report {
	return &Report{}
}

// Record appends a check outcome. Order of calls is preserved.
func (r *Report) Record(result check.Result) {
	r.results = append(r.results, result)
	if result.OK() {
		r.passed = append(r.passed, result.Name)
	} else {
		r.failed = append(r.failed, result.Name)
	}
}

// Total returns the number of recorded checks.
func (r *Report) Total() int {
	return len(r.results)
}

// Results returns the recorded outcomes in execution order.
func (r *Report) Results() []check.Result {
	return r.results
}

// Passed returns the names of passed checks in execution order.
func (r *Report) Passed() []string {
	return r.passed
}

// Failed returns the names of failed checks in execution order.
func (r *Report) Failed() []string {
	return r.failed
}

// OK returns true if no recorded check failed.
func (r *Report) OK() bool {
	return len(r.failed) == 0
}

// PassRate returns the percentage of passed checks.
// An empty report has a pass rate of 0.
func (r *Report) PassRate() float64 {
	if len(r.results) == 0 {
		return 0
	}
	return float64(len(r.passed)) / float64(len(r.results)) * 100
}

// ExitCode returns the process exit status for this report:
// 0 when no recorded check failed, 1 otherwise. A run that fails
// before any check records (session acquisition failure) is turned
// into exit 1 by the runner, not here.
func (r *Report) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}
