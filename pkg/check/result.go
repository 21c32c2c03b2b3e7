package check

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string   // e.g., "home: page loads", "api: /api/auth/me"
	Status  Status   // OK or FAIL
	Details []string // human-readable evidence lines
	Err     error    // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Pass marks the result as passed.
func (r *Result) Pass() Result {
	r.Status = StatusOK
	return *r
}
