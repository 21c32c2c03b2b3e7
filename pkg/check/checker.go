package check

// Checker is implemented by all check types.
// Each check verifies one aspect of the running application or its
// environment and returns a Result indicating success or failure.
//
// Implementations:
//   - apicheck.Check: probes an HTTP API endpoint
//   - artifactcheck.Check: verifies build output on the local filesystem
//   - flow steps: navigation and DOM-presence predicates over a browser page
type Checker interface {
	Run() Result
}
