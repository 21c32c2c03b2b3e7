// Package output prints the run transcript. The transcript format is a
// semi-stable interface: CI wrappers scrape the per-check lines and the
// summary block, so changes here should stay append-only.
package output

import (
	"fmt"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/omniops/flowcheck/pkg/check"
	"github.com/omniops/flowcheck/pkg/report"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, dim, reset = "", "", "", ""
	}
}

// PrintHeader outputs a banner line before the first check.
func PrintHeader(title string) {
	bar := strings.Repeat("=", 60)
	fmt.Printf("%s\n%s\n%s\n", bar, title, bar)
}

// PrintResult outputs a check result with colored status.
func PrintResult(r check.Result) {
	if r.OK() {
		fmt.Printf("%s[OK]%s %s\n", green, reset, r.Name)
	} else {
		fmt.Printf("%s[FAIL]%s %s\n", red, reset, r.Name)
	}
	indent := "     " // aligns under "[OK] "
	if !r.OK() {
		indent = "       " // aligns under "[FAIL] "
	}
	for _, d := range r.Details {
		fmt.Printf("%s%s\n", indent, formatLabel(d))
	}
}

// PrintSummary outputs the aggregate block for a finished run.
func PrintSummary(r *report.Report) {
	PrintHeader("SUMMARY")
	fmt.Printf("Total checks: %d\n", r.Total())
	fmt.Printf("%sPassed:%s %d\n", green, reset, len(r.Passed()))
	fmt.Printf("%sFailed:%s %d\n", red, reset, len(r.Failed()))

	if len(r.Passed()) > 0 {
		fmt.Println("\nPassed checks:")
		for _, name := range r.Passed() {
			fmt.Printf("  - %s\n", name)
		}
	}
	if len(r.Failed()) > 0 {
		fmt.Println("\nFailed checks:")
		for _, name := range r.Failed() {
			fmt.Printf("  - %s\n", name)
		}
	}

	fmt.Printf("\nPass rate: %.1f%%\n", r.PassRate())
}

// formatLabel dims a leading "label:" prefix in a detail line.
func formatLabel(detail string) string {
	if dim == "" {
		return detail
	}
	idx := strings.Index(detail, ": ")
	if idx < 0 {
		return detail
	}
	return dim + detail[:idx+1] + reset + detail[idx+1:]
}
