package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/omniops/flowcheck/pkg/check"
	"github.com/omniops/flowcheck/pkg/report"
)

func TestFormatLabel(t *testing.T) {
	oldDim, oldReset := dim, reset
	defer func() { dim, reset = oldDim, oldReset }()

	dim, reset = "", ""
	if got := formatLabel("status: 200"); got != "status: 200" {
		t.Errorf("formatLabel without colors = %q", got)
	}

	dim, reset = "[DIM]", "[RESET]"
	tests := []struct {
		input string
		want  string
	}{
		{"status: 200", "[DIM]status:[RESET] 200"},
		{"url: http://localhost:3000", "[DIM]url:[RESET] http://localhost:3000"},
		{"no label here", "no label here"},
	}
	for _, tt := range tests {
		if got := formatLabel(tt.input); got != tt.want {
			t.Errorf("formatLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrintResultOK(t *testing.T) {
	out := captureOutput(func() {
		oldGreen, oldReset, oldDim := green, reset, dim
		green, reset, dim = "", "", ""
		defer func() { green, reset, dim = oldGreen, oldReset, oldDim }()

		PrintResult(check.Result{
			Name:    "home: page loads",
			Status:  check.StatusOK,
			Details: []string{"title: Omniops", "url: http://localhost:3000/"},
		})
	})

	expected := "[OK] home: page loads\n     title: Omniops\n     url: http://localhost:3000/\n"
	if out != expected {
		t.Errorf("PrintResult output = %q, want %q", out, expected)
	}
}

func TestPrintResultFail(t *testing.T) {
	out := captureOutput(func() {
		oldRed, oldReset, oldDim := red, reset, dim
		red, reset, dim = "", "", ""
		defer func() { red, reset, dim = oldRed, oldReset, oldDim }()

		PrintResult(check.Result{
			Name:    "build: artifacts present",
			Status:  check.StatusFail,
			Details: []string{"not found"},
		})
	})

	expected := "[FAIL] build: artifacts present\n       not found\n"
	if out != expected {
		t.Errorf("PrintResult output = %q, want %q", out, expected)
	}
}

func TestPrintSummary(t *testing.T) {
	r := report.New()
	r.Record(check.Result{Name: "home: page loads", Status: check.StatusOK})
	r.Record(check.Result{Name: "login: form elements", Status: check.StatusOK})
	r.Record(check.Result{Name: "build: artifacts present", Status: check.StatusFail})

	out := captureOutput(func() {
		oldGreen, oldRed, oldReset, oldDim := green, red, reset, dim
		green, red, reset, dim = "", "", "", ""
		defer func() { green, red, reset, dim = oldGreen, oldRed, oldReset, oldDim }()

		PrintSummary(r)
	})

	for _, want := range []string{
		"Total checks: 3",
		"Passed: 2",
		"Failed: 1",
		"- home: page loads",
		"- build: artifacts present",
		"Pass rate: 66.7%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q, got:\n%s", want, out)
		}
	}
}

func TestPrintSummaryEmptyRun(t *testing.T) {
	out := captureOutput(func() {
		oldGreen, oldRed, oldReset, oldDim := green, red, reset, dim
		green, red, reset, dim = "", "", "", ""
		defer func() { green, red, reset, dim = oldGreen, oldRed, oldReset, oldDim }()

		PrintSummary(report.New())
	})

	if !strings.Contains(out, "Pass rate: 0.0%") {
		t.Errorf("empty run should report 0.0%% pass rate, got:\n%s", out)
	}
	if strings.Contains(out, "Passed checks:") || strings.Contains(out, "Failed checks:") {
		t.Errorf("empty run should not enumerate checks, got:\n%s", out)
	}
}

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}
