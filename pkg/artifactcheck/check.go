// Package artifactcheck verifies that build output exists on the local
// filesystem before the flow run is trusted: a dev server can answer
// requests even when the production build never completed.
package artifactcheck

import (
	"fmt"
	"os"
	"strings"

	"github.com/omniops/flowcheck/pkg/check"
)

// Check verifies a build artifact on the local filesystem.
type Check struct {
	Path      string     // path to check
	ExpectDir bool       // expect a directory
	NotEmpty  bool       // file must have size > 0
	Contains  string     // literal string the file content must contain
	Match     string     // regex pattern the file content must match
	FS        FileSystem // injected for testing
}

// Run executes the artifact check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("build: %s", c.Path),
	}

	fsys := c.FS
	if fsys == nil {
		fsys = &RealFileSystem{}
	}

	info, err := fsys.Stat(c.Path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return result.Fail("not found", err)
		case os.IsPermission(err):
			return result.Fail("permission denied", err)
		default:
			return result.Failf("stat failed: %v", err)
		}
	}

	if c.ExpectDir {
		if !info.IsDir() {
			return result.Failf("expected directory, got file")
		}
		result.AddDetail("type: directory")
	} else if info.IsDir() {
		result.AddDetail("type: directory")
	} else {
		result.AddDetail("type: file")
		result.AddDetailf("size: %d", info.Size())
		if c.NotEmpty && info.Size() == 0 {
			return result.Failf("file is empty")
		}
	}

	if !info.IsDir() && (c.Contains != "" || c.Match != "") {
		if failed := c.checkContent(fsys, &result); failed {
			return result
		}
	}

	return result.Pass()
}

func (c *Check) checkContent(fsys FileSystem, result *check.Result) bool {
	content, err := fsys.ReadFile(c.Path)
	if err != nil {
		result.Failf("failed to read file: %v", err)
		return true
	}

	if c.Contains != "" && !strings.Contains(string(content), c.Contains) {
		result.Failf("content does not contain %q", c.Contains)
		return true
	}

	if c.Match != "" {
		re, err := check.CompileRegex(c.Match)
		if err != nil {
			result.Failf("invalid regex pattern: %v", err)
			return true
		}
		if !re.Match(content) {
			result.Failf("content does not match pattern %q", c.Match)
			return true
		}
	}

	return false
}
