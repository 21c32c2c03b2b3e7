package artifactcheck

import (
	"errors"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/omniops/flowcheck/pkg/check"
	"github.com/omniops/flowcheck/pkg/testutil"
)

// mockFileSystem is a test double for FileSystem.
type mockFileSystem struct {
	StatFunc     func(name string) (fs.FileInfo, error)
	ReadFileFunc func(name string) ([]byte, error)
}

func (m *mockFileSystem) Stat(name string) (fs.FileInfo, error) { return m.StatFunc(name) }
func (m *mockFileSystem) ReadFile(name string) ([]byte, error)  { return m.ReadFileFunc(name) }

// mockFileInfo is a test double for fs.FileInfo.
type mockFileInfo struct {
	NameValue  string
	SizeValue  int64
	IsDirValue bool
}

func (m *mockFileInfo) Name() string       { return m.NameValue }
func (m *mockFileInfo) Size() int64        { return m.SizeValue }
func (m *mockFileInfo) Mode() fs.FileMode  { return 0o644 }
func (m *mockFileInfo) IsDir() bool        { return m.IsDirValue }
func (m *mockFileInfo) Sys() interface{}   { return nil }
func (m *mockFileInfo) ModTime() time.Time { return time.Unix(0, 0) }

func TestRunFileExists(t *testing.T) {
	c := Check{
		Path: "/app/.next/BUILD_ID",
		FS: &mockFileSystem{
			StatFunc: func(name string) (fs.FileInfo, error) {
				return &mockFileInfo{NameValue: "BUILD_ID", SizeValue: 21}, nil
			},
		},
	}

	result := c.Run()

	if result.Status != check.StatusOK {
		t.Errorf("Status = %v, want OK (details: %v)", result.Status, result.Details)
	}
	if !testutil.ContainsDetail(result.Details, "size: 21") {
		t.Errorf("missing size detail, got %v", result.Details)
	}
}

func TestRunNotFound(t *testing.T) {
	c := Check{
		Path: "/app/.next",
		FS: &mockFileSystem{
			StatFunc: func(name string) (fs.FileInfo, error) {
				return nil, os.ErrNotExist
			},
		},
	}

	result := c.Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want FAIL", result.Status)
	}
	if !testutil.ContainsDetail(result.Details, "not found") {
		t.Errorf("missing not-found detail, got %v", result.Details)
	}
}

func TestRunExpectDir(t *testing.T) {
	tests := []struct {
		name  string
		isDir bool
		want  check.Status
	}{
		{"is a directory", true, check.StatusOK},
		{"is a file", false, check.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Check{
				Path:      "/app/.next",
				ExpectDir: true,
				FS: &mockFileSystem{
					StatFunc: func(name string) (fs.FileInfo, error) {
						return &mockFileInfo{IsDirValue: tt.isDir, SizeValue: 4096}, nil
					},
				},
			}

			if result := c.Run(); result.Status != tt.want {
				t.Errorf("Status = %v, want %v", result.Status, tt.want)
			}
		})
	}
}

func TestRunNotEmpty(t *testing.T) {
	c := Check{
		Path:     "/app/.next/BUILD_ID",
		NotEmpty: true,
		FS: &mockFileSystem{
			StatFunc: func(name string) (fs.FileInfo, error) {
				return &mockFileInfo{SizeValue: 0}, nil
			},
		},
	}

	result := c.Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want FAIL for empty file", result.Status)
	}
	if !testutil.ContainsDetail(result.Details, "empty") {
		t.Errorf("missing empty detail, got %v", result.Details)
	}
}

func TestRunContent(t *testing.T) {
	fsys := &mockFileSystem{
		StatFunc: func(name string) (fs.FileInfo, error) {
			return &mockFileInfo{SizeValue: 12}, nil
		},
		ReadFileFunc: func(name string) ([]byte, error) {
			return []byte("abc123def456"), nil
		},
	}

	tests := []struct {
		name     string
		contains string
		match    string
		want     check.Status
	}{
		{"contains present", "abc123", "", check.StatusOK},
		{"contains absent", "xyz", "", check.StatusFail},
		{"match hits", "", `^[a-f0-9]+$`, check.StatusOK},
		{"match misses", "", `^\d+$`, check.StatusFail},
		{"invalid pattern", "", `[`, check.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Check{Path: "/app/.next/BUILD_ID", Contains: tt.contains, Match: tt.match, FS: fsys}
			if result := c.Run(); result.Status != tt.want {
				t.Errorf("Status = %v, want %v (details: %v)", result.Status, tt.want, result.Details)
			}
		})
	}
}

func TestRunReadError(t *testing.T) {
	c := Check{
		Path:     "/app/.next/BUILD_ID",
		Contains: "abc",
		FS: &mockFileSystem{
			StatFunc: func(name string) (fs.FileInfo, error) {
				return &mockFileInfo{SizeValue: 3}, nil
			},
			ReadFileFunc: func(name string) ([]byte, error) {
				return nil, errors.New("read error")
			},
		},
	}

	if result := c.Run(); result.Status != check.StatusFail {
		t.Errorf("Status = %v, want FAIL on read error", result.Status)
	}
}
