// Package testutil locates repository fixtures for tests run under Bazel
// or plain go test.
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/bazelbuild/rules_go/go/tools/bazel"
	"github.com/stretchr/testify/require"
)

// ErrNoModuleRoot is returned when no go.mod is found above the working
// directory.
var ErrNoModuleRoot = errors.New("go.mod not found in any parent directory")

// ModuleRoot walks up from the working directory to the directory holding
// go.mod.
func ModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoModuleRoot
		}
		dir = parent
	}
}

// Path resolves rel, a slash-separated path from the repository root.
// Bazel runfiles win; otherwise the module root is used.
func Path(rel string) (string, error) {
	if p, err := bazel.Runfile(rel); err == nil {
		return p, nil
	}
	root, err := ModuleRoot()
	if err != nil {
		return "", err
	}
	p := filepath.Join(root, filepath.FromSlash(rel))
	if _, err := os.Stat(p); err != nil {
		return "", err
	}
	return p, nil
}

// MustPath is Path failing t on error.
func MustPath(t testing.TB, rel string) string {
	t.Helper()
	p, err := Path(rel)
	require.NoError(t, err, "locating %s", rel)
	return p
}

// ReadFile returns the contents of the fixture at rel.
func ReadFile(t testing.TB, rel string) string {
	t.Helper()
	data, err := os.ReadFile(MustPath(t, rel))
	require.NoError(t, err)
	return string(data)
}

// Glob lists the fixtures in dir matching pattern, sorted.
func Glob(t testing.TB, dir, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(MustPath(t, dir), pattern))
	require.NoError(t, err)
	sort.Strings(matches)
	return matches
}
