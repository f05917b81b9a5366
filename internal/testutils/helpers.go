// Package testutils holds helpers shared by the package tests: document
// fixtures on an afero filesystem and a filesystem that fails on demand.
package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// WriteDocument writes content to path on fs, creating parent directories.
func WriteDocument(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()

	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

// ReadDocument returns the content of path on fs.
func ReadDocument(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(raw)
}

// AssertFilePermissions checks the permission bits of path on fs.
func AssertFilePermissions(t *testing.T, fs afero.Fs, path string, expectedMode os.FileMode) {
	t.Helper()

	info, err := fs.Stat(path)
	require.NoError(t, err)

	actualMode := info.Mode().Perm()
	require.Equal(t, expectedMode, actualMode,
		"File %s has incorrect permissions: got %o, want %o",
		path, actualMode, expectedMode)
}

// AssertNoTempFiles checks that dir holds no leftover temporary files.
func AssertNoTempFiles(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()

	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temporary file %s", e.Name())
	}
}

// WaitFor polls cond until it holds or timeout passes.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}
