// Package testutil provides common test helpers for the rpg project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()
	return writeTemp(t, "config.toml", content, 0600)
}

// TempStateFile creates a temporary state.json with the given content
// and returns its path.
func TempStateFile(t *testing.T, content string) string {
	t.Helper()
	return writeTemp(t, "state.json", content, 0600)
}

// TempRCFile creates a temporary shell startup file (.bashrc) with the given
// content and returns its path.
func TempRCFile(t *testing.T, content string) string {
	t.Helper()
	return writeTemp(t, ".bashrc", content, 0644)
}

// FakeHome points HOME at a fresh temporary directory and returns it.
// SHELL is set to the given shell path when non-empty.
func FakeHome(t *testing.T, shellPath string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	if shellPath != "" {
		t.Setenv("SHELL", shellPath)
	}
	return home
}

// ReadFile reads path and fails the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func writeTemp(t *testing.T, name, content string, perm os.FileMode) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("writeTemp: write %s failed: %v", name, err)
	}

	return path
}
