//go:build basic

// Package integration contains end-to-end tests for the gitshare CLI.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGitshareBasicCommands exercises the CLI end to end against this repository.
func TestGitshareBasicCommands(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	// Keep chart and cache artifacts out of the working tree.
	outputDir := t.TempDir()
	cacheDB := t.TempDir() + "/cache.db"
	_ = os.Setenv("GITSHARE_CACHE_DB_CONNECT", cacheDB)
	defer func() { _ = os.Unsetenv("GITSHARE_CACHE_DB_CONNECT") }()

	// Version always works
	require.NoError(t, runGitshareCommand(t, "version"))

	// Summary over an explicit range, skipping the slow blame pass
	require.NoError(t, runGitshareCommand(t, "summary", "2024", "2025",
		"--skip-loc", "--charts", "none", "--output-dir", outputDir))

	// Second run hits the cache
	require.NoError(t, runGitshareCommand(t, "summary", "2024", "2025",
		"--skip-loc", "--charts", "none", "--output-dir", outputDir))

	// Cache status and clear
	require.NoError(t, runGitshareCommand(t, "cache", "status"))
	require.NoError(t, runGitshareCommand(t, "cache", "clear"))
}
