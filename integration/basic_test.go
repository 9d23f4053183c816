//go:build basic

// Package integration contains integration tests for flowlens.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFlowlensCommands exercises every CLI command end to end against the
// bundled fixture data, with persistence disabled.
func TestFlowlensCommands(t *testing.T) {
	_ = os.Setenv("FLOWLENS_STORE_BACKEND", "none")
	defer func() { _ = os.Unsetenv("FLOWLENS_STORE_BACKEND") }()

	t.Run("analyze", func(t *testing.T) {
		err := runFlowlensCommand(t, "analyze", recordsFile,
			"--commitments", commitmentsFile,
			"--calendar", calendarFile,
			"--window", "26Q1")
		require.NoError(t, err)
	})

	t.Run("analyze json output", func(t *testing.T) {
		err := runFlowlensCommand(t, "analyze", recordsFile, "--output", "json")
		require.NoError(t, err)
	})

	t.Run("bottlenecks", func(t *testing.T) {
		err := runFlowlensCommand(t, "bottlenecks", recordsFile, "--threshold-days", "20")
		require.NoError(t, err)
	})

	t.Run("stuck", func(t *testing.T) {
		err := runFlowlensCommand(t, "stuck", recordsFile, "--stage", "in_uat", "--limit", "5")
		require.NoError(t, err)
	})

	t.Run("planning", func(t *testing.T) {
		err := runFlowlensCommand(t, "planning", "--commitments", commitmentsFile, "--team", "blue")
		require.NoError(t, err)
	})

	t.Run("windows", func(t *testing.T) {
		err := runFlowlensCommand(t, "windows", "--calendar", calendarFile)
		require.NoError(t, err)
	})

	t.Run("version", func(t *testing.T) {
		err := runFlowlensCommand(t, "version")
		require.NoError(t, err)
	})

	t.Run("unknown stage fails", func(t *testing.T) {
		err := runFlowlensCommand(t, "stuck", recordsFile, "--stage", "nosuchstage")
		require.Error(t, err)
	})
}
