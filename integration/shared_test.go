//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// Fixture files, relative to the project root the binary runs from.
const (
	recordsFile     = "integration/testdata/records.json"
	commitmentsFile = "integration/testdata/commitments.csv"
	calendarFile    = "integration/testdata/calendar.yaml"
)

var (
	// sharedFlowlensPath holds the path to a shared flowlens binary built once for all tests.
	sharedFlowlensPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getFlowlensBinary returns the path to the flowlens binary, building it once if needed.
func getFlowlensBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "flowlens-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		flowlensPath := filepath.Join(tempDir, "flowlens")
		buildCmd := exec.Command("go", "build", "-o", flowlensPath, "./cmd/flowlens")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build flowlens: %v", err))
		}

		sharedFlowlensPath = flowlensPath
	})

	return sharedFlowlensPath
}

// runFlowlensCommand runs the shared binary from the project root.
func runFlowlensCommand(t *testing.T, args ...string) error {
	flowlensPath := getFlowlensBinary()
	cmd := exec.Command(flowlensPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
