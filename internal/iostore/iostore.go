// Package iostore persists scorecard history across analysis runs.
package iostore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
)

// flowlensDirName is the per-user data directory.
const flowlensDirName = ".flowlens"

// Name of the default SQLite history file.
const scorecardDBFileName = "scorecards.db"

// Store is the global scorecard store, set up once per process.
var (
	storeMu sync.RWMutex
	store   contract.ScorecardStore
)

// InitStore initializes the global scorecard store with the validated
// backend configuration.
func InitStore(backend schema.StoreBackend, connStr string) error {
	s, err := NewScorecardStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize scorecard store: %w", err)
	}
	storeMu.Lock()
	store = s
	storeMu.Unlock()
	return nil
}

// GetStore returns the process-wide scorecard store.
func GetStore() contract.ScorecardStore {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return store
}

// CloseStore closes the global store if initialized.
func CloseStore() {
	storeMu.Lock()
	defer storeMu.Unlock()
	if store != nil {
		if err := store.Close(); err != nil {
			contract.LogWarn("Failed to close scorecard store", err)
		}
		store = nil
	}
}

// GetScorecardDBFilePath returns the default SQLite database location,
// creating the data directory if needed.
func GetScorecardDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, flowlensDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filepath.Join(".", scorecardDBFileName)
	}
	return filepath.Join(dir, scorecardDBFileName)
}
