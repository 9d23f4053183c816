// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/flowlens/flowlens/schema"
)

// ScorecardStore defines the persistence collaborator for scorecards. The
// engine itself never persists; it hands completed scorecards to this
// interface. History is append-only: no update or delete of individual
// scorecards.
type ScorecardStore interface {
	// Save appends one scorecard to the history.
	Save(sc *schema.Scorecard) error

	// List returns the most recent scorecards, newest first.
	List(limit int) ([]schema.ScorecardRecord, error)

	// GetAllScorecards returns the full history for export.
	GetAllScorecards() ([]schema.ScorecardRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all stored scorecards.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// RecordSource loads engine inputs from an external shape (CSV, JSON).
// It exists so the analysis executors can be tested with synthetic data.
type RecordSource interface {
	LoadFlowRecords(path string) ([]schema.IssueFlowRecord, error)
	LoadCommitments(path string) ([]schema.PICommitmentRecord, error)
	LoadPICalendar(path string) ([]schema.PIWindow, error)
}

// Clock abstracts time.Now for deterministic window resolution in tests.
type Clock func() time.Time
