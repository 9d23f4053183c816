package iostore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver (no cgo)

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
)

// scorecardsTable is the append-only scorecard history table.
const scorecardsTable = "flowlens_scorecards"

// ScorecardStoreImpl implements the ScorecardStore interface.
type ScorecardStoreImpl struct {
	db         *sql.DB
	backend    schema.StoreBackend
	driverName string
}

var _ contract.ScorecardStore = &ScorecardStoreImpl{} // Compile-time check

// NewScorecardStore creates a new ScorecardStore with the specified backend.
func NewScorecardStore(backend schema.StoreBackend, connStr string) (contract.ScorecardStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetScorecardDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &ScorecardStoreImpl{db: nil, backend: backend, driverName: ""}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateScorecardsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", scorecardsTable, err)
	}

	return &ScorecardStoreImpl{db: db, backend: backend, driverName: driverName}, nil
}

// getCreateScorecardsQuery returns the CREATE TABLE query for the backend.
func getCreateScorecardsQuery(backend schema.StoreBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id VARCHAR(36) PRIMARY KEY,
				scope VARCHAR(32) NOT NULL,
				scope_id VARCHAR(255) NOT NULL,
				window_start DATETIME(6) NOT NULL,
				window_end DATETIME(6) NOT NULL,
				overall_score DOUBLE NOT NULL,
				dimension_scores TEXT NOT NULL,
				metrics TEXT NOT NULL,
				created_at DATETIME(6) NOT NULL
			);
		`, scorecardsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id VARCHAR(36) PRIMARY KEY,
				scope VARCHAR(32) NOT NULL,
				scope_id VARCHAR(255) NOT NULL,
				window_start TIMESTAMPTZ NOT NULL,
				window_end TIMESTAMPTZ NOT NULL,
				overall_score DOUBLE PRECISION NOT NULL,
				dimension_scores TEXT NOT NULL,
				metrics TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, scorecardsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				scope TEXT NOT NULL,
				scope_id TEXT NOT NULL,
				window_start TEXT NOT NULL,
				window_end TEXT NOT NULL,
				overall_score REAL NOT NULL,
				dimension_scores TEXT NOT NULL,
				metrics TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`, scorecardsTable)
	}
}

// Save appends one scorecard to the history.
func (s *ScorecardStoreImpl) Save(sc *schema.Scorecard) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	dimJSON, err := json.Marshal(sc.Dimensions)
	if err != nil {
		return fmt.Errorf("failed to marshal dimension scores: %w", err)
	}
	metricsJSON, err := json.Marshal(sc.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s
			(id, scope, scope_id, window_start, window_end, overall_score, dimension_scores, metrics, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, scorecardsTable)
		_, err = s.db.Exec(query, sc.ID, sc.Scope, sc.ScopeID, sc.WindowStart, sc.WindowEnd,
			sc.OverallScore, string(dimJSON), string(metricsJSON), sc.CreatedAt)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s
			(id, scope, scope_id, window_start, window_end, overall_score, dimension_scores, metrics, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, scorecardsTable)
		_, err = s.db.Exec(query, sc.ID, sc.Scope, sc.ScopeID,
			s.formatTime(sc.WindowStart), s.formatTime(sc.WindowEnd),
			sc.OverallScore, string(dimJSON), string(metricsJSON), s.formatTime(sc.CreatedAt))
	}
	if err != nil {
		return fmt.Errorf("failed to insert scorecard: %w", err)
	}
	return nil
}

// List returns the most recent scorecards, newest first.
func (s *ScorecardStoreImpl) List(limit int) ([]schema.ScorecardRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT id, scope, scope_id, window_start, window_end, overall_score, dimension_scores, metrics, created_at
			FROM %s ORDER BY created_at DESC LIMIT $1`, scorecardsTable)
	default:
		query = fmt.Sprintf(`SELECT id, scope, scope_id, window_start, window_end, overall_score, dimension_scores, metrics, created_at
			FROM %s ORDER BY created_at DESC LIMIT ?`, scorecardsTable)
	}

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecards: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return s.scanScorecards(rows)
}

// GetAllScorecards returns the full history for export.
func (s *ScorecardStoreImpl) GetAllScorecards() ([]schema.ScorecardRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT id, scope, scope_id, window_start, window_end, overall_score, dimension_scores, metrics, created_at
		FROM %s ORDER BY created_at ASC`, scorecardsTable)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to read scorecards: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return s.scanScorecards(rows)
}

// scanScorecards decodes rows into flattened records.
func (s *ScorecardStoreImpl) scanScorecards(rows *sql.Rows) ([]schema.ScorecardRecord, error) {
	var records []schema.ScorecardRecord
	for rows.Next() {
		var rec schema.ScorecardRecord
		var dimJSON, metricsJSON string
		var windowStart, windowEnd, createdAt any

		switch s.backend {
		case schema.SQLiteBackend:
			windowStart, windowEnd, createdAt = new(string), new(string), new(string)
		default: // MySQL and PostgreSQL store native datetimes
			windowStart, windowEnd, createdAt = new(time.Time), new(time.Time), new(time.Time)
		}

		if err := rows.Scan(&rec.ID, &rec.Scope, &rec.ScopeID, windowStart, windowEnd,
			&rec.OverallScore, &dimJSON, &metricsJSON, createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan scorecard row: %w", err)
		}

		var err error
		if rec.WindowStart, err = s.decodeTime(windowStart); err != nil {
			return nil, err
		}
		if rec.WindowEnd, err = s.decodeTime(windowEnd); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = s.decodeTime(createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(dimJSON), &rec.DimensionScores); err != nil {
			return nil, fmt.Errorf("failed to decode dimension scores for %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(metricsJSON), &rec.Metrics); err != nil {
			return nil, fmt.Errorf("failed to decode metrics for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetStatus returns status information about the store.
func (s *ScorecardStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{Backend: string(s.backend)}
	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	if err := s.db.Ping(); err != nil {
		return status, fmt.Errorf("store is not reachable: %w", err)
	}
	status.Connected = true

	row := s.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, scorecardsTable))
	if err := row.Scan(&status.TotalScorecards); err != nil {
		return status, fmt.Errorf("failed to count scorecards: %w", err)
	}
	if status.TotalScorecards == 0 {
		return status, nil
	}

	var newest, oldest any
	switch s.backend {
	case schema.SQLiteBackend:
		newest, oldest = new(string), new(string)
	default:
		newest, oldest = new(time.Time), new(time.Time)
	}
	row = s.db.QueryRow(fmt.Sprintf(`SELECT MAX(created_at), MIN(created_at) FROM %s`, scorecardsTable))
	if err := row.Scan(newest, oldest); err != nil {
		return status, fmt.Errorf("failed to read scorecard timestamps: %w", err)
	}

	var err error
	if status.LastCreatedAt, err = s.decodeTime(newest); err != nil {
		return status, err
	}
	if status.OldestCreatedAt, err = s.decodeTime(oldest); err != nil {
		return status, err
	}
	return status, nil
}

// Clear removes all stored scorecards.
func (s *ScorecardStoreImpl) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s`, scorecardsTable)); err != nil {
		return fmt.Errorf("failed to clear scorecards: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *ScorecardStoreImpl) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// formatTime renders a timestamp for backends that store text or need a
// driver-side string (SQLite stores RFC3339Nano text; MySQL accepts the
// datetime literal).
func (s *ScorecardStoreImpl) formatTime(t time.Time) any {
	switch s.backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	case schema.MySQLBackend:
		return t.UTC().Format("2006-01-02 15:04:05.999999")
	default:
		return t
	}
}

// decodeTime converts a scanned timestamp back to time.Time.
func (s *ScorecardStoreImpl) decodeTime(v any) (time.Time, error) {
	switch tv := v.(type) {
	case *time.Time:
		return *tv, nil
	case *string:
		t, err := time.Parse(time.RFC3339Nano, *tv)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", *tv, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
	}
}
