// Package storage provides SQLite-based persistence for walk run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridwalk/internal/walk"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord describes one completed run.
type RunRecord struct {
	ID         int64
	Steps      int // Configured step budget per walker
	Directions int
	Policy     string
	Walkers    int
	Seed       int64
	GridW      int
	GridH      int
	TotalSteps int // Steps actually taken across all walkers
	Trapped    int // Walkers that terminated trapped
	OutputPath string
	CreatedAt  time.Time
}

// WalkerRecord is the per-walker diagnostic row of a run.
type WalkerRecord struct {
	RunID    int64
	Walker   int
	Reason   string
	Steps    int
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			steps INTEGER NOT NULL,
			directions INTEGER NOT NULL,
			policy TEXT NOT NULL,
			walkers INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			grid_w INTEGER NOT NULL,
			grid_h INTEGER NOT NULL,
			total_steps INTEGER NOT NULL,
			trapped INTEGER NOT NULL,
			output_path TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_walkers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			walker INTEGER NOT NULL,
			reason TEXT NOT NULL,
			steps INTEGER NOT NULL,
			start_row INTEGER NOT NULL,
			start_col INTEGER NOT NULL,
			end_row INTEGER NOT NULL,
			end_col INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_run_walkers_run ON run_walkers(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed run and its per-walker diagnostics.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(rec RunRecord, reports []walk.Report) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs
		 (steps, directions, policy, walkers, seed, grid_w, grid_h, total_steps, trapped, output_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Steps, rec.Directions, rec.Policy, rec.Walkers, rec.Seed,
		rec.GridW, rec.GridH, rec.TotalSteps, rec.Trapped, rec.OutputPath,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, rep := range reports {
		_, err := tx.Exec(
			`INSERT INTO run_walkers
			 (run_id, walker, reason, steps, start_row, start_col, end_row, end_col)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, rep.Walker, rep.Reason.String(), rep.Steps,
			rep.Start.Row, rep.Start.Col, rep.End.Row, rep.End.Col,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save walker %d: %w", rep.Walker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, steps, directions, policy, walkers, seed, grid_w, grid_h,
		        total_steps, trapped, output_path, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt any
		var outputPath sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.Steps, &rec.Directions, &rec.Policy, &rec.Walkers,
			&rec.Seed, &rec.GridW, &rec.GridH, &rec.TotalSteps, &rec.Trapped,
			&outputPath, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if outputPath.Valid {
			rec.OutputPath = outputPath.String
		}
		rec.CreatedAt = parseCreatedAt(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// RunWalkers retrieves the per-walker diagnostics of one run, ordered
// by walker index.
func (s *Store) RunWalkers(runID int64) ([]WalkerRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, walker, reason, steps, start_row, start_col, end_row, end_col
		 FROM run_walkers
		 WHERE run_id = ?
		 ORDER BY walker`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query walkers: %w", err)
	}
	defer rows.Close()

	var records []WalkerRecord
	for rows.Next() {
		var rec WalkerRecord
		if err := rows.Scan(
			&rec.RunID, &rec.Walker, &rec.Reason, &rec.Steps,
			&rec.StartRow, &rec.StartCol, &rec.EndRow, &rec.EndCol,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// ClearRuns deletes all recorded runs and their walker rows.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM run_walkers"); err != nil {
		return fmt.Errorf("storage: cannot clear walkers: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseCreatedAt handles both time.Time and string datetime columns.
func parseCreatedAt(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
