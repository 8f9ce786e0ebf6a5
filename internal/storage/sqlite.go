// Package storage provides SQLite-based persistence for solve runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded solve of a scenario.
type Run struct {
	ID         string // uuid, assigned by SaveRun when empty
	ScenarioID string
	GridHash   string
	Width      int
	Height     int
	Visited    int
	Loops      int
	Strategy   string
	Workers    int
	Duration   time.Duration
	CreatedAt  time.Time
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
			id TEXT PRIMARY KEY,
			scenario_id TEXT NOT NULL,
			grid_hash TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			visited INTEGER NOT NULL,
			loops INTEGER NOT NULL,
			strategy TEXT NOT NULL,
			workers INTEGER NOT NULL DEFAULT 0,
			duration_ns INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario_id ON runs(scenario_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_grid_hash ON runs(grid_hash, created_at DESC);
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

// SaveRun records a solve. A missing ID or CreatedAt is filled in;
// the stored run is returned.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, scenario_id, grid_hash, width, height, visited, loops, strategy, workers, duration_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.ScenarioID,
		run.GridHash,
		run.Width,
		run.Height,
		run.Visited,
		run.Loops,
		run.Strategy,
		run.Workers,
		int64(run.Duration),
		run.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run, nil
}

const runColumns = `id, scenario_id, grid_hash, width, height, visited, loops,
	strategy, workers, duration_ns, created_at`

// RecentRuns retrieves the most recent runs across all scenarios.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsForScenario retrieves the most recent runs of one scenario.
func (s *Store) RunsForScenario(scenarioID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// LatestByHash returns the newest run of a grid with the given hash,
// or nil if the grid was never solved.
func (s *Store) LatestByHash(gridHash string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE grid_hash = ?
		 ORDER BY created_at DESC
		 LIMIT 1`,
		gridHash,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// ClearRuns deletes all runs of the given scenario.
func (s *Store) ClearRuns(scenarioID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scenario_id = ?", scenarioID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for one scenario.
type ScenarioStats struct {
	ScenarioID  string
	Runs        int
	AvgDuration time.Duration
	Fastest     time.Duration
	LastRun     time.Time
}

// Stats retrieves aggregated statistics for every scenario with runs,
// keyed by scenario ID.
func (s *Store) Stats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario_id, COUNT(*), AVG(duration_ns), MIN(duration_ns), MAX(created_at)
		 FROM runs
		 GROUP BY scenario_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var avg float64
		var fastest, last int64
		if err := rows.Scan(&st.ScenarioID, &st.Runs, &avg, &fastest, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.AvgDuration = time.Duration(avg)
		st.Fastest = time.Duration(fastest)
		st.LastRun = time.Unix(0, last)
		stats[st.ScenarioID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var durationNs, createdAt int64
	err := sc.Scan(
		&r.ID,
		&r.ScenarioID,
		&r.GridHash,
		&r.Width,
		&r.Height,
		&r.Visited,
		&r.Loops,
		&r.Strategy,
		&r.Workers,
		&durationNs,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.Duration = time.Duration(durationNs)
	r.CreatedAt = time.Unix(0, createdAt)
	return r, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}
