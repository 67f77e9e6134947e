// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vlfom/predator-prey/internal/telemetry"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation.
type Run struct {
	ID            int64
	Scenario      string
	Preset        string // Empty when parameters were not taken from a preset
	Seed          int64
	Height        int
	Width         int
	PredVitality  int
	PreyFoodValue int
	SpawnRate     int
	Ticks         int
	FinalPrey     int
	FinalPred     int
	PreyExtinctAt int // -1 if prey never died out
	PredExtinctAt int // -1 if predators never died out
	Score         float64
	CreatedAt     time.Time
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
			scenario TEXT NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			height INTEGER NOT NULL,
			width INTEGER NOT NULL,
			pred_vitality INTEGER NOT NULL,
			prey_food_value INTEGER NOT NULL,
			spawn_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			final_prey INTEGER NOT NULL,
			final_predators INTEGER NOT NULL,
			prey_extinct_tick INTEGER,
			predator_extinct_tick INTEGER,
			score REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS samples (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			prey INTEGER NOT NULL,
			predators INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
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

func nullableTick(t int) sql.NullInt64 {
	if t < 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(t), Valid: true}
}

// SaveRun records a run and its population series in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run Run, samples []telemetry.Sample) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	result, err := tx.Exec(
		`INSERT INTO runs
		 (scenario, preset, seed, height, width, pred_vitality, prey_food_value, spawn_rate,
		  ticks, final_prey, final_predators, prey_extinct_tick, predator_extinct_tick, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Scenario,
		run.Preset,
		run.Seed,
		run.Height,
		run.Width,
		run.PredVitality,
		run.PreyFoodValue,
		run.SpawnRate,
		run.Ticks,
		run.FinalPrey,
		run.FinalPred,
		nullableTick(run.PreyExtinctAt),
		nullableTick(run.PredExtinctAt),
		run.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO samples (run_id, tick, prey, predators) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, smp := range samples {
		if _, err := stmt.Exec(id, smp.Tick, smp.Prey, smp.Predators); err != nil {
			return 0, fmt.Errorf("storage: cannot save sample at tick %d: %w", smp.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}

	return id, nil
}

const runColumns = `id, scenario, preset, seed, height, width, pred_vitality, prey_food_value,
	spawn_rate, ticks, final_prey, final_predators, prey_extinct_tick, predator_extinct_tick,
	score, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var preyExtinct, predExtinct sql.NullInt64
	var createdAt any

	err := row.Scan(
		&r.ID,
		&r.Scenario,
		&r.Preset,
		&r.Seed,
		&r.Height,
		&r.Width,
		&r.PredVitality,
		&r.PreyFoodValue,
		&r.SpawnRate,
		&r.Ticks,
		&r.FinalPrey,
		&r.FinalPred,
		&preyExtinct,
		&predExtinct,
		&r.Score,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	r.PreyExtinctAt, r.PredExtinctAt = -1, -1
	if preyExtinct.Valid {
		r.PreyExtinctAt = int(preyExtinct.Int64)
	}
	if predExtinct.Valid {
		r.PredExtinctAt = int(predExtinct.Int64)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}

	return r, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
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

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// BestRuns retrieves the highest scoring runs.
func (s *Store) BestRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// Samples retrieves the population series of a run in tick order.
func (s *Store) Samples(runID int64) ([]telemetry.Sample, error) {
	rows, err := s.db.Query(
		`SELECT tick, prey, predators
		 FROM samples
		 WHERE run_id = ?
		 ORDER BY tick`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var samples []telemetry.Sample
	for rows.Next() {
		var smp telemetry.Sample
		if err := rows.Scan(&smp.Tick, &smp.Prey, &smp.Predators); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		samples = append(samples, smp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return samples, nil
}

// DeleteRun removes a run and its samples in one transaction.
func (s *Store) DeleteRun(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec("DELETE FROM samples WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete samples: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}
