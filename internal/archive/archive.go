// Package archive stores finished packing runs in an embedded SQLite
// database, so parameter sweeps can be compared and re-exported later.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"voxelpack/pkg/geometry"
)

// Run is one archived packing run. Circles are stored separately and loaded
// on demand.
type Run struct {
	ID              int64
	Created         time.Time
	Distribution    string
	Params          string // distribution parameters, JSON-encoded
	CellSize        float64
	MaxIterations   int
	Seed            uint64
	Accepted        int
	Exhausted       int
	PackingFraction float64
}

// Archive wraps the run database.
type Archive struct {
	db *sql.DB
}

// Open opens the archive at path, creating the file and schema when needed.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}

	// The archive is written from a single goroutine; one connection
	// avoids SQLite write contention entirely.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL;").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			distribution TEXT NOT NULL,
			params TEXT NOT NULL,
			cell_size REAL NOT NULL,
			max_iterations INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			exhausted INTEGER NOT NULL,
			packing_fraction REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS circles (
			run_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			r REAL NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// SaveRun stores a run and its accepted circles in one transaction and
// returns the assigned run ID. The run's own ID and Created fields are
// ignored; both are assigned here.
func (a *Archive) SaveRun(run Run, circles []geometry.Circle) (int64, error) {
	tx, err := a.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs
			(created_at, distribution, params, cell_size, max_iterations,
			 seed, accepted, exhausted, packing_fraction)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), run.Distribution, run.Params, run.CellSize,
		run.MaxIterations, int64(run.Seed), len(circles), run.Exhausted,
		run.PackingFraction,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO circles (run_id, seq, x, y, r) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare circle insert: %w", err)
	}
	defer stmt.Close()
	for i, c := range circles {
		if _, err := stmt.Exec(id, i, c.Center.X, c.Center.Y, c.Radius); err != nil {
			return 0, fmt.Errorf("failed to insert circle %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns all archived runs, oldest first.
func (a *Archive) ListRuns() ([]Run, error) {
	rows, err := a.db.Query(
		`SELECT id, created_at, distribution, params, cell_size,
			max_iterations, seed, accepted, exhausted, packing_fraction
		 FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadRun returns one archived run and its circles in acceptance order.
func (a *Archive) LoadRun(id int64) (Run, []geometry.Circle, error) {
	row := a.db.QueryRow(
		`SELECT id, created_at, distribution, params, cell_size,
			max_iterations, seed, accepted, exhausted, packing_fraction
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, nil, fmt.Errorf("run %d not found", id)
		}
		return Run{}, nil, err
	}

	rows, err := a.db.Query(`SELECT x, y, r FROM circles WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("failed to load circles for run %d: %w", id, err)
	}
	defer rows.Close()

	var circles []geometry.Circle
	for rows.Next() {
		var c geometry.Circle
		if err := rows.Scan(&c.Center.X, &c.Center.Y, &c.Radius); err != nil {
			return Run{}, nil, fmt.Errorf("failed to scan circle: %w", err)
		}
		circles = append(circles, c)
	}
	return run, circles, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var created int64
	var seed int64
	if err := s.Scan(&run.ID, &created, &run.Distribution, &run.Params,
		&run.CellSize, &run.MaxIterations, &seed, &run.Accepted,
		&run.Exhausted, &run.PackingFraction); err != nil {
		return Run{}, err
	}
	run.Created = time.Unix(created, 0)
	run.Seed = uint64(seed)
	return run, nil
}
