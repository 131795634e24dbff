package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"capitas-dashboard/internal/model"
)

var db *sql.DB

// InitDB opens the run store and creates its tables if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS cleaning_runs (
		id TEXT PRIMARY KEY,
		institution TEXT NOT NULL,
		status TEXT NOT NULL,
		rows_in INTEGER NOT NULL DEFAULT 0,
		rows_kept INTEGER NOT NULL DEFAULT 0,
		rows_dropped INTEGER NOT NULL DEFAULT 0,
		artifact_path TEXT NOT NULL DEFAULT '',
		retry_of TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		stage TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`

	if _, err := db.Exec(runTable); err != nil {
		return err
	}
	if _, err := db.Exec(errorTable); err != nil {
		return err
	}
	return nil
}

// Close closes the run store.
func Close() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// Runs exposes the run store through the interface the cleaning runner
// consumes.
type Runs struct{}

func (Runs) SaveRun(run *model.CleaningRun) error { return SaveRun(run) }
func (Runs) UpdateRunStatus(id, status string) error {
	return UpdateRunStatus(id, status)
}
func (Runs) SaveRunStats(id string, stats model.CleanStats, artifactPath string) error {
	return SaveRunStats(id, stats, artifactPath)
}
func (Runs) SaveRunError(id, stage string, err error) error {
	return SaveRunError(id, stage, err)
}

// SaveRun stores a new cleaning run.
func SaveRun(run *model.CleaningRun) error {
	_, err := db.Exec(
		`INSERT INTO cleaning_runs (id, institution, status, retry_of, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Institution, run.Status, run.RetryOf, run.CreatedAt, run.UpdatedAt)
	return err
}

// UpdateRunStatus moves a run to a new status.
func UpdateRunStatus(id, status string) error {
	_, err := db.Exec(
		`UPDATE cleaning_runs SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	return err
}

// SaveRunStats records the row diagnostics and artifact location of a run.
func SaveRunStats(id string, stats model.CleanStats, artifactPath string) error {
	_, err := db.Exec(
		`UPDATE cleaning_runs
		 SET rows_in = ?, rows_kept = ?, rows_dropped = ?, artifact_path = ?, updated_at = ?
		 WHERE id = ?`,
		stats.RowsIn, stats.RowsKept, stats.RowsDropped, artifactPath, time.Now().UTC(), id)
	return err
}

// SaveRunError records an error for a run.
func SaveRunError(id, stage string, runErr error) error {
	if runErr == nil {
		return nil
	}
	_, err := db.Exec(
		`INSERT INTO run_errors (run_id, stage, message, created_at) VALUES (?, ?, ?, ?)`,
		id, stage, runErr.Error(), time.Now().UTC())
	return err
}

// ListRuns returns all cleaning runs, newest first.
func ListRuns() ([]model.CleaningRun, error) {
	rows, err := db.Query(
		`SELECT id, institution, status, rows_in, rows_kept, rows_dropped,
		        artifact_path, retry_of, created_at, updated_at
		 FROM cleaning_runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.CleaningRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one cleaning run by id.
func GetRun(id string) (*model.CleaningRun, error) {
	row := db.QueryRow(
		`SELECT id, institution, status, rows_in, rows_kept, rows_dropped,
		        artifact_path, retry_of, created_at, updated_at
		 FROM cleaning_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRunErrors returns the errors recorded for a run, oldest first.
func GetRunErrors(id string) ([]model.RunError, error) {
	rows, err := db.Query(
		`SELECT stage, message, created_at FROM run_errors WHERE run_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []model.RunError
	for rows.Next() {
		var re model.RunError
		if err := rows.Scan(&re.Stage, &re.Message, &re.CreatedAt); err != nil {
			return nil, err
		}
		errs = append(errs, re)
	}
	return errs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (model.CleaningRun, error) {
	var run model.CleaningRun
	err := row.Scan(
		&run.ID, &run.Institution, &run.Status,
		&run.Stats.RowsIn, &run.Stats.RowsKept, &run.Stats.RowsDropped,
		&run.ArtifactPath, &run.RetryOf, &run.CreatedAt, &run.UpdatedAt)
	return run, err
}
