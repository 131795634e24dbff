package model

import "time"

// Cleaning run statuses as persisted in the run store.
const (
	RunPending   = "pending"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// CleanStats counts what happened to the rows of one cleaning run. Dropped
// rows are a diagnostic, not a failure: a run only fails on ReadError or
// SchemaError.
type CleanStats struct {
	RowsIn      int `json:"rows_in"`
	RowsKept    int `json:"rows_kept"`
	RowsDropped int `json:"rows_dropped"`
}

// CleaningRun tracks one institution's cleaning execution end to end.
// RetryOf links a rerun back to the run it retries.
type CleaningRun struct {
	ID           string     `json:"id"`
	Institution  string     `json:"institution"`
	Status       string     `json:"status"`
	Stats        CleanStats `json:"stats"`
	ArtifactPath string     `json:"artifact_path,omitempty"`
	RetryOf      string     `json:"retry_of,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RunError is one error recorded against a cleaning run.
type RunError struct {
	Stage     string    `json:"stage"` // "load", "clean", "write"
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
