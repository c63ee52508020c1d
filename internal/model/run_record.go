package model

import "time"

// Run statuses persisted in the history database.
const (
	// RunStatusSuccess marks a run that completed all its steps.
	RunStatusSuccess = "success"

	// RunStatusFailed marks a run that entered the failed state.
	RunStatusFailed = "failed"
)

// RunRecord is one persisted pipeline run. Records are stored in the
// history database so past runs can be listed and compared.
type RunRecord struct {
	// ID is the database row ID. Zero until the record is saved.
	ID int64

	// Image is the source image name or path the run processed.
	Image string

	// Command is the CLI command that produced the run (analyze,
	// generate, batch).
	Command string

	// Status is RunStatusSuccess or RunStatusFailed.
	Status string

	// Detail holds the failure cause or a short result summary.
	Detail string

	// Duration is the wall-clock time the run took.
	Duration time.Duration

	// CreatedAt is when the run finished.
	CreatedAt time.Time
}
