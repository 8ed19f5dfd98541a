package models

import "time"

// GenerationRun records one invocation of the external heatmap generator
type GenerationRun struct {
	ID  string `json:"id" db:"id"`
	Key string `json:"key" db:"run_key"` // comma-joined K sequence

	// Input
	Ks []int `json:"ks" db:"-"`

	// Status
	Status     string `json:"status" db:"status"` // running, completed, failed
	ExitCode   int    `json:"exit_code" db:"exit_code"`
	DurationMs int64  `json:"duration_ms" db:"duration_ms"`

	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// RunStatus constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
