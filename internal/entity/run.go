package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus tracks the lifecycle of a scrape run.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunStopped   RunStatus = "stopped"
	RunFailed    RunStatus = "failed"
)

// Finished reports whether the run reached a terminal state.
func (s RunStatus) Finished() bool {
	switch s {
	case RunCompleted, RunStopped, RunFailed:
		return true
	}
	return false
}

// Run represents a single scrape execution and its progress counters.
type Run struct {
	ID              uuid.UUID  `json:"id"`
	Query           string     `json:"query"`
	Industry        string     `json:"industry"`
	Area            string     `json:"area"`
	Target          int        `json:"target"`
	IncludeSubAreas bool       `json:"include_sub_areas"`
	Status          RunStatus  `json:"status"`
	Message         string     `json:"message"`
	Processed       int        `json:"processed"`
	Found           int        `json:"found"`
	Filtered        int        `json:"filtered"`
	Duplicates      int        `json:"duplicates"`
	Error           string     `json:"error,omitempty"`
	RequestedBy     string     `json:"requested_by,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}
