package operations

import (
	"time"
)

// Job names
const (
	JobIngest = "ingest"
	JobReport = "report"
)

// StepStatus represents the final status of a step
type StepStatus string

const (
	StepStatusCompleted StepStatus = "completed"
	StepStatusSkipped   StepStatus = "skipped"
	StepStatusFailed    StepStatus = "failed"
)

// StepResult records the outcome of one step
type StepResult struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Status   StepStatus    `json:"status"`
	Missing  []string      `json:"missing,omitempty"`
	Outputs  []string      `json:"outputs,omitempty"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// Completed builds a completed result for rows rows and the given output files.
func Completed(rows int, outputs ...string) StepResult {
	return StepResult{Status: StepStatusCompleted, Rows: rows, Outputs: outputs}
}

// Skipped builds a skipped result naming the missing columns.
func Skipped(missing []string) StepResult {
	return StepResult{Status: StepStatusSkipped, Missing: missing}
}

// IsSkipped reports whether the step was skipped
func (r StepResult) IsSkipped() bool {
	return r.Status == StepStatusSkipped
}

// IsFailed reports whether the step failed
func (r StepResult) IsFailed() bool {
	return r.Status == StepStatusFailed
}
