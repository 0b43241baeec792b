package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manifest statuses
const (
	ManifestStatusCompleted = "completed"
	ManifestStatusFailed    = "failed"
)

// RunManifest is the JSON summary of one job run
type RunManifest struct {
	Job       string       `json:"job"`
	RunID     string       `json:"run_id"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Duration  string       `json:"duration"`
	Status    string       `json:"status"`
	Completed int          `json:"completed"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Steps     []StepResult `json:"steps"`
	Error     string       `json:"error,omitempty"`
}

// NewRunManifest summarises steps. The run is failed if any step failed.
func NewRunManifest(job, runID string, start time.Time, steps []StepResult) *RunManifest {
	end := time.Now()
	m := &RunManifest{
		Job:       job,
		RunID:     runID,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start).String(),
		Status:    ManifestStatusCompleted,
		Steps:     steps,
	}
	if m.Steps == nil {
		m.Steps = []StepResult{}
	}

	for _, s := range steps {
		switch s.Status {
		case StepStatusCompleted:
			m.Completed++
		case StepStatusSkipped:
			m.Skipped++
		case StepStatusFailed:
			m.Failed++
			if m.Error == "" {
				m.Error = fmt.Sprintf("step %s failed: %s", s.ID, s.Error)
			}
		}
	}
	if m.Failed > 0 {
		m.Status = ManifestStatusFailed
	}
	return m
}

// SkippedSteps returns the ids of skipped steps
func (m *RunManifest) SkippedSteps() []string {
	var ids []string
	for _, s := range m.Steps {
		if s.Status == StepStatusSkipped {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// SaveToFile saves the manifest to a JSON file
func (m *RunManifest) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}

// LoadManifestFromFile loads a manifest from a JSON file
func LoadManifestFromFile(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}
