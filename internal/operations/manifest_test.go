package operations

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunManifest(t *testing.T) {
	t.Run("Counts", func(t *testing.T) {
		steps := []StepResult{
			{ID: "load", Status: StepStatusCompleted},
			{ID: "hdi", Status: StepStatusSkipped, Missing: []string{"IDH"}},
			{ID: "save", Status: StepStatusFailed, Error: "permission denied"},
		}
		m := NewRunManifest(JobIngest, "run", time.Now(), steps)

		assert.Equal(t, ManifestStatusFailed, m.Status)
		assert.Equal(t, 1, m.Completed)
		assert.Equal(t, 1, m.Skipped)
		assert.Equal(t, 1, m.Failed)
		assert.Contains(t, m.Error, "save")
	})

	t.Run("EmptyRun", func(t *testing.T) {
		m := NewRunManifest(JobReport, "run", time.Now(), nil)
		assert.Equal(t, ManifestStatusCompleted, m.Status)
		assert.NotNil(t, m.Steps)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "manifest_ingest.json")
		m := NewRunManifest(JobIngest, "run-42", time.Now(), []StepResult{
			{ID: "merge", Name: "Merge", Status: StepStatusCompleted, Rows: 5, Outputs: []string{"dados_completos.csv"}},
		})

		require.NoError(t, m.SaveToFile(path))

		loaded, err := LoadManifestFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "run-42", loaded.RunID)
		require.Len(t, loaded.Steps, 1)
		assert.Equal(t, 5, loaded.Steps[0].Rows)
		assert.Equal(t, StepStatusCompleted, loaded.Steps[0].Status)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := LoadManifestFromFile(filepath.Join(t.TempDir(), "none.json"))
		assert.Error(t, err)
	})
}
