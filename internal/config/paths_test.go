package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Output.BaseDir = base
	cfg.Input.SchoolFile = "/abs/censo.csv"

	paths, err := NewPaths(cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "dados", "enem_2022_amostra.csv"), paths.ExamInput)
	assert.Equal(t, "/abs/censo.csv", paths.SchoolInput)
	assert.Equal(t, filepath.Join(base, "dados_tratados", "enem_tratado.csv"), paths.ExamCleanCSV)
	assert.Equal(t, filepath.Join(base, "dados_tratados", "dados_completos.csv"), paths.CompleteCSV)
	assert.Equal(t, filepath.Join(base, "dados_para_dashboard", "dados_dashboard.csv"), paths.DashboardCSV)
	assert.Equal(t, filepath.Join(base, "analises", "idh_vs_media.xlsx"), paths.GetAnalysisPath("idh_vs_media"))
	assert.Equal(t, filepath.Join(base, "visualizacoes", "radar.xlsx"), paths.GetVisualizationPath("radar"))
	assert.Equal(t, filepath.Join(base, "manifest_ingest.json"), paths.GetManifestPath("ingest"))
	assert.Equal(t, filepath.Join(base, "logs", "enem.log"), paths.GetLogPath("logs/enem.log"))
}

func TestNewPaths_DefaultsToWorkingDirectory(t *testing.T) {
	dir := chdirTemp(t)

	paths, err := NewPaths(Default())
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(paths.BaseDir)
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	cfg := Default()
	cfg.Output.BaseDir = t.TempDir()
	paths, err := NewPaths(cfg)
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.CleanDir, paths.AnalysisDir, paths.VisualizationDir, paths.DashboardDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.True(t, FileExists(paths.CleanDir))
	assert.False(t, FileExists(filepath.Join(paths.CleanDir, "missing.csv")))
}
