package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for every file the pipeline reads or writes.
type Paths struct {
	BaseDir          string
	CleanDir         string
	AnalysisDir      string
	VisualizationDir string
	DashboardDir     string

	// Raw inputs
	ExamInput         string
	SchoolInput       string
	MunicipalityInput string

	// Cleaned and merged tables
	ExamCleanCSV         string
	SchoolCleanCSV       string
	MunicipalityCleanCSV string
	CompleteCSV          string

	// Dashboard export
	DashboardCSV string
}

// NewPaths resolves every path in cfg against the output base directory.
// An empty base directory means the current working directory.
func NewPaths(cfg *Config) (*Paths, error) {
	base := cfg.Output.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	cleanDir := resolve(cfg.Output.CleanDir)
	dashboardDir := resolve(cfg.Output.DashboardDir)

	return &Paths{
		BaseDir:          base,
		CleanDir:         cleanDir,
		AnalysisDir:      resolve(cfg.Output.AnalysisDir),
		VisualizationDir: resolve(cfg.Output.VisualizationDir),
		DashboardDir:     dashboardDir,

		ExamInput:         resolve(cfg.Input.ExamFile),
		SchoolInput:       resolve(cfg.Input.SchoolFile),
		MunicipalityInput: resolve(cfg.Input.MunicipalityFile),

		ExamCleanCSV:         filepath.Join(cleanDir, "enem_tratado.csv"),
		SchoolCleanCSV:       filepath.Join(cleanDir, "censo_escolar_tratado.csv"),
		MunicipalityCleanCSV: filepath.Join(cleanDir, "municipios_tratado.csv"),
		CompleteCSV:          filepath.Join(cleanDir, "dados_completos.csv"),

		DashboardCSV: filepath.Join(dashboardDir, "dados_dashboard.csv"),
	}, nil
}

// EnsureDirectories creates all output directories
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.CleanDir,
		p.AnalysisDir,
		p.VisualizationDir,
		p.DashboardDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetAnalysisPath returns the path of an exploratory-analysis chart
func (p *Paths) GetAnalysisPath(name string) string {
	return filepath.Join(p.AnalysisDir, name+".xlsx")
}

// GetVisualizationPath returns the path of a dashboard visualization chart
func (p *Paths) GetVisualizationPath(name string) string {
	return filepath.Join(p.VisualizationDir, name+".xlsx")
}

// GetManifestPath returns the run manifest path for a job
func (p *Paths) GetManifestPath(job string) string {
	return filepath.Join(p.BaseDir, fmt.Sprintf("manifest_%s.json", job))
}

// GetLogPath resolves a log file path against the base directory
func (p *Paths) GetLogPath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(p.BaseDir, filePath)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Path resolution",
		slog.String("base_dir", p.BaseDir),
		slog.String("exam_input", p.ExamInput),
		slog.String("school_input", p.SchoolInput),
		slog.String("municipality_input", p.MunicipalityInput),
		slog.String("clean_dir", p.CleanDir),
		slog.String("analysis_dir", p.AnalysisDir),
		slog.String("visualization_dir", p.VisualizationDir),
		slog.String("dashboard_dir", p.DashboardDir))
}
