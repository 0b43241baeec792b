package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/config"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/dataprocessing"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/exporter"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/infrastructure"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/operations"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/reporting"
)

const (
	VERSION = infrastructure.ServiceVersion
	AppName = "ENEM Pipeline - indicadores educacionais"
)

// Application represents the main application container
type Application struct {
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
	Writer    *exporter.CSVWriter
	Cleaner   *dataprocessing.Cleaner
	Reporter  *reporting.Reporter
}

// Options override configuration values from the command line
type Options struct {
	ConfigFile string
	BaseDir    string
}

// NewApplication loads the configuration, initializes the global logger and
// wires every component.
func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.BaseDir != "" {
		cfg.Output.BaseDir = opts.BaseDir
	}

	paths, err := config.NewPaths(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	cfg.Logging.FilePath = paths.GetLogPath(cfg.Logging.FilePath)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, paths, logger)
}

// New wires an application from an already loaded configuration.
func New(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))
	paths.LogPathResolution(logger)

	telemetryCfg := cfg.Telemetry
	if telemetryCfg.TraceFile != "" {
		telemetryCfg.TraceFile = paths.GetLogPath(telemetryCfg.TraceFile)
	}
	if telemetryCfg.MetricsFile != "" {
		telemetryCfg.MetricsFile = paths.GetLogPath(telemetryCfg.MetricsFile)
	}
	telemetry, err := infrastructure.InitializeTelemetry(telemetryCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	writer := exporter.NewCSVWriter(paths, infrastructure.WithComponent(logger, "exporter"))

	inputOpts := dataprocessing.LoadOptions{
		Delimiter: cfg.InputDelimiter(),
		Encoding:  cfg.Input.Encoding,
	}
	cleaner := dataprocessing.NewCleaner(inputOpts, telemetry.Metrics, infrastructure.WithComponent(logger, "cleaner"))

	reporter := reporting.NewReporter(paths, writer, reporting.Options{
		Load:  dataprocessing.LoadOptions{Delimiter: cfg.OutputDelimiter(), Encoding: "utf-8"},
		Write: writeOptions(cfg),
	}, telemetry.Metrics, infrastructure.WithComponent(logger, "reporter"))

	return &Application{
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		Telemetry: telemetry,
		Writer:    writer,
		Cleaner:   cleaner,
		Reporter:  reporter,
	}, nil
}

func writeOptions(cfg *config.Config) exporter.WriteOptions {
	return exporter.WriteOptions{
		Delimiter: cfg.OutputDelimiter(),
		BOMPrefix: cfg.Output.BOM,
	}
}

// RunIngest loads, cleans and merges the raw inputs and persists the four
// tables. Nothing is written when a load fails.
func (a *Application) RunIngest(ctx context.Context) (*operations.RunManifest, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	if err := a.Paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	runner := operations.NewRunner(operations.JobIngest, a.Telemetry.Tracer, a.Telemetry.Metrics, a.Logger)
	a.Logger.InfoContext(ctx, "Ingest started",
		slog.String("exam", a.Paths.ExamInput),
		slog.String("schools", a.Paths.SchoolInput),
		slog.String("municipalities", a.Paths.MunicipalityInput))

	res, err := a.Cleaner.Run(ctx, runner, dataprocessing.Inputs{
		Exam:           a.Paths.ExamInput,
		Schools:        a.Paths.SchoolInput,
		Municipalities: a.Paths.MunicipalityInput,
	})
	if err == nil {
		_, err = runner.Run(ctx, "persist", "Write cleaned tables", func(ctx context.Context) (operations.StepResult, error) {
			return a.persist(res)
		})
	}

	return a.finish(ctx, runner, err)
}

// persist writes each cleaned table and the merged table.
func (a *Application) persist(res *dataprocessing.IngestResult) (operations.StepResult, error) {
	opts := writeOptions(a.Config)
	tables := []struct {
		path string
		df   dataframe.DataFrame
	}{
		{a.Paths.ExamCleanCSV, res.Exam},
		{a.Paths.SchoolCleanCSV, res.Schools},
		{a.Paths.MunicipalityCleanCSV, res.Municipalities},
		{a.Paths.CompleteCSV, res.Complete},
	}

	var outputs []string
	for _, t := range tables {
		if err := a.Writer.WriteTable(t.path, t.df, opts); err != nil {
			return operations.StepResult{}, err
		}
		outputs = append(outputs, t.path)
	}
	return operations.Completed(res.Complete.Nrow(), outputs...), nil
}

// RunReport reloads the persisted tables and renders every report step.
// Skipped steps are not failures.
func (a *Application) RunReport(ctx context.Context) (*operations.RunManifest, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	if err := a.Paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	runner := operations.NewRunner(operations.JobReport, a.Telemetry.Tracer, a.Telemetry.Metrics, a.Logger)
	a.Logger.InfoContext(ctx, "Report started", slog.String("clean_dir", a.Paths.CleanDir))

	tables, err := a.Reporter.LoadTables(ctx, runner)
	if err == nil {
		_, err = a.Reporter.Run(ctx, runner, tables)
	}

	return a.finish(ctx, runner, err)
}

// Run executes the ingest job and then the report job.
func (a *Application) Run(ctx context.Context) error {
	ctx = infrastructure.EnsureRunID(ctx)
	if _, err := a.RunIngest(ctx); err != nil {
		return err
	}
	_, err := a.RunReport(ctx)
	return err
}

// finish writes the run manifest and logs the job summary.
func (a *Application) finish(ctx context.Context, runner *operations.Runner, runErr error) (*operations.RunManifest, error) {
	manifest := runner.Manifest(infrastructure.GetRunID(ctx))
	if runErr != nil && manifest.Error == "" {
		manifest.Status = operations.ManifestStatusFailed
		manifest.Error = runErr.Error()
	}

	path := a.Paths.GetManifestPath(runner.Job())
	if err := manifest.SaveToFile(path); err != nil {
		a.Logger.ErrorContext(ctx, "Failed to save manifest",
			slog.String("path", path),
			slog.String("error", err.Error()))
		runErr = errors.Join(runErr, err)
	}

	attrs := []any{
		slog.String("status", manifest.Status),
		slog.Int("completed", manifest.Completed),
		slog.Int("skipped", manifest.Skipped),
		slog.Int("failed", manifest.Failed),
		slog.String("duration", manifest.Duration),
		slog.String("manifest", path),
	}
	if skipped := manifest.SkippedSteps(); len(skipped) > 0 {
		attrs = append(attrs, slog.Any("skipped_steps", skipped))
	}
	if runErr != nil {
		a.Logger.ErrorContext(ctx, "Job failed", append(attrs, slog.String("job", runner.Job()), slog.String("error", runErr.Error()))...)
		return manifest, fmt.Errorf("%s job failed: %w", runner.Job(), runErr)
	}
	a.Logger.InfoContext(ctx, "Job finished", append(attrs, slog.String("job", runner.Job()))...)
	return manifest, nil
}

// Close flushes telemetry and closes the log file.
func (a *Application) Close(ctx context.Context) error {
	var err error
	if a.Telemetry != nil {
		err = a.Telemetry.Shutdown(ctx)
	}
	return errors.Join(err, infrastructure.CloseLogFile())
}
