package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gota/gota/dataframe"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/charts"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/config"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/dataprocessing"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/exporter"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/infrastructure"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/operations"
)

// maxHistogramBins caps the automatic bin count.
const maxHistogramBins = 50

// Tables are the persisted tables the report job reads.
type Tables struct {
	Exam     dataframe.DataFrame
	Schools  dataframe.DataFrame
	Complete dataframe.DataFrame
}

// Options configures how tables are reloaded and written.
type Options struct {
	Load  dataprocessing.LoadOptions
	Write exporter.WriteOptions
	// HistogramBins fixes the number of bins; zero picks it per column.
	HistogramBins int
}

// Reporter runs the report steps.
type Reporter struct {
	paths     *config.Paths
	dashboard *exporter.DashboardExporter
	opts      Options
	metrics   *infrastructure.PipelineMetrics
	logger    *slog.Logger
}

// NewReporter creates a reporter. metrics may be nil.
func NewReporter(paths *config.Paths, writer *exporter.CSVWriter, opts Options, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		paths:     paths,
		dashboard: exporter.NewDashboardExporter(writer, logger),
		opts:      opts,
		metrics:   metrics,
		logger:    logger,
	}
}

// step is one independent report artifact.
type step struct {
	id       string
	name     string
	table    func(Tables) dataframe.DataFrame
	required []string
	render   func(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error)
}

func exam(t Tables) dataframe.DataFrame     { return t.Exam }
func schools(t Tables) dataframe.DataFrame  { return t.Schools }
func complete(t Tables) dataframe.DataFrame { return t.Complete }

// steps lists the report in execution order.
func (r *Reporter) steps() []step {
	return append(r.analysisSteps(), r.visualizationSteps()...)
}

// StepIDs returns the ids of the report steps in execution order.
func (r *Reporter) StepIDs() []string {
	var ids []string
	for _, s := range r.steps() {
		ids = append(ids, s.id)
	}
	return ids
}

// LoadTables reloads the persisted tables. A table that cannot be read is
// fatal for the job.
func (r *Reporter) LoadTables(ctx context.Context, runner *operations.Runner) (Tables, error) {
	var t Tables
	sources := []struct {
		table string
		path  string
		dst   *dataframe.DataFrame
	}{
		{dataprocessing.TableExam, r.paths.ExamCleanCSV, &t.Exam},
		{dataprocessing.TableSchools, r.paths.SchoolCleanCSV, &t.Schools},
		{dataprocessing.TableComplete, r.paths.CompleteCSV, &t.Complete},
	}

	for _, src := range sources {
		_, err := runner.Run(ctx, "load_"+src.table, "Load "+src.table, func(ctx context.Context) (operations.StepResult, error) {
			df, err := dataprocessing.Load(src.path, r.opts.Load)
			if err != nil {
				return operations.StepResult{}, err
			}
			*src.dst = df
			r.metrics.RecordRows(ctx, src.table, df.Nrow())
			return operations.Completed(df.Nrow()), nil
		})
		if err != nil {
			return Tables{}, err
		}
	}
	return t, nil
}

// Run executes every report step. A step that fails is recorded and the
// remaining steps still run; the failures are returned joined.
func (r *Reporter) Run(ctx context.Context, runner *operations.Runner, tables Tables) ([]operations.StepResult, error) {
	var (
		results []operations.StepResult
		errs    []error
	)

	for _, s := range r.steps() {
		df := s.table(tables)
		res, err := runner.Run(ctx, s.id, s.name, func(ctx context.Context) (operations.StepResult, error) {
			out, err := dataprocessing.Guard(df, s.required, func() (operations.StepResult, error) {
				return s.render(ctx, df)
			})
			if err != nil {
				return operations.StepResult{}, err
			}
			if out.Skipped {
				return operations.Skipped(out.Missing), nil
			}
			return out.Value, nil
		})
		results = append(results, res)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.id, err))
		}
	}

	return results, errors.Join(errs...)
}

// anyOf splits candidates into the columns df has and the ones it lacks.
func anyOf(df dataframe.DataFrame, candidates []string) (present, missing []string) {
	return dataprocessing.PresentColumns(df, candidates), dataprocessing.MissingColumns(df, candidates)
}

// histogramBins is Sturges' rule, capped, unless a fixed count is configured.
func (r *Reporter) histogramBins(n int) int {
	if r.opts.HistogramBins > 0 {
		return r.opts.HistogramBins
	}
	if n < 2 {
		return 1
	}
	bins := int(math.Ceil(math.Log2(float64(n)))) + 1
	if bins > maxHistogramBins {
		bins = maxHistogramBins
	}
	return bins
}

// save writes wb to path and closes it.
func save(wb *charts.Workbook, path string) error {
	defer wb.Close()
	return wb.Save(path)
}

// labelsAndValues reads a category column and a value column from an
// aggregated table.
func labelsAndValues(df dataframe.DataFrame, labelCol, valueCol string) ([]string, []float64) {
	return df.Col(labelCol).Records(), dataprocessing.Floats(df, valueCol)
}
