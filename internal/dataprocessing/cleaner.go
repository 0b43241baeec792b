package dataprocessing

import (
	"context"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/infrastructure"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/operations"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/pkg/contracts/domain"
)

// Table names used in logs, metrics and step ids
const (
	TableExam           = "exam"
	TableSchools        = "schools"
	TableMunicipalities = "municipalities"
	TableComplete       = "complete"
)

// Inputs are the three raw files read by the ingestion job
type Inputs struct {
	Exam           string
	Schools        string
	Municipalities string
}

// IngestResult holds the cleaned tables. Complete falls back to Exam when a
// join key is missing.
type IngestResult struct {
	Exam           dataframe.DataFrame
	Schools        dataframe.DataFrame
	Municipalities dataframe.DataFrame
	Complete       dataframe.DataFrame
	Derivations    []Derivation
}

// Cleaner runs the load, clean and merge steps of the ingestion job
type Cleaner struct {
	opts    LoadOptions
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
}

// NewCleaner creates a cleaner. metrics may be nil.
func NewCleaner(opts LoadOptions, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{opts: opts, metrics: metrics, logger: logger}
}

// Run loads and cleans the three inputs and merges them. A load error aborts
// the job; schema gaps only skip the affected derivations and joins.
func (c *Cleaner) Run(ctx context.Context, runner *operations.Runner, in Inputs) (*IngestResult, error) {
	res := &IngestResult{}

	var err error
	if res.Exam, err = c.loadStep(ctx, runner, TableExam, in.Exam); err != nil {
		return nil, err
	}
	if res.Exam, err = c.cleanStep(ctx, runner, TableExam, res.Exam, c.CleanExam, &res.Derivations); err != nil {
		return nil, err
	}

	if res.Schools, err = c.loadStep(ctx, runner, TableSchools, in.Schools); err != nil {
		return nil, err
	}
	if res.Schools, err = c.cleanStep(ctx, runner, TableSchools, res.Schools, c.CleanSchools, &res.Derivations); err != nil {
		return nil, err
	}

	if res.Municipalities, err = c.loadStep(ctx, runner, TableMunicipalities, in.Municipalities); err != nil {
		return nil, err
	}
	if res.Municipalities, err = c.cleanStep(ctx, runner, TableMunicipalities, res.Municipalities, c.CleanMunicipalities, &res.Derivations); err != nil {
		return nil, err
	}

	_, err = runner.Run(ctx, "merge", "Merge exam, municipalities and schools", func(ctx context.Context) (operations.StepResult, error) {
		complete, missing, err := c.Merge(res.Exam, res.Municipalities, res.Schools)
		if err != nil {
			return operations.StepResult{}, err
		}
		res.Complete = complete

		out := operations.Completed(complete.Nrow())
		out.Missing = missing
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Cleaner) loadStep(ctx context.Context, runner *operations.Runner, table, path string) (dataframe.DataFrame, error) {
	var df dataframe.DataFrame
	_, err := runner.Run(ctx, "load_"+table, "Load "+table, func(ctx context.Context) (operations.StepResult, error) {
		var err error
		df, err = Load(path, c.opts)
		if err != nil {
			return operations.StepResult{}, err
		}
		c.metrics.RecordRows(ctx, table, df.Nrow())
		LogProfile(c.logger, table, df)
		return operations.Completed(df.Nrow()), nil
	})
	return df, err
}

type cleanFunc func(df dataframe.DataFrame) (dataframe.DataFrame, []Derivation, error)

func (c *Cleaner) cleanStep(ctx context.Context, runner *operations.Runner, table string, df dataframe.DataFrame, clean cleanFunc, log *[]Derivation) (dataframe.DataFrame, error) {
	out := df
	_, err := runner.Run(ctx, "clean_"+table, "Clean "+table, func(ctx context.Context) (operations.StepResult, error) {
		cleaned, derived, err := clean(df)
		if err != nil {
			return operations.StepResult{}, err
		}
		out = cleaned
		*log = append(*log, derived...)

		res := operations.Completed(cleaned.Nrow())
		for _, d := range derived {
			if d.Skipped {
				c.logger.WarnContext(ctx, "Derived column skipped",
					slog.String("table", table),
					slog.String("column", d.Column),
					slog.Any("missing", d.Missing))
				res.Missing = appendUnique(res.Missing, d.Missing...)
			}
		}
		return res, nil
	})
	return out, err
}

// CleanExam keeps the exam column subset, zero-fills every score column and
// derives MEDIA_NOTAS and FAIXA_ETARIA.
func (c *Cleaner) CleanExam(df dataframe.DataFrame) (dataframe.DataFrame, []Derivation, error) {
	var derived []Derivation

	selected := SelectColumns(df, domain.ExamColumns)
	if selected.Skipped {
		c.logger.Warn("Exam column subset not applied",
			slog.Any("missing", selected.Missing))
	}
	df = selected.Value

	df = FillNA(df, ColumnsContaining(df, domain.ScoreMarker), 0)

	mean, err := DeriveMeanScore(df)
	if err != nil {
		return df, derived, err
	}
	derived = append(derived, derivation(domain.ColMeanScore, mean))
	df = mean.Value

	age, err := DeriveAgeBand(df)
	if err != nil {
		return df, derived, err
	}
	derived = append(derived, derivation(domain.ColAgeBand, age))

	return age.Value, derived, nil
}

// CleanSchools restricts the census to secondary schools and derives the
// infrastructure level and category.
func (c *Cleaner) CleanSchools(df dataframe.DataFrame) (dataframe.DataFrame, []Derivation, error) {
	if filtered := FilterEquals(df, domain.ColSecondary, 1); !filtered.Skipped {
		df = filtered.Value
		if df.Err != nil {
			return df, nil, df.Err
		}
	}

	infra, err := DeriveInfrastructure(df)
	if err != nil {
		return df, nil, err
	}
	return infra.Value, []Derivation{
		derivation(domain.ColInfrastructureLevel, infra),
		derivation(domain.ColInfrastructureCategory, infra),
	}, nil
}

// CleanMunicipalities derives CATEGORIA_IDH.
func (c *Cleaner) CleanMunicipalities(df dataframe.DataFrame) (dataframe.DataFrame, []Derivation, error) {
	hdi, err := DeriveHDICategory(df)
	if err != nil {
		return df, nil, err
	}
	return hdi.Value, []Derivation{derivation(domain.ColHDICategory, hdi)}, nil
}

// Merge left-joins municipalities and then schools onto exam. A join whose
// key is missing is skipped and leaves its left table unchanged; the missing
// keys are returned.
func (c *Cleaner) Merge(exam, municipalities, schools dataframe.DataFrame) (dataframe.DataFrame, []string, error) {
	var missing []string

	withCity, err := LeftJoin(exam, municipalities, domain.ColMunicipalityCode, domain.ColIBGECode)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	if withCity.Skipped {
		c.logger.Warn("Municipality join skipped", slog.Any("missing", withCity.Missing))
		missing = appendUnique(missing, withCity.Missing...)
	}

	complete, err := LeftJoin(withCity.Value, schools, domain.ColSchoolCode, domain.ColEntityID)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	if complete.Skipped {
		c.logger.Warn("School join skipped", slog.Any("missing", complete.Missing))
		missing = appendUnique(missing, complete.Missing...)
	}

	return complete.Value, missing, nil
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, d := range dst {
			if d == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
