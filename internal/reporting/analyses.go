package reporting

import (
	"context"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/charts"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/dataprocessing"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/operations"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/pkg/contracts/domain"
)

// Step ids of the exploratory analyses
const (
	StepScoreDistribution          = "distribuicao_notas"
	StepScoresBySex                = "notas_por_genero"
	StepScoreCorrelation           = "correlacao_notas"
	StepMeanByAgeBand              = "media_por_faixa_etaria"
	StepInfrastructureDistribution = "distribuicao_infraestrutura"
	StepHDIVersusMean              = "idh_vs_media"
)

func (r *Reporter) analysisSteps() []step {
	return []step{
		{
			id:     StepScoreDistribution,
			name:   "Distribuição das notas do ENEM",
			table:  exam,
			render: r.scoreDistribution,
		},
		{
			id:       StepScoresBySex,
			name:     "Comparação de notas por gênero",
			table:    exam,
			required: []string{domain.ColSex, domain.ColMeanScore},
			render:   r.scoresBySex,
		},
		{
			id:       StepScoreCorrelation,
			name:     "Correlação entre as notas",
			table:    exam,
			required: domain.ScoreColumns,
			render:   r.scoreCorrelation,
		},
		{
			id:       StepMeanByAgeBand,
			name:     "Média por faixa etária",
			table:    exam,
			required: []string{domain.ColAgeBand, domain.ColMeanScore},
			render:   r.meanByAgeBand,
		},
		{
			id:       StepInfrastructureDistribution,
			name:     "Distribuição das escolas por nível de infraestrutura",
			table:    schools,
			required: []string{domain.ColInfrastructureCategory},
			render:   r.infrastructureDistribution,
		},
		{
			id:       StepHDIVersusMean,
			name:     "Relação entre IDH e média das notas",
			table:    complete,
			required: []string{domain.ColHDI, domain.ColMeanScore},
			render:   r.hdiVersusMean,
		},
	}
}

// scoreDistribution draws one histogram per score column present plus one for
// MEDIA_NOTAS. It needs at least one of them.
func (r *Reporter) scoreDistribution(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	cols := append(append([]string{}, domain.ScoreColumns...), domain.ColMeanScore)
	present, missing := anyOf(df, cols)
	if len(present) == 0 {
		return operations.Skipped(missing), nil
	}

	wb := charts.NewWorkbook(r.logger)
	plotted := 0
	for _, col := range present {
		values := dataprocessing.DropNaN(dataprocessing.Floats(df, col))
		if len(values) == 0 {
			r.logger.DebugContext(ctx, "Histogram skipped, no values", slog.String("column", col))
			continue
		}
		h, err := dataprocessing.Histogram(values, r.histogramBins(len(values)))
		if err != nil {
			wb.Close()
			return operations.StepResult{}, err
		}

		title := "Distribuição de " + col
		xTitle := "Nota"
		if col == domain.ColMeanScore {
			title = "Distribuição da Média das Notas"
			xTitle = "Média"
		}
		if err := wb.Histogram(col, charts.Options{Title: title, XTitle: xTitle, YTitle: "Frequência"}, h); err != nil {
			wb.Close()
			return operations.StepResult{}, err
		}
		plotted++
	}

	if plotted == 0 {
		wb.Close()
		r.logger.WarnContext(ctx, "No score values to plot", slog.String("step", StepScoreDistribution))
		res := operations.Completed(df.Nrow())
		res.Missing = missing
		return res, nil
	}

	path := r.paths.GetAnalysisPath(StepScoreDistribution)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	res := operations.Completed(df.Nrow(), path)
	res.Missing = missing
	return res, nil
}

func (r *Reporter) scoresBySex(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	boxes, err := dataprocessing.GroupQuartiles(df, domain.ColSex, domain.ColMeanScore)
	if err != nil {
		return operations.StepResult{}, err
	}

	wb := charts.NewWorkbook(r.logger)
	err = wb.Box("Genero", charts.Options{
		Title:  "Distribuição da Média das Notas por Gênero",
		XTitle: "Gênero",
		YTitle: "Média das Notas",
	}, boxes)
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetAnalysisPath(StepScoresBySex)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}

func (r *Reporter) scoreCorrelation(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	m, err := dataprocessing.CorrelationMatrix(df, domain.ScoreColumns)
	if err != nil {
		return operations.StepResult{}, err
	}

	wb := charts.NewWorkbook(r.logger)
	if err := wb.Heatmap("Correlacao", charts.Options{Title: "Matriz de Correlação das Notas"}, m); err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetAnalysisPath(StepScoreCorrelation)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}

// meanByAgeBand averages MEDIA_NOTAS per age band, bands in bin order.
func (r *Reporter) meanByAgeBand(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	means, err := dataprocessing.GroupMean(df, []string{domain.ColAgeBand}, []string{domain.ColMeanScore})
	if err != nil {
		return operations.StepResult{}, err
	}
	means = dataprocessing.SortByOrder(means, domain.ColAgeBand, domain.AgeBands.Labels)
	labels, values := labelsAndValues(means, domain.ColAgeBand, domain.ColMeanScore)

	wb := charts.NewWorkbook(r.logger)
	err = wb.Bar("FaixaEtaria", charts.Options{
		Title:  "Média das Notas por Faixa Etária",
		XTitle: "Faixa Etária",
		YTitle: "Média das Notas",
	}, labels, charts.Series{Name: domain.ColMeanScore, Values: values})
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetAnalysisPath(StepMeanByAgeBand)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}

// infrastructureDistribution counts schools per infrastructure category,
// categories in bin order.
func (r *Reporter) infrastructureDistribution(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	counts, err := dataprocessing.Counts(df, domain.ColInfrastructureCategory)
	if err != nil {
		return operations.StepResult{}, err
	}
	counts = dataprocessing.SortByOrder(counts, domain.ColInfrastructureCategory, domain.InfrastructureBands.Labels)
	labels, values := labelsAndValues(counts, domain.ColInfrastructureCategory, dataprocessing.CountColumn)

	wb := charts.NewWorkbook(r.logger)
	err = wb.Bar("Infraestrutura", charts.Options{
		Title:  "Distribuição das Escolas por Nível de Infraestrutura",
		XTitle: "Nível de Infraestrutura",
		YTitle: "Quantidade de Escolas",
	}, labels, charts.Series{Name: dataprocessing.CountColumn, Values: values})
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetAnalysisPath(StepInfrastructureDistribution)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}

func (r *Reporter) hdiVersusMean(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	wb := charts.NewWorkbook(r.logger)
	err := wb.Scatter("IDH", charts.Options{
		Title:  "Relação entre IDH Municipal e Média das Notas",
		XTitle: "IDH",
		YTitle: "Média das Notas",
	}, charts.ScatterData{
		XName: domain.ColHDI,
		YName: domain.ColMeanScore,
		X:     dataprocessing.Floats(df, domain.ColHDI),
		Y:     dataprocessing.Floats(df, domain.ColMeanScore),
	})
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetAnalysisPath(StepHDIVersusMean)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}
