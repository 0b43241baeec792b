package reporting

import (
	"context"

	"github.com/go-gota/gota/dataframe"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/charts"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/dataprocessing"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/operations"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/pkg/contracts/domain"
)

// Step ids of the visualizations and the dashboard export
const (
	StepMeanByState              = "mapa_notas_por_uf"
	StepMeanBySchoolType         = "media_por_tipo_escola"
	StepInfrastructureVersusMean = "infraestrutura_vs_desempenho"
	StepScoresByAreaAndAge       = "notas_por_area_e_idade"
	StepInfrastructurePie        = "distribuicao_infraestrutura_pizza"
	StepRadarBySchoolType        = "radar_notas_tipo_escola"
	StepDashboard                = "dados_dashboard"
)

// radarMax is the top of the score scale.
const radarMax = 1000.0

func (r *Reporter) visualizationSteps() []step {
	return []step{
		{
			id:       StepMeanByState,
			name:     "Média das notas por UF",
			table:    exam,
			required: []string{domain.ColState, domain.ColMeanScore},
			render:   r.meanByState,
		},
		{
			id:       StepMeanBySchoolType,
			name:     "Desempenho por tipo de escola",
			table:    exam,
			required: []string{domain.ColSchoolType, domain.ColMeanScore},
			render:   r.meanBySchoolType,
		},
		{
			id:       StepInfrastructureVersusMean,
			name:     "Infraestrutura vs desempenho",
			table:    complete,
			required: []string{domain.ColInfrastructureLevel, domain.ColMeanScore},
			render:   r.infrastructureVersusMean,
		},
		{
			id:       StepScoresByAreaAndAge,
			name:     "Notas por área de conhecimento e faixa etária",
			table:    exam,
			required: []string{domain.ColAgeBand},
			render:   r.scoresByAreaAndAge,
		},
		{
			id:       StepInfrastructurePie,
			name:     "Distribuição de escolas por infraestrutura (pizza)",
			table:    schools,
			required: []string{domain.ColInfrastructureCategory},
			render:   r.infrastructurePie,
		},
		{
			id:       StepRadarBySchoolType,
			name:     "Desempenho por área e tipo de escola (radar)",
			table:    exam,
			required: []string{domain.ColSchoolType},
			render:   r.radarBySchoolType,
		},
		{
			id:     StepDashboard,
			name:   "Dados para o dashboard",
			table:  complete,
			render: r.dashboardData,
		},
	}
}

// meanByState averages MEDIA_NOTAS per state, states in alphabetical order.
func (r *Reporter) meanByState(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	means, err := dataprocessing.GroupMean(df, []string{domain.ColState}, []string{domain.ColMeanScore})
	if err != nil {
		return operations.StepResult{}, err
	}
	if means.Nrow() > 0 {
		means = means.Arrange(dataframe.Sort(domain.ColState))
		if means.Err != nil {
			return operations.StepResult{}, means.Err
		}
	}
	labels, values := labelsAndValues(means, domain.ColState, domain.ColMeanScore)

	wb := charts.NewWorkbook(r.logger)
	err = wb.Bar("UF", charts.Options{
		Title:      "Média das Notas do ENEM por Unidade Federativa",
		XTitle:     "UF",
		YTitle:     "Média das Notas",
		Horizontal: true,
		Height:     uint(200 + 20*len(labels)),
	}, labels, charts.Series{Name: domain.ColMeanScore, Values: values})
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetVisualizationPath(StepMeanByState)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}

// meanBySchoolType labels TP_ESCOLA and averages MEDIA_NOTAS per school type,
// highest mean first.
func (r *Reporter) meanBySchoolType(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	labelled, err := dataprocessing.DeriveSchoolTypeLabel(df)
	if err != nil {
		return operations.StepResult{}, err
	}

	means, err := dataprocessing.GroupMean(labelled.Value, []string{domain.ColSchoolTypeLabel}, []string{domain.ColMeanScore})
	if err != nil {
		return operations.StepResult{}, err
	}
	means = dataprocessing.SortDescending(means, domain.ColMeanScore)
	labels, values := labelsAndValues(means, domain.ColSchoolTypeLabel, domain.ColMeanScore)

	wb := charts.NewWorkbook(r.logger)
	err = wb.Bar("TipoEscola", charts.Options{
		Title:  "Média das Notas por Tipo de Escola",
		XTitle: "Tipo de Escola",
		YTitle: "Média das Notas",
	}, labels, charts.Series{Name: domain.ColMeanScore, Values: values})
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetVisualizationPath(StepMeanBySchoolType)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}

// infrastructureVersusMean plots school infrastructure against the student
// mean, coloured by category and sized by enrollments when those exist.
func (r *Reporter) infrastructureVersusMean(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	data := charts.ScatterData{
		XName: domain.ColInfrastructureLevel,
		YName: domain.ColMeanScore,
		X:     dataprocessing.Floats(df, domain.ColInfrastructureLevel),
		Y:     dataprocessing.Floats(df, domain.ColMeanScore),
	}
	if dataprocessing.HasColumn(df, domain.ColInfrastructureCategory) {
		data.Groups = df.Col(domain.ColInfrastructureCategory).Records()
	}
	if dataprocessing.HasColumn(df, domain.ColEnrollments) {
		data.SizeName = domain.ColEnrollments
		data.Size = dataprocessing.Floats(df, domain.ColEnrollments)
	}

	wb := charts.NewWorkbook(r.logger)
	err := wb.Scatter("Infraestrutura", charts.Options{
		Title:  "Relação entre Infraestrutura Escolar e Desempenho no ENEM",
		XTitle: "Nível de Infraestrutura",
		YTitle: "Média das Notas",
	}, data)
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetVisualizationPath(StepInfrastructureVersusMean)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}

// scoresByAreaAndAge averages each area score present per age band and draws
// one line per area.
func (r *Reporter) scoresByAreaAndAge(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	areas, missing := anyOf(df, domain.AreaScoreColumns)
	if len(areas) == 0 {
		return operations.Skipped(missing), nil
	}

	means, err := dataprocessing.GroupMean(df, []string{domain.ColAgeBand}, areas)
	if err != nil {
		return operations.StepResult{}, err
	}
	means = dataprocessing.SortByOrder(means, domain.ColAgeBand, domain.AgeBands.Labels)

	series := make([]charts.Series, len(areas))
	for i, col := range areas {
		series[i] = charts.Series{Name: domain.AreaLabel(col), Values: dataprocessing.Floats(means, col)}
	}

	wb := charts.NewWorkbook(r.logger)
	err = wb.Line("AreaIdade", charts.Options{
		Title:  "Média das Notas por Área de Conhecimento e Faixa Etária",
		XTitle: "Faixa Etária",
		YTitle: "Média das Notas",
	}, means.Col(domain.ColAgeBand).Records(), series...)
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetVisualizationPath(StepScoresByAreaAndAge)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	res := operations.Completed(df.Nrow(), path)
	res.Missing = missing
	return res, nil
}

// infrastructurePie shows the share of schools per infrastructure category,
// most frequent first.
func (r *Reporter) infrastructurePie(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	counts, err := dataprocessing.Counts(df, domain.ColInfrastructureCategory)
	if err != nil {
		return operations.StepResult{}, err
	}
	labels, values := labelsAndValues(counts, domain.ColInfrastructureCategory, dataprocessing.CountColumn)

	wb := charts.NewWorkbook(r.logger)
	err = wb.Pie("Pizza", charts.Options{
		Title: "Distribuição das Escolas por Nível de Infraestrutura",
	}, labels, charts.Series{Name: dataprocessing.CountColumn, Values: values})
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetVisualizationPath(StepInfrastructurePie)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	return operations.Completed(df.Nrow(), path), nil
}

// radarBySchoolType compares the mean of each score present, essay included,
// across school types on a 0 to 1000 scale.
func (r *Reporter) radarBySchoolType(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	scores, missing := anyOf(df, domain.ScoreColumns)
	if len(scores) == 0 {
		return operations.Skipped(missing), nil
	}

	labelled, err := dataprocessing.DeriveSchoolTypeLabel(df)
	if err != nil {
		return operations.StepResult{}, err
	}
	means, err := dataprocessing.GroupMean(labelled.Value, []string{domain.ColSchoolTypeLabel}, scores)
	if err != nil {
		return operations.StepResult{}, err
	}

	axes := make([]string, len(scores))
	for i, col := range scores {
		axes[i] = domain.AreaLabel(col)
	}

	types := means.Col(domain.ColSchoolTypeLabel).Records()
	series := make([]charts.Series, len(types))
	for i, name := range types {
		values := make([]float64, len(scores))
		for j, col := range scores {
			values[j] = means.Col(col).Elem(i).Float()
		}
		series[i] = charts.Series{Name: name, Values: values}
	}

	lo, hi := 0.0, radarMax
	wb := charts.NewWorkbook(r.logger)
	err = wb.Radar("Radar", charts.Options{
		Title: "Comparação de Desempenho por Área de Conhecimento e Tipo de Escola",
		YMin:  &lo,
		YMax:  &hi,
	}, axes, series...)
	if err != nil {
		wb.Close()
		return operations.StepResult{}, err
	}

	path := r.paths.GetVisualizationPath(StepRadarBySchoolType)
	if err := save(wb, path); err != nil {
		return operations.StepResult{}, err
	}
	res := operations.Completed(df.Nrow(), path)
	res.Missing = missing
	return res, nil
}

// dashboardData writes the curated dashboard table. It is skipped only when
// the complete table has none of the dashboard columns.
func (r *Reporter) dashboardData(ctx context.Context, df dataframe.DataFrame) (operations.StepResult, error) {
	out, err := r.dashboard.Export(r.paths.DashboardCSV, df, r.opts.Write)
	if err != nil {
		return operations.StepResult{}, err
	}
	if out.Skipped {
		return operations.Skipped(out.Missing), nil
	}

	res := operations.Completed(out.Value.Nrow(), r.paths.DashboardCSV)
	res.Missing = out.Missing
	return res, nil
}
