package dataprocessing

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/pkg/contracts/domain"
)

var (
	ageBins            = MustBins(domain.AgeBands)
	infrastructureBins = MustBins(domain.InfrastructureBands)
	hdiBins            = MustBins(domain.HDIBands)
)

// AgeBins returns the FAIXA_ETARIA binning.
func AgeBins() Bins { return ageBins }

// InfrastructureBins returns the CATEGORIA_INFRAESTRUTURA binning.
func InfrastructureBins() Bins { return infrastructureBins }

// HDIBins returns the CATEGORIA_IDH binning.
func HDIBins() Bins { return hdiBins }

// Derivation records whether one derived column was produced.
type Derivation struct {
	Column  string
	Skipped bool
	Missing []string
}

func derivation[T any](col string, o Outcome[T]) Derivation {
	return Derivation{Column: col, Skipped: o.Skipped, Missing: o.Missing}
}

// DeriveMeanScore appends MEDIA_NOTAS, the mean of the four area scores with
// missing scores counted as zero.
func DeriveMeanScore(df dataframe.DataFrame) (Outcome[dataframe.DataFrame], error) {
	return guardMutate(df, domain.AreaScoreColumns, func() series.Series {
		cols := make([][]float64, len(domain.AreaScoreColumns))
		for i, col := range domain.AreaScoreColumns {
			cols[i] = Floats(df, col)
		}

		means := make([]float64, df.Nrow())
		row := make([]float64, len(cols))
		for r := range means {
			for c := range cols {
				v := cols[c][r]
				if math.IsNaN(v) {
					v = 0
				}
				row[c] = v
			}
			means[r] = stat.Mean(row, nil)
		}
		return series.New(means, series.Float, domain.ColMeanScore)
	})
}

// DeriveAgeBand appends FAIXA_ETARIA from NU_IDADE.
func DeriveAgeBand(df dataframe.DataFrame) (Outcome[dataframe.DataFrame], error) {
	return guardMutate(df, []string{domain.ColAge}, func() series.Series {
		return ageBins.Cut(df.Col(domain.ColAge), domain.ColAgeBand)
	})
}

// DeriveInfrastructure appends NIVEL_INFRAESTRUTURA, the count of the six
// facility flags, and CATEGORIA_INFRAESTRUTURA binned from it.
func DeriveInfrastructure(df dataframe.DataFrame) (Outcome[dataframe.DataFrame], error) {
	return guardTable(df, domain.InfrastructureColumns, func() (dataframe.DataFrame, error) {
		level := make([]int, df.Nrow())
		for _, col := range domain.InfrastructureColumns {
			for r, v := range Floats(df, col) {
				if !math.IsNaN(v) {
					level[r] += int(v)
				}
			}
		}

		levels := series.New(level, series.Int, domain.ColInfrastructureLevel)
		out := df.Mutate(levels)
		out = out.Mutate(infrastructureBins.Cut(levels, domain.ColInfrastructureCategory))
		return out, out.Err
	})
}

// DeriveHDICategory appends CATEGORIA_IDH from IDH.
func DeriveHDICategory(df dataframe.DataFrame) (Outcome[dataframe.DataFrame], error) {
	return guardMutate(df, []string{domain.ColHDI}, func() series.Series {
		return hdiBins.Cut(df.Col(domain.ColHDI), domain.ColHDICategory)
	})
}

// DeriveSchoolTypeLabel appends TIPO_ESCOLA from the TP_ESCOLA code. Unknown
// codes become missing.
func DeriveSchoolTypeLabel(df dataframe.DataFrame) (Outcome[dataframe.DataFrame], error) {
	return guardMutate(df, []string{domain.ColSchoolType}, func() series.Series {
		codes := Floats(df, domain.ColSchoolType)
		labels := make([]string, len(codes))
		for i, c := range codes {
			labels[i] = "NaN"
			if math.IsNaN(c) {
				continue
			}
			if l, ok := domain.SchoolTypeLabels[int(c)]; ok {
				labels[i] = l
			}
		}
		return series.New(labels, series.String, domain.ColSchoolTypeLabel)
	})
}

// guardMutate appends the series built by build when required is present.
func guardMutate(df dataframe.DataFrame, required []string, build func() series.Series) (Outcome[dataframe.DataFrame], error) {
	return guardTable(df, required, func() (dataframe.DataFrame, error) {
		out := df.Mutate(build())
		return out, out.Err
	})
}

// guardTable is Guard for table transforms: a skipped outcome carries df unchanged.
func guardTable(df dataframe.DataFrame, required []string, action func() (dataframe.DataFrame, error)) (Outcome[dataframe.DataFrame], error) {
	o, err := Guard(df, required, action)
	if o.Skipped {
		o.Value = df
	}
	return o, err
}
