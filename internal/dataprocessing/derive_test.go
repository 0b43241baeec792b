package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/pkg/contracts/domain"
)

func TestBins_Label(t *testing.T) {
	tests := []struct {
		name   string
		bins   Bins
		value  float64
		want   string
		wantOK bool
	}{
		{"age 17 is a minor", AgeBins(), 17, "Até 17 anos", true},
		{"age 18", AgeBins(), 18, "18 a 20 anos", true},
		{"age 100 upper edge", AgeBins(), 100, "Acima de 30 anos", true},
		{"age 0 lowest edge inclusive", AgeBins(), 0, "Até 17 anos", true},
		{"age 101 outside", AgeBins(), 101, "", false},
		{"negative age outside", AgeBins(), -1, "", false},
		{"infrastructure 2", InfrastructureBins(), 2, "Básica", true},
		{"infrastructure 3", InfrastructureBins(), 3, "Intermediária", true},
		{"infrastructure 6", InfrastructureBins(), 6, "Avançada", true},
		{"infrastructure 0", InfrastructureBins(), 0, "Básica", true},
		{"hdi 0.65", HDIBins(), 0.65, "Médio", true},
		{"hdi 0.81", HDIBins(), 0.81, "Muito alto", true},
		{"hdi 0.5 right closed", HDIBins(), 0.5, "Muito baixo", true},
		{"hdi above 1", HDIBins(), 1.2, "", false},
		{"NaN", HDIBins(), math.NaN(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.bins.Label(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewBins_Invalid(t *testing.T) {
	_, err := NewBins(domain.BinSpec{Edges: []float64{0}, Labels: nil})
	assert.Error(t, err)

	_, err = NewBins(domain.BinSpec{Edges: []float64{0, 1, 2}, Labels: []string{"a"}})
	assert.Error(t, err)

	_, err = NewBins(domain.BinSpec{Edges: []float64{0, 2, 1}, Labels: []string{"a", "b"}})
	assert.Error(t, err)
}

func TestDeriveMeanScore(t *testing.T) {
	df := table(t, "NU_NOTA_CN;NU_NOTA_CH;NU_NOTA_LC;NU_NOTA_MT\n500;600;;700\n400;400;400;400\n")

	out, err := DeriveMeanScore(df)
	require.NoError(t, err)
	require.False(t, out.Skipped)

	means := Floats(out.Value, domain.ColMeanScore)
	assert.InDelta(t, 450.0, means[0], 1e-9)
	assert.InDelta(t, 400.0, means[1], 1e-9)
}

func TestDeriveMeanScore_MissingInput(t *testing.T) {
	df := table(t, "NU_NOTA_CN;NU_NOTA_CH;NU_NOTA_LC\n500;600;700\n")

	out, err := DeriveMeanScore(df)
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Equal(t, []string{domain.ColScoreMT}, out.Missing)
	assert.Equal(t, df.Names(), out.Value.Names())
}

func TestDeriveAgeBand(t *testing.T) {
	df := table(t, "ID;NU_IDADE\n1;17\n2;18\n3;100\n4;101\n5;\n")

	out, err := DeriveAgeBand(df)
	require.NoError(t, err)

	bands := out.Value.Col(domain.ColAgeBand)
	assert.Equal(t, "Até 17 anos", bands.Elem(0).String())
	assert.Equal(t, "18 a 20 anos", bands.Elem(1).String())
	assert.Equal(t, "Acima de 30 anos", bands.Elem(2).String())
	assert.True(t, bands.Elem(3).IsNA())
	assert.True(t, bands.Elem(4).IsNA())
}

func TestDeriveInfrastructure(t *testing.T) {
	df := table(t, "CO_ENTIDADE;IN_BIBLIOTECA;IN_LABORATORIO_INFORMATICA;IN_LABORATORIO_CIENCIAS;IN_QUADRA_ESPORTES;IN_SALA_ATENDIMENTO_ESPECIAL;IN_INTERNET\n"+
		"1;1;1;0;0;0;0\n"+
		"2;1;1;1;0;0;0\n"+
		"3;1;1;1;1;1;1\n"+
		"4;0;0;0;0;0;\n")

	out, err := DeriveInfrastructure(df)
	require.NoError(t, err)
	require.False(t, out.Skipped)

	assert.Equal(t, []string{"2", "3", "6", "0"}, column(t, out.Value, domain.ColInfrastructureLevel))
	assert.Equal(t, []string{"Básica", "Intermediária", "Avançada", "Básica"},
		column(t, out.Value, domain.ColInfrastructureCategory))
}

func TestDeriveInfrastructure_MissingFlag(t *testing.T) {
	df := table(t, "CO_ENTIDADE;IN_BIBLIOTECA\n1;1\n")

	out, err := DeriveInfrastructure(df)
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Len(t, out.Missing, 5)
	assert.False(t, HasColumn(out.Value, domain.ColInfrastructureLevel))
	assert.False(t, HasColumn(out.Value, domain.ColInfrastructureCategory))
}

func TestDeriveHDICategory(t *testing.T) {
	df := table(t, "CODIGO_IBGE;IDH\n1;0.65\n2;0.81\n3;\n")

	out, err := DeriveHDICategory(df)
	require.NoError(t, err)

	cats := out.Value.Col(domain.ColHDICategory)
	assert.Equal(t, "Médio", cats.Elem(0).String())
	assert.Equal(t, "Muito alto", cats.Elem(1).String())
	assert.True(t, cats.Elem(2).IsNA())
}

func TestDeriveSchoolTypeLabel(t *testing.T) {
	df := table(t, "TP_ESCOLA\n1\n2\n3\n9\n")

	out, err := DeriveSchoolTypeLabel(df)
	require.NoError(t, err)

	labels := out.Value.Col(domain.ColSchoolTypeLabel)
	assert.Equal(t, "Pública", labels.Elem(0).String())
	assert.Equal(t, "Privada", labels.Elem(1).String())
	assert.Equal(t, "Exterior", labels.Elem(2).String())
	assert.True(t, labels.Elem(3).IsNA())
}

func TestFillNA(t *testing.T) {
	df := table(t, "NU_NOTA_CN;NU_NOTA_MT;NU_NOTA_REDACAO;NOME\n500.5;;;Ana\n;600;;\n")

	filled := FillNA(df, ColumnsContaining(df, domain.ScoreMarker), 0)

	assert.Equal(t, []float64{500.5, 0}, Floats(filled, "NU_NOTA_CN"))
	assert.Equal(t, []float64{0, 600}, Floats(filled, "NU_NOTA_MT"))
	assert.Equal(t, []float64{0, 0}, Floats(filled, "NU_NOTA_REDACAO"))
	assert.True(t, filled.Col("NOME").Elem(1).IsNA())
}

func TestGuard(t *testing.T) {
	df := table(t, "A;B\n1;2\n")

	t.Run("runs when present", func(t *testing.T) {
		out, err := Guard(df, []string{"A", "B"}, func() (int, error) { return 7, nil })
		require.NoError(t, err)
		assert.False(t, out.Skipped)
		assert.Equal(t, 7, out.Value)
	})

	t.Run("skips when missing", func(t *testing.T) {
		called := false
		out, err := Guard(df, []string{"A", "C", "D"}, func() (int, error) {
			called = true
			return 1, nil
		})
		require.NoError(t, err)
		assert.False(t, called)
		assert.True(t, out.Skipped)
		assert.Equal(t, []string{"C", "D"}, out.Missing)
	})
}

func TestSelectColumns(t *testing.T) {
	df := table(t, "A;B;C\n1;2;3\n")

	sel := SelectColumns(df, []string{"C", "A"})
	assert.False(t, sel.Skipped)
	assert.Equal(t, []string{"C", "A"}, sel.Value.Names())

	missing := SelectColumns(df, []string{"A", "Z"})
	assert.True(t, missing.Skipped)
	assert.Equal(t, []string{"Z"}, missing.Missing)
	assert.Equal(t, []string{"A", "B", "C"}, missing.Value.Names())
}

func TestFilterEquals(t *testing.T) {
	df := table(t, "CO_ENTIDADE;IN_ENSINO_MEDIO\n1;1\n2;0\n3;1\n")

	out := FilterEquals(df, domain.ColSecondary, 1)
	assert.False(t, out.Skipped)
	assert.Equal(t, []string{"1", "3"}, column(t, out.Value, domain.ColEntityID))

	skipped := FilterEquals(df, "IN_OUTRO", 1)
	assert.True(t, skipped.Skipped)
	assert.Equal(t, 3, skipped.Value.Nrow())
}
