package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/config"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/dataprocessing"
	apperrors "github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/errors"
)

func load(t *testing.T, text string) dataframe.DataFrame {
	t.Helper()
	df, err := dataprocessing.LoadReader(strings.NewReader(text), t.Name(), dataprocessing.LoadOptions{Delimiter: ';', Encoding: "utf-8"})
	require.NoError(t, err)
	return df
}

func setupWriter(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewCSVWriter(&config.Paths{BaseDir: dir}, nil), dir
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer, dir := setupWriter(t)

	err := writer.WriteCSV("out/test.csv", WriteOptions{
		Headers: []string{"A", "B"},
		Records: [][]string{{"1", "x"}, {"2", "y,z"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out", "test.csv"))
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,x\n2,\"y,z\"\n", string(data))
}

func TestCSVWriter_Options(t *testing.T) {
	writer, dir := setupWriter(t)
	path := filepath.Join(dir, "semi.csv")

	require.NoError(t, writer.WriteCSV(path, WriteOptions{
		Headers:   []string{"A", "B"},
		Records:   [][]string{{"1", "2"}},
		Delimiter: ';',
		BOMPrefix: true,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xef\xbb\xbfA;B\n1;2\n", string(data))
}

func TestCSVWriter_Truncates(t *testing.T) {
	writer, dir := setupWriter(t)
	path := filepath.Join(dir, "t.csv")

	require.NoError(t, writer.WriteCSV(path, WriteOptions{Headers: []string{"A"}, Records: [][]string{{"1"}, {"2"}, {"3"}}}))
	require.NoError(t, writer.WriteCSV(path, WriteOptions{Headers: []string{"B"}, Records: [][]string{{"9"}}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "B\n9\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestCSVWriter_FailureKeepsPreviousFile(t *testing.T) {
	writer, dir := setupWriter(t)
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := writer.WriteCSV(filepath.Join(blocker, "child.csv"), WriteOptions{Headers: []string{"A"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	data, err := os.ReadFile(blocker)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestCSVWriter_WriteTable(t *testing.T) {
	writer, dir := setupWriter(t)
	df := load(t, "ID;NOTA;NOME;IDH\n1;500;Ana;0.7\n2;;;1.0\n3;612.5;Caio;\n")
	path := filepath.Join(dir, "table.csv")

	require.NoError(t, writer.WriteTable(path, df, WriteOptions{Delimiter: ','}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID,NOTA,NOME,IDH\n1,500.0,Ana,0.7\n2,,,1.0\n3,612.5,Caio,\n", string(data))
}

func TestCSVWriter_RoundTrip(t *testing.T) {
	writer, dir := setupWriter(t)
	original := load(t, "NU_INSCRICAO;TP_SEXO;NU_NOTA_MT;MEDIA_NOTAS;FAIXA_ETARIA\n"+
		"1;F;700;450;Até 17 anos\n"+
		"2;M;;512.25;\n"+
		"3;;0;600;Acima de 30 anos\n")
	path := filepath.Join(dir, "roundtrip.csv")

	require.NoError(t, writer.WriteTable(path, original, WriteOptions{Delimiter: ',', BOMPrefix: true}))

	reloaded, err := dataprocessing.Load(path, dataprocessing.LoadOptions{Delimiter: ',', Encoding: "utf-8"})
	require.NoError(t, err)

	assert.Equal(t, original.Names(), reloaded.Names())
	assert.Equal(t, original.Nrow(), reloaded.Nrow())
	for _, name := range original.Names() {
		want, got := original.Col(name), reloaded.Col(name)
		assert.Equal(t, want.Type(), got.Type(), name)
		for i := 0; i < want.Len(); i++ {
			assert.Equal(t, want.Elem(i).IsNA(), got.Elem(i).IsNA(), "%s[%d]", name, i)
			assert.Equal(t, want.Elem(i).String(), got.Elem(i).String(), "%s[%d]", name, i)
		}
	}
}
