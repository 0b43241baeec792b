package dataprocessing

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/require"
)

// table parses a ';'-delimited UTF-8 literal.
func table(t *testing.T, text string) dataframe.DataFrame {
	t.Helper()
	df, err := LoadReader(strings.NewReader(text), t.Name(), LoadOptions{Delimiter: ';', Encoding: "utf-8"})
	require.NoError(t, err)
	return df
}

func column(t *testing.T, df dataframe.DataFrame, col string) []string {
	t.Helper()
	require.True(t, HasColumn(df, col), "column %s missing from %v", col, df.Names())
	return df.Col(col).Records()
}
