package dataprocessing

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Outcome is the result of a guarded step: either a value or an explicit skip
// naming the columns that were missing.
type Outcome[T any] struct {
	Value   T
	Skipped bool
	Missing []string
}

// Skip builds a skipped outcome that still carries a fallback value.
func Skip[T any](value T, missing []string) Outcome[T] {
	return Outcome[T]{Value: value, Skipped: true, Missing: missing}
}

// Done builds a completed outcome.
func Done[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

// HasColumn reports whether df has a column named col.
func HasColumn(df dataframe.DataFrame, col string) bool {
	for _, name := range df.Names() {
		if name == col {
			return true
		}
	}
	return false
}

// MissingColumns returns the required columns absent from df, in the order given.
func MissingColumns(df dataframe.DataFrame, required []string) []string {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// PresentColumns returns the candidates that exist in df, in the order given.
func PresentColumns(df dataframe.DataFrame, candidates []string) []string {
	var present []string
	for _, col := range candidates {
		if HasColumn(df, col) {
			present = append(present, col)
		}
	}
	return present
}

// Guard runs action only when every required column is present. A gap is not
// an error: the outcome is marked skipped and lists the missing columns.
func Guard[T any](df dataframe.DataFrame, required []string, action func() (T, error)) (Outcome[T], error) {
	if missing := MissingColumns(df, required); len(missing) > 0 {
		var zero T
		return Skip(zero, missing), nil
	}

	value, err := action()
	if err != nil {
		var zero T
		return Outcome[T]{Value: zero}, err
	}
	return Done(value), nil
}

// SelectColumns restricts df to cols. When any column is missing df is
// returned unchanged and the outcome is skipped.
func SelectColumns(df dataframe.DataFrame, cols []string) Outcome[dataframe.DataFrame] {
	if missing := MissingColumns(df, cols); len(missing) > 0 {
		return Skip(df, missing)
	}
	return Done(df.Select(cols))
}

// FilterEquals keeps the rows where col equals value.
func FilterEquals(df dataframe.DataFrame, col string, value interface{}) Outcome[dataframe.DataFrame] {
	if !HasColumn(df, col) {
		return Skip(df, []string{col})
	}
	return Done(df.Filter(dataframe.F{Colname: col, Comparator: series.Eq, Comparando: value}))
}

// ColumnsContaining returns every column whose name contains marker.
func ColumnsContaining(df dataframe.DataFrame, marker string) []string {
	var cols []string
	for _, name := range df.Names() {
		if strings.Contains(name, marker) {
			cols = append(cols, name)
		}
	}
	return cols
}
