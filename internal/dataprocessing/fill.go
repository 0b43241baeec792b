package dataprocessing

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FillNA replaces missing cells of the numeric columns in cols with value.
// Absent columns and columns holding text are left alone. A column with no
// values at all is treated as numeric.
func FillNA(df dataframe.DataFrame, cols []string, value float64) dataframe.DataFrame {
	for _, col := range cols {
		if !HasColumn(df, col) {
			continue
		}
		s := df.Col(col)

		switch s.Type() {
		case series.Int:
			if value != math.Trunc(value) {
				df = df.Mutate(series.New(fillFloats(s, value), series.Float, col))
				continue
			}
			ints := make([]int, s.Len())
			for i := 0; i < s.Len(); i++ {
				if e := s.Elem(i); e.IsNA() {
					ints[i] = int(value)
				} else {
					ints[i], _ = e.Int()
				}
			}
			df = df.Mutate(series.New(ints, series.Int, col))
		case series.Float:
			df = df.Mutate(series.New(fillFloats(s, value), series.Float, col))
		case series.String:
			if allNA(s) {
				df = df.Mutate(series.New(fillFloats(s, value), series.Float, col))
			}
		}
	}
	return df
}

func fillFloats(s series.Series, value float64) []float64 {
	vals := s.Float()
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = value
		}
	}
	return vals
}

func allNA(s series.Series) bool {
	for i := 0; i < s.Len(); i++ {
		if !s.Elem(i).IsNA() {
			return false
		}
	}
	return true
}

// Floats returns the values of col with missing cells as NaN.
func Floats(df dataframe.DataFrame, col string) []float64 {
	return df.Col(col).Float()
}

// DropNaN returns the values that are not NaN.
func DropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
