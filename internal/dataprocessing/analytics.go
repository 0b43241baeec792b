package dataprocessing

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GroupMean averages valueCols per distinct combination of groupCols. Groups
// keep first-appearance order, rows with a missing group key are dropped and
// missing values are ignored in each mean.
func GroupMean(df dataframe.DataFrame, groupCols, valueCols []string) (dataframe.DataFrame, error) {
	if missing := MissingColumns(df, append(append([]string{}, groupCols...), valueCols...)); len(missing) > 0 {
		return dataframe.DataFrame{}, fmt.Errorf("group mean: missing columns %v", missing)
	}
	if len(groupCols) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("group mean: no grouping columns")
	}

	first, members := groupRows(df, groupCols)

	values := make([][]float64, len(valueCols))
	for i, col := range valueCols {
		values[i] = Floats(df, col)
	}

	cols := make([]series.Series, 0, len(groupCols)+len(valueCols))
	for _, col := range groupCols {
		cols = append(cols, subsetSeries(df.Col(col), first))
	}
	for i, col := range valueCols {
		means := make([]float64, len(members))
		for g, rows := range members {
			picked := make([]float64, 0, len(rows))
			for _, r := range rows {
				if v := values[i][r]; !math.IsNaN(v) {
					picked = append(picked, v)
				}
			}
			means[g] = math.NaN()
			if len(picked) > 0 {
				means[g] = stat.Mean(picked, nil)
			}
		}
		cols = append(cols, series.New(means, series.Float, col))
	}

	out := dataframe.New(cols...)
	return out, out.Err
}

// groupRows returns the first row of each group and every member row, in
// first-appearance order.
func groupRows(df dataframe.DataFrame, groupCols []string) ([]int, [][]int) {
	keyCols := make([]series.Series, len(groupCols))
	for i, col := range groupCols {
		keyCols[i] = df.Col(col)
	}

	positions := make(map[string]int)
	var first []int
	var members [][]int
	for r := 0; r < df.Nrow(); r++ {
		key := ""
		skip := false
		for _, s := range keyCols {
			e := s.Elem(r)
			if e.IsNA() {
				skip = true
				break
			}
			key += e.String() + "\x1f"
		}
		if skip {
			continue
		}

		g, ok := positions[key]
		if !ok {
			g = len(first)
			positions[key] = g
			first = append(first, r)
			members = append(members, nil)
		}
		members[g] = append(members[g], r)
	}
	return first, members
}

// Counts tallies the non-missing values of col, most frequent first. Ties keep
// first-appearance order.
func Counts(df dataframe.DataFrame, col string) (dataframe.DataFrame, error) {
	if !HasColumn(df, col) {
		return dataframe.DataFrame{}, fmt.Errorf("counts: missing column %s", col)
	}

	first, members := groupRows(df, []string{col})
	order := make([]int, len(first))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(members[order[a]]) > len(members[order[b]])
	})

	rows := make([]int, len(order))
	counts := make([]int, len(order))
	for i, g := range order {
		rows[i] = first[g]
		counts[i] = len(members[g])
	}

	out := dataframe.New(
		subsetSeries(df.Col(col), rows),
		series.New(counts, series.Int, CountColumn),
	)
	return out, out.Err
}

// CorrelationMatrix computes Pearson correlations between every pair of
// cols, using the rows where both values are present.
func CorrelationMatrix(df dataframe.DataFrame, cols []string) (Matrix, error) {
	if missing := MissingColumns(df, cols); len(missing) > 0 {
		return Matrix{}, fmt.Errorf("correlation: missing columns %v", missing)
	}

	data := make([][]float64, len(cols))
	for i, col := range cols {
		data[i] = Floats(df, col)
	}

	m := Matrix{Labels: append([]string(nil), cols...), Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		for j := range cols {
			if j < i {
				m.Values[i][j] = m.Values[j][i]
				continue
			}
			x, y := pairwise(data[i], data[j])
			if len(x) < 2 {
				m.Values[i][j] = math.NaN()
				continue
			}
			m.Values[i][j] = stat.Correlation(x, y, nil)
		}
	}
	return m, nil
}

func pairwise(a, b []float64) ([]float64, []float64) {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	return x, y
}

// Histogram splits the non-missing values into n equal-width bins between
// their minimum and maximum.
func Histogram(values []float64, n int) (HistogramBins, error) {
	if n < 1 {
		return HistogramBins{}, fmt.Errorf("histogram: need at least one bin, got %d", n)
	}
	x := DropNaN(values)
	if len(x) == 0 {
		return HistogramBins{}, fmt.Errorf("histogram: no values")
	}
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		hi = lo + 1
	}
	edges := make([]float64, n+1)
	floats.Span(edges, lo, hi)

	// stat.Histogram needs the maximum strictly below the last divider
	dividers := append([]float64(nil), edges...)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)
	return HistogramBins{Edges: edges, Counts: counts}, nil
}

// Quartiles returns the five-number summary of the non-missing values.
func Quartiles(group string, values []float64) (BoxSummary, error) {
	x := DropNaN(values)
	if len(x) == 0 {
		return BoxSummary{}, fmt.Errorf("quartiles: no values for %q", group)
	}
	sort.Float64s(x)

	return BoxSummary{
		Group:  group,
		Count:  len(x),
		Min:    x[0],
		Q1:     quantile(x, 0.25),
		Median: quantile(x, 0.5),
		Q3:     quantile(x, 0.75),
		Max:    x[len(x)-1],
	}, nil
}

// quantile interpolates linearly between the order statistics around
// position (n-1)p of the sorted slice x.
func quantile(x []float64, p float64) float64 {
	h := float64(len(x)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(x) {
		return x[len(x)-1]
	}
	return x[i] + (h-lo)*(x[i+1]-x[i])
}

// GroupQuartiles computes Quartiles of valueCol for each value of groupCol.
func GroupQuartiles(df dataframe.DataFrame, groupCol, valueCol string) ([]BoxSummary, error) {
	if missing := MissingColumns(df, []string{groupCol, valueCol}); len(missing) > 0 {
		return nil, fmt.Errorf("group quartiles: missing columns %v", missing)
	}

	groups := df.Col(groupCol)
	values := Floats(df, valueCol)
	first, members := groupRows(df, []string{groupCol})

	var out []BoxSummary
	for g, rows := range members {
		picked := make([]float64, len(rows))
		for i, r := range rows {
			picked[i] = values[r]
		}
		box, err := Quartiles(groups.Elem(first[g]).String(), picked)
		if err != nil {
			continue
		}
		out = append(out, box)
	}
	return out, nil
}

// OrderBy returns the positions of labels arranged in the order given by
// order. Labels not in order follow in their original order.
func OrderBy(labels, order []string) []int {
	rank := make(map[string]int, len(order))
	for i, l := range order {
		rank[l] = i
	}
	pos := func(l string) int {
		if r, ok := rank[l]; ok {
			return r
		}
		return len(order)
	}

	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return pos(labels[idx[a]]) < pos(labels[idx[b]])
	})
	return idx
}

// SortByOrder reorders the rows of df so that col follows order.
func SortByOrder(df dataframe.DataFrame, col string, order []string) dataframe.DataFrame {
	if df.Nrow() == 0 || !HasColumn(df, col) {
		return df
	}
	return df.Subset(OrderBy(df.Col(col).Records(), order))
}

// SortDescending reorders the rows of df by col, largest first.
func SortDescending(df dataframe.DataFrame, col string) dataframe.DataFrame {
	if df.Nrow() == 0 || !HasColumn(df, col) {
		return df
	}
	return df.Arrange(dataframe.RevSort(col))
}
