package dataprocessing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Suffixes applied to non-key columns present on both sides of a join.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// LeftJoin joins right onto left where left[leftKey] equals right[rightKey].
// Every left row appears once per matching right row, or once with missing
// right-side cells when nothing matches. Missing keys never match. Output
// columns are the left columns followed by the right ones; the right key is
// kept only when its name differs from the left key. Names present on both
// sides get LeftSuffix and RightSuffix, the left key included.
//
// When either key column is absent the left table is returned unchanged and
// the outcome is skipped.
func LeftJoin(left, right dataframe.DataFrame, leftKey, rightKey string) (Outcome[dataframe.DataFrame], error) {
	var missing []string
	if !HasColumn(left, leftKey) {
		missing = append(missing, leftKey)
	}
	if !HasColumn(right, rightKey) {
		missing = append(missing, rightKey)
	}
	if len(missing) > 0 {
		return Skip(left, missing), nil
	}

	index := make(map[string][]int, right.Nrow())
	rightKeys := right.Col(rightKey)
	for j := 0; j < rightKeys.Len(); j++ {
		if k, ok := joinKey(rightKeys.Elem(j)); ok {
			index[k] = append(index[k], j)
		}
	}

	nullRow := right.Nrow()
	var leftIdx, rightIdx []int
	leftKeys := left.Col(leftKey)
	for i := 0; i < leftKeys.Len(); i++ {
		k, ok := joinKey(leftKeys.Elem(i))
		matches := index[k]
		if !ok || len(matches) == 0 {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, nullRow)
			continue
		}
		for _, j := range matches {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, j)
		}
	}

	rightCols := make([]string, 0, right.Ncol())
	for _, name := range right.Names() {
		if name == rightKey && rightKey == leftKey {
			continue
		}
		rightCols = append(rightCols, name)
	}

	leftNames := make(map[string]bool, left.Ncol())
	for _, name := range left.Names() {
		leftNames[name] = true
	}
	rightNames := make(map[string]bool, len(rightCols))
	for _, name := range rightCols {
		rightNames[name] = true
	}

	var cols []series.Series
	for _, name := range left.Names() {
		s := subsetSeries(left.Col(name), leftIdx)
		if rightNames[name] {
			s.Name = name + LeftSuffix
		}
		cols = append(cols, s)
	}
	for _, name := range rightCols {
		padded := appendNull(right.Col(name))
		s := subsetSeries(padded, rightIdx)
		if leftNames[name] {
			s.Name = name + RightSuffix
		}
		cols = append(cols, s)
	}

	joined := dataframe.New(cols...)
	if joined.Err != nil {
		return Outcome[dataframe.DataFrame]{}, fmt.Errorf("left join on %s=%s: %w", leftKey, rightKey, joined.Err)
	}
	return Done(joined), nil
}

// joinKey normalises a key cell so that 3550308 and 3550308.0 match.
func joinKey(e series.Element) (string, bool) {
	if e.IsNA() {
		return "", false
	}
	switch e.Type() {
	case series.Int:
		v, err := e.Int()
		if err != nil {
			return "", false
		}
		return strconv.Itoa(v), true
	case series.Float:
		v := e.Float()
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return e.String(), true
	}
}

// appendNull returns a copy of s with one trailing missing cell.
func appendNull(s series.Series) series.Series {
	padded := s.Copy()
	padded.Append([]string{"NaN"})
	return padded
}

// subsetSeries picks rows idx from s, tolerating an empty selection.
func subsetSeries(s series.Series, idx []int) series.Series {
	if len(idx) == 0 {
		return series.New([]string{}, s.Type(), s.Name)
	}
	out := s.Subset(idx)
	out.Name = s.Name
	return out
}
