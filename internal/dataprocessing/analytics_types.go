package dataprocessing

// CountColumn names the frequency column produced by Counts.
const CountColumn = "QUANTIDADE"

// Matrix is a square matrix of pairwise statistics over Labels.
type Matrix struct {
	Labels []string
	Values [][]float64
}

// HistogramBins holds equal-width bins: Counts[i] covers [Edges[i], Edges[i+1]).
// The last bin is closed on the right.
type HistogramBins struct {
	Edges  []float64
	Counts []float64
}

// BoxSummary is the five-number summary behind a box plot.
type BoxSummary struct {
	Group  string
	Count  int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}
