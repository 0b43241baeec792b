package dataprocessing

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/series"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/pkg/contracts/domain"
)

// Bins assigns labels to right-closed intervals (e[i], e[i+1]]. The lowest
// edge is inclusive so it falls into the first bin.
type Bins struct {
	edges  []float64
	labels []string
}

// NewBins validates spec and returns the binning it describes.
func NewBins(spec domain.BinSpec) (Bins, error) {
	if len(spec.Edges) < 2 {
		return Bins{}, fmt.Errorf("bins need at least two edges, got %d", len(spec.Edges))
	}
	if len(spec.Labels) != len(spec.Edges)-1 {
		return Bins{}, fmt.Errorf("bins need %d labels, got %d", len(spec.Edges)-1, len(spec.Labels))
	}
	for i := 1; i < len(spec.Edges); i++ {
		if spec.Edges[i] <= spec.Edges[i-1] {
			return Bins{}, fmt.Errorf("bin edges must increase: %v", spec.Edges)
		}
	}
	return Bins{edges: spec.Edges, labels: spec.Labels}, nil
}

// MustBins is NewBins for the package-level bin specs.
func MustBins(spec domain.BinSpec) Bins {
	b, err := NewBins(spec)
	if err != nil {
		panic(err)
	}
	return b
}

// Index returns the bin holding v, or -1 when v is NaN or outside every bin.
func (b Bins) Index(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	if v == b.edges[0] {
		return 0
	}
	for i := 0; i < len(b.labels); i++ {
		if v > b.edges[i] && v <= b.edges[i+1] {
			return i
		}
	}
	return -1
}

// Label returns the label of the bin holding v.
func (b Bins) Label(v float64) (string, bool) {
	i := b.Index(v)
	if i < 0 {
		return "", false
	}
	return b.labels[i], true
}

// Labels returns the labels in bin order.
func (b Bins) Labels() []string {
	return append([]string(nil), b.labels...)
}

// Cut bins every value of s into a string series called name. Values outside
// every bin become missing.
func (b Bins) Cut(s series.Series, name string) series.Series {
	vals := s.Float()
	out := make([]string, len(vals))
	for i, v := range vals {
		if label, ok := b.Label(v); ok {
			out[i] = label
		} else {
			out[i] = "NaN"
		}
	}
	return series.New(out, series.String, name)
}
