// Package adjacency: types, sentinel errors and functional options for
// soft-threshold selection and network construction.
package adjacency

import (
	"errors"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for network construction.
var (
	// ErrNilSimilarity indicates a nil similarity matrix.
	ErrNilSimilarity = errors.New("adjacency: nil similarity matrix")
	// ErrTooFewGenes indicates fewer than two genes.
	ErrTooFewGenes = errors.New("adjacency: need at least two genes")
	// ErrInvalidBeta indicates a soft-threshold exponent below 1.
	ErrInvalidBeta = errors.New("adjacency: soft-threshold exponent must be >= 1")
)

// Selection defaults.
const (
	// DefaultRsqCutoff is the scale-free fit quality a candidate must reach.
	DefaultRsqCutoff = 0.9
	// DefaultBins is the number of connectivity histogram bins in the fit.
	DefaultBins = 10
)

// DefaultCandidates returns the default soft-threshold grid 1..20.
func DefaultCandidates() []float64 {
	betas := make([]float64, 20)
	for i := range betas {
		betas[i] = float64(i + 1)
	}
	return betas
}

// Matrix is a weighted adjacency (or topological overlap) matrix together
// with the exponent that produced it.
type Matrix struct {
	// Sym holds the symmetric edge weights with unit diagonal.
	Sym *mat.SymDense
	// Beta is the soft-threshold exponent applied to the similarities.
	Beta float64
}

// Fit records the scale-free regression outcome for one candidate exponent.
type Fit struct {
	// Beta is the candidate exponent.
	Beta float64
	// Rsq is the coefficient of determination of log10 p(k) on log10 k.
	Rsq float64
	// Slope of the regression; scale-free networks have a negative slope.
	Slope float64
	// MeanK is the mean node connectivity under this exponent.
	MeanK float64
}

// Pick is the result of the soft-threshold search.
type Pick struct {
	// Beta is the selected exponent.
	Beta float64
	// Rsq is the fit quality at the selected exponent.
	Rsq float64
	// Achieved reports whether Rsq reached the configured cutoff. When
	// false the caller should warn that scale-free fit was not achieved
	// and proceed with the best-fitting candidate.
	Achieved bool
	// Fits holds the regression outcome for every candidate, in grid order.
	Fits []Fit
}

// Option configures PickSoftThreshold and TopologicalOverlap.
type Option func(*options)

type options struct {
	candidates []float64
	rsqCutoff  float64
	bins       int
	workers    int
}

func defaultOptions() options {
	return options{
		candidates: DefaultCandidates(),
		rsqCutoff:  DefaultRsqCutoff,
		bins:       DefaultBins,
		workers:    runtime.NumCPU(),
	}
}

// WithCandidates replaces the candidate exponent grid. Panics when the grid
// is empty, unsorted, or contains an exponent below 1.
func WithCandidates(betas []float64) Option {
	if len(betas) == 0 {
		panic("adjacency: WithCandidates requires a non-empty grid")
	}
	prev := 0.0
	for _, b := range betas {
		if b < 1 {
			panic("adjacency: WithCandidates requires exponents >= 1")
		}
		if b <= prev {
			panic("adjacency: WithCandidates requires a strictly increasing grid")
		}
		prev = b
	}
	grid := append([]float64(nil), betas...)
	return func(o *options) { o.candidates = grid }
}

// WithRsqCutoff sets the scale-free fit quality required to accept a
// candidate. Panics unless 0 < r < 1.
func WithRsqCutoff(r float64) Option {
	if r <= 0 || r >= 1 {
		panic("adjacency: WithRsqCutoff requires 0 < r < 1")
	}
	return func(o *options) { o.rsqCutoff = r }
}

// WithBins sets the connectivity histogram resolution. Panics unless n ≥ 3.
func WithBins(n int) Option {
	if n < 3 {
		panic("adjacency: WithBins requires n >= 3")
	}
	return func(o *options) { o.bins = n }
}

// WithWorkers bounds row-level parallelism in TopologicalOverlap. Panics
// unless n ≥ 1. The result does not depend on n.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("adjacency: WithWorkers requires n >= 1")
	}
	return func(o *options) { o.workers = n }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
